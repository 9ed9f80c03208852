package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/lgaspar/carteira"
	"github.com/lgaspar/carteira/renderer"
)

type holdingCmd struct {
	date string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "show the sleeves' cash and the held positions" }
func (*holdingCmd) Usage() string {
	return `cta holding [-d <date>]

  Shows the cash available per sleeve and every held position with its
  invested and current value. Run 'cta update' first for current prices.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Report date (defaults to today).")
}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing date:", err)
		return subcommands.ExitUsageError
	}
	_, a, err := loadAggregate()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading portfolio:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.HoldingMarkdown(a, day))
	return subcommands.ExitSuccess
}

type updateCmd struct {
	date string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "revalue every position from the live price oracle" }
func (*updateCmd) Usage() string {
	return `cta update [-d <date>]

  Revalues every position: variable positions at the latest ticker price from
  brapi.dev, fixed positions accrued at the current CDI/SELIC/IPCA rates from
  the Banco Central series. A position whose price or rate is unavailable
  keeps its previous value.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Valuation date (defaults to today).")
}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing date:", err)
		return subcommands.ExitUsageError
	}
	return mutate(func(a *carteira.Aggregate) error {
		// Partial failures are logged and the rest of the update is kept.
		if err := a.Revalue(carteira.NewLiveOracle(), day); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: some positions kept their previous value:", err)
		}
		fmt.Printf("Updated positions as of %s, total %s\n", day, a.Positions.Total())
		return nil
	})
}
