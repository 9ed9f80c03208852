package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/lgaspar/carteira"
)

type depositCmd struct {
	date   string
	sleeve string
	amount float64
	memo   string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record a cash deposit into a sleeve" }
func (*depositCmd) Usage() string {
	return `cta deposit -sleeve <fixed|variable> -amount <value> [-d <date>] [-memo <note>]

  Records cash entering one of the two sleeves. The amount becomes available
  for purchases booked against that sleeve from the deposit date on.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Deposit date (defaults to today).")
	f.StringVar(&c.sleeve, "sleeve", "variable", "Sleeve receiving the cash (fixed or variable).")
	f.Float64Var(&c.amount, "amount", 0, "Amount deposited.")
	f.StringVar(&c.memo, "memo", "", "Optional note.")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing date:", err)
		return subcommands.ExitUsageError
	}
	sleeve, err := carteira.ParseSleeve(c.sleeve)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	return mutate(func(a *carteira.Aggregate) error {
		if err := a.RecordDeposit(day, c.memo, sleeve, carteira.M(c.amount)); err != nil {
			return err
		}
		fmt.Printf("Deposited %s into the %s sleeve on %s\n", carteira.M(c.amount), sleeve, day)
		return nil
	})
}

type transferCmd struct {
	date   string
	from   string
	to     string
	amount float64
	memo   string
}

func (*transferCmd) Name() string     { return "transfer" }
func (*transferCmd) Synopsis() string { return "move cash between the two sleeves" }
func (*transferCmd) Usage() string {
	return `cta transfer -from <sleeve> -to <sleeve> -amount <value> [-d <date>]

  Moves cash between the fixed and the variable sleeve. The source must hold
  enough cash on the transfer date.
`
}

func (c *transferCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Transfer date (defaults to today).")
	f.StringVar(&c.from, "from", "", "Source sleeve.")
	f.StringVar(&c.to, "to", "", "Destination sleeve.")
	f.Float64Var(&c.amount, "amount", 0, "Amount transferred.")
	f.StringVar(&c.memo, "memo", "", "Optional note.")
}

func (c *transferCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing date:", err)
		return subcommands.ExitUsageError
	}
	from, err := carteira.ParseSleeve(c.from)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	to, err := carteira.ParseSleeve(c.to)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	return mutate(func(a *carteira.Aggregate) error {
		if err := a.RecordTransfer(day, c.memo, from, to, carteira.M(c.amount)); err != nil {
			return err
		}
		fmt.Printf("Transferred %s from %s to %s on %s\n", carteira.M(c.amount), from, to, day)
		return nil
	})
}
