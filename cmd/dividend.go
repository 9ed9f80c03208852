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

type dividendCmd struct {
	instrument string
	month      string
	perShare   float64
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "confirm a pending dividend with its published value" }
func (*dividendCmd) Usage() string {
	return `cta dividend -i <ticker> -month <YYYY-MM> -per-share <value>

  Settles a dividend pendency: the published per-share amount times the
  shares held at the month's end is credited to the variable sleeve.

  Funds publish the amount around the middle of the following month, so the
  confirmation opens on its 15th day.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.instrument, "i", "", "Instrument ticker.")
	f.StringVar(&c.month, "month", "", "Month the dividend pays for (YYYY-MM).")
	f.Float64Var(&c.perShare, "per-share", 0, "Published per-share amount.")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	month, err := carteira.ParseMonth(c.month)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing month:", err)
		return subcommands.ExitUsageError
	}
	today := carteira.Today()

	// Confirmation opens on the 15th of the following month.
	if gate := month.Next().Start().Add(14); today.Before(gate) {
		fmt.Fprintf(os.Stderr, "Error: the dividend for %s can be confirmed from %s on\n", month, gate)
		return subcommands.ExitFailure
	}

	return mutate(func(a *carteira.Aggregate) error {
		dividend, err := a.RecordDividend(c.instrument, month, carteira.M(c.perShare), today)
		if err != nil {
			return err
		}
		fmt.Printf("Credited %s for %s %s\n", dividend.Amount, c.instrument, month)
		return nil
	})
}

type dividendsCmd struct{}

func (*dividendsCmd) Name() string     { return "dividends" }
func (*dividendsCmd) Synopsis() string { return "list pending dividends per instrument and month" }
func (*dividendsCmd) Usage() string {
	return `cta dividends

  Lists every closed month for which an instrument was held at the month's
  last day but no dividend entry exists yet.
`
}

func (*dividendsCmd) SetFlags(f *flag.FlagSet) {}

func (c *dividendsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, a, err := loadAggregate()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading portfolio:", err)
		return subcommands.ExitFailure
	}

	today := carteira.Today()
	pendencies := make(map[string][]carteira.Pendency)
	for _, p := range a.Positions {
		if p.IsFixed() {
			continue
		}
		pendencies[p.Name] = carteira.DividendPendencies(a.Ledger, p.Name, today)
	}

	printMarkdown(renderer.PendenciesMarkdown(pendencies))
	return subcommands.ExitSuccess
}
