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

type taxCmd struct {
	subtype string
}

func (*taxCmd) Name() string     { return "tax" }
func (*taxCmd) Synopsis() string { return "show the monthly capital-gains report of an asset class" }
func (*taxCmd) Usage() string {
	return `cta tax [-subtype <stock|fii|crypto>]

  Shows the month-by-month capital-gains figures of one asset class:
  gross sales, cost, result, the loss carryforward consumed, the tax base and
  the tax due. Without -subtype, reports every class with sales.
`
}

func (c *taxCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.subtype, "subtype", "", "Asset class to report on. Reports all by default.")
}

func (c *taxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, a, err := loadAggregate()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading portfolio:", err)
		return subcommands.ExitFailure
	}

	subtypes := carteira.Subtypes()
	if c.subtype != "" {
		s, err := carteira.ParseSubtype(c.subtype)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
		subtypes = []carteira.Subtype{s}
	}

	today := carteira.Today()
	for _, s := range subtypes {
		summaries := carteira.TaxSummary(a.Ledger, s, today)
		if len(summaries) == 0 && c.subtype == "" {
			continue
		}
		printMarkdown(renderer.TaxMarkdown(s, summaries))
	}
	return subcommands.ExitSuccess
}

type darfCmd struct {
	subtype string
	month   string
}

func (*darfCmd) Name() string     { return "darf" }
func (*darfCmd) Synopsis() string { return "settle the capital-gains tax of a closed month" }
func (*darfCmd) Usage() string {
	return `cta darf -subtype <stock|fii|crypto> -month <YYYY-MM>

  Reconciles one (asset class, month) pair: appends the tax-debit entry with
  the tax due, debiting the variable sleeve and freezing the month's figures.
  Reconciling an already settled month is a no-op.
`
}

func (c *darfCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.subtype, "subtype", "", "Asset class to reconcile.")
	f.StringVar(&c.month, "month", "", "Month to reconcile (YYYY-MM).")
}

func (c *darfCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	subtype, err := carteira.ParseSubtype(c.subtype)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	month, err := carteira.ParseMonth(c.month)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing month:", err)
		return subcommands.ExitUsageError
	}

	today := carteira.Today()
	return mutate(func(a *carteira.Aggregate) error {
		if err := a.ReconcileTax(subtype, month, today); err != nil {
			return err
		}
		summary, _ := carteira.TaxSummaryFor(a.Ledger, subtype, month, today)
		fmt.Printf("Settled %s %s: %s due\n", subtype, month, summary.TaxDue)
		return nil
	})
}
