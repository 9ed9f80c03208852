package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/lgaspar/carteira"
	"github.com/shopspring/decimal"
)

type buyCmd struct {
	date       string
	instrument string
	subtype    string
	quantity   float64
	amount     float64
	memo       string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares of a variable-income instrument" }
func (*buyCmd) Usage() string {
	return `cta buy -i <ticker> -subtype <stock|fii|crypto> -q <quantity> -amount <total cost> [-d <date>]

  Buys shares against the variable sleeve's available cash. A repeat purchase
  of a held instrument is merged at the new weighted-average cost.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Purchase date (defaults to today).")
	f.StringVar(&c.instrument, "i", "", "Instrument ticker, e.g. PETR4.")
	f.StringVar(&c.subtype, "subtype", "stock", "Asset class for tax purposes (stock, fii, crypto).")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares bought.")
	f.Float64Var(&c.amount, "amount", 0, "Total cost of the purchase.")
	f.StringVar(&c.memo, "memo", "", "Optional note.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing date:", err)
		return subcommands.ExitUsageError
	}
	subtype, err := carteira.ParseSubtype(c.subtype)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	return mutate(func(a *carteira.Aggregate) error {
		if err := a.RecordVariablePurchase(day, c.memo, c.instrument, subtype,
			carteira.Q(c.quantity), carteira.M(c.amount)); err != nil {
			return err
		}
		fmt.Printf("Bought %s %s for %s on %s\n", carteira.Q(c.quantity), c.instrument, carteira.M(c.amount), day)
		return nil
	})
}

type buyFixedCmd struct {
	date       string
	instrument string
	amount     float64
	rate       float64
	index      string
	percent    float64
	ipca       bool
	memo       string
}

func (*buyFixedCmd) Name() string     { return "buy-fixed" }
func (*buyFixedCmd) Synopsis() string { return "open a fixed-income position" }
func (*buyFixedCmd) Usage() string {
	return `cta buy-fixed -i <name> -amount <principal> [-rate <annual>] [-index <CDI|SELIC> -percent <p>] [-ipca] [-d <date>]

  Opens a fixed-income position against the fixed sleeve's cash. The rate
  regime is built from the flags:
    -rate alone              pre-fixed, e.g. -rate 0.12 for 12% a.a.
    -index and -percent      post-fixed, e.g. -index CDI -percent 110
    -rate with -index/-ipca  hybrid, e.g. -rate 0.06 -ipca for IPCA+6%
`
}

func (c *buyFixedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Purchase date (defaults to today).")
	f.StringVar(&c.instrument, "i", "", "Position name, e.g. \"CDB Zeta 2027\".")
	f.Float64Var(&c.amount, "amount", 0, "Invested principal.")
	f.Float64Var(&c.rate, "rate", 0, "Annual pre-fixed rate as a fraction.")
	f.StringVar(&c.index, "index", "", "Floating index (CDI or SELIC).")
	f.Float64Var(&c.percent, "percent", 100, "Percentage of the index.")
	f.BoolVar(&c.ipca, "ipca", false, "Add the IPCA component (hybrid regime).")
	f.StringVar(&c.memo, "memo", "", "Optional note.")
}

// regime builds the rate regime the flags describe.
func (c *buyFixedCmd) regime() (carteira.Regime, error) {
	annual := decimal.NewFromFloat(c.rate)
	percent := decimal.NewFromFloat(c.percent)
	index := carteira.RateName(c.index)

	switch {
	case c.ipca || (c.rate != 0 && c.index != ""):
		return carteira.NewHybrid(annual, index, percent, c.ipca)
	case c.index != "":
		return carteira.NewPostFixed(index, percent)
	case c.rate != 0:
		return carteira.NewPreFixed(annual), nil
	default:
		return carteira.Regime{}, fmt.Errorf("a rate regime is required: use -rate, -index or -ipca")
	}
}

func (c *buyFixedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing date:", err)
		return subcommands.ExitUsageError
	}
	regime, err := c.regime()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	return mutate(func(a *carteira.Aggregate) error {
		if err := a.RecordFixedPurchase(day, c.memo, c.instrument, carteira.M(c.amount), regime); err != nil {
			return err
		}
		fmt.Printf("Opened %s with %s on %s\n", c.instrument, carteira.M(c.amount), day)
		return nil
	})
}
