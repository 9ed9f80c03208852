package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/lgaspar/carteira"
)

type sellCmd struct {
	date       string
	instrument string
	quantity   float64
	proceeds   float64
	memo       string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares of a variable-income position" }
func (*sellCmd) Usage() string {
	return `cta sell -i <ticker> -q <quantity> -amount <proceeds> [-d <date>]

  Sells shares of a held position. The raw proceeds are credited to the
  variable sleeve; the capital-gains tax of the month is settled later with
  'cta darf'.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Sale date (defaults to today).")
	f.StringVar(&c.instrument, "i", "", "Instrument ticker.")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares sold.")
	f.Float64Var(&c.proceeds, "amount", 0, "Raw sale proceeds.")
	f.StringVar(&c.memo, "memo", "", "Optional note.")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing date:", err)
		return subcommands.ExitUsageError
	}
	return mutate(func(a *carteira.Aggregate) error {
		if err := a.RecordSale(day, c.memo, c.instrument, carteira.Q(c.quantity), carteira.M(c.proceeds)); err != nil {
			return err
		}
		fmt.Printf("Sold %s %s for %s on %s\n", carteira.Q(c.quantity), c.instrument, carteira.M(c.proceeds), day)
		return nil
	})
}

type redeemCmd struct {
	date       string
	instrument string
	memo       string
}

func (*redeemCmd) Name() string     { return "redeem" }
func (*redeemCmd) Synopsis() string { return "redeem a fixed-income position whole" }
func (*redeemCmd) Usage() string {
	return `cta redeem -i <name> [-d <date>]

  Redeems a fixed-income position in full at its current accrued value. The
  income tax on the gain is withheld at source under the regressive table and
  the net amount is credited to the fixed sleeve.

  Run 'cta update' first so the redemption uses today's accrued value.
`
}

func (c *redeemCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Redemption date (defaults to today).")
	f.StringVar(&c.instrument, "i", "", "Position name.")
	f.StringVar(&c.memo, "memo", "", "Optional note.")
}

func (c *redeemCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing date:", err)
		return subcommands.ExitUsageError
	}
	return mutate(func(a *carteira.Aggregate) error {
		if err := a.RedeemFixed(day, c.memo, c.instrument); err != nil {
			return err
		}
		fmt.Printf("Redeemed %s on %s\n", c.instrument, day)
		return nil
	})
}
