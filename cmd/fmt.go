package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/lgaspar/carteira"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and rewrites the portfolio document in canonical form"
}
func (*fmtCmd) Usage() string {
	return `cta fmt

  Re-validates every ledger entry, applies the available quick-fixes, sorts
  the entries chronologically and writes the document back in canonical form.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return mutate(func(a *carteira.Aggregate) error {
		// Replaying through Record re-validates every entry against the
		// state preceding it.
		formatted := carteira.NewLedger()
		formatted.SetName(a.Ledger.Name())
		for e := range a.Ledger.Entries() {
			if err := formatted.Record(e); err != nil {
				return fmt.Errorf("ledger does not validate: %w", err)
			}
		}
		a.Ledger = formatted
		fmt.Fprintf(os.Stderr, "Formatted %d entries.\n", formatted.Len())
		return nil
	})
}
