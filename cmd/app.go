// Package cmd implements the CLI application to manage a portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/lgaspar/carteira"
)

// Register registers the subcommands. A main package calls Register() and
// then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&depositCmd{}, "ledger")
	c.Register(&transferCmd{}, "ledger")
	c.Register(&buyCmd{}, "ledger")
	c.Register(&buyFixedCmd{}, "ledger")
	c.Register(&sellCmd{}, "ledger")
	c.Register(&redeemCmd{}, "ledger")
	c.Register(&dividendCmd{}, "ledger")
	c.Register(&fmtCmd{}, "ledger")

	c.Register(&holdingCmd{}, "reports")
	c.Register(&taxCmd{}, "reports")
	c.Register(&darfCmd{}, "reports")
	c.Register(&dividendsCmd{}, "reports")

	c.Register(&updateCmd{}, "oracle")

	c.Register(&topicCmd{}, "help")
	c.Register(&assistCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var carteiraPath = flag.String("carteira-path", ".carteira", "Path to the portfolio store folder")
var aggregateID = flag.String("aggregate", "main", "Aggregate id of the portfolio to operate on")

// openStore opens the file store at the app store path.
func openStore() (*carteira.FileStore, error) {
	return carteira.NewFileStore(*carteiraPath)
}

// loadAggregate loads the app default aggregate. A missing document is an
// empty portfolio.
func loadAggregate() (*carteira.FileStore, *carteira.Aggregate, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	a, err := store.Load(*aggregateID)
	if err != nil {
		return nil, nil, err
	}
	return store, a, nil
}

// saveAggregate replaces the app default aggregate document.
func saveAggregate(store *carteira.FileStore, a *carteira.Aggregate) error {
	return store.Save(*aggregateID, a)
}

// mutate loads the aggregate, applies fn and saves it back, reporting any
// failure on stderr. It is the shared spine of every recording command.
func mutate(fn func(a *carteira.Aggregate) error) subcommands.ExitStatus {
	store, a, err := loadAggregate()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading portfolio:", err)
		return subcommands.ExitFailure
	}
	if err := fn(a); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := saveAggregate(store, a); err != nil {
		fmt.Fprintln(os.Stderr, "Error saving portfolio:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown to the terminal. When the renderer cannot
// initialize (e.g. a dumb terminal), the raw markdown is printed instead.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// parseDay parses a -d flag value, defaulting the empty string to today.
func parseDay(value string) (carteira.Date, error) {
	if value == "" {
		return carteira.Today(), nil
	}
	return carteira.ParseDate(value)
}
