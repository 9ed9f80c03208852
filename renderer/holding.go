package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgaspar/carteira"
)

// HoldingMarkdown renders the portfolio snapshot: the cash available per
// sleeve and the held positions, split between the fixed and the variable
// sides.
func HoldingMarkdown(a *carteira.Aggregate, asOf carteira.Date) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Portfolio %s on %s\n\n", a.Ledger.Name(), asOf)

	fmt.Fprint(&b, "## Cash\n\n")
	fmt.Fprintln(&b, "| Sleeve | Available |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| fixed | %s |\n", a.Ledger.AvailableBalance(carteira.FixedIncome))
	fmt.Fprintf(&b, "| variable | %s |\n\n", a.Ledger.AvailableBalance(carteira.VariableIncome))

	fixed := Header(func(w io.Writer) {
		fmt.Fprint(w, "## Fixed Income\n\n")
		fmt.Fprintln(w, "| Instrument | Acquired | Invested | Current |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|")
	}).Footer(func(w io.Writer) { fmt.Fprint(w, "\n") })
	for _, p := range a.Positions {
		if !p.IsFixed() {
			continue
		}
		fixed.PrintHeader(&b)
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", p.Name, p.AcquiredOn, p.Invested, p.Current.Round())
	}
	fixed.PrintFooter(&b)

	variable := Header(func(w io.Writer) {
		fmt.Fprint(w, "## Variable Income\n\n")
		fmt.Fprintln(w, "| Instrument | Subtype | Quantity | Avg Cost | Invested | Current |")
		fmt.Fprintln(w, "|:---|:---|---:|---:|---:|---:|")
	}).Footer(func(w io.Writer) { fmt.Fprint(w, "\n") })
	for _, p := range a.Positions {
		if p.IsFixed() {
			continue
		}
		variable.PrintHeader(&b)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			p.Name, p.Variable.Subtype, p.Variable.Quantity,
			p.Variable.AvgCost.Round(), p.Invested, p.Current.Round())
	}
	variable.PrintFooter(&b)

	fmt.Fprintf(&b, "Total invested value: %s\n", a.Positions.Total())
	return b.String()
}
