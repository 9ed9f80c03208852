package renderer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lgaspar/carteira"
)

// PendenciesMarkdown renders the dividend pendencies of a set of instruments:
// for each, the closed months held without a recorded dividend.
func PendenciesMarkdown(pendencies map[string][]carteira.Pendency) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Dividend Pendencies\n\n")

	instruments := make([]string, 0, len(pendencies))
	for instrument := range pendencies {
		instruments = append(instruments, instrument)
	}
	slices.Sort(instruments)

	total := 0
	for _, instrument := range instruments {
		months := pendencies[instrument]
		if len(months) == 0 {
			continue
		}
		total += len(months)
		fmt.Fprintf(&b, "## %s\n\n", instrument)
		fmt.Fprintln(&b, "| Month | Shares Held |")
		fmt.Fprintln(&b, "|:---|---:|")
		for _, p := range months {
			fmt.Fprintf(&b, "| %s | %s |\n", p.Month, p.QuantityHeld)
		}
		fmt.Fprint(&b, "\n")
	}

	if total == 0 {
		fmt.Fprint(&b, "No pending dividends. All held months are settled.\n")
	} else {
		fmt.Fprintf(&b, "%d pending month(s). Run `cta dividend` to confirm one.\n", total)
	}
	return b.String()
}
