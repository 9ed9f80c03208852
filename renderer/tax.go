package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgaspar/carteira"
)

// TaxMarkdown renders the monthly capital-gains report of one subtype: the
// per-month figures with the loss compensation applied, and the state of each
// month in the reconciliation lifecycle.
func TaxMarkdown(subtype carteira.Subtype, summaries []carteira.MonthlySummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Capital Gains Report: %s\n\n", subtype)
	if threshold, ok := carteira.ExemptionThreshold(subtype); ok {
		fmt.Fprintf(&b, "Monthly exemption threshold on gross sales: %s\n\n", threshold)
	} else {
		fmt.Fprint(&b, "No exemption threshold for this asset class.\n\n")
	}

	if len(summaries) == 0 {
		fmt.Fprint(&b, "No sales recorded.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Month | Gross Sales | Cost | Result | Loss Used | Tax Base | Tax Due | State |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|:---|")
	for _, s := range summaries {
		due := s.TaxDue.String()
		if s.Exempt {
			due = "exempt"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			s.Month,
			s.GrossSales,
			s.Cost,
			s.Result.SignedString(),
			s.LossConsumed,
			s.TaxBase,
			due,
			s.State,
		)
	}

	ConditionalBlock(&b, func(w io.Writer) bool {
		for _, s := range summaries {
			if s.State == carteira.MonthClosed && !s.TaxDue.IsZero() {
				fmt.Fprintf(w, "\nClosed months await a DARF: run `cta darf` to settle them.\n")
				return true
			}
		}
		return false
	})

	return b.String()
}
