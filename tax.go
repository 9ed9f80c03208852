package carteira

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MonthState is the lifecycle of a (subtype, month) pair in the tax engine.
type MonthState string

const (
	// MonthOpen is the current calendar month; its summary is informational
	// and must not be debited.
	MonthOpen MonthState = "open"
	// MonthClosed is a past month eligible for reconciliation.
	MonthClosed MonthState = "closed"
	// MonthReconciled is a month already settled by a tax-debit entry.
	MonthReconciled MonthState = "reconciled"
)

// Exemption thresholds on the monthly gross sales total, and tax rates,
// per subtype. FIIs have no exemption.
var (
	stockExemptionThreshold  = decimal.NewFromInt(20_000)
	cryptoExemptionThreshold = decimal.NewFromInt(35_000)

	stockRate  = decimal.NewFromFloat(0.15)
	cryptoRate = decimal.NewFromFloat(0.15)
	fiiRate    = decimal.NewFromFloat(0.20)
)

// ExemptionThreshold returns the monthly gross-sales threshold under which a
// subtype's gains are exempt, and whether the subtype has one at all.
func ExemptionThreshold(s Subtype) (Money, bool) {
	switch s {
	case Stock:
		return M(stockExemptionThreshold), true
	case Crypto:
		return M(cryptoExemptionThreshold), true
	default:
		return Money{}, false
	}
}

// TaxRate returns the capital-gains rate for a subtype.
func TaxRate(s Subtype) decimal.Decimal {
	if s == FII {
		return fiiRate
	}
	return stockRate
}

// MonthlySummary is the derived tax situation of one (subtype, month) pair.
// It is recomputed on demand from the ledger, never stored; it becomes
// immutable history once a tax-debit entry reconciles the month.
type MonthlySummary struct {
	Month        Month
	Subtype      Subtype
	GrossSales   Money // Σ sale proceeds of the month
	Cost         Money // Σ acquisition cost of what was sold
	Result       Money // GrossSales − Cost, before loss compensation
	LossConsumed Money // carried-forward loss consumed by this month's gain
	TaxBase      Money // Result − LossConsumed, never negative
	TaxDue       Money // TaxBase × rate, zero when exempt
	Exempt       bool  // true when the monthly gross sales are under the threshold
	State        MonthState
}

// monthlyFlows aggregates a subtype's sales by settlement month, replaying
// the whole ledger once to carry each instrument's weighted-average cost up
// to every sale.
func monthlyFlows(l *Ledger, subtype Subtype) (months []Month, gross, cost map[Month]Money) {
	type holding struct {
		quantity Quantity
		avgCost  Money // per share
	}
	holdings := make(map[string]*holding)
	gross = make(map[Month]Money)
	cost = make(map[Month]Money)

	get := func(name string) *holding {
		h, ok := holdings[name]
		if !ok {
			h = &holding{}
			holdings[name] = h
		}
		return h
	}

	for e := range l.Entries() {
		switch v := e.(type) {
		case Purchase:
			if v.Sleeve != VariableIncome {
				continue
			}
			h := get(v.Instrument)
			total := h.quantity.Add(v.Quantity)
			h.avgCost = h.avgCost.Mul(h.quantity).Add(v.Amount).Div(total)
			h.quantity = total
		case Sale:
			if v.Sleeve != VariableIncome {
				continue
			}
			h := get(v.Instrument)
			soldCost := h.avgCost.Mul(v.Quantity)
			h.quantity = h.quantity.Sub(v.Quantity)
			if v.Subtype != subtype {
				continue
			}
			month := v.Date.MonthOf()
			if _, seen := gross[month]; !seen {
				months = append(months, month)
			}
			gross[month] = gross[month].Add(v.Amount)
			cost[month] = cost[month].Add(soldCost)
		}
	}
	return months, gross, cost
}

// TaxSummary computes the monthly capital-gains summaries of one subtype, in
// chronological order, carrying losses forward across months.
//
// The loss carry starts at zero, never goes negative and never expires. A
// month's exemption is decided on its gross sales total, not on the tax
// base, and does not undo the loss accounting: an exempt gain still consumes
// carried-forward losses.
//
// The computation is a pure fold over the ledger, so re-running it for an
// already reconciled month yields the same figures.
func TaxSummary(l *Ledger, subtype Subtype, today Date) []MonthlySummary {
	months, gross, cost := monthlyFlows(l, subtype)

	var summaries []MonthlySummary
	var lossCarry Money
	for _, month := range months {
		s := MonthlySummary{
			Month:      month,
			Subtype:    subtype,
			GrossSales: gross[month].Round(),
			Cost:       cost[month].Round(),
		}
		s.Result = s.GrossSales.Sub(s.Cost)

		if !s.Result.IsPositive() {
			lossCarry = lossCarry.Add(s.Result.Abs())
		} else {
			s.LossConsumed = lossCarry.Min(s.Result)
			lossCarry = lossCarry.Sub(s.LossConsumed)
			s.TaxBase = s.Result.Sub(s.LossConsumed)
		}

		if threshold, ok := ExemptionThreshold(subtype); ok && s.GrossSales.LessThan(threshold) {
			s.Exempt = true
		}
		if !s.Exempt {
			s.TaxDue = s.TaxBase.MulRate(TaxRate(subtype)).Round()
		}

		if _, reconciled := l.TaxDebitFor(subtype, month); reconciled {
			s.State = MonthReconciled
		} else if month.ClosedBy(today) {
			s.State = MonthClosed
		} else {
			s.State = MonthOpen
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// TaxSummaryFor returns the summary of a single (subtype, month) pair.
func TaxSummaryFor(l *Ledger, subtype Subtype, month Month, today Date) (MonthlySummary, bool) {
	for _, s := range TaxSummary(l, subtype, today) {
		if s.Month == month {
			return s, true
		}
	}
	return MonthlySummary{}, false
}

// ReconcileTax confirms a closed month's summary by appending the tax-debit
// entry settling it, which also debits the variable-income sleeve.
//
// Reconciling an already reconciled month is a no-op success, so the
// operation is idempotent. Reconciling a month still open fails with
// ErrInvalidMonth; the ledger is left unchanged on any failure.
func ReconcileTax(l *Ledger, subtype Subtype, month Month, today Date) error {
	if _, ok := l.TaxDebitFor(subtype, month); ok {
		return nil
	}
	summary, ok := TaxSummaryFor(l, subtype, month, today)
	if !ok {
		return fmt.Errorf("no %s sales in %s, nothing to reconcile", subtype, month)
	}
	if summary.State == MonthOpen {
		return fmt.Errorf("cannot reconcile %s %s: %w", subtype, month, ErrInvalidMonth)
	}
	memo := fmt.Sprintf("capital-gains tax %s %s", subtype, month)
	return l.Record(NewTaxDebit(today, memo, subtype, month, summary.TaxDue))
}
