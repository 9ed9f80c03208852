package carteira

import (
	"fmt"
)

// Pendency is a detected, not-yet-recorded dividend obligation: a closed
// month for which the instrument was held but no dividend entry exists.
type Pendency struct {
	Month        Month
	QuantityHeld Quantity // shares held at the month's last day
}

// DividendPendencies scans one instrument's history for months eligible for,
// but missing, a dividend credit.
//
// Every calendar month from the first purchase to today is considered; a
// month qualifies only once closed, only while no dividend entry records the
// (instrument, month) pair, and only if shares were still held at its last
// day. The current month never qualifies.
func DividendPendencies(l *Ledger, instrument string, today Date) []Pendency {
	first, ok := l.FirstPurchase(instrument)
	if !ok {
		return nil
	}

	var pendencies []Pendency
	for _, month := range MonthsBetween(first.Date.MonthOf(), today.MonthOf()) {
		if !month.ClosedBy(today) {
			continue
		}
		if l.HasDividend(instrument, month) {
			continue
		}
		held := l.PositionsAsOf(month.End())[instrument]
		if !held.IsPositive() {
			continue
		}
		pendencies = append(pendencies, Pendency{Month: month, QuantityHeld: held})
	}
	return pendencies
}

// ConfirmPendency settles a pendency: it multiplies the published per-share
// amount by the quantity held at the month's end and appends the dividend
// entry crediting the variable sleeve. The "only from the 15th of the
// following month" gate is the caller's responsibility.
func ConfirmPendency(l *Ledger, instrument string, month Month, perShare Money, today Date) (Dividend, error) {
	if !perShare.IsPositive() {
		return Dividend{}, fmt.Errorf("dividend per share must be positive, got %v", perShare)
	}
	held := l.PositionsAsOf(month.End())[instrument]
	if !held.IsPositive() {
		return Dividend{}, fmt.Errorf("no %q shares held at end of %s", instrument, month)
	}
	memo := fmt.Sprintf("%s/share × %s", perShare, held)
	dividend := NewDividend(today, memo, instrument, month, perShare.Mul(held))
	if err := l.Record(dividend); err != nil {
		return Dividend{}, err
	}
	return dividend, nil
}
