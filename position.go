package carteira

import (
	"fmt"
)

// Lot represents a single purchase of an instrument, retained for
// traceability of the weighted-average cost.
type Lot struct {
	Date     Date     `json:"date"`
	Quantity Quantity `json:"quantity"`
	Amount   Money    `json:"amount"` // Total cost of the lot.
}

// FixedFacet carries the fixed-income side of a position: its rate regime.
type FixedFacet struct {
	Regime Regime `json:"regime"`
}

// VariableFacet carries the variable-income side of a position: tax subtype,
// held quantity, weighted-average cost and the purchase lots.
type VariableFacet struct {
	Subtype  Subtype  `json:"subtype"`
	Quantity Quantity `json:"quantity"`
	AvgCost  Money    `json:"avgCost"` // weighted-average cost per share
	Lots     []Lot    `json:"lots,omitempty"`
}

// Position is one held instrument: its identity, invested principal, current
// value, a day-indexed value history used for charting, and exactly one of
// the two facets.
//
// Positions are views recomputed from the ledger plus live oracle data; the
// ledger stays the system of record.
type Position struct {
	Name       string         `json:"name"`
	AcquiredOn Date           `json:"acquiredOn"`
	Invested   Money          `json:"invested"`
	Current    Money          `json:"current"`
	History    map[Date]Money `json:"history,omitempty"`
	Fixed      *FixedFacet    `json:"fixed,omitempty"`
	Variable   *VariableFacet `json:"variable,omitempty"`
}

// NewFixedPosition creates a fixed-income position with an invested principal
// and a rate regime.
func NewFixedPosition(name string, day Date, principal Money, regime Regime) *Position {
	return &Position{
		Name:       name,
		AcquiredOn: day,
		Invested:   principal,
		Current:    principal,
		Fixed:      &FixedFacet{Regime: regime},
	}
}

// NewVariablePosition creates a variable-income position from its first
// purchase lot.
func NewVariablePosition(name string, day Date, subtype Subtype, quantity Quantity, amount Money) *Position {
	return &Position{
		Name:       name,
		AcquiredOn: day,
		Invested:   amount,
		Current:    amount,
		Variable: &VariableFacet{
			Subtype:  subtype,
			Quantity: quantity,
			AvgCost:  amount.Div(quantity),
			Lots:     []Lot{{Date: day, Quantity: quantity, Amount: amount}},
		},
	}
}

// IsFixed reports whether this is a fixed-income position.
func (p *Position) IsFixed() bool { return p.Fixed != nil }

// Merge folds a repeat purchase of the same instrument into the position:
// the weighted-average cost becomes
// (oldQty×oldAvg + newQty×newUnit) / (oldQty+newQty), the lot is appended for
// traceability, and the current value is marked at the latest unit cost until
// the next revaluation pass supersedes it.
func (p *Position) Merge(day Date, quantity Quantity, amount Money) error {
	if p.Variable == nil {
		return fmt.Errorf("cannot merge a purchase into fixed position %q: %w", p.Name, ErrUnsupportedOperation)
	}
	if !quantity.IsPositive() || !amount.IsPositive() {
		return fmt.Errorf("merge needs positive quantity and amount, got %s for %v", quantity, amount)
	}
	v := p.Variable
	unit := amount.Div(quantity)
	oldCost := v.AvgCost.Mul(v.Quantity)
	total := v.Quantity.Add(quantity)
	v.AvgCost = oldCost.Add(amount).Div(total)
	v.Quantity = total
	v.Lots = append(v.Lots, Lot{Date: day, Quantity: quantity, Amount: amount})
	p.Invested = p.Invested.Add(amount)
	p.Current = unit.Mul(total)
	return nil
}

// Sell reduces the held quantity. Selling more than the held quantity is
// rejected with ErrInsufficientQuantity and leaves the position unchanged.
// It returns the acquisition cost of the sold shares at the current
// weighted-average cost.
func (p *Position) Sell(quantity Quantity) (cost Money, err error) {
	if p.Variable == nil {
		return Money{}, fmt.Errorf("fixed position %q is redeemed whole, not sold: %w", p.Name, ErrUnsupportedOperation)
	}
	v := p.Variable
	if v.Quantity.LessThan(quantity) {
		return Money{}, fmt.Errorf("cannot sell %s of %q, position is only %s: %w",
			quantity, p.Name, v.Quantity, ErrInsufficientQuantity)
	}
	cost = v.AvgCost.Mul(quantity)
	v.Quantity = v.Quantity.Sub(quantity)
	p.Invested = p.Invested.Sub(cost)
	p.Current = p.Current.Sub(v.AvgCost.Mul(quantity))
	return cost, nil
}

// mark records the current value in the day-indexed history.
func (p *Position) mark(on Date) {
	if p.History == nil {
		p.History = make(map[Date]Money)
	}
	p.History[on] = p.Current.Round()
}

// Revalue recomputes the position's current value as of a date.
//
// A variable position is marked at quantity × latest unit price; a fixed
// position is the principal compounded across the business days elapsed
// since acquisition. When the oracle cannot supply a price or rate, the
// previous value is retained and the error reported; it is never zeroed.
func (p *Position) Revalue(o Oracle, asOf Date) error {
	if p.IsFixed() {
		daily, err := p.Fixed.Regime.DailyRate(o)
		if err != nil {
			return fmt.Errorf("revalue %q: %w", p.Name, err)
		}
		t := BusinessDaysBetween(p.AcquiredOn, asOf)
		p.Current = Accrue(p.Invested, daily, t)
		p.mark(asOf)
		return nil
	}

	price, err := o.Price(p.Name)
	if err != nil {
		return fmt.Errorf("revalue %q: %w", p.Name, err)
	}
	p.Current = M(price).Mul(p.Variable.Quantity)
	p.mark(asOf)
	return nil
}

// Positions is the set of held instruments of one portfolio.
type Positions []*Position

// Get returns the position with the given name, or nil.
func (ps Positions) Get(name string) *Position {
	for _, p := range ps {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Remove returns the set without the named position.
func (ps Positions) Remove(name string) Positions {
	out := ps[:0]
	for _, p := range ps {
		if p.Name != name {
			out = append(out, p)
		}
	}
	return out
}

// Total sums the current value of all positions, optionally restricted to
// one sleeve.
func (ps Positions) Total() Money {
	var total Money
	for _, p := range ps {
		total = total.Add(p.Current)
	}
	return total.Round()
}
