package carteira

import (
	"fmt"
)

// The Record* operations below are the engine's mutation surface. Each one
// validates, appends the ledger entry and updates the derived positions in a
// single step; on error both the ledger and the positions are left unchanged.

// RecordDeposit credits cash to a sleeve.
func (a *Aggregate) RecordDeposit(day Date, memo string, sleeve Sleeve, amount Money) error {
	return a.Ledger.Record(NewDeposit(day, memo, sleeve, amount))
}

// RecordTransfer moves cash between the two sleeves.
func (a *Aggregate) RecordTransfer(day Date, memo string, from, to Sleeve, amount Money) error {
	return a.Ledger.Record(NewTransfer(day, memo, from, to, amount))
}

// RecordFixedPurchase opens a fixed-income position with an invested
// principal and a rate regime, debiting the fixed sleeve.
func (a *Aggregate) RecordFixedPurchase(day Date, memo, name string, amount Money, regime Regime) error {
	if a.Positions.Get(name) != nil {
		return fmt.Errorf("position %q already exists", name)
	}
	if err := a.Ledger.Record(NewPurchase(day, memo, name, amount)); err != nil {
		return err
	}
	a.Positions = append(a.Positions, NewFixedPosition(name, day, amount, regime))
	return nil
}

// RecordVariablePurchase buys shares of a variable-income instrument,
// debiting the variable sleeve. A repeat purchase of a held instrument is
// merged into the position at the new weighted-average cost.
func (a *Aggregate) RecordVariablePurchase(day Date, memo, name string, subtype Subtype, quantity Quantity, amount Money) error {
	existing := a.Positions.Get(name)
	if existing != nil && existing.IsFixed() {
		return fmt.Errorf("position %q is fixed income: %w", name, ErrUnsupportedOperation)
	}
	if existing != nil && existing.Variable.Subtype != subtype {
		return fmt.Errorf("position %q is %s, not %s", name, existing.Variable.Subtype, subtype)
	}
	if err := a.Ledger.Record(NewVariablePurchase(day, memo, name, subtype, quantity, amount)); err != nil {
		return err
	}
	if existing == nil {
		a.Positions = append(a.Positions, NewVariablePosition(name, day, subtype, quantity, amount))
		return nil
	}
	return existing.Merge(day, quantity, amount)
}

// RecordSale sells shares of a variable-income position for the given raw
// proceeds. The capital-gains tax is settled later by ReconcileTax.
func (a *Aggregate) RecordSale(day Date, memo, name string, quantity Quantity, proceeds Money) error {
	p := a.Positions.Get(name)
	if p == nil {
		return fmt.Errorf("unknown position %q", name)
	}
	if p.IsFixed() {
		return fmt.Errorf("fixed position %q is redeemed whole, not sold: %w", name, ErrUnsupportedOperation)
	}
	if err := a.Ledger.Record(NewSale(day, memo, name, p.Variable.Subtype, quantity, proceeds)); err != nil {
		return err
	}
	if _, err := p.Sell(quantity); err != nil {
		// Ledger validation already bounds the quantity; reaching this means
		// ledger and positions have diverged.
		return fmt.Errorf("ledger and positions diverged for %q: %w", name, err)
	}
	return nil
}

// RedeemFixed redeems a fixed-income position whole: the gross value is the
// position's current value, the tax is withheld at source under the
// regressive table, and the net amount is credited to the fixed sleeve.
func (a *Aggregate) RedeemFixed(day Date, memo, name string) error {
	p := a.Positions.Get(name)
	if p == nil {
		return fmt.Errorf("unknown position %q", name)
	}
	if !p.IsFixed() {
		return fmt.Errorf("position %q is not fixed income: %w", name, ErrUnsupportedOperation)
	}

	gross := p.Current
	days := p.AcquiredOn.DaysUntil(day)
	var tax Money
	if gain := gross.Sub(p.Invested); gain.IsPositive() {
		tax = gain.MulRate(RegressiveRate(days)).Round()
	}
	net := gross.Sub(tax)

	if err := a.Ledger.Record(NewRedemption(day, memo, name, gross.Round(), net.Round(), tax, days)); err != nil {
		return err
	}
	a.Positions = a.Positions.Remove(name)
	return nil
}

// RecordDividend settles a dividend pendency for a real-estate fund
// position; see ConfirmPendency.
func (a *Aggregate) RecordDividend(instrument string, month Month, perShare Money, today Date) (Dividend, error) {
	return ConfirmPendency(a.Ledger, instrument, month, perShare, today)
}

// ReconcileTax settles the capital-gains tax of a closed (subtype, month)
// pair; see the package-level ReconcileTax.
func (a *Aggregate) ReconcileTax(subtype Subtype, month Month, today Date) error {
	return ReconcileTax(a.Ledger, subtype, month, today)
}

// Revalue runs the valuation pass over all positions; see the package-level
// Revalue.
func (a *Aggregate) Revalue(o Oracle, asOf Date) error {
	return Revalue(a.Positions, o, asOf)
}
