package carteira

import (
	"fmt"
	"iter"
	"sort"
)

// Ledger is the append-only chronological record of all monetary events for
// one portfolio. It is the sole owner of historical truth: balances,
// positions, tax summaries and pendencies are all pure folds over it.
//
// Entries are never mutated, reordered in place or deleted; a correction is
// performed only by appending a new entry.
type Ledger struct {
	name    string
	entries []Entry // sorted by date
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make([]Entry, 0)}
}

// Name returns the ledger's name, set by the loader.
func (l *Ledger) Name() string { return l.name }

// SetName sets the ledger's name.
func (l *Ledger) SetName(name string) { l.name = name }

// Len returns the number of entries.
func (l *Ledger) Len() int { return len(l.entries) }

// Entries returns an iterator over all entries in chronological order.
func (l *Ledger) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range l.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// stableSort restores chronological order while keeping the relative order of
// same-day entries, so that an intra-day buy-then-sell sequence stays valid.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.entries, func(i, j int) bool {
		return l.entries[i].When().Before(l.entries[j].When())
	})
}

// Append appends entries to this ledger and maintains chronological order.
// It does not validate; see Record for the validating append.
func (l *Ledger) Append(entries ...Entry) {
	l.entries = append(l.entries, entries...)
	l.stableSort()
}

// Validate checks an entry for correctness against the current ledger state
// and applies quick fixes where applicable (e.g. defaulting a zero date to
// today). It returns the validated (and potentially modified) entry or an
// error detailing the validation failure.
func (l *Ledger) Validate(entry Entry) (Entry, error) {
	var err error
	switch v := entry.(type) {
	case Deposit:
		entry, err = v.Validate(l)
	case Purchase:
		entry, err = v.Validate(l)
	case Sale:
		entry, err = v.Validate(l)
	case Dividend:
		entry, err = v.Validate(l)
	case Transfer:
		entry, err = v.Validate(l)
	case TaxDebit:
		entry, err = v.Validate(l)
	default:
		return entry, fmt.Errorf("unsupported entry type for validation: %T", entry)
	}
	if err != nil {
		return entry, fmt.Errorf("invalid %s entry on %v: %w", entry.What(), entry.When(), err)
	}
	return entry, nil
}

// Record validates an entry and appends it. On error the ledger is unchanged.
func (l *Ledger) Record(entry Entry) error {
	validated, err := l.Validate(entry)
	if err != nil {
		return err
	}
	l.Append(validated)
	return nil
}

// AvailableBalance folds the whole ledger into the cash available in a
// sleeve. The fold accumulates in exact decimal arithmetic; only the reported
// balance is rounded to the currency fraction.
func (l *Ledger) AvailableBalance(sleeve Sleeve) Money {
	return l.AvailableBalanceAsOf(sleeve, Date{})
}

// AvailableBalanceAsOf is AvailableBalance restricted to entries up to a
// date, included. The zero date means no restriction.
//
// The fold is commutative per sleeve for a fixed multiset of entries, so the
// balance does not depend on the relative order of same-day entries.
func (l *Ledger) AvailableBalanceAsOf(sleeve Sleeve, on Date) Money {
	var balance Money
	for _, e := range l.entries {
		if !on.IsZero() && e.When().After(on) {
			break
		}
		switch v := e.(type) {
		case Deposit:
			if v.Sleeve == sleeve {
				balance = balance.Add(v.Amount)
			}
		case Purchase:
			if v.Sleeve == sleeve {
				balance = balance.Sub(v.Amount)
			}
		case Sale:
			// fixed-income redemptions credit the net post-tax amount;
			// variable-income sales credit the raw proceeds, tax is debited
			// later as a separate tax-debit entry.
			if v.Sleeve == sleeve {
				balance = balance.Add(v.Amount)
			}
		case Dividend:
			if sleeve == VariableIncome {
				balance = balance.Add(v.Amount)
			}
		case Transfer:
			if v.To == sleeve {
				balance = balance.Add(v.Amount)
			}
			if v.From == sleeve {
				balance = balance.Sub(v.Amount)
			}
		case TaxDebit:
			if sleeve == VariableIncome {
				balance = balance.Sub(v.Amount)
			}
		}
	}
	return balance.Round()
}

// PositionsAsOf replays purchase and sale entries up to a date, included, and
// returns the share quantity held per instrument at that point in time.
func (l *Ledger) PositionsAsOf(on Date) map[string]Quantity {
	held := make(map[string]Quantity)
	for _, e := range l.entries {
		if e.When().After(on) {
			break
		}
		switch v := e.(type) {
		case Purchase:
			if !v.Quantity.IsZero() {
				held[v.Instrument] = held[v.Instrument].Add(v.Quantity)
			}
		case Sale:
			if !v.Quantity.IsZero() {
				held[v.Instrument] = held[v.Instrument].Sub(v.Quantity)
			}
		}
	}
	return held
}

// Sales returns an iterator over the variable-income sale entries of a
// subtype, in chronological order.
func (l *Ledger) Sales(subtype Subtype) iter.Seq[Sale] {
	return func(yield func(Sale) bool) {
		for _, e := range l.entries {
			if s, ok := e.(Sale); ok && s.Subtype == subtype {
				if !yield(s) {
					return
				}
			}
		}
	}
}

// Purchases returns an iterator over the purchase entries of one instrument,
// in chronological order.
func (l *Ledger) Purchases(instrument string) iter.Seq[Purchase] {
	return func(yield func(Purchase) bool) {
		for _, e := range l.entries {
			if p, ok := e.(Purchase); ok && p.Instrument == instrument {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// HasDividend reports whether a dividend entry already records the given
// (instrument, month) pair.
func (l *Ledger) HasDividend(instrument string, month Month) bool {
	for _, e := range l.entries {
		if d, ok := e.(Dividend); ok && d.Instrument == instrument && d.PaysFor == month {
			return true
		}
	}
	return false
}

// TaxDebitFor returns the tax-debit entry reconciling the given
// (subtype, month) pair, if any.
func (l *Ledger) TaxDebitFor(subtype Subtype, month Month) (TaxDebit, bool) {
	for _, e := range l.entries {
		if d, ok := e.(TaxDebit); ok && d.Subtype == subtype && d.ForMonth == month {
			return d, true
		}
	}
	return TaxDebit{}, false
}

// FirstPurchase returns the earliest purchase entry for an instrument, if any.
func (l *Ledger) FirstPurchase(instrument string) (Purchase, bool) {
	for p := range l.Purchases(instrument) {
		return p, true
	}
	return Purchase{}, false
}
