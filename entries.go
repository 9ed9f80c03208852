package carteira

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind is a typed string for identifying ledger entry kinds.
type Kind string

// Entry kinds recorded in the ledger.
const (
	KindDeposit  Kind = "deposit"
	KindPurchase Kind = "buy"
	KindSale     Kind = "sell"
	KindDividend Kind = "dividend"
	KindTransfer Kind = "transfer"
	KindTaxDebit Kind = "tax-debit"
)

// Entry defines the common interface for all monetary events recorded in the
// ledger. Entries are immutable once appended; a correction is itself a new
// entry.
type Entry interface {
	What() Kind // What returns the kind of the entry (e.g. "buy", "sell").
	When() Date // When returns the date on which the event occurred.
	Equal(Entry) bool
	Validate(l *Ledger) (Entry, error)
}

type baseEntry struct {
	Kind Kind   `json:"kind"`           // Kind specifies the type of entry (e.g. "buy", "sell").
	Date Date   `json:"date"`           // Date is the date when the event took place.
	Memo string `json:"memo,omitempty"` // Memo provides an optional note for the entry.
}

// What returns the kind of the entry.
func (e baseEntry) What() Kind { return e.Kind }

// When returns the date of the entry.
func (e baseEntry) When() Date { return e.Date }

// MarshalJSON implements the json.Marshaler interface for baseEntry.
func (e baseEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", e.Kind)
	w.Append("date", e.Date)
	w.Optional("memo", e.Memo)
	return w.MarshalJSON()
}

// Validate applies the quick fixes shared by all entries. It sets the date to
// today when it is zero. It is meant to be embedded in the entry-specific
// validation methods.
func (e *baseEntry) Validate() {
	if e.Date == (Date{}) {
		e.Date = Today()
	}
}

// instrEntry is a component for instrument-based entries (buy, sell, dividend).
type instrEntry struct {
	baseEntry
	Instrument string `json:"instrument"` // Instrument is the name or ticker of the instrument.
}

// Validate checks the instrument entry fields.
func (e *instrEntry) Validate() error {
	e.baseEntry.Validate()
	if e.Instrument == "" {
		return errors.New("instrument name is missing")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for instrEntry.
func (e instrEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEntry)
	w.Append("instrument", e.Instrument)
	return w.MarshalJSON()
}

// --- Deposit ---

// Deposit represents cash entering one of the two sleeves.
type Deposit struct {
	baseEntry
	Amount Money  // Amount is the cash deposited.
	Sleeve Sleeve // Sleeve is the cash bucket receiving the deposit.
}

// NewDeposit creates a new Deposit entry.
func NewDeposit(day Date, memo string, sleeve Sleeve, amount Money) Deposit {
	return Deposit{
		baseEntry: baseEntry{Kind: KindDeposit, Date: day, Memo: memo},
		Amount:    amount,
		Sleeve:    sleeve,
	}
}

// MarshalJSON implements the json.Marshaler interface for Deposit.
func (e Deposit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEntry)
	w.Append("sleeve", e.Sleeve)
	w.Append("amount", e.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Deposit.
func (e *Deposit) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseEntry
		Sleeve Sleeve `json:"sleeve"`
		Amount Money  `json:"amount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	e.baseEntry = temp.baseEntry
	e.Sleeve = temp.Sleeve
	e.Amount = temp.Amount
	return nil
}

func (e Deposit) Equal(other Entry) bool {
	o, ok := other.(Deposit)
	return ok && e.baseEntry == o.baseEntry && e.Amount.Equal(o.Amount) && e.Sleeve == o.Sleeve
}

// Validate checks the Deposit entry's fields. The amount must be positive and
// the sleeve must be one of the two known buckets.
func (e Deposit) Validate(l *Ledger) (Entry, error) {
	e.baseEntry.Validate()
	if !e.Amount.IsPositive() {
		return e, fmt.Errorf("deposit amount must be positive, got %v", e.Amount)
	}
	if _, err := ParseSleeve(string(e.Sleeve)); err != nil {
		return e, err
	}
	return e, nil
}

// --- Purchase ---

// Purchase represents the acquisition of an instrument, booked against a
// sleeve's available cash.
//
// For variable-income purchases Quantity and Subtype are set; fixed-income
// purchases carry only the invested amount, the position's rate regime lives
// with the position itself.
type Purchase struct {
	instrEntry
	Sleeve   Sleeve   // Sleeve is the cash bucket the purchase is booked against.
	Subtype  Subtype  // Subtype classifies a variable-income instrument for tax purposes.
	Quantity Quantity // Quantity is the number of shares bought (variable income only).
	Amount   Money    // Amount is the total cost of the purchase.
}

// NewPurchase creates a new fixed-income Purchase entry.
func NewPurchase(day Date, memo, instrument string, amount Money) Purchase {
	return Purchase{
		instrEntry: instrEntry{baseEntry: baseEntry{Kind: KindPurchase, Date: day, Memo: memo}, Instrument: instrument},
		Sleeve:     FixedIncome,
		Amount:     amount,
	}
}

// NewVariablePurchase creates a new variable-income Purchase entry.
func NewVariablePurchase(day Date, memo, instrument string, subtype Subtype, quantity Quantity, amount Money) Purchase {
	return Purchase{
		instrEntry: instrEntry{baseEntry: baseEntry{Kind: KindPurchase, Date: day, Memo: memo}, Instrument: instrument},
		Sleeve:     VariableIncome,
		Subtype:    subtype,
		Quantity:   quantity,
		Amount:     amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Purchase.
func (e Purchase) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.instrEntry)
	w.Append("sleeve", e.Sleeve)
	w.Optional("subtype", e.Subtype)
	if !e.Quantity.IsZero() {
		w.Append("quantity", e.Quantity)
	}
	w.Append("amount", e.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Purchase.
func (e *Purchase) UnmarshalJSON(data []byte) error {
	var temp struct {
		instrEntry
		Sleeve   Sleeve   `json:"sleeve"`
		Subtype  Subtype  `json:"subtype,omitempty"`
		Quantity Quantity `json:"quantity"`
		Amount   Money    `json:"amount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	e.instrEntry = temp.instrEntry
	e.Sleeve = temp.Sleeve
	e.Subtype = temp.Subtype
	e.Quantity = temp.Quantity
	e.Amount = temp.Amount
	return nil
}

func (e Purchase) Equal(other Entry) bool {
	o, ok := other.(Purchase)
	return ok && e.instrEntry == o.instrEntry && e.Sleeve == o.Sleeve &&
		e.Subtype == o.Subtype && e.Quantity.Equal(o.Quantity) && e.Amount.Equal(o.Amount)
}

// Validate checks the Purchase entry's fields. The amount must be positive,
// variable-income purchases need a positive quantity and a known subtype, and
// the sleeve must hold enough cash on the purchase date.
func (e Purchase) Validate(l *Ledger) (Entry, error) {
	if err := e.instrEntry.Validate(); err != nil {
		return e, err
	}
	if !e.Amount.IsPositive() {
		return e, fmt.Errorf("purchase amount must be positive, got %v", e.Amount)
	}
	if _, err := ParseSleeve(string(e.Sleeve)); err != nil {
		return e, err
	}
	if e.Sleeve == VariableIncome {
		if !e.Quantity.IsPositive() {
			return e, fmt.Errorf("purchase quantity must be positive, got %s", e.Quantity)
		}
		if _, err := ParseSubtype(string(e.Subtype)); err != nil {
			return e, err
		}
	}
	cash := l.AvailableBalanceAsOf(e.Sleeve, e.Date)
	if cash.LessThan(e.Amount) {
		return e, fmt.Errorf("on %s, cannot buy for %s: %s sleeve balance is %s", e.Date, e.Amount, e.Sleeve, cash)
	}
	return e, nil
}

// --- Sale ---

// Sale represents the disposal of an instrument.
//
// For a variable-income sale, Amount holds the raw proceeds; the capital-gains
// tax is settled later through a TaxDebit entry. For a fixed-income
// redemption, Amount holds the net post-tax value credited to the sleeve,
// next to the gross value, the tax withheld at source and the holding-period
// length in calendar days.
type Sale struct {
	instrEntry
	Sleeve      Sleeve   // Sleeve is the cash bucket credited with the proceeds.
	Subtype     Subtype  // Subtype classifies a variable-income instrument for tax purposes.
	Quantity    Quantity // Quantity is the number of shares sold (variable income only).
	Amount      Money    // Amount is the value credited to the sleeve (net for fixed income).
	Gross       Money    // Gross is the pre-tax redemption value (fixed income only).
	TaxWithheld Money    // TaxWithheld is the tax retained at source (fixed income only).
	HoldingDays int      // HoldingDays is the holding period in calendar days (fixed income only).
}

// NewSale creates a new variable-income Sale entry.
func NewSale(day Date, memo, instrument string, subtype Subtype, quantity Quantity, proceeds Money) Sale {
	return Sale{
		instrEntry: instrEntry{baseEntry: baseEntry{Kind: KindSale, Date: day, Memo: memo}, Instrument: instrument},
		Sleeve:     VariableIncome,
		Subtype:    subtype,
		Quantity:   quantity,
		Amount:     proceeds,
	}
}

// NewRedemption creates a new fixed-income Sale entry for a whole-position
// redemption.
func NewRedemption(day Date, memo, instrument string, gross, net, tax Money, holdingDays int) Sale {
	return Sale{
		instrEntry:  instrEntry{baseEntry: baseEntry{Kind: KindSale, Date: day, Memo: memo}, Instrument: instrument},
		Sleeve:      FixedIncome,
		Amount:      net,
		Gross:       gross,
		TaxWithheld: tax,
		HoldingDays: holdingDays,
	}
}

// MarshalJSON implements the json.Marshaler interface for Sale.
func (e Sale) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.instrEntry)
	w.Append("sleeve", e.Sleeve)
	w.Optional("subtype", e.Subtype)
	if !e.Quantity.IsZero() {
		w.Append("quantity", e.Quantity)
	}
	w.Append("amount", e.Amount)
	if !e.Gross.IsZero() {
		w.Append("gross", e.Gross)
	}
	if !e.TaxWithheld.IsZero() {
		w.Append("taxWithheld", e.TaxWithheld)
	}
	w.Optional("holdingDays", e.HoldingDays)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Sale.
func (e *Sale) UnmarshalJSON(data []byte) error {
	var temp struct {
		instrEntry
		Sleeve      Sleeve   `json:"sleeve"`
		Subtype     Subtype  `json:"subtype,omitempty"`
		Quantity    Quantity `json:"quantity"`
		Amount      Money    `json:"amount"`
		Gross       Money    `json:"gross"`
		TaxWithheld Money    `json:"taxWithheld"`
		HoldingDays int      `json:"holdingDays,omitempty"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	e.instrEntry = temp.instrEntry
	e.Sleeve = temp.Sleeve
	e.Subtype = temp.Subtype
	e.Quantity = temp.Quantity
	e.Amount = temp.Amount
	e.Gross = temp.Gross
	e.TaxWithheld = temp.TaxWithheld
	e.HoldingDays = temp.HoldingDays
	return nil
}

func (e Sale) Equal(other Entry) bool {
	o, ok := other.(Sale)
	return ok && e.instrEntry == o.instrEntry && e.Sleeve == o.Sleeve &&
		e.Subtype == o.Subtype && e.Quantity.Equal(o.Quantity) &&
		e.Amount.Equal(o.Amount) && e.Gross.Equal(o.Gross) &&
		e.TaxWithheld.Equal(o.TaxWithheld) && e.HoldingDays == o.HoldingDays
}

// Validate checks the Sale entry's fields. A variable-income sale must not
// exceed the position held on the sale date (ErrInsufficientQuantity); a
// fixed-income redemption must be whole-position, so a quantity there is
// rejected with ErrUnsupportedOperation.
func (e Sale) Validate(l *Ledger) (Entry, error) {
	if err := e.instrEntry.Validate(); err != nil {
		return e, err
	}
	if !e.Amount.IsPositive() {
		return e, fmt.Errorf("sale amount must be positive, got %v", e.Amount)
	}
	switch e.Sleeve {
	case VariableIncome:
		if _, err := ParseSubtype(string(e.Subtype)); err != nil {
			return e, err
		}
		if !e.Quantity.IsPositive() {
			return e, fmt.Errorf("sale quantity must be positive, got %s", e.Quantity)
		}
		held := l.PositionsAsOf(e.Date)[e.Instrument]
		if held.LessThan(e.Quantity) {
			return e, fmt.Errorf("on %s, cannot sell %s of %s, position is only %s: %w",
				e.Date, e.Quantity, e.Instrument, held, ErrInsufficientQuantity)
		}
	case FixedIncome:
		if !e.Quantity.IsZero() {
			return e, fmt.Errorf("fixed-income redemption is whole-position only: %w", ErrUnsupportedOperation)
		}
		if e.Gross.LessThan(e.Amount) {
			return e, fmt.Errorf("redemption gross %v is smaller than net %v", e.Gross, e.Amount)
		}
	default:
		return e, fmt.Errorf("unknown sleeve: %q", e.Sleeve)
	}
	return e, nil
}

// --- Dividend ---

// Dividend represents a dividend credit for an instrument, apportioned to the
// calendar month it pays for. Dividends are always credited to the
// variable-income sleeve.
type Dividend struct {
	instrEntry
	PaysFor Month // PaysFor is the calendar month the dividend pays for.
	Amount  Money // Amount is the total dividend credited.
}

// NewDividend creates a new Dividend entry.
func NewDividend(day Date, memo, instrument string, paysFor Month, amount Money) Dividend {
	return Dividend{
		instrEntry: instrEntry{baseEntry: baseEntry{Kind: KindDividend, Date: day, Memo: memo}, Instrument: instrument},
		PaysFor:    paysFor,
		Amount:     amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Dividend.
func (e Dividend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.instrEntry)
	w.Append("paysFor", e.PaysFor)
	w.Append("amount", e.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Dividend.
func (e *Dividend) UnmarshalJSON(data []byte) error {
	var temp struct {
		instrEntry
		PaysFor Month `json:"paysFor"`
		Amount  Money `json:"amount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	e.instrEntry = temp.instrEntry
	e.PaysFor = temp.PaysFor
	e.Amount = temp.Amount
	return nil
}

func (e Dividend) Equal(other Entry) bool {
	o, ok := other.(Dividend)
	return ok && e.instrEntry == o.instrEntry && e.PaysFor == o.PaysFor && e.Amount.Equal(o.Amount)
}

// Validate checks the Dividend entry's fields. The month paid for must be
// closed, and one instrument takes at most one dividend per month.
func (e Dividend) Validate(l *Ledger) (Entry, error) {
	if err := e.instrEntry.Validate(); err != nil {
		return e, err
	}
	if !e.Amount.IsPositive() {
		return e, fmt.Errorf("dividend amount must be positive, got %v", e.Amount)
	}
	if e.PaysFor.IsZero() {
		return e, errors.New("dividend month is missing")
	}
	if !e.PaysFor.ClosedBy(e.Date) {
		return e, fmt.Errorf("dividend for %s recorded on %s: %w", e.PaysFor, e.Date, ErrInvalidMonth)
	}
	if l.HasDividend(e.Instrument, e.PaysFor) {
		return e, fmt.Errorf("dividend for %s %s already recorded", e.Instrument, e.PaysFor)
	}
	return e, nil
}

// --- Transfer ---

// Transfer represents cash moving between the two sleeves.
type Transfer struct {
	baseEntry
	From   Sleeve // From is the source sleeve.
	To     Sleeve // To is the destination sleeve.
	Amount Money  // Amount is the cash transferred.
}

// NewTransfer creates a new Transfer entry.
func NewTransfer(day Date, memo string, from, to Sleeve, amount Money) Transfer {
	return Transfer{
		baseEntry: baseEntry{Kind: KindTransfer, Date: day, Memo: memo},
		From:      from,
		To:        to,
		Amount:    amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Transfer.
func (e Transfer) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEntry)
	w.Append("from", e.From)
	w.Append("to", e.To)
	w.Append("amount", e.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transfer.
func (e *Transfer) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseEntry
		From   Sleeve `json:"from"`
		To     Sleeve `json:"to"`
		Amount Money  `json:"amount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	e.baseEntry = temp.baseEntry
	e.From = temp.From
	e.To = temp.To
	e.Amount = temp.Amount
	return nil
}

func (e Transfer) Equal(other Entry) bool {
	o, ok := other.(Transfer)
	return ok && e.baseEntry == o.baseEntry && e.From == o.From && e.To == o.To && e.Amount.Equal(o.Amount)
}

// Validate checks the Transfer entry's fields. Source and destination must
// differ and the source sleeve must hold enough cash on the transfer date.
func (e Transfer) Validate(l *Ledger) (Entry, error) {
	e.baseEntry.Validate()
	if !e.Amount.IsPositive() {
		return e, fmt.Errorf("transfer amount must be positive, got %v", e.Amount)
	}
	if _, err := ParseSleeve(string(e.From)); err != nil {
		return e, err
	}
	if _, err := ParseSleeve(string(e.To)); err != nil {
		return e, err
	}
	if e.From == e.To {
		return e, fmt.Errorf("transfer source and destination are both %q", e.From)
	}
	cash := l.AvailableBalanceAsOf(e.From, e.Date)
	if cash.LessThan(e.Amount) {
		return e, fmt.Errorf("on %s, cannot transfer %s: %s sleeve balance is %s", e.Date, e.Amount, e.From, cash)
	}
	return e, nil
}

// --- TaxDebit ---

// TaxDebit represents the settlement of the capital-gains tax due for one
// (subtype, month) pair. It debits the variable-income sleeve and freezes the
// month's summary into history.
type TaxDebit struct {
	baseEntry
	Subtype Subtype // Subtype is the asset class the debit reconciles.
	ForMonth Month  // ForMonth is the calendar month the debit reconciles.
	Amount  Money   // Amount is the tax due, possibly zero for exempt months.
}

// NewTaxDebit creates a new TaxDebit entry.
func NewTaxDebit(day Date, memo string, subtype Subtype, forMonth Month, amount Money) TaxDebit {
	return TaxDebit{
		baseEntry: baseEntry{Kind: KindTaxDebit, Date: day, Memo: memo},
		Subtype:   subtype,
		ForMonth:  forMonth,
		Amount:    amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for TaxDebit.
func (e TaxDebit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEntry)
	w.Append("subtype", e.Subtype)
	w.Append("forMonth", e.ForMonth)
	w.Append("amount", e.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for TaxDebit.
func (e *TaxDebit) UnmarshalJSON(data []byte) error {
	var temp struct {
		baseEntry
		Subtype  Subtype `json:"subtype"`
		ForMonth Month   `json:"forMonth"`
		Amount   Money   `json:"amount"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	e.baseEntry = temp.baseEntry
	e.Subtype = temp.Subtype
	e.ForMonth = temp.ForMonth
	e.Amount = temp.Amount
	return nil
}

func (e TaxDebit) Equal(other Entry) bool {
	o, ok := other.(TaxDebit)
	return ok && e.baseEntry == o.baseEntry && e.Subtype == o.Subtype &&
		e.ForMonth == o.ForMonth && e.Amount.Equal(o.Amount)
}

// Validate checks the TaxDebit entry's fields. The reconciled month must be
// closed; the amount may be zero (exempt month) but never negative.
func (e TaxDebit) Validate(l *Ledger) (Entry, error) {
	e.baseEntry.Validate()
	if _, err := ParseSubtype(string(e.Subtype)); err != nil {
		return e, err
	}
	if e.ForMonth.IsZero() {
		return e, errors.New("tax-debit month is missing")
	}
	if e.Amount.IsNegative() {
		return e, fmt.Errorf("tax-debit amount must not be negative, got %v", e.Amount)
	}
	if !e.ForMonth.ClosedBy(e.Date) {
		return e, fmt.Errorf("tax-debit for %s recorded on %s: %w", e.ForMonth, e.Date, ErrInvalidMonth)
	}
	return e, nil
}
