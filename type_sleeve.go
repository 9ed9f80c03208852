package carteira

import "fmt"

// Sleeve is one of the two top-level cash buckets that deposits, purchases
// and transfers target.
type Sleeve string

const (
	// FixedIncome is the fixed-income sleeve (CDB, Tesouro, LCI/LCA...).
	FixedIncome Sleeve = "fixed"
	// VariableIncome is the variable-income sleeve (stocks, FIIs, crypto).
	VariableIncome Sleeve = "variable"
)

// ParseSleeve parses a string into a Sleeve.
func ParseSleeve(s string) (Sleeve, error) {
	switch Sleeve(s) {
	case FixedIncome, VariableIncome:
		return Sleeve(s), nil
	default:
		return "", fmt.Errorf("unknown sleeve: %q", s)
	}
}

// Subtype classifies a variable-income instrument for tax purposes. The
// monthly aggregation, the exemption threshold and the tax rate are all
// keyed by subtype.
type Subtype string

const (
	// Stock is a listed equity share.
	Stock Subtype = "stock"
	// FII is a real-estate fund share (fundo imobiliário).
	FII Subtype = "fii"
	// Crypto is a crypto-asset.
	Crypto Subtype = "crypto"
)

// Subtypes lists all variable-income subtypes in a stable order.
func Subtypes() []Subtype { return []Subtype{Stock, FII, Crypto} }

// ParseSubtype parses a string into a Subtype.
func ParseSubtype(s string) (Subtype, error) {
	switch Subtype(s) {
	case Stock, FII, Crypto:
		return Subtype(s), nil
	default:
		return "", fmt.Errorf("unknown subtype: %q", s)
	}
}
