package carteira

import (
	"github.com/shopspring/decimal"
)

// fakeOracle is a deterministic Oracle for tests. Missing symbols and rates
// fail with ErrPriceUnavailable like the live adapters.
type fakeOracle struct {
	prices map[string]decimal.Decimal
	rates  map[RateName]decimal.Decimal
}

func (f fakeOracle) Price(symbol string) (decimal.Decimal, error) {
	if v, ok := f.prices[symbol]; ok {
		return v, nil
	}
	return decimal.Zero, ErrPriceUnavailable
}

func (f fakeOracle) Rate(name RateName) (decimal.Decimal, error) {
	if v, ok := f.rates[name]; ok {
		return v, nil
	}
	return decimal.Zero, ErrPriceUnavailable
}

func d(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }
