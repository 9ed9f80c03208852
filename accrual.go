package carteira

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// businessDaysPerYear is the Brazilian day-count convention for converting
// annual rates to daily rates.
const businessDaysPerYear = 252

// RegimeKind selects one of the three fixed-income rate regimes.
type RegimeKind string

const (
	// PreFixed accrues a contractual annual rate.
	PreFixed RegimeKind = "pre"
	// PostFixed accrues a percentage of a floating index (CDI or SELIC).
	PostFixed RegimeKind = "post"
	// Hybrid accrues a pre-fixed rate plus an indexed component.
	Hybrid RegimeKind = "hybrid"
)

// Regime is the tagged union of fixed-income rate regimes. Only the
// parameters relevant to the regime are populated; the constructors are the
// only way to build a valid combination.
type Regime struct {
	Kind    RegimeKind      `json:"kind"`
	Annual  decimal.Decimal `json:"annual,omitempty"`  // annual pre-fixed rate as a fraction, e.g. 0.12
	Index   RateName        `json:"index,omitempty"`   // CDI or SELIC for the indexed component
	Percent decimal.Decimal `json:"percent,omitempty"` // percentage of the index, e.g. 110
	IPCA    bool            `json:"ipca,omitempty"`    // true when the hybrid regime carries the IPCA component
}

// NewPreFixed returns the regime for a contractual annual rate (a fraction,
// e.g. 0.12 for 12% a.a.).
func NewPreFixed(annual decimal.Decimal) Regime {
	return Regime{Kind: PreFixed, Annual: annual}
}

// NewPostFixed returns the regime for a percentage of CDI or SELIC
// (e.g. 110 for 110% of CDI). Exactly one index is meaningful.
func NewPostFixed(index RateName, percent decimal.Decimal) (Regime, error) {
	if index != CDI && index != SELIC {
		return Regime{}, fmt.Errorf("post-fixed index must be CDI or SELIC, got %q", index)
	}
	return Regime{Kind: PostFixed, Index: index, Percent: percent}, nil
}

// NewHybrid returns the regime summing a pre-fixed annual rate with an
// indexed component: either a percentage of CDI/SELIC, the IPCA, or both.
func NewHybrid(annual decimal.Decimal, index RateName, percent decimal.Decimal, withIPCA bool) (Regime, error) {
	if index != "" && index != CDI && index != SELIC {
		return Regime{}, fmt.Errorf("hybrid index must be CDI or SELIC, got %q", index)
	}
	if index == "" && !withIPCA {
		return Regime{}, fmt.Errorf("hybrid regime needs an indexed component")
	}
	return Regime{Kind: Hybrid, Annual: annual, Index: index, Percent: percent, IPCA: withIPCA}, nil
}

var hundred = decimal.NewFromInt(100)
var daysPerYear = decimal.NewFromInt(businessDaysPerYear)

// annualToDaily converts an annual rate (as a fraction) to a daily rate under
// the 252-business-day convention.
func annualToDaily(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(daysPerYear)
}

// indexedDaily derives the daily rate of the indexed component: the index's
// daily rate scaled by the contractual percentage. The oracle publishes the
// index as an annual rate in percent.
func indexedDaily(o Oracle, index RateName, percent decimal.Decimal) (decimal.Decimal, error) {
	annual, err := o.Rate(index)
	if err != nil {
		return decimal.Zero, fmt.Errorf("no current %s rate: %w", index, err)
	}
	return annualToDaily(annual.Div(hundred)).Mul(percent.Div(hundred)), nil
}

// DailyRate resolves the regime's daily accrual rate. The hybrid regime sums
// the pre-fixed daily rate and the indexed daily rate(s) so that the period
// is compounded once, not once per component.
//
// When an indexed parameter is present but the oracle has no current rate,
// the resolution fails closed: the caller retains the previous value rather
// than accruing on a stale or zero rate.
func (r Regime) DailyRate(o Oracle) (decimal.Decimal, error) {
	switch r.Kind {
	case PreFixed:
		return annualToDaily(r.Annual), nil
	case PostFixed:
		return indexedDaily(o, r.Index, r.Percent)
	case Hybrid:
		daily := annualToDaily(r.Annual)
		if r.Index != "" {
			indexed, err := indexedDaily(o, r.Index, r.Percent)
			if err != nil {
				return decimal.Zero, err
			}
			daily = daily.Add(indexed)
		}
		if r.IPCA {
			ipca, err := o.Rate(IPCA)
			if err != nil {
				return decimal.Zero, fmt.Errorf("no current IPCA: %w", err)
			}
			daily = daily.Add(annualToDaily(ipca.Div(hundred)))
		}
		return daily, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown rate regime: %q", r.Kind)
	}
}

// RegressiveRate returns the income-tax rate withheld at source on a
// fixed-income redemption, by holding period in calendar days. The rate
// regresses from 22.5% under six months down to 15% beyond two years.
func RegressiveRate(days int) decimal.Decimal {
	switch {
	case days <= 180:
		return decimal.NewFromFloat(0.225)
	case days <= 360:
		return decimal.NewFromFloat(0.20)
	case days <= 720:
		return decimal.NewFromFloat(0.175)
	default:
		return decimal.NewFromFloat(0.15)
	}
}

// Accrue compounds a principal across t business days at the given daily
// rate: principal × (1+daily)^t. For t ≤ 0 the principal is returned
// unchanged.
func Accrue(principal Money, daily decimal.Decimal, t int) Money {
	if t <= 0 {
		return principal
	}
	factor := decimal.NewFromInt(1).Add(daily).Pow(decimal.NewFromInt(int64(t)))
	return principal.MulRate(factor)
}
