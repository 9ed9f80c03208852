package carteira

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccrue_PreFixedScenario(t *testing.T) {
	// Principal 1000 at 12% a.a. pre-fixed over 21 business days:
	// daily rate = 0.12/252, value = 1000 × (1+0.12/252)^21 ≈ 1010.05.
	regime := NewPreFixed(d(0.12))
	daily, err := regime.DailyRate(fakeOracle{})
	if err != nil {
		t.Fatalf("DailyRate() error = %v", err)
	}

	got := Accrue(M(1000), daily, 21).Round()
	want := M(1010.05)
	if !got.Equal(want) {
		t.Errorf("Accrue(1000, 12%% a.a., 21) = %v, want %v", got, want)
	}
}

func TestAccrue_IdentityForNonPositivePeriods(t *testing.T) {
	daily, _ := NewPreFixed(d(0.25)).DailyRate(fakeOracle{})
	principal := M(5432.10)
	for _, periods := range []int{0, -1, -252} {
		if got := Accrue(principal, daily, periods); !got.Equal(principal) {
			t.Errorf("Accrue(t=%d) = %v, want unchanged %v", periods, got, principal)
		}
	}
}

func TestAccrue_MonotonicForNonNegativeRates(t *testing.T) {
	daily, _ := NewPreFixed(d(0.10)).DailyRate(fakeOracle{})
	previous := M(1000)
	for periods := 1; periods <= 504; periods++ {
		value := Accrue(M(1000), daily, periods)
		if value.LessThan(previous) {
			t.Fatalf("accrual decreased at t=%d: %v < %v", periods, value, previous)
		}
		previous = value
	}
}

func TestDailyRate_PostFixed(t *testing.T) {
	oracle := fakeOracle{rates: map[RateName]decimal.Decimal{CDI: d(10.0)}}

	regime, err := NewPostFixed(CDI, d(110))
	if err != nil {
		t.Fatalf("NewPostFixed() error = %v", err)
	}
	daily, err := regime.DailyRate(oracle)
	if err != nil {
		t.Fatalf("DailyRate() error = %v", err)
	}

	// 10% a.a. at 110% of CDI: daily = (0.10/252) × 1.10
	want := d(0.10).Div(decimal.NewFromInt(252)).Mul(d(1.10))
	if !daily.Equal(want) {
		t.Errorf("DailyRate() = %s, want %s", daily, want)
	}
}

func TestDailyRate_HybridSumsComponentsBeforeCompounding(t *testing.T) {
	oracle := fakeOracle{rates: map[RateName]decimal.Decimal{IPCA: d(5.04)}}

	regime, err := NewHybrid(d(0.06), "", decimal.Zero, true)
	if err != nil {
		t.Fatalf("NewHybrid() error = %v", err)
	}
	daily, err := regime.DailyRate(oracle)
	if err != nil {
		t.Fatalf("DailyRate() error = %v", err)
	}

	// IPCA + 6% a.a.: both components converted to daily and summed, so the
	// period is compounded once.
	want := d(0.06).Div(decimal.NewFromInt(252)).Add(d(0.0504).Div(decimal.NewFromInt(252)))
	if !daily.Equal(want) {
		t.Errorf("DailyRate() = %s, want %s", daily, want)
	}
}

func TestDailyRate_FailsClosedWithoutRate(t *testing.T) {
	regime, _ := NewPostFixed(SELIC, d(100))
	if _, err := regime.DailyRate(fakeOracle{}); !errors.Is(err, ErrPriceUnavailable) {
		t.Errorf("DailyRate() without a published rate: error = %v, want ErrPriceUnavailable", err)
	}
}

func TestNewHybrid_RejectsEmptyIndexedComponent(t *testing.T) {
	if _, err := NewHybrid(d(0.06), "", decimal.Zero, false); err == nil {
		t.Error("NewHybrid() with no indexed component should be rejected")
	}
}

func TestRegressiveRate(t *testing.T) {
	testCases := []struct {
		days int
		want decimal.Decimal
	}{
		{30, d(0.225)},
		{180, d(0.225)},
		{181, d(0.20)},
		{360, d(0.20)},
		{361, d(0.175)},
		{720, d(0.175)},
		{721, d(0.15)},
		{3000, d(0.15)},
	}
	for _, tc := range testCases {
		if got := RegressiveRate(tc.days); !got.Equal(tc.want) {
			t.Errorf("RegressiveRate(%d) = %s, want %s", tc.days, got, tc.want)
		}
	}
}
