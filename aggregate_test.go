package carteira

import (
	"errors"
	"testing"
)

func newFundedAggregate(t *testing.T) *Aggregate {
	t.Helper()
	a := NewAggregate()
	if err := a.RecordDeposit(MustParseDate("2025-01-02"), "", VariableIncome, M(100_000)); err != nil {
		t.Fatalf("RecordDeposit() error = %v", err)
	}
	if err := a.RecordDeposit(MustParseDate("2025-01-02"), "", FixedIncome, M(100_000)); err != nil {
		t.Fatalf("RecordDeposit() error = %v", err)
	}
	return a
}

func TestAggregate_PurchaseKeepsLedgerAndPositionsInStep(t *testing.T) {
	a := newFundedAggregate(t)

	if err := a.RecordVariablePurchase(MustParseDate("2025-01-03"), "", "PETR4", Stock, Q(100), M(3000)); err != nil {
		t.Fatalf("RecordVariablePurchase() error = %v", err)
	}
	if err := a.RecordVariablePurchase(MustParseDate("2025-01-20"), "", "PETR4", Stock, Q(50), M(1800)); err != nil {
		t.Fatalf("second RecordVariablePurchase() error = %v", err)
	}

	p := a.Positions.Get("PETR4")
	if p == nil {
		t.Fatal("position PETR4 not created")
	}
	if !p.Variable.Quantity.Equal(Q(150)) {
		t.Errorf("position quantity = %s, want 150", p.Variable.Quantity)
	}
	if held := a.Ledger.PositionsAsOf(Today())["PETR4"]; !held.Equal(p.Variable.Quantity) {
		t.Errorf("ledger holds %s, position holds %s", held, p.Variable.Quantity)
	}
}

func TestAggregate_PurchaseRejectsSubtypeChange(t *testing.T) {
	a := newFundedAggregate(t)
	if err := a.RecordVariablePurchase(MustParseDate("2025-01-03"), "", "HGLG11", FII, Q(10), M(1000)); err != nil {
		t.Fatalf("RecordVariablePurchase() error = %v", err)
	}
	if err := a.RecordVariablePurchase(MustParseDate("2025-01-10"), "", "HGLG11", Stock, Q(10), M(1000)); err == nil {
		t.Error("a repeat purchase must keep the instrument's subtype")
	}
}

func TestAggregate_SaleUpdatesPosition(t *testing.T) {
	a := newFundedAggregate(t)
	if err := a.RecordVariablePurchase(MustParseDate("2025-01-03"), "", "PETR4", Stock, Q(100), M(3000)); err != nil {
		t.Fatalf("RecordVariablePurchase() error = %v", err)
	}
	if err := a.RecordSale(MustParseDate("2025-02-05"), "", "PETR4", Q(40), M(1500)); err != nil {
		t.Fatalf("RecordSale() error = %v", err)
	}

	p := a.Positions.Get("PETR4")
	if !p.Variable.Quantity.Equal(Q(60)) {
		t.Errorf("position quantity = %s, want 60", p.Variable.Quantity)
	}
	if err := a.RecordSale(MustParseDate("2025-02-06"), "", "PETR4", Q(100), M(4000)); !errors.Is(err, ErrInsufficientQuantity) {
		t.Errorf("oversell error = %v, want ErrInsufficientQuantity", err)
	}
}

func TestAggregate_RedeemFixedWithholdsRegressiveTax(t *testing.T) {
	a := newFundedAggregate(t)
	day := MustParseDate("2025-01-03")
	if err := a.RecordFixedPurchase(day, "", "CDB Zeta 2027", M(1000), NewPreFixed(d(0.12))); err != nil {
		t.Fatalf("RecordFixedPurchase() error = %v", err)
	}

	// 21 business days of accrual, then redemption 31 calendar days in:
	// gross ≈ 1010.05, gain ≈ 10.05, withheld at 22.5% ≈ 2.26.
	redemptionDay := MustParseDate("2025-02-03")
	if err := a.Revalue(fakeOracle{}, redemptionDay); err != nil {
		t.Fatalf("Revalue() error = %v", err)
	}
	if err := a.RedeemFixed(redemptionDay, "", "CDB Zeta 2027"); err != nil {
		t.Fatalf("RedeemFixed() error = %v", err)
	}

	if a.Positions.Get("CDB Zeta 2027") != nil {
		t.Error("redeemed position still present")
	}

	var sale Sale
	var found bool
	for e := range a.Ledger.Entries() {
		if s, ok := e.(Sale); ok {
			sale, found = s, true
		}
	}
	if !found {
		t.Fatal("no redemption entry recorded")
	}
	if sale.Sleeve != FixedIncome {
		t.Errorf("redemption sleeve = %s, want fixed", sale.Sleeve)
	}
	if sale.HoldingDays != 31 {
		t.Errorf("HoldingDays = %d, want 31", sale.HoldingDays)
	}
	if !sale.TaxWithheld.Equal(M(2.26)) {
		t.Errorf("TaxWithheld = %v, want %v", sale.TaxWithheld, M(2.26))
	}
	if !sale.Gross.Sub(sale.TaxWithheld).Equal(sale.Amount) {
		t.Errorf("net %v is not gross %v minus tax %v", sale.Amount, sale.Gross, sale.TaxWithheld)
	}

	// The fixed sleeve is credited with the net amount.
	want := M(100_000).Sub(M(1000)).Add(sale.Amount).Round()
	if got := a.Ledger.AvailableBalance(FixedIncome); !got.Equal(want) {
		t.Errorf("AvailableBalance(fixed) = %v, want %v", got, want)
	}
}

func TestAggregate_RedeemFixedAtALossWithholdsNothing(t *testing.T) {
	a := newFundedAggregate(t)
	day := MustParseDate("2025-01-03")
	if err := a.RecordFixedPurchase(day, "", "CDB Zeta 2027", M(1000), NewPreFixed(d(0.12))); err != nil {
		t.Fatalf("RecordFixedPurchase() error = %v", err)
	}
	// Redeemed without any revaluation: current equals the principal.
	if err := a.RedeemFixed(MustParseDate("2025-01-10"), "", "CDB Zeta 2027"); err != nil {
		t.Fatalf("RedeemFixed() error = %v", err)
	}

	for e := range a.Ledger.Entries() {
		if s, ok := e.(Sale); ok {
			if !s.TaxWithheld.IsZero() {
				t.Errorf("TaxWithheld = %v, want zero without a gain", s.TaxWithheld)
			}
			if !s.Amount.Equal(s.Gross) {
				t.Errorf("net %v should equal gross %v without a gain", s.Amount, s.Gross)
			}
		}
	}
}

func TestAggregate_RecordDividendCreditsVariableSleeve(t *testing.T) {
	a := newFundedAggregate(t)
	if err := a.RecordVariablePurchase(MustParseDate("2025-03-10"), "", "HGLG11", FII, Q(100), M(10_000)); err != nil {
		t.Fatalf("RecordVariablePurchase() error = %v", err)
	}
	before := a.Ledger.AvailableBalance(VariableIncome)

	dividend, err := a.RecordDividend("HGLG11", NewMonth(2025, 3), M(1.10), MustParseDate("2025-04-16"))
	if err != nil {
		t.Fatalf("RecordDividend() error = %v", err)
	}
	after := a.Ledger.AvailableBalance(VariableIncome)
	if !after.Sub(before).Equal(dividend.Amount) {
		t.Errorf("sleeve credited %v, want %v", after.Sub(before), dividend.Amount)
	}
}
