package carteira

import (
	"testing"
)

func TestDividendPendencies_OneMonthPerClosedHeldMonth(t *testing.T) {
	// Shares bought in March and held; on a June day the closed months
	// March, April and May are pending, June itself is not.
	l := seedLedger(t)
	record(t, l,
		NewVariablePurchase(MustParseDate("2025-03-10"), "", "HGLG11", FII, Q(100), M(10_000)),
	)

	pendencies := DividendPendencies(l, "HGLG11", MustParseDate("2025-06-20"))
	if len(pendencies) != 3 {
		t.Fatalf("len(pendencies) = %d, want 3", len(pendencies))
	}
	for i, want := range []Month{NewMonth(2025, 3), NewMonth(2025, 4), NewMonth(2025, 5)} {
		if pendencies[i].Month != want {
			t.Errorf("pendencies[%d].Month = %s, want %s", i, pendencies[i].Month, want)
		}
		if !pendencies[i].QuantityHeld.Equal(Q(100)) {
			t.Errorf("pendencies[%d].QuantityHeld = %s, want 100", i, pendencies[i].QuantityHeld)
		}
	}
}

func TestDividendPendencies_RecordedMonthDropsOut(t *testing.T) {
	l := seedLedger(t)
	record(t, l,
		NewVariablePurchase(MustParseDate("2025-03-10"), "", "HGLG11", FII, Q(100), M(10_000)),
		NewDividend(MustParseDate("2025-04-15"), "", "HGLG11", NewMonth(2025, 3), M(110)),
	)

	pendencies := DividendPendencies(l, "HGLG11", MustParseDate("2025-06-20"))
	if len(pendencies) != 2 {
		t.Fatalf("len(pendencies) = %d, want 2", len(pendencies))
	}
	for _, p := range pendencies {
		if p.Month == NewMonth(2025, 3) {
			t.Error("a recorded month must not stay pending")
		}
	}
}

func TestDividendPendencies_SkipsMonthsNotHeldAtEnd(t *testing.T) {
	// The whole position is sold mid-April: April's last day holds nothing,
	// so only March is pending.
	l := seedLedger(t)
	record(t, l,
		NewVariablePurchase(MustParseDate("2025-03-10"), "", "HGLG11", FII, Q(100), M(10_000)),
		NewSale(MustParseDate("2025-04-15"), "", "HGLG11", FII, Q(100), M(11_000)),
	)

	pendencies := DividendPendencies(l, "HGLG11", MustParseDate("2025-06-20"))
	if len(pendencies) != 1 {
		t.Fatalf("len(pendencies) = %d, want 1", len(pendencies))
	}
	if pendencies[0].Month != NewMonth(2025, 3) {
		t.Errorf("pendencies[0].Month = %s, want 2025-03", pendencies[0].Month)
	}
}

func TestDividendPendencies_UnknownInstrument(t *testing.T) {
	l := seedLedger(t)
	if got := DividendPendencies(l, "XPTO3", MustParseDate("2025-06-20")); got != nil {
		t.Errorf("DividendPendencies(unknown) = %v, want nil", got)
	}
}

func TestConfirmPendency(t *testing.T) {
	l := seedLedger(t)
	record(t, l,
		NewVariablePurchase(MustParseDate("2025-03-10"), "", "HGLG11", FII, Q(100), M(10_000)),
	)
	today := MustParseDate("2025-04-16")

	dividend, err := ConfirmPendency(l, "HGLG11", NewMonth(2025, 3), M(1.10), today)
	if err != nil {
		t.Fatalf("ConfirmPendency() error = %v", err)
	}
	if !dividend.Amount.Equal(M(110)) {
		t.Errorf("dividend amount = %v, want %v (1.10 × 100)", dividend.Amount, M(110))
	}
	if !l.HasDividend("HGLG11", NewMonth(2025, 3)) {
		t.Error("ConfirmPendency() did not record the dividend")
	}

	// The settled month is no longer pending.
	for _, p := range DividendPendencies(l, "HGLG11", today) {
		if p.Month == NewMonth(2025, 3) {
			t.Error("confirmed month still pending")
		}
	}

	// Confirming it again hits the one-dividend-per-month guard.
	if _, err := ConfirmPendency(l, "HGLG11", NewMonth(2025, 3), M(1.10), today); err == nil {
		t.Error("second ConfirmPendency() for the same month should fail")
	}
}

func TestConfirmPendency_RejectsNonPositivePerShare(t *testing.T) {
	l := seedLedger(t)
	record(t, l,
		NewVariablePurchase(MustParseDate("2025-03-10"), "", "HGLG11", FII, Q(100), M(10_000)),
	)
	if _, err := ConfirmPendency(l, "HGLG11", NewMonth(2025, 3), M(0), MustParseDate("2025-04-16")); err == nil {
		t.Error("ConfirmPendency() with zero per-share amount should fail")
	}
}
