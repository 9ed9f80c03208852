package carteira

import (
	"errors"
	"strings"
	"testing"
)

func TestLedger_AvailableBalance(t *testing.T) {
	l := NewLedger()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	must(l.Record(NewDeposit(MustParseDate("2025-01-02"), "", VariableIncome, M(10000))))
	must(l.Record(NewDeposit(MustParseDate("2025-01-02"), "", FixedIncome, M(5000))))
	must(l.Record(NewVariablePurchase(MustParseDate("2025-01-03"), "", "PETR4", Stock, Q(100), M(3000))))
	must(l.Record(NewPurchase(MustParseDate("2025-01-03"), "", "CDB Zeta 2027", M(2000))))
	must(l.Record(NewTransfer(MustParseDate("2025-01-10"), "", FixedIncome, VariableIncome, M(1000))))
	must(l.Record(NewSale(MustParseDate("2025-02-05"), "", "PETR4", Stock, Q(40), M(1500))))
	must(l.Record(NewDividend(MustParseDate("2025-02-10"), "", "HGLG11", NewMonth(2025, 1), M(80))))
	must(l.Record(NewTaxDebit(MustParseDate("2025-03-05"), "", Stock, NewMonth(2025, 2), M(30))))

	testCases := []struct {
		sleeve Sleeve
		want   Money
	}{
		// 10000 − 3000 + 1000 + 1500 + 80 − 30
		{VariableIncome, M(9550)},
		// 5000 − 2000 − 1000
		{FixedIncome, M(2000)},
	}
	for _, tc := range testCases {
		if got := l.AvailableBalance(tc.sleeve); !got.Equal(tc.want) {
			t.Errorf("AvailableBalance(%s) = %v, want %v", tc.sleeve, got, tc.want)
		}
	}

	// Restricted to before the transfer and the sale.
	if got := l.AvailableBalanceAsOf(VariableIncome, MustParseDate("2025-01-05")); !got.Equal(M(7000)) {
		t.Errorf("AvailableBalanceAsOf(variable, 2025-01-05) = %v, want %v", got, M(7000))
	}
}

func TestLedger_BalanceIgnoresSameDayOrder(t *testing.T) {
	day := MustParseDate("2025-03-03")
	forward := NewLedger()
	forward.Append(
		NewDeposit(day, "", VariableIncome, M(1000)),
		NewVariablePurchase(day, "", "ITSA4", Stock, Q(10), M(100)),
		NewSale(day, "", "ITSA4", Stock, Q(10), M(120)),
	)
	backward := NewLedger()
	backward.Append(
		NewSale(day, "", "ITSA4", Stock, Q(10), M(120)),
		NewVariablePurchase(day, "", "ITSA4", Stock, Q(10), M(100)),
		NewDeposit(day, "", VariableIncome, M(1000)),
	)

	a := forward.AvailableBalance(VariableIncome)
	b := backward.AvailableBalance(VariableIncome)
	if !a.Equal(b) {
		t.Errorf("same-day balance depends on entry order: %v vs %v", a, b)
	}
	if !a.Equal(M(1020)) {
		t.Errorf("AvailableBalance() = %v, want %v", a, M(1020))
	}
}

func TestLedger_PurchaseRejectsOverdraft(t *testing.T) {
	l := NewLedger()
	if err := l.Record(NewDeposit(MustParseDate("2025-01-02"), "", VariableIncome, M(100))); err != nil {
		t.Fatalf("Record(deposit) error = %v", err)
	}
	err := l.Record(NewVariablePurchase(MustParseDate("2025-01-03"), "", "PETR4", Stock, Q(10), M(500)))
	if err == nil {
		t.Fatal("Record(purchase) exceeding the sleeve balance should fail")
	}
	if l.Len() != 1 {
		t.Errorf("failed Record() must leave the ledger unchanged, got %d entries", l.Len())
	}
}

func TestLedger_SaleRejectsOversell(t *testing.T) {
	l := NewLedger()
	l.Append(
		NewDeposit(MustParseDate("2025-01-02"), "", VariableIncome, M(10000)),
		NewVariablePurchase(MustParseDate("2025-01-03"), "", "PETR4", Stock, Q(100), M(3000)),
	)
	err := l.Record(NewSale(MustParseDate("2025-01-10"), "", "PETR4", Stock, Q(150), M(5000)))
	if !errors.Is(err, ErrInsufficientQuantity) {
		t.Errorf("Record(oversell) error = %v, want ErrInsufficientQuantity", err)
	}
}

func TestLedger_FixedRedemptionIsWholePositionOnly(t *testing.T) {
	l := NewLedger()
	l.Append(
		NewDeposit(MustParseDate("2025-01-02"), "", FixedIncome, M(1000)),
		NewPurchase(MustParseDate("2025-01-03"), "", "CDB Zeta 2027", M(1000)),
	)
	partial := NewRedemption(MustParseDate("2025-06-02"), "", "CDB Zeta 2027", M(1050), M(1040), M(10), 100)
	partial.Quantity = Q(1)
	if err := l.Record(partial); !errors.Is(err, ErrUnsupportedOperation) {
		t.Errorf("Record(partial redemption) error = %v, want ErrUnsupportedOperation", err)
	}
}

func TestLedger_DuplicateDividendRejected(t *testing.T) {
	l := NewLedger()
	month := NewMonth(2025, 3)
	if err := l.Record(NewDividend(MustParseDate("2025-04-15"), "", "HGLG11", month, M(110))); err != nil {
		t.Fatalf("Record(dividend) error = %v", err)
	}
	err := l.Record(NewDividend(MustParseDate("2025-04-20"), "", "HGLG11", month, M(110)))
	if err == nil || !strings.Contains(err.Error(), "already recorded") {
		t.Errorf("Record(duplicate dividend) error = %v, want duplicate rejection", err)
	}
}

func TestLedger_DividendForOpenMonthRejected(t *testing.T) {
	l := NewLedger()
	err := l.Record(NewDividend(MustParseDate("2025-03-20"), "", "HGLG11", NewMonth(2025, 3), M(50)))
	if !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("Record(dividend for running month) error = %v, want ErrInvalidMonth", err)
	}
}

func TestLedger_PositionsAsOf(t *testing.T) {
	l := NewLedger()
	l.Append(
		NewDeposit(MustParseDate("2025-01-02"), "", VariableIncome, M(10000)),
		NewVariablePurchase(MustParseDate("2025-01-03"), "", "PETR4", Stock, Q(100), M(3000)),
		NewVariablePurchase(MustParseDate("2025-01-20"), "", "PETR4", Stock, Q(50), M(1600)),
		NewSale(MustParseDate("2025-02-05"), "", "PETR4", Stock, Q(40), M(1500)),
	)

	if held := l.PositionsAsOf(MustParseDate("2025-01-10"))["PETR4"]; !held.Equal(Q(100)) {
		t.Errorf("held on 2025-01-10 = %s, want 100", held)
	}
	if held := l.PositionsAsOf(MustParseDate("2025-03-01"))["PETR4"]; !held.Equal(Q(110)) {
		t.Errorf("held on 2025-03-01 = %s, want 110", held)
	}
}

func TestLedger_AppendKeepsChronologicalOrder(t *testing.T) {
	l := NewLedger()
	l.Append(NewDeposit(MustParseDate("2025-02-01"), "", VariableIncome, M(2)))
	l.Append(NewDeposit(MustParseDate("2025-01-01"), "", VariableIncome, M(1)))
	l.Append(NewDeposit(MustParseDate("2025-03-01"), "", VariableIncome, M(3)))

	var previous Date
	for e := range l.Entries() {
		if e.When().Before(previous) {
			t.Fatalf("entries out of order: %s after %s", e.When(), previous)
		}
		previous = e.When()
	}
}
