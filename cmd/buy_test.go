package cmd

import (
	"testing"

	"github.com/lgaspar/carteira"
)

func TestBuyFixedCmd_Regime(t *testing.T) {
	testCases := []struct {
		name    string
		cmd     buyFixedCmd
		want    carteira.RegimeKind
		wantErr bool
	}{
		{name: "pre-fixed", cmd: buyFixedCmd{rate: 0.12}, want: carteira.PreFixed},
		{name: "post-fixed", cmd: buyFixedCmd{index: "CDI", percent: 110}, want: carteira.PostFixed},
		{name: "hybrid ipca", cmd: buyFixedCmd{rate: 0.06, ipca: true}, want: carteira.Hybrid},
		{name: "hybrid indexed", cmd: buyFixedCmd{rate: 0.02, index: "SELIC", percent: 100}, want: carteira.Hybrid},
		{name: "no regime", cmd: buyFixedCmd{}, wantErr: true},
		{name: "bad index", cmd: buyFixedCmd{index: "LIBOR", percent: 100}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			regime, err := tc.cmd.regime()
			if tc.wantErr {
				if err == nil {
					t.Errorf("regime() = %v, want error", regime)
				}
				return
			}
			if err != nil {
				t.Fatalf("regime() error = %v", err)
			}
			if regime.Kind != tc.want {
				t.Errorf("regime().Kind = %s, want %s", regime.Kind, tc.want)
			}
		})
	}
}

func TestParseDay(t *testing.T) {
	if got, err := parseDay("2025-03-10"); err != nil || got != carteira.MustParseDate("2025-03-10") {
		t.Errorf("parseDay(2025-03-10) = %v, %v", got, err)
	}
	if got, err := parseDay(""); err != nil || got != carteira.Today() {
		t.Errorf("parseDay(\"\") = %v, %v, want today", got, err)
	}
	if _, err := parseDay("not-a-date"); err == nil {
		t.Error("parseDay(not-a-date) should fail")
	}
}
