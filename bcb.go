package carteira

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

// Banco Central SGS series for the reference rates. The SGS API publishes
// CDI and SELIC as annualized percentages and IPCA as the 12-month
// accumulated percentage.
var sgsSeries = map[RateName]int{
	CDI:   4389, // CDI accumulated rate, % per year
	SELIC: 1178, // SELIC target, % per year
	IPCA:  13522, // IPCA accumulated over 12 months, %
}

// sgsLatest fetches the last published value of one SGS series.
//
//	[{"data":"28/08/2026","valor":"10.65"}]
func sgsLatest(client *http.Client, series int) (decimal.Decimal, error) {
	addr := fmt.Sprintf("https://api.bcb.gov.br/dados/serie/bcdata.sgs.%d/dados/ultimos/1?formato=json", series)
	var rows []struct {
		Data  string `json:"data"`
		Valor string `json:"valor"`
	}
	if err := jwget(client, addr, &rows); err != nil {
		return decimal.Zero, fmt.Errorf("error in wget sgs.%d: %w", series, err)
	}
	if len(rows) == 0 {
		return decimal.Zero, fmt.Errorf("sgs.%d published no value", series)
	}
	// SGS uses the Brazilian decimal comma in some deployments.
	val, err := decimal.NewFromString(strings.ReplaceAll(rows[0].Valor, ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing sgs.%d value %q: %w", series, rows[0].Valor, err)
	}
	return val, nil
}

// LiveOracle is the production Oracle: quotes from brapi.dev, reference rates
// from the Banco Central SGS API, both behind the daily disk cache.
type LiveOracle struct {
	client *http.Client
}

// NewLiveOracle returns the oracle backed by the public quote services.
func NewLiveOracle() *LiveOracle {
	return &LiveOracle{client: daily()}
}

// Price returns the latest traded price for a B3 ticker or crypto symbol.
func (o *LiveOracle) Price(symbol string) (decimal.Decimal, error) {
	val, err := brapiLatest(o.client, symbol)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}
	return val, nil
}

// Rate returns the latest published value for a reference rate.
func (o *LiveOracle) Rate(name RateName) (decimal.Decimal, error) {
	series, ok := sgsSeries[name]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: unknown rate %q", ErrPriceUnavailable, name)
	}
	val, err := sgsLatest(o.client, series)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrPriceUnavailable, err)
	}
	return val, nil
}
