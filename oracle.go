package carteira

import "github.com/shopspring/decimal"

// RateName identifies a reference rate published by the central bank.
type RateName string

const (
	// CDI is the interbank deposit rate, annualized, in percent.
	CDI RateName = "CDI"
	// SELIC is the base interest rate, annualized, in percent.
	SELIC RateName = "SELIC"
	// IPCA is the 12-month accumulated consumer price index, in percent.
	IPCA RateName = "IPCA"
)

// Oracle is the capability surface the engine consumes for market data.
//
// Price returns the latest traded unit price for a ticker, in BRL. Rate
// returns the latest published value for a reference rate, in percent per
// year. Both fail with an error wrapping ErrPriceUnavailable when the
// upstream source has no quote; callers treat that as "retain previous
// value", never as zero. Retry and backoff belong to the adapter, not here.
type Oracle interface {
	Price(symbol string) (decimal.Decimal, error)
	Rate(name RateName) (decimal.Decimal, error)
}
