package carteira

import "errors"

// Sentinel errors for the engine. Rejections never leave a partially
// appended ledger behind: callers receive the error and the untouched state.
var (
	// ErrPriceUnavailable reports that the oracle could not supply a quote or
	// a reference rate. Valuation recovers locally by retaining the previous
	// value; it is never substituted by zero.
	ErrPriceUnavailable = errors.New("price unavailable")

	// ErrInsufficientQuantity reports a sale exceeding the held position.
	ErrInsufficientQuantity = errors.New("insufficient quantity")

	// ErrUnsupportedOperation reports an operation the engine does not model,
	// such as a partial fixed-income redemption.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrInvalidMonth reports an attempt to reconcile a month that is still open.
	ErrInvalidMonth = errors.New("month not closed")
)
