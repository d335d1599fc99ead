package matching

import (
	"errors"
)

// Errors used by the package.
var (
	ErrOrderBookDuplicate   = errors.New("order book is duplicated")
	ErrOrderBookNotFound    = errors.New("order book is not found")
	ErrInvalidSymbol        = errors.New("invalid symbol")
	ErrInvalidOrderSide     = errors.New("invalid order side")
	ErrInvalidOrderPrice    = errors.New("invalid order price")
	ErrInvalidOrderQuantity = errors.New("invalid order quantity")
	ErrInvalidNumber        = errors.New("invalid number")
	ErrPriceUnavailable     = errors.New("reference price is unavailable")
	ErrEngineStopped        = errors.New("matching engine is stopped")
)

// errOrderBookClosed is returned when the order book no longer accepts tasks.
var errOrderBookClosed = errors.New("order book is closed")
