package matching

import (
	"strings"
)

// OrderSide is an enumeration of possible trading sides (buy/sell).
type OrderSide uint8

const (
	// OrderSideBuy represents market side which includes only buy orders (bids).
	OrderSideBuy OrderSide = iota + 1
	// OrderSideSell represents market side which includes only sell orders (asks).
	OrderSideSell
)

// ParseOrderSide parses "buy" or "sell" (case insensitive).
func ParseOrderSide(s string) (OrderSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return OrderSideBuy, nil
	case "sell":
		return OrderSideSell, nil
	default:
		return 0, ErrInvalidOrderSide
	}
}

// Valid returns true for buy and sell sides only.
func (s OrderSide) Valid() bool {
	return s == OrderSideBuy || s == OrderSideSell
}

// Opposite returns the side resting orders are matched against.
func (s OrderSide) Opposite() OrderSide {
	switch s {
	case OrderSideBuy:
		return OrderSideSell
	case OrderSideSell:
		return OrderSideBuy
	default:
		return 0
	}
}

func (s OrderSide) String() string {
	switch s {
	case OrderSideBuy:
		return "buy"
	case OrderSideSell:
		return "sell"
	default:
		return "unknown"
	}
}

func (s OrderSide) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, ErrInvalidOrderSide
	}
	return []byte(s.String()), nil
}

func (s *OrderSide) UnmarshalText(text []byte) error {
	side, err := ParseOrderSide(string(text))
	if err != nil {
		return err
	}
	*s = side
	return nil
}
