package matching

// Trade is a single matching step between an incoming order and the best opposite level.
// BuyPrice and SellPrice echo the two crossing prices: no clearing price is computed.
type Trade struct {
	BuyPrice  Uint `json:"buy_price"`
	SellPrice Uint `json:"sell_price"`
	Quantity  Uint `json:"quantity"`
}

// OrderStatus is an enumeration of order states after submission.
type OrderStatus uint8

const (
	// OrderStatusOpen means nothing was executed and the whole order rests in the book.
	OrderStatusOpen OrderStatus = iota + 1
	// OrderStatusPartiallyExecuted means the order was executed partially and the rest rests in the book.
	OrderStatusPartiallyExecuted
	// OrderStatusExecuted means the order was executed completely.
	OrderStatusExecuted
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusOpen:
		return "open"
	case OrderStatusPartiallyExecuted:
		return "partially_executed"
	case OrderStatusExecuted:
		return "executed"
	default:
		return "unknown"
	}
}

func (s OrderStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

////////////////////////////////////////////////////////////////

// SubmitResult is returned for every accepted order.
type SubmitResult struct {
	OrderID   uint64  `json:"order_id"`
	Trades    []Trade `json:"trades"`
	Remaining Uint    `json:"remaining"` // quantity left resting in the book
}

// Executed returns total traded quantity.
func (r SubmitResult) Executed() Uint {
	executed := NewZeroUint()
	for _, t := range r.Trades {
		executed = executed.Add(t.Quantity)
	}
	return executed
}

// Status returns the order status derived from the result.
func (r SubmitResult) Status() OrderStatus {
	switch {
	case r.Remaining.IsZero():
		return OrderStatusExecuted
	case len(r.Trades) > 0:
		return OrderStatusPartiallyExecuted
	default:
		return OrderStatusOpen
	}
}
