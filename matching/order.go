package matching

// Order contains information about an incoming limit order.
// The order is not retained by the order book: its residual quantity is merged
// into the price level at its price.
type Order struct {
	id       uint64
	symbol   string
	side     OrderSide
	price    Uint
	quantity Uint
}

// NewOrder creates new limit order. Zero id is used for orders submitted directly to an order book.
func NewOrder(symbol string, id uint64, side OrderSide, price Uint, quantity Uint) Order {
	return Order{
		id:       id,
		symbol:   symbol,
		side:     side,
		price:    price,
		quantity: quantity,
	}
}

////////////////////////////////////////////////////////////////

// ID returns the order ID.
func (o *Order) ID() uint64 {
	return o.id
}

// Symbol returns the order symbol name.
func (o *Order) Symbol() string {
	return o.symbol
}

// Side returns the order side.
func (o *Order) Side() OrderSide {
	return o.side
}

// IsBuy returns true for buy orders.
func (o *Order) IsBuy() bool {
	return o.side == OrderSideBuy
}

// IsSell returns true for sell orders.
func (o *Order) IsSell() bool {
	return o.side == OrderSideSell
}

// Price returns the order limit price.
func (o *Order) Price() Uint {
	return o.price
}

// Quantity returns the order quantity.
func (o *Order) Quantity() Uint {
	return o.quantity
}

////////////////////////////////////////////////////////////////

// Validate returns error if the order fails to pass validation against the symbol reference data.
func (o *Order) Validate(symbol Symbol) error {
	if !o.side.Valid() {
		return ErrInvalidOrderSide
	}
	if o.quantity.IsZero() {
		return ErrInvalidOrderQuantity
	}
	if o.price.IsZero() {
		return ErrInvalidOrderPrice
	}
	if !symbol.priceLimits.Allows(o.price) {
		return ErrInvalidOrderPrice
	}
	if !symbol.lotSizeLimits.Allows(o.quantity) {
		return ErrInvalidOrderQuantity
	}
	return nil
}
