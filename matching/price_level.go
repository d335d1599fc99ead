package matching

// PriceLevelL2 contains price and aggregated quantity of a price level.
// It is a plain copy safe to hand out of the order book.
type PriceLevelL2 struct {
	Price    Uint `json:"price"`
	Quantity Uint `json:"quantity"`
}

// PriceLevel contains price and total quantity resting at that price on one side of the book.
// Individual orders are not tracked so there is no time priority inside a level.
// NOTE: Not thread-safe.
type PriceLevel struct {
	price    Uint
	quantity Uint
}

// NewPriceLevel creates and returns new PriceLevel instance.
func NewPriceLevel() *PriceLevel {
	return &PriceLevel{}
}

////////////////////////////////////////////////////////////////
// Getters
////////////////////////////////////////////////////////////////

// Price returns price of the level.
func (pl *PriceLevel) Price() Uint {
	return pl.price
}

// Quantity returns total resting quantity of the level.
func (pl *PriceLevel) Quantity() Uint {
	return pl.quantity
}

// L2 returns a copy of the level.
func (pl *PriceLevel) L2() PriceLevelL2 {
	return PriceLevelL2{
		Price:    pl.price,
		Quantity: pl.quantity,
	}
}

// Clean resets the price level so it can be reused.
func (pl *PriceLevel) Clean() {
	pl.price = NewZeroUint()
	pl.quantity = NewZeroUint()
}
