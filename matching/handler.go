package matching

import "context"

// Handler receives order book events. Events of one order book are delivered
// in the order they happened and never while the order book is locked.
//
//go:generate mockgen -destination=mocks/interfaces.go -package=mockmatching . Handler,PriceSource
type Handler interface {

	// Order book handlers
	OnAddOrderBook(orderBook *OrderBook)
	OnDeleteOrderBook(orderBook *OrderBook)

	// Price level handlers
	OnAddPriceLevel(orderBook *OrderBook, update PriceLevelUpdate)
	OnUpdatePriceLevel(orderBook *OrderBook, update PriceLevelUpdate)
	OnDeletePriceLevel(orderBook *OrderBook, update PriceLevelUpdate)

	// Orders handlers
	OnSubmitOrder(orderBook *OrderBook, order Order, result SubmitResult)
	OnCancelOrder(orderBook *OrderBook, order Order, cancelled Uint)

	// Matching handlers
	OnExecuteTrade(orderBook *OrderBook, trade Trade)

	// Errors handler
	OnError(orderBook *OrderBook, err error)
}

// PriceSource provides reference prices per symbol.
// ErrPriceUnavailable is returned when the source has no price for the symbol.
type PriceSource interface {
	Price(ctx context.Context, symbol string) (Uint, error)
}

////////////////////////////////////////////////////////////////

// NopHandler ignores all events. Embed it to implement only some of the handlers.
type NopHandler struct{}

var _ Handler = NopHandler{}

func (NopHandler) OnAddOrderBook(*OrderBook)                       {}
func (NopHandler) OnDeleteOrderBook(*OrderBook)                    {}
func (NopHandler) OnAddPriceLevel(*OrderBook, PriceLevelUpdate)    {}
func (NopHandler) OnUpdatePriceLevel(*OrderBook, PriceLevelUpdate) {}
func (NopHandler) OnDeletePriceLevel(*OrderBook, PriceLevelUpdate) {}
func (NopHandler) OnSubmitOrder(*OrderBook, Order, SubmitResult)   {}
func (NopHandler) OnCancelOrder(*OrderBook, Order, Uint)           {}
func (NopHandler) OnExecuteTrade(*OrderBook, Trade)                {}
func (NopHandler) OnError(*OrderBook, error)                       {}

////////////////////////////////////////////////////////////////

type handlers []Handler

// Handlers returns a handler delivering every event to all given handlers in order.
func Handlers(hs ...Handler) Handler {
	return handlers(hs)
}

func (hs handlers) OnAddOrderBook(ob *OrderBook) {
	for _, h := range hs {
		h.OnAddOrderBook(ob)
	}
}

func (hs handlers) OnDeleteOrderBook(ob *OrderBook) {
	for _, h := range hs {
		h.OnDeleteOrderBook(ob)
	}
}

func (hs handlers) OnAddPriceLevel(ob *OrderBook, update PriceLevelUpdate) {
	for _, h := range hs {
		h.OnAddPriceLevel(ob, update)
	}
}

func (hs handlers) OnUpdatePriceLevel(ob *OrderBook, update PriceLevelUpdate) {
	for _, h := range hs {
		h.OnUpdatePriceLevel(ob, update)
	}
}

func (hs handlers) OnDeletePriceLevel(ob *OrderBook, update PriceLevelUpdate) {
	for _, h := range hs {
		h.OnDeletePriceLevel(ob, update)
	}
}

func (hs handlers) OnSubmitOrder(ob *OrderBook, order Order, result SubmitResult) {
	for _, h := range hs {
		h.OnSubmitOrder(ob, order, result)
	}
}

func (hs handlers) OnCancelOrder(ob *OrderBook, order Order, cancelled Uint) {
	for _, h := range hs {
		h.OnCancelOrder(ob, order, cancelled)
	}
}

func (hs handlers) OnExecuteTrade(ob *OrderBook, trade Trade) {
	for _, h := range hs {
		h.OnExecuteTrade(ob, trade)
	}
}

func (hs handlers) OnError(ob *OrderBook, err error) {
	for _, h := range hs {
		h.OnError(ob, err)
	}
}
