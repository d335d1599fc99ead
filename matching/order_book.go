package matching

import (
	"context"
	"sync"
)

// Snapshot is a copy of the order book depth, best levels first on both sides.
type Snapshot struct {
	Symbol string         `json:"symbol"`
	Bids   []PriceLevelL2 `json:"bids"`
	Asks   []PriceLevelL2 `json:"asks"`
}

// Order book is used to store aggregated buy and sell quantities in a price level order.
// All methods are safe for concurrent use: mutations hold the write lock for the whole
// matching step and queries return copies under the read lock.
type OrderBook struct {
	mu sync.RWMutex

	// Order book symbol
	symbol Symbol

	// Bid/Ask price levels
	bids *PriceLevelIndex
	asks *PriceLevelIndex

	// Last used update ID
	lastUpdateID uint64

	// Serializes task and delivery of its events in single-thread mode
	taskMu sync.Mutex

	// Tasks to run in the single for the order book goroutine
	// Used only by the engine in multithread mode
	chanTasks   chan func(*OrderBook)
	queueMu     sync.RWMutex // senders hold it for read, closing takes it for write
	queueClosed bool

	// Synchronization stuff
	chanForcedStop chan struct{} // for forced stop
	wg             sync.WaitGroup
}

// NewOrderBook creates and returns new OrderBook instance.
// Allocator may be nil, then the order book uses its own one.
func NewOrderBook(allocator *Allocator, symbol Symbol, taskQueueSize int) *OrderBook {
	if allocator == nil {
		allocator = NewAllocator()
	}
	return &OrderBook{
		symbol:         symbol,
		bids:           NewPriceLevelIndex(OrderSideBuy, allocator),
		asks:           NewPriceLevelIndex(OrderSideSell, allocator),
		chanTasks:      make(chan func(*OrderBook), taskQueueSize),
		chanForcedStop: make(chan struct{}),
	}
}

// Clean releases all internally used tree nodes and cleans whole order book state.
func (ob *OrderBook) Clean() {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	ob.bids.Clean()
	ob.asks.Clean()
}

////////////////////////////////////////////////////////////////
// Getters
////////////////////////////////////////////////////////////////

// Symbol returns order book symbol.
func (ob *OrderBook) Symbol() Symbol {
	return ob.symbol
}

// IsEmpty returns true if there is no price level on both sides.
func (ob *OrderBook) IsEmpty() bool {
	return ob.Size() == 0
}

// Size returns total amount of price levels on both sides.
func (ob *OrderBook) Size() int {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	return ob.bids.Len() + ob.asks.Len()
}

// BestBid returns a copy of the best bid level, false when there are no bids.
func (ob *OrderBook) BestBid() (PriceLevelL2, bool) {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	return bestOf(ob.bids)
}

// BestAsk returns a copy of the best ask level, false when there are no asks.
func (ob *OrderBook) BestAsk() (PriceLevelL2, bool) {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	return bestOf(ob.asks)
}

// Top returns copies of the best bid and ask levels taken at the same moment.
// Nil is returned for an empty side.
func (ob *OrderBook) Top() (bid *PriceLevelL2, ask *PriceLevelL2) {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	if l, ok := bestOf(ob.bids); ok {
		bid = &l
	}
	if l, ok := bestOf(ob.asks); ok {
		ask = &l
	}
	return
}

// Snapshot returns up to depth best levels of both sides. Non-positive depth returns everything.
func (ob *OrderBook) Snapshot(depth int) Snapshot {
	ob.mu.RLock()
	defer ob.mu.RUnlock()

	return Snapshot{
		Symbol: ob.symbol.name,
		Bids:   ob.bids.Depth(depth),
		Asks:   ob.asks.Depth(depth),
	}
}

////////////////////////////////////////////////////////////////
// Orders management
////////////////////////////////////////////////////////////////

// Submit matches the order against the opposite side and rests the residual quantity on its own side.
func (ob *OrderBook) Submit(order Order) (SubmitResult, error) {
	result, _, err := ob.submit(order)
	return result, err
}

// Cancel removes up to quantity from the own side level at the given price.
// It returns the quantity actually cancelled which is zero when there is no such level.
func (ob *OrderBook) Cancel(side OrderSide, price Uint, quantity Uint) (Uint, error) {
	cancelled, _, err := ob.cancel(NewOrder(ob.symbol.name, 0, side, price, quantity))
	return cancelled, err
}

// submit performs one matching step and returns price level updates in the order they happened.
// Every trade is followed by exactly one update of the opposite side, the optional last update
// is the residual quantity added to the own side.
func (ob *OrderBook) submit(order Order) (result SubmitResult, updates []PriceLevelUpdate, err error) {
	// Validate before touching any index
	if err = order.Validate(ob.symbol); err != nil {
		return
	}

	ob.mu.Lock()
	defer ob.mu.Unlock()

	own, opposite := ob.sides(order.side)
	price, quantity := order.price, order.quantity

	// The residual is not known before matching, reject what could not rest in full
	if !own.Fits(quantity) {
		err = ErrInvalidOrderQuantity
		return
	}

	result.OrderID = order.id

	for !quantity.IsZero() {
		top := opposite.Best()
		if top == nil || !crosses(order.side, price, top.price) {
			break
		}

		topPrice := top.price
		matched := Min(quantity, top.quantity)

		trade := Trade{BuyPrice: price, SellPrice: topPrice, Quantity: matched}
		if order.side == OrderSideSell {
			trade = Trade{BuyPrice: topPrice, SellPrice: price, Quantity: matched}
		}
		result.Trades = append(result.Trades, trade)
		quantity = quantity.Sub(matched)

		removed, update, found := opposite.Decrement(topPrice, matched)
		if !found || !removed.Equals(matched) {
			panic("best price level is inconsistent with the index")
		}
		updates = append(updates, ob.stamp(update))
	}

	// Rest the remainder
	if !quantity.IsZero() {
		var update PriceLevelUpdate
		update, err = own.InsertOrAccumulate(price, quantity)
		if err != nil {
			panic("failed to rest validated order: " + err.Error())
		}
		updates = append(updates, ob.stamp(update))
	}

	result.Remaining = quantity
	return
}

func (ob *OrderBook) cancel(order Order) (cancelled Uint, updates []PriceLevelUpdate, err error) {
	if err = order.Validate(ob.symbol); err != nil {
		return
	}

	ob.mu.Lock()
	defer ob.mu.Unlock()

	own, _ := ob.sides(order.side)
	removed, update, found := own.Decrement(order.price, order.quantity)
	if found {
		updates = append(updates, ob.stamp(update))
	}
	cancelled = removed
	return
}

////////////////////////////////////////////////////////////////
// Tasks queue
////////////////////////////////////////////////////////////////

// enqueue waits for a free slot in the tasks queue.
func (ob *OrderBook) enqueue(ctx context.Context, task func(*OrderBook)) error {
	ob.queueMu.RLock()
	defer ob.queueMu.RUnlock()

	if ob.queueClosed {
		return errOrderBookClosed
	}
	select {
	case ob.chanTasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-ob.chanForcedStop:
		return errOrderBookClosed
	}
}

// closeQueue stops accepting tasks. Not forced close lets the goroutine perform queued tasks.
// Must be called once.
func (ob *OrderBook) closeQueue(forced bool) {
	// Forced stop first, it releases senders blocked on a full queue
	if forced {
		close(ob.chanForcedStop)
	}

	ob.queueMu.Lock()
	ob.queueClosed = true
	close(ob.chanTasks)
	ob.queueMu.Unlock()
}

////////////////////////////////////////////////////////////////
// Internal helpers
////////////////////////////////////////////////////////////////

// sides returns own and opposite indices for the given side.
func (ob *OrderBook) sides(side OrderSide) (own *PriceLevelIndex, opposite *PriceLevelIndex) {
	if side == OrderSideBuy {
		return ob.bids, ob.asks
	}
	return ob.asks, ob.bids
}

// stamp assigns next update ID, must be called under the write lock.
func (ob *OrderBook) stamp(update PriceLevelUpdate) PriceLevelUpdate {
	ob.lastUpdateID++
	update.ID = ob.lastUpdateID
	return update
}

func crosses(side OrderSide, price Uint, topPrice Uint) bool {
	if side == OrderSideBuy {
		return price.GreaterThanOrEqualTo(topPrice)
	}
	return price.LessThanOrEqualTo(topPrice)
}

func bestOf(idx *PriceLevelIndex) (PriceLevelL2, bool) {
	best := idx.Best()
	if best == nil {
		return PriceLevelL2{}, false
	}
	return best.L2(), true
}
