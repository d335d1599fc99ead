package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/tidwall/hashmap"
)

// Engine is used to manage order books of many symbols.
// Each order book is reachable by its symbol name, there is no global instance.
// In multithread mode every order book gets its own goroutine performing enqueued tasks,
// so different symbols are matched in parallel while one symbol is always processed in order.
// Handler events of one order book are delivered one task at a time: from the order book
// goroutine in multithread mode, from the calling goroutine under a per order book lock otherwise.
// So a handler must not submit, cancel or delete the order book it is notified about,
// queries like Snapshot are fine.
type Engine struct {
	handler Handler
	logger  zerolog.Logger

	// Allocator shared by all order books
	allocator *Allocator

	// Order books
	mu         sync.RWMutex
	orderBooks *hashmap.Map[string, *OrderBook]
	stopped    bool

	// Last assigned order ID
	lastOrderID atomic.Uint64

	// Multi-thread mode
	multithread bool
}

// NewEngine creates and returns new Engine instance.
func NewEngine(handler Handler, logger zerolog.Logger, multithread bool) *Engine {
	if handler == nil {
		handler = NopHandler{}
	}
	return &Engine{
		handler:     handler,
		logger:      logger.With().Str("component", "engine").Logger(),
		allocator:   NewAllocator(),
		orderBooks:  hashmap.New[string, *OrderBook](defaultReservedOrderBookSlots),
		multithread: multithread,
	}
}

// Stop stops the matching engine.
// Not forced stop performs all already enqueued tasks, forced stop drops them.
// It releases all internally used order books and cleans whole order book state.
func (e *Engine) Stop(forced bool) {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true

	orderBooks := make([]*OrderBook, 0, e.orderBooks.Len())
	e.orderBooks.Scan(func(_ string, ob *OrderBook) bool {
		orderBooks = append(orderBooks, ob)
		return true
	})

	e.orderBooks = hashmap.New[string, *OrderBook](defaultReservedOrderBookSlots)
	e.mu.Unlock()

	// Close all order book tasks queues
	for _, ob := range orderBooks {
		ob.closeQueue(forced)
	}

	// Wait until everything is done
	for _, ob := range orderBooks {
		ob.wg.Wait()
	}

	// Clean all existing order books
	for _, ob := range orderBooks {
		ob.Clean()
	}

	e.logger.Info().Int("order_books", len(orderBooks)).Bool("forced", forced).Msg("engine stopped")
}

////////////////////////////////////////////////////////////////
// Engine common
////////////////////////////////////////////////////////////////

// OrderBook returns the order book with given symbol name or nil.
func (e *Engine) OrderBook(symbol string) *OrderBook {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ob, _ := e.orderBooks.Get(symbol)
	return ob
}

// OrderBooks returns total amount of currently existing order books.
func (e *Engine) OrderBooks() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.orderBooks.Len()
}

// Symbols returns sorted names of all registered symbols.
func (e *Engine) Symbols() []string {
	e.mu.RLock()
	symbols := e.orderBooks.Keys()
	e.mu.RUnlock()

	sort.Strings(symbols)
	return symbols
}

////////////////////////////////////////////////////////////////
// Order books management
////////////////////////////////////////////////////////////////

// AddOrderBook creates new order book and adds it to the engine.
func (e *Engine) AddOrderBook(symbol Symbol) (*OrderBook, error) {
	if !symbol.Valid() {
		return nil, ErrInvalidSymbol
	}

	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return nil, ErrEngineStopped
	}

	// Ensure order book does not exist
	if _, ok := e.orderBooks.Get(symbol.name); ok {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrOrderBookDuplicate, symbol.name)
	}

	// Create order book
	orderBook := NewOrderBook(e.allocator, symbol, defaultOrderBookTaskQueueSize)
	e.orderBooks.Set(symbol.name, orderBook)

	// Run goroutine unique to the order book to perform order book specific tasks
	if e.multithread {
		orderBook.wg.Add(1)
		go e.loopOrderBook(orderBook)
	}
	e.mu.Unlock()

	// Call the corresponding handler
	e.handler.OnAddOrderBook(orderBook)

	e.logger.Info().Str("symbol", symbol.name).Bool("multithread", e.multithread).Msg("order book added")

	return orderBook, nil
}

// DeleteOrderBook deletes order book from the engine.
// Tasks already enqueued for the order book are performed before it is cleaned.
func (e *Engine) DeleteOrderBook(symbol string) (*OrderBook, error) {
	e.mu.Lock()
	orderBook, ok := e.orderBooks.Get(symbol)
	if !ok {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrOrderBookNotFound, symbol)
	}
	e.orderBooks.Delete(symbol)
	e.mu.Unlock()

	// Close order book tasks queue
	orderBook.closeQueue(false)

	// Wait until all order book tasks are performed
	orderBook.wg.Wait()

	// Call the corresponding handler
	e.handler.OnDeleteOrderBook(orderBook)

	orderBook.Clean()

	e.logger.Info().Str("symbol", symbol).Msg("order book deleted")

	return orderBook, nil
}

////////////////////////////////////////////////////////////////
// Orders management
////////////////////////////////////////////////////////////////

// Submit assigns new order ID, matches the order in the symbol order book and returns the result.
// Handler events of the order are delivered after the result is available.
func (e *Engine) Submit(ctx context.Context, symbol string, side OrderSide, price Uint, quantity Uint) (SubmitResult, error) {
	order := NewOrder(symbol, e.lastOrderID.Add(1), side, price, quantity)

	var result SubmitResult
	task := func(ob *OrderBook) (func(), error) {
		res, updates, err := ob.submit(order)
		if err != nil {
			return nil, err
		}
		result = res

		events := func() {
			e.handler.OnSubmitOrder(ob, order, res)
			for i, trade := range res.Trades {
				e.handler.OnExecuteTrade(ob, trade)
				e.handleUpdatePriceLevel(ob, updates[i])
			}
			for _, update := range updates[len(res.Trades):] {
				e.handleUpdatePriceLevel(ob, update)
			}
		}
		return events, nil
	}

	if err := e.performOrderBookTask(ctx, symbol, task); err != nil {
		return SubmitResult{}, err
	}
	return result, nil
}

// SubmitAtReference submits an order priced with the reference price from the given source.
// Source errors (ErrPriceUnavailable included) are returned as is and nothing is submitted.
func (e *Engine) SubmitAtReference(ctx context.Context, source PriceSource, symbol string, side OrderSide, quantity Uint) (SubmitResult, error) {
	price, err := source.Price(ctx, symbol)
	if err != nil {
		return SubmitResult{}, err
	}
	if price.IsZero() {
		return SubmitResult{}, ErrPriceUnavailable
	}
	return e.Submit(ctx, symbol, side, price, quantity)
}

// Cancel removes up to quantity from the symbol order book level at the given side and price.
// It returns the quantity actually cancelled.
func (e *Engine) Cancel(ctx context.Context, symbol string, side OrderSide, price Uint, quantity Uint) (Uint, error) {
	order := NewOrder(symbol, e.lastOrderID.Add(1), side, price, quantity)

	var cancelled Uint
	task := func(ob *OrderBook) (func(), error) {
		removed, updates, err := ob.cancel(order)
		if err != nil {
			return nil, err
		}
		cancelled = removed

		events := func() {
			e.handler.OnCancelOrder(ob, order, removed)
			for _, update := range updates {
				e.handleUpdatePriceLevel(ob, update)
			}
		}
		return events, nil
	}

	if err := e.performOrderBookTask(ctx, symbol, task); err != nil {
		return NewZeroUint(), err
	}
	return cancelled, nil
}

////////////////////////////////////////////////////////////////
// Queries
////////////////////////////////////////////////////////////////

// Snapshot returns up to depth best levels of both sides of the symbol order book.
func (e *Engine) Snapshot(symbol string, depth int) (Snapshot, error) {
	ob := e.OrderBook(symbol)
	if ob == nil {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrOrderBookNotFound, symbol)
	}
	return ob.Snapshot(depth), nil
}

// BestBid returns the best bid level of the symbol order book.
func (e *Engine) BestBid(symbol string) (PriceLevelL2, bool, error) {
	ob := e.OrderBook(symbol)
	if ob == nil {
		return PriceLevelL2{}, false, fmt.Errorf("%w: %s", ErrOrderBookNotFound, symbol)
	}
	level, ok := ob.BestBid()
	return level, ok, nil
}

// BestAsk returns the best ask level of the symbol order book.
func (e *Engine) BestAsk(symbol string) (PriceLevelL2, bool, error) {
	ob := e.OrderBook(symbol)
	if ob == nil {
		return PriceLevelL2{}, false, fmt.Errorf("%w: %s", ErrOrderBookNotFound, symbol)
	}
	level, ok := ob.BestAsk()
	return level, ok, nil
}

////////////////////////////////////////////////////////////////
// Loops
////////////////////////////////////////////////////////////////

// loopOrderBook is unique for order book goroutine separately working with given order book and performing enqueued tasks.
func (e *Engine) loopOrderBook(ob *OrderBook) {
	defer ob.wg.Done()

	// Loop over order book tasks from the queue
	for {
		select {
		case task, ok := <-ob.chanTasks:
			if !ok {
				return
			}
			task(ob)
		case <-ob.chanForcedStop:
			return
		}
	}
}

////////////////////////////////////////////////////////////////
// Internal helpers
////////////////////////////////////////////////////////////////

// orderBookTask mutates the order book and returns events to deliver once the result is handed back.
type orderBookTask func(ob *OrderBook) (events func(), err error)

func (e *Engine) performOrderBookTask(ctx context.Context, symbol string, task orderBookTask) error {
	e.mu.RLock()
	stopped := e.stopped
	ob, ok := e.orderBooks.Get(symbol)
	e.mu.RUnlock()
	if stopped {
		return ErrEngineStopped
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrOrderBookNotFound, symbol)
	}

	if !e.multithread {
		// Task and its events go together so concurrent callers see events in matching order
		ob.taskMu.Lock()
		defer ob.taskMu.Unlock()

		events, err := task(ob)
		e.deliver(ob, events, err)
		return err
	}

	done := make(chan error, 1)
	wrapped := func(ob *OrderBook) {
		// Caller is gone, skip the task
		if err := ctx.Err(); err != nil {
			done <- err
			return
		}
		events, err := task(ob)
		done <- err
		e.deliver(ob, events, err)
	}

	// Engine lock is not held while waiting for a free slot in the queue
	if err := ob.enqueue(ctx, wrapped); err != nil {
		if errors.Is(err, errOrderBookClosed) {
			return e.closedError(symbol)
		}
		return err
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-ob.chanForcedStop:
		return ErrEngineStopped
	}
}

// closedError tells a stopped engine from a deleted order book.
func (e *Engine) closedError(symbol string) error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.stopped {
		return ErrEngineStopped
	}
	return fmt.Errorf("%w: %s", ErrOrderBookNotFound, symbol)
}

func (e *Engine) deliver(ob *OrderBook, events func(), err error) {
	if err != nil {
		e.logger.Debug().Err(err).Str("symbol", ob.symbol.name).Msg("order book task rejected")
		// Call the corresponding handler
		e.handler.OnError(ob, err)
		return
	}
	if events != nil {
		events()
	}
}

func (e *Engine) handleUpdatePriceLevel(ob *OrderBook, update PriceLevelUpdate) {
	switch update.Kind {
	case PriceLevelUpdateKindAdd:
		e.handler.OnAddPriceLevel(ob, update)
	case PriceLevelUpdateKindUpdate:
		e.handler.OnUpdatePriceLevel(ob, update)
	case PriceLevelUpdateKindDelete:
		e.handler.OnDeletePriceLevel(ob, update)
	}
}
