package main

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/cryptonstudio/crypton-orderbook/matching"
)

var _ matching.Handler = &Matcher{}

// Matcher counts engine events.
type Matcher struct {
	orderBookUpdates  [2]uint64
	priceLevelUpdates [3]uint64
	orderUpdates      [2]uint64
	trades            uint64
	errors            uint64
	totalUpdates      uint64
}

func (m *Matcher) OnAddOrderBook(orderBook *matching.OrderBook) {
	atomic.AddUint64(&m.orderBookUpdates[0], 1)
	atomic.AddUint64(&m.totalUpdates, 1)
}

func (m *Matcher) OnDeleteOrderBook(orderBook *matching.OrderBook) {
	atomic.AddUint64(&m.orderBookUpdates[1], 1)
	atomic.AddUint64(&m.totalUpdates, 1)
}

func (m *Matcher) OnAddPriceLevel(orderBook *matching.OrderBook, update matching.PriceLevelUpdate) {
	atomic.AddUint64(&m.priceLevelUpdates[0], 1)
	atomic.AddUint64(&m.totalUpdates, 1)
}

func (m *Matcher) OnUpdatePriceLevel(orderBook *matching.OrderBook, update matching.PriceLevelUpdate) {
	atomic.AddUint64(&m.priceLevelUpdates[1], 1)
	atomic.AddUint64(&m.totalUpdates, 1)
}

func (m *Matcher) OnDeletePriceLevel(orderBook *matching.OrderBook, update matching.PriceLevelUpdate) {
	atomic.AddUint64(&m.priceLevelUpdates[2], 1)
	atomic.AddUint64(&m.totalUpdates, 1)
}

func (m *Matcher) OnSubmitOrder(orderBook *matching.OrderBook, order matching.Order, result matching.SubmitResult) {
	atomic.AddUint64(&m.orderUpdates[0], 1)
	atomic.AddUint64(&m.totalUpdates, 1)
}

func (m *Matcher) OnCancelOrder(orderBook *matching.OrderBook, order matching.Order, cancelled matching.Uint) {
	atomic.AddUint64(&m.orderUpdates[1], 1)
	atomic.AddUint64(&m.totalUpdates, 1)
}

func (m *Matcher) OnExecuteTrade(orderBook *matching.OrderBook, trade matching.Trade) {
	atomic.AddUint64(&m.trades, 1)
	atomic.AddUint64(&m.totalUpdates, 1)
}

func (m *Matcher) OnError(orderBook *matching.OrderBook, err error) {
	atomic.AddUint64(&m.errors, 1)
}

func (m *Matcher) PrintStatistics(w io.Writer, elapsed time.Duration) {
	fmt.Fprintf(w, "MATCHING ENGINE HANDLER:\n")
	fmt.Fprintf(w, "Order book adds %13d\n", atomic.LoadUint64(&m.orderBookUpdates[0]))
	fmt.Fprintf(w, "Order book deletes %10d\n", atomic.LoadUint64(&m.orderBookUpdates[1]))
	fmt.Fprintf(w, "Price level adds %12d\n", atomic.LoadUint64(&m.priceLevelUpdates[0]))
	fmt.Fprintf(w, "Price level updates %9d\n", atomic.LoadUint64(&m.priceLevelUpdates[1]))
	fmt.Fprintf(w, "Price level deletes %9d\n", atomic.LoadUint64(&m.priceLevelUpdates[2]))
	fmt.Fprintf(w, "Order submits %15d\n", atomic.LoadUint64(&m.orderUpdates[0]))
	fmt.Fprintf(w, "Order cancels %15d\n", atomic.LoadUint64(&m.orderUpdates[1]))
	fmt.Fprintf(w, "Executed trades %13d\n", atomic.LoadUint64(&m.trades))
	fmt.Fprintf(w, "Errors %22d\n", atomic.LoadUint64(&m.errors))
	fmt.Fprintf(w, "Total calls %17d\n", atomic.LoadUint64(&m.totalUpdates))
	fmt.Fprintf(w, "Time elapsed: %f seconds\n", elapsed.Seconds())
}
