package main

import (
	"fmt"
	"sync/atomic"

	"github.com/cryptonstudio/crypton-orderbook/matching"
)

// Counter counts the events needed for the throughput report.
type Counter struct {
	matching.NopHandler

	submits atomic.Uint64
	cancels atomic.Uint64
	trades  atomic.Uint64
	levels  atomic.Uint64
	errors  atomic.Uint64
}

func (c *Counter) OnSubmitOrder(orderBook *matching.OrderBook, order matching.Order, result matching.SubmitResult) {
	c.submits.Add(1)
}

func (c *Counter) OnCancelOrder(orderBook *matching.OrderBook, order matching.Order, cancelled matching.Uint) {
	c.cancels.Add(1)
}

func (c *Counter) OnExecuteTrade(orderBook *matching.OrderBook, trade matching.Trade) {
	c.trades.Add(1)
}

func (c *Counter) OnAddPriceLevel(orderBook *matching.OrderBook, update matching.PriceLevelUpdate) {
	c.levels.Add(1)
}

func (c *Counter) OnUpdatePriceLevel(orderBook *matching.OrderBook, update matching.PriceLevelUpdate) {
	c.levels.Add(1)
}

func (c *Counter) OnDeletePriceLevel(orderBook *matching.OrderBook, update matching.PriceLevelUpdate) {
	c.levels.Add(1)
}

func (c *Counter) OnError(orderBook *matching.OrderBook, err error) {
	c.errors.Add(1)
}

func (c *Counter) PrintStatistics() {
	fmt.Printf("Submits %15d\n", c.submits.Load())
	fmt.Printf("Cancels %15d\n", c.cancels.Load())
	fmt.Printf("Trades %16d\n", c.trades.Load())
	fmt.Printf("Level updates %9d\n", c.levels.Load())
	fmt.Printf("Errors %16d\n", c.errors.Load())
}
