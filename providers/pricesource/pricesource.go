// Package pricesource contains reference price providers used to price orders
// submitted without an explicit limit price.
package pricesource

import (
	"context"
	"errors"
	"sync"

	"github.com/tidwall/hashmap"

	"github.com/cryptonstudio/crypton-orderbook/matching"
)

var (
	_ matching.PriceSource = (*Static)(nil)
	_ matching.PriceSource = (*LastTrade)(nil)
	_ matching.PriceSource = Chain(nil)
	_ matching.Handler     = (*LastTrade)(nil)
)

////////////////////////////////////////////////////////////////
// Static
////////////////////////////////////////////////////////////////

// Static is a fixed symbol to price table.
type Static struct {
	prices map[string]matching.Uint
}

// NewStatic creates static price source from the given table. The table is copied.
func NewStatic(prices map[string]matching.Uint) *Static {
	s := &Static{prices: make(map[string]matching.Uint, len(prices))}
	for symbol, price := range prices {
		s.prices[symbol] = price
	}
	return s
}

// Price returns the configured price or matching.ErrPriceUnavailable.
func (s *Static) Price(_ context.Context, symbol string) (matching.Uint, error) {
	price, ok := s.prices[symbol]
	if !ok || price.IsZero() {
		return matching.Uint{}, matching.ErrPriceUnavailable
	}
	return price, nil
}

////////////////////////////////////////////////////////////////
// LastTrade
////////////////////////////////////////////////////////////////

// LastTrade remembers the sell price of the last trade of every order book.
// It must be registered as an engine handler to receive trades.
type LastTrade struct {
	matching.NopHandler

	mu     sync.RWMutex
	prices *hashmap.Map[string, matching.Uint]
}

// NewLastTrade creates empty last trade price source.
func NewLastTrade() *LastTrade {
	return &LastTrade{
		prices: hashmap.New[string, matching.Uint](0),
	}
}

// Price returns the last trade price or matching.ErrPriceUnavailable before the first trade.
func (lt *LastTrade) Price(_ context.Context, symbol string) (matching.Uint, error) {
	lt.mu.RLock()
	defer lt.mu.RUnlock()

	price, ok := lt.prices.Get(symbol)
	if !ok {
		return matching.Uint{}, matching.ErrPriceUnavailable
	}
	return price, nil
}

func (lt *LastTrade) OnExecuteTrade(ob *matching.OrderBook, trade matching.Trade) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	lt.prices.Set(ob.Symbol().Name(), trade.SellPrice)
}

func (lt *LastTrade) OnDeleteOrderBook(ob *matching.OrderBook) {
	lt.mu.Lock()
	defer lt.mu.Unlock()

	lt.prices.Delete(ob.Symbol().Name())
}

////////////////////////////////////////////////////////////////
// Chain
////////////////////////////////////////////////////////////////

// Chain asks sources in order and returns the first available price.
// Any error other than matching.ErrPriceUnavailable stops the chain.
type Chain []matching.PriceSource

func (c Chain) Price(ctx context.Context, symbol string) (matching.Uint, error) {
	for _, source := range c {
		price, err := source.Price(ctx, symbol)
		switch {
		case err == nil:
			return price, nil
		case errors.Is(err, matching.ErrPriceUnavailable):
			continue
		default:
			return matching.Uint{}, err
		}
	}
	return matching.Uint{}, matching.ErrPriceUnavailable
}
