package matching_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/cryptonstudio/crypton-orderbook/matching"
)

func TestNoEventsAfterStop(t *testing.T) {
	for _, forced := range []bool{false, true} {
		for range 50 {
			wtch := &watchHandler{}
			engine := matching.NewEngine(wtch, zerolog.Nop(), true)
			_, err := engine.AddOrderBook(matching.NewSymbol("AAPL"))
			require.NoError(t, err)

			ctx := context.Background()
			wg := sync.WaitGroup{}
			for w := range 4 {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					for i := range 100 {
						side := matching.OrderSideBuy
						if (w+i)%2 == 1 {
							side = matching.OrderSideSell
						}
						_, err := engine.Submit(ctx, "AAPL", side, price(2), price(uint64(i%3+1)))
						if err != nil && !errors.Is(err, matching.ErrEngineStopped) {
							t.Error(err)
							return
						}
					}
				}(w)
			}

			time.Sleep(time.Microsecond * 50)
			engine.Stop(forced)
			wtch.start()
			wg.Wait()
			time.Sleep(time.Millisecond)
			require.Equal(t, int64(0), wtch.counter.Load(), "forced=%v", forced)
		}
	}
}

func TestStopTwice(t *testing.T) {
	engine := matching.NewEngine(nil, zerolog.Nop(), true)
	_, err := engine.AddOrderBook(matching.NewSymbol("AAPL"))
	require.NoError(t, err)

	engine.Stop(false)
	engine.Stop(true)
	require.Zero(t, engine.OrderBooks())

	_, err = engine.Cancel(context.Background(), "AAPL", matching.OrderSideBuy, price(1), price(1))
	require.ErrorIs(t, err, matching.ErrEngineStopped)
}

// watchHandler counts events delivered once start was called.
type watchHandler struct {
	matching.NopHandler

	mx      sync.Mutex
	do      atomic.Bool
	counter atomic.Int64
}

func (wh *watchHandler) start() {
	wh.mx.Lock()
	defer wh.mx.Unlock()
	wh.do.Store(true)
}

func (wh *watchHandler) inc() {
	wh.mx.Lock()
	defer wh.mx.Unlock()
	if wh.do.Load() {
		wh.counter.Add(1)
	}
}

func (wh *watchHandler) OnAddPriceLevel(*matching.OrderBook, matching.PriceLevelUpdate)    { wh.inc() }
func (wh *watchHandler) OnUpdatePriceLevel(*matching.OrderBook, matching.PriceLevelUpdate) { wh.inc() }
func (wh *watchHandler) OnDeletePriceLevel(*matching.OrderBook, matching.PriceLevelUpdate) { wh.inc() }
func (wh *watchHandler) OnSubmitOrder(*matching.OrderBook, matching.Order, matching.SubmitResult) {
	wh.inc()
}
func (wh *watchHandler) OnExecuteTrade(*matching.OrderBook, matching.Trade) { wh.inc() }
func (wh *watchHandler) OnError(*matching.OrderBook, error)                 { wh.inc() }
