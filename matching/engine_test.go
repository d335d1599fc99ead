package matching_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	matching "github.com/cryptonstudio/crypton-orderbook/matching"
	mockmatching "github.com/cryptonstudio/crypton-orderbook/matching/mocks"
)

func price(v uint64) matching.Uint {
	return matching.NewUint(v).Mul64(matching.UintPrecision)
}

func TestEngineOrderBooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := mockmatching.NewMockHandler(ctrl)
	handler.EXPECT().OnAddOrderBook(gomock.Any()).Times(2)
	handler.EXPECT().OnDeleteOrderBook(gomock.Any()).Times(1)

	engine := matching.NewEngine(handler, zerolog.Nop(), false)

	_, err := engine.AddOrderBook(matching.NewSymbol("MSFT"))
	require.NoError(t, err)
	_, err = engine.AddOrderBook(matching.NewSymbol("AAPL"))
	require.NoError(t, err)

	_, err = engine.AddOrderBook(matching.NewSymbol("AAPL"))
	require.ErrorIs(t, err, matching.ErrOrderBookDuplicate)
	_, err = engine.AddOrderBook(matching.NewSymbol(""))
	require.ErrorIs(t, err, matching.ErrInvalidSymbol)

	require.Equal(t, 2, engine.OrderBooks())
	require.Equal(t, []string{"AAPL", "MSFT"}, engine.Symbols())
	require.NotNil(t, engine.OrderBook("AAPL"))

	_, err = engine.DeleteOrderBook("MSFT")
	require.NoError(t, err)
	_, err = engine.DeleteOrderBook("MSFT")
	require.ErrorIs(t, err, matching.ErrOrderBookNotFound)
	require.Nil(t, engine.OrderBook("MSFT"))

	_, err = engine.Submit(context.Background(), "MSFT", matching.OrderSideBuy, price(1), price(1))
	require.ErrorIs(t, err, matching.ErrOrderBookNotFound)
	_, err = engine.Snapshot("MSFT", 0)
	require.ErrorIs(t, err, matching.ErrOrderBookNotFound)
}

func TestEngineSubmitEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	handler := mockmatching.NewMockHandler(ctrl)
	handler.EXPECT().OnAddOrderBook(gomock.Any())

	engine := matching.NewEngine(handler, zerolog.Nop(), false)
	_, err := engine.AddOrderBook(matching.NewSymbol("AAPL"))
	require.NoError(t, err)

	gomock.InOrder(
		handler.EXPECT().OnSubmitOrder(gomock.Any(), gomock.Any(), gomock.Any()).
			Do(func(_ *matching.OrderBook, order matching.Order, result matching.SubmitResult) {
				require.Equal(t, matching.OrderSideSell, order.Side())
				require.Equal(t, matching.OrderStatusOpen, result.Status())
			}),
		handler.EXPECT().OnAddPriceLevel(gomock.Any(), gomock.Any()).
			Do(func(_ *matching.OrderBook, update matching.PriceLevelUpdate) {
				require.Equal(t, matching.OrderSideSell, update.Side)
				require.True(t, update.Top)
			}),
		handler.EXPECT().OnSubmitOrder(gomock.Any(), gomock.Any(), gomock.Any()),
		handler.EXPECT().OnExecuteTrade(gomock.Any(), matching.Trade{
			BuyPrice:  price(101),
			SellPrice: price(100),
			Quantity:  price(4),
		}),
		handler.EXPECT().OnUpdatePriceLevel(gomock.Any(), gomock.Any()).
			Do(func(_ *matching.OrderBook, update matching.PriceLevelUpdate) {
				require.Equal(t, price(6), update.Quantity)
			}),
	)

	result, err := engine.Submit(ctx, "AAPL", matching.OrderSideSell, price(100), price(10))
	require.NoError(t, err)
	require.Equal(t, uint64(1), result.OrderID)

	result, err = engine.Submit(ctx, "AAPL", matching.OrderSideBuy, price(101), price(4))
	require.NoError(t, err)
	require.Equal(t, uint64(2), result.OrderID)
	require.Len(t, result.Trades, 1)
	require.True(t, result.Remaining.IsZero())

	ask, ok, err := engine.BestAsk("AAPL")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, price(6), ask.Quantity)

	_, ok, err = engine.BestBid("AAPL")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEngineRejectsInvalidOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := mockmatching.NewMockHandler(ctrl)
	handler.EXPECT().OnAddOrderBook(gomock.Any())
	handler.EXPECT().OnError(gomock.Any(), matching.ErrInvalidOrderQuantity)

	engine := matching.NewEngine(handler, zerolog.Nop(), false)
	_, err := engine.AddOrderBook(matching.NewSymbol("AAPL"))
	require.NoError(t, err)

	_, err = engine.Submit(context.Background(), "AAPL", matching.OrderSideBuy, price(100), matching.NewZeroUint())
	require.ErrorIs(t, err, matching.ErrInvalidOrderQuantity)

	snapshot, err := engine.Snapshot("AAPL", 0)
	require.NoError(t, err)
	require.Empty(t, snapshot.Bids)
	require.Empty(t, snapshot.Asks)
}

func TestEngineSubmitAtReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	engine := matching.NewEngine(matching.NopHandler{}, zerolog.Nop(), false)
	_, err := engine.AddOrderBook(matching.NewSymbol("AAPL"))
	require.NoError(t, err)

	source := mockmatching.NewMockPriceSource(ctrl)
	gomock.InOrder(
		source.EXPECT().Price(gomock.Any(), "AAPL").Return(matching.Uint{}, matching.ErrPriceUnavailable),
		source.EXPECT().Price(gomock.Any(), "AAPL").Return(price(150), nil),
	)

	_, err = engine.SubmitAtReference(ctx, source, "AAPL", matching.OrderSideBuy, price(2))
	require.ErrorIs(t, err, matching.ErrPriceUnavailable)
	require.True(t, engine.OrderBook("AAPL").IsEmpty())

	result, err := engine.SubmitAtReference(ctx, source, "AAPL", matching.OrderSideBuy, price(2))
	require.NoError(t, err)
	require.Equal(t, price(2), result.Remaining)

	bid, ok, err := engine.BestBid("AAPL")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, price(150), bid.Price)
}

func TestEngineCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	handler := mockmatching.NewMockHandler(ctrl)
	handler.EXPECT().OnAddOrderBook(gomock.Any())
	handler.EXPECT().OnSubmitOrder(gomock.Any(), gomock.Any(), gomock.Any())
	handler.EXPECT().OnAddPriceLevel(gomock.Any(), gomock.Any())
	gomock.InOrder(
		handler.EXPECT().OnCancelOrder(gomock.Any(), gomock.Any(), price(1)),
		handler.EXPECT().OnUpdatePriceLevel(gomock.Any(), gomock.Any()),
		handler.EXPECT().OnCancelOrder(gomock.Any(), gomock.Any(), matching.NewZeroUint()),
		handler.EXPECT().OnCancelOrder(gomock.Any(), gomock.Any(), price(2)),
		handler.EXPECT().OnDeletePriceLevel(gomock.Any(), gomock.Any()),
	)

	engine := matching.NewEngine(handler, zerolog.Nop(), false)
	_, err := engine.AddOrderBook(matching.NewSymbol("AAPL"))
	require.NoError(t, err)

	_, err = engine.Submit(ctx, "AAPL", matching.OrderSideBuy, price(50), price(3))
	require.NoError(t, err)

	cancelled, err := engine.Cancel(ctx, "AAPL", matching.OrderSideBuy, price(50), price(1))
	require.NoError(t, err)
	require.Equal(t, price(1), cancelled)

	cancelled, err = engine.Cancel(ctx, "AAPL", matching.OrderSideSell, price(50), price(1))
	require.NoError(t, err)
	require.True(t, cancelled.IsZero())

	cancelled, err = engine.Cancel(ctx, "AAPL", matching.OrderSideBuy, price(50), price(5))
	require.NoError(t, err)
	require.Equal(t, price(2), cancelled)
	require.True(t, engine.OrderBook("AAPL").IsEmpty())
}

// orderedHandler checks that price level updates of every book arrive in order.
type orderedHandler struct {
	matching.NopHandler

	mu      sync.Mutex
	last    map[string]uint64
	trades  int
	invalid int
}

func (h *orderedHandler) check(ob *matching.OrderBook, update matching.PriceLevelUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()
	name := ob.Symbol().Name()
	if update.ID != h.last[name]+1 {
		h.invalid++
	}
	h.last[name] = update.ID
}

func (h *orderedHandler) OnAddPriceLevel(ob *matching.OrderBook, update matching.PriceLevelUpdate) {
	h.check(ob, update)
}

func (h *orderedHandler) OnUpdatePriceLevel(ob *matching.OrderBook, update matching.PriceLevelUpdate) {
	h.check(ob, update)
}

func (h *orderedHandler) OnDeletePriceLevel(ob *matching.OrderBook, update matching.PriceLevelUpdate) {
	h.check(ob, update)
}

func (h *orderedHandler) OnExecuteTrade(*matching.OrderBook, matching.Trade) {
	h.mu.Lock()
	h.trades++
	h.mu.Unlock()
}

func TestEngineMultithread(t *testing.T) {
	handler := &orderedHandler{last: map[string]uint64{}}
	engine := matching.NewEngine(handler, zerolog.Nop(), true)

	symbols := []string{"AAPL", "MSFT", "GOOG"}
	for _, s := range symbols {
		_, err := engine.AddOrderBook(matching.NewSymbol(s))
		require.NoError(t, err)
	}

	ctx := context.Background()
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		trades int
	)
	for w := 0; w < 6; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 300; i++ {
				side := matching.OrderSideBuy
				if i%2 == 1 {
					side = matching.OrderSideSell
				}
				symbol := symbols[(w+i)%len(symbols)]
				result, err := engine.Submit(ctx, symbol, side, price(uint64(100+(w+i*7)%9)), price(uint64(i%4+1)))
				if err != nil {
					t.Error(err)
					return
				}
				mu.Lock()
				trades += len(result.Trades)
				mu.Unlock()
			}
		}(w)
	}
	wg.Wait()

	for _, s := range symbols {
		snapshot, err := engine.Snapshot(s, 1)
		require.NoError(t, err)
		if len(snapshot.Bids) > 0 && len(snapshot.Asks) > 0 {
			require.True(t, snapshot.Bids[0].Price.LessThan(snapshot.Asks[0].Price))
		}
	}

	engine.Stop(false)

	handler.mu.Lock()
	defer handler.mu.Unlock()
	require.Zero(t, handler.invalid)
	require.Equal(t, trades, handler.trades)

	_, err := engine.Submit(ctx, "AAPL", matching.OrderSideBuy, price(1), price(1))
	require.ErrorIs(t, err, matching.ErrEngineStopped)
	_, err = engine.AddOrderBook(matching.NewSymbol("TSLA"))
	require.ErrorIs(t, err, matching.ErrEngineStopped)
}

func TestEngineCanceledContext(t *testing.T) {
	engine := matching.NewEngine(nil, zerolog.Nop(), true)
	defer engine.Stop(true)

	_, err := engine.AddOrderBook(matching.NewSymbol("AAPL"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = engine.Submit(ctx, "AAPL", matching.OrderSideBuy, price(1), price(1))
	require.ErrorIs(t, err, context.Canceled)
}

func TestHandlersFanOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := mockmatching.NewMockHandler(ctrl)
	second := mockmatching.NewMockHandler(ctrl)
	for _, h := range []*mockmatching.MockHandler{first, second} {
		h.EXPECT().OnAddOrderBook(gomock.Any())
		h.EXPECT().OnSubmitOrder(gomock.Any(), gomock.Any(), gomock.Any()).Times(2)
		h.EXPECT().OnAddPriceLevel(gomock.Any(), gomock.Any())
		h.EXPECT().OnExecuteTrade(gomock.Any(), gomock.Any())
		h.EXPECT().OnDeletePriceLevel(gomock.Any(), gomock.Any())
	}

	engine := matching.NewEngine(matching.Handlers(first, second), zerolog.Nop(), false)
	_, err := engine.AddOrderBook(matching.NewSymbol("AAPL"))
	require.NoError(t, err)

	for _, side := range []matching.OrderSide{matching.OrderSideSell, matching.OrderSideBuy} {
		_, err = engine.Submit(context.Background(), "AAPL", side, price(10), price(1))
		require.NoError(t, err, fmt.Sprint(side))
	}
}

// gateHandler holds the first submit event until released and records price level update IDs.
type gateHandler struct {
	matching.NopHandler

	entered chan struct{}
	release chan struct{}
	once    sync.Once

	mu  sync.Mutex
	ids []uint64
}

func (h *gateHandler) OnSubmitOrder(*matching.OrderBook, matching.Order, matching.SubmitResult) {
	h.once.Do(func() {
		close(h.entered)
		<-h.release
	})
}

func (h *gateHandler) OnAddPriceLevel(_ *matching.OrderBook, update matching.PriceLevelUpdate) {
	h.mu.Lock()
	h.ids = append(h.ids, update.ID)
	h.mu.Unlock()
}

func (h *gateHandler) OnUpdatePriceLevel(ob *matching.OrderBook, update matching.PriceLevelUpdate) {
	h.OnAddPriceLevel(ob, update)
}

func TestEngineInlineEventsKeepOrder(t *testing.T) {
	handler := &gateHandler{entered: make(chan struct{}), release: make(chan struct{})}
	engine := matching.NewEngine(handler, zerolog.Nop(), false)
	_, err := engine.AddOrderBook(matching.NewSymbol("AAPL"))
	require.NoError(t, err)

	ctx := context.Background()
	wg := sync.WaitGroup{}
	for range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Submit(ctx, "AAPL", matching.OrderSideBuy, price(10), price(1))
			require.NoError(t, err)
		}()
		// Second submit starts only when the first one is stuck in the handler
		<-handler.entered
	}

	time.Sleep(20 * time.Millisecond)
	close(handler.release)
	wg.Wait()

	handler.mu.Lock()
	defer handler.mu.Unlock()
	require.Equal(t, []uint64{1, 2}, handler.ids)
}
