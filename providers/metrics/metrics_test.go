package metrics

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/cryptonstudio/crypton-orderbook/matching"
)

func price(v uint64) matching.Uint {
	return matching.NewUint(v).Mul64(matching.UintPrecision)
}

func TestMetricsCountEngineEvents(t *testing.T) {
	m := New()
	engine := matching.NewEngine(m, zerolog.Nop(), false)
	_, err := engine.AddOrderBook(matching.NewSymbol("AAPL"))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = engine.Submit(ctx, "AAPL", matching.OrderSideSell, price(100), price(10))
	require.NoError(t, err)
	_, err = engine.Submit(ctx, "AAPL", matching.OrderSideBuy, price(101), price(4))
	require.NoError(t, err)
	_, err = engine.Cancel(ctx, "AAPL", matching.OrderSideSell, price(100), price(1))
	require.NoError(t, err)
	_, err = engine.Submit(ctx, "AAPL", matching.OrderSideBuy, matching.NewZeroUint(), price(1))
	require.ErrorIs(t, err, matching.ErrInvalidOrderPrice)

	require.Equal(t, 1.0, testutil.ToFloat64(m.OrderBooks))
	require.Equal(t, 1.0, testutil.ToFloat64(m.OrdersSubmitted.WithLabelValues("AAPL", "open")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.OrdersSubmitted.WithLabelValues("AAPL", "executed")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.OrdersCancelled.WithLabelValues("AAPL")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Trades.WithLabelValues("AAPL")))
	require.InDelta(t, 4.0, testutil.ToFloat64(m.TradedQuantity.WithLabelValues("AAPL")), 1e-9)
	require.Equal(t, 1.0, testutil.ToFloat64(m.PriceLevelUpdates.WithLabelValues("AAPL", "sell", "add")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.PriceLevelUpdates.WithLabelValues("AAPL", "sell", "update")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("AAPL")))

	_, err = engine.DeleteOrderBook("AAPL")
	require.NoError(t, err)
	require.Zero(t, testutil.ToFloat64(m.OrderBooks))
}

func TestHandlerServesRegistry(t *testing.T) {
	m := New()
	reg, err := NewRegistry(m.Collectors()...)
	require.NoError(t, err)

	ob := matching.NewOrderBook(nil, matching.NewSymbol("AAPL"), 0)
	m.OnExecuteTrade(ob, matching.Trade{Quantity: price(2)})

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body := rec.Body.String()
	require.True(t, strings.Contains(body, `orderbook_trades_total{symbol="AAPL"} 1`), body)
	require.Contains(t, body, "go_goroutines")
}
