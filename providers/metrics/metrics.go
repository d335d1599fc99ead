// Package metrics exports matching engine events as prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cryptonstudio/crypton-orderbook/matching"
)

// Metrics is a matching.Handler counting engine events per symbol.
type Metrics struct {
	matching.NopHandler

	OrderBooks        prometheus.Gauge
	OrdersSubmitted   *prometheus.CounterVec
	OrdersCancelled   *prometheus.CounterVec
	Trades            *prometheus.CounterVec
	TradedQuantity    *prometheus.CounterVec
	PriceLevelUpdates *prometheus.CounterVec
	Errors            *prometheus.CounterVec
}

var _ matching.Handler = (*Metrics)(nil)

// New creates unregistered engine metrics.
func New() *Metrics {
	return &Metrics{
		OrderBooks: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "orderbook_order_books", Help: "Order books currently registered"}),
		OrdersSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderbook_orders_submitted_total", Help: "Accepted orders by symbol and resulting status"},
			[]string{"symbol", "status"}),
		OrdersCancelled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderbook_orders_cancelled_total", Help: "Cancel requests by symbol"},
			[]string{"symbol"}),
		Trades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderbook_trades_total", Help: "Executed trades by symbol"},
			[]string{"symbol"}),
		TradedQuantity: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderbook_traded_quantity_total", Help: "Executed quantity by symbol"},
			[]string{"symbol"}),
		PriceLevelUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderbook_price_level_updates_total", Help: "Price level updates by symbol, side and kind"},
			[]string{"symbol", "side", "kind"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orderbook_errors_total", Help: "Rejected order book tasks by symbol"},
			[]string{"symbol"}),
	}
}

// Collectors returns all engine metrics.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.OrderBooks, m.OrdersSubmitted, m.OrdersCancelled, m.Trades,
		m.TradedQuantity, m.PriceLevelUpdates, m.Errors,
	}
}

// NewRegistry creates registry with Go runtime and process collectors and the given collectors.
func NewRegistry(cs ...prometheus.Collector) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	cs = append(cs, collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Handler serves the registry in the prometheus exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

////////////////////////////////////////////////////////////////
// Handler
////////////////////////////////////////////////////////////////

func (m *Metrics) OnAddOrderBook(*matching.OrderBook) {
	m.OrderBooks.Inc()
}

func (m *Metrics) OnDeleteOrderBook(*matching.OrderBook) {
	m.OrderBooks.Dec()
}

func (m *Metrics) OnAddPriceLevel(ob *matching.OrderBook, update matching.PriceLevelUpdate) {
	m.priceLevel(ob, update)
}

func (m *Metrics) OnUpdatePriceLevel(ob *matching.OrderBook, update matching.PriceLevelUpdate) {
	m.priceLevel(ob, update)
}

func (m *Metrics) OnDeletePriceLevel(ob *matching.OrderBook, update matching.PriceLevelUpdate) {
	m.priceLevel(ob, update)
}

func (m *Metrics) OnSubmitOrder(ob *matching.OrderBook, _ matching.Order, result matching.SubmitResult) {
	m.OrdersSubmitted.WithLabelValues(ob.Symbol().Name(), result.Status().String()).Inc()
}

func (m *Metrics) OnCancelOrder(ob *matching.OrderBook, _ matching.Order, _ matching.Uint) {
	m.OrdersCancelled.WithLabelValues(ob.Symbol().Name()).Inc()
}

func (m *Metrics) OnExecuteTrade(ob *matching.OrderBook, trade matching.Trade) {
	symbol := ob.Symbol().Name()
	m.Trades.WithLabelValues(symbol).Inc()
	m.TradedQuantity.WithLabelValues(symbol).Add(trade.Quantity.ToFloat64())
}

func (m *Metrics) OnError(ob *matching.OrderBook, _ error) {
	m.Errors.WithLabelValues(ob.Symbol().Name()).Inc()
}

func (m *Metrics) priceLevel(ob *matching.OrderBook, update matching.PriceLevelUpdate) {
	m.PriceLevelUpdates.WithLabelValues(ob.Symbol().Name(), update.Side.String(), update.Kind.String()).Inc()
}
