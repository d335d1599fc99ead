// Package tradefeed publishes trades and price level updates to Kafka.
// Messages are keyed by symbol so one partition sees one symbol in order.
package tradefeed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cryptonstudio/crypton-orderbook/matching"
)

const defaultPublishTimeout = 5 * time.Second

// Event types.
const (
	EventTypeTrade      = "trade"
	EventTypePriceLevel = "price_level"
)

// MessageWriter is implemented by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Event is the JSON payload of every published message.
type Event struct {
	Type       string                     `json:"type"`
	Symbol     string                     `json:"symbol"`
	Trade      *matching.Trade            `json:"trade,omitempty"`
	PriceLevel *matching.PriceLevelUpdate `json:"price_level,omitempty"`
	Time       time.Time                  `json:"time"`
}

// NewWriter creates Kafka writer waiting for all in-sync replicas.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		BatchTimeout: 10 * time.Millisecond,
	}
}

// Feed is a matching.Handler publishing order book events.
type Feed struct {
	matching.NopHandler

	writer  MessageWriter
	logger  zerolog.Logger
	timeout time.Duration

	published prometheus.Counter
	failed    prometheus.Counter
}

var _ matching.Handler = (*Feed)(nil)

// New creates the feed on top of the given writer.
func New(writer MessageWriter, logger zerolog.Logger) *Feed {
	return &Feed{
		writer:  writer,
		logger:  logger.With().Str("component", "tradefeed").Logger(),
		timeout: defaultPublishTimeout,
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orderbook_feed_messages_published_total", Help: "Messages written to Kafka"}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orderbook_feed_messages_failed_total", Help: "Messages failed to encode or write"}),
	}
}

// Collectors returns the feed counters to register.
func (f *Feed) Collectors() []prometheus.Collector {
	return []prometheus.Collector{f.published, f.failed}
}

// Close closes the underlying writer flushing pending messages.
func (f *Feed) Close() error {
	return f.writer.Close()
}

////////////////////////////////////////////////////////////////
// Handler
////////////////////////////////////////////////////////////////

func (f *Feed) OnExecuteTrade(ob *matching.OrderBook, trade matching.Trade) {
	f.publish(Event{
		Type:   EventTypeTrade,
		Symbol: ob.Symbol().Name(),
		Trade:  &trade,
	})
}

func (f *Feed) OnAddPriceLevel(ob *matching.OrderBook, update matching.PriceLevelUpdate) {
	f.publishPriceLevel(ob, update)
}

func (f *Feed) OnUpdatePriceLevel(ob *matching.OrderBook, update matching.PriceLevelUpdate) {
	f.publishPriceLevel(ob, update)
}

func (f *Feed) OnDeletePriceLevel(ob *matching.OrderBook, update matching.PriceLevelUpdate) {
	f.publishPriceLevel(ob, update)
}

////////////////////////////////////////////////////////////////
// Internal helpers
////////////////////////////////////////////////////////////////

func (f *Feed) publishPriceLevel(ob *matching.OrderBook, update matching.PriceLevelUpdate) {
	f.publish(Event{
		Type:       EventTypePriceLevel,
		Symbol:     ob.Symbol().Name(),
		PriceLevel: &update,
	})
}

func (f *Feed) publish(event Event) {
	event.Time = time.Now().UTC()

	value, err := json.Marshal(event)
	if err != nil {
		f.failed.Inc()
		f.logger.Error().Err(err).Str("symbol", event.Symbol).Str("type", event.Type).Msg("failed to encode event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	err = f.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Symbol),
		Value: value,
	})
	if err != nil {
		f.failed.Inc()
		f.logger.Error().Err(err).Str("symbol", event.Symbol).Str("type", event.Type).Msg("failed to publish event")
		return
	}
	f.published.Inc()
}
