// Package journal durably records submitted orders, cancellations and trades
// produced by the matching engine in an embedded pebble database.
package journal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	"github.com/cryptonstudio/crypton-orderbook/matching"
)

const (
	orderPrefix = "order/"
	tradePrefix = "trade/"

	// StatusCancelled is stored for cancellation records.
	StatusCancelled = "cancelled"
)

// OrderRecord is stored for every submitted or cancelled order.
type OrderRecord struct {
	ID        uint64             `json:"id"`
	Symbol    string             `json:"symbol"`
	Side      matching.OrderSide `json:"side"`
	Price     matching.Uint      `json:"price"`
	Quantity  matching.Uint      `json:"quantity"`
	Remaining matching.Uint      `json:"remaining"`
	Cancelled matching.Uint      `json:"cancelled"`
	Status    string             `json:"status"`
	Time      time.Time          `json:"time"`
}

// TradeRecord is stored for every trade.
type TradeRecord struct {
	ID        uint64        `json:"id"`
	Symbol    string        `json:"symbol"`
	BuyPrice  matching.Uint `json:"buy_price"`
	SellPrice matching.Uint `json:"sell_price"`
	Quantity  matching.Uint `json:"quantity"`
	Time      time.Time     `json:"time"`
}

// Options configures the journal.
type Options struct {
	// FS is the file system used by pebble, the OS one when nil.
	FS vfs.FS
	// OnError receives write failures. Events are never blocked by the journal.
	OnError func(err error)
}

// Journal is a matching.Handler persisting orders and trades.
type Journal struct {
	matching.NopHandler

	db      *pebble.DB
	onError func(err error)

	lastTradeID atomic.Uint64
	now         func() time.Time
}

var _ matching.Handler = (*Journal)(nil)

// Open opens or creates the journal in the given directory.
func Open(dir string, opts Options) (*Journal, error) {
	db, err := pebble.Open(dir, &pebble.Options{
		FS: opts.FS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	j := &Journal{
		db:      db,
		onError: opts.OnError,
		now:     time.Now,
	}
	if j.onError == nil {
		j.onError = func(error) {}
	}

	// Continue trade numbering after restart
	lastTradeID, err := j.scanLastTradeID()
	if err != nil {
		db.Close() //nolint:errcheck
		return nil, err
	}
	j.lastTradeID.Store(lastTradeID)

	return j, nil
}

// Close flushes and closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

////////////////////////////////////////////////////////////////
// Handler
////////////////////////////////////////////////////////////////

func (j *Journal) OnSubmitOrder(ob *matching.OrderBook, order matching.Order, result matching.SubmitResult) {
	j.putOrder(OrderRecord{
		ID:        order.ID(),
		Symbol:    ob.Symbol().Name(),
		Side:      order.Side(),
		Price:     order.Price(),
		Quantity:  order.Quantity(),
		Remaining: result.Remaining,
		Status:    result.Status().String(),
		Time:      j.now(),
	})
}

func (j *Journal) OnCancelOrder(ob *matching.OrderBook, order matching.Order, cancelled matching.Uint) {
	j.putOrder(OrderRecord{
		ID:        order.ID(),
		Symbol:    ob.Symbol().Name(),
		Side:      order.Side(),
		Price:     order.Price(),
		Quantity:  order.Quantity(),
		Cancelled: cancelled,
		Status:    StatusCancelled,
		Time:      j.now(),
	})
}

func (j *Journal) OnExecuteTrade(ob *matching.OrderBook, trade matching.Trade) {
	rec := TradeRecord{
		ID:        j.lastTradeID.Add(1),
		Symbol:    ob.Symbol().Name(),
		BuyPrice:  trade.BuyPrice,
		SellPrice: trade.SellPrice,
		Quantity:  trade.Quantity,
		Time:      j.now(),
	}
	if err := j.put(recordKey(tradePrefix, rec.Symbol, rec.ID), rec); err != nil {
		j.onError(fmt.Errorf("failed to store trade %d of %s: %w", rec.ID, rec.Symbol, err))
	}
}

////////////////////////////////////////////////////////////////
// Queries
////////////////////////////////////////////////////////////////

// Orders returns all order records of the symbol ordered by ID.
func (j *Journal) Orders(symbol string) ([]OrderRecord, error) {
	records := []OrderRecord{}
	err := j.scan(orderPrefix, symbol, func(value []byte) error {
		var rec OrderRecord
		if err := json.Unmarshal(value, &rec); err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	return records, err
}

// Trades returns all trade records of the symbol in execution order.
func (j *Journal) Trades(symbol string) ([]TradeRecord, error) {
	records := []TradeRecord{}
	err := j.scan(tradePrefix, symbol, func(value []byte) error {
		var rec TradeRecord
		if err := json.Unmarshal(value, &rec); err != nil {
			return err
		}
		records = append(records, rec)
		return nil
	})
	return records, err
}

////////////////////////////////////////////////////////////////
// Internal helpers
////////////////////////////////////////////////////////////////

func (j *Journal) putOrder(rec OrderRecord) {
	if err := j.put(recordKey(orderPrefix, rec.Symbol, rec.ID), rec); err != nil {
		j.onError(fmt.Errorf("failed to store order %d of %s: %w", rec.ID, rec.Symbol, err))
	}
}

func (j *Journal) put(key []byte, rec any) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return j.db.Set(key, value, pebble.Sync)
}

func (j *Journal) scan(prefix string, symbol string, fn func(value []byte) error) error {
	lower := []byte(prefix + symbol + "/")
	iter, err := j.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: upperBound(lower),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		// Skip keys of symbols sharing the prefix like "A" and "A/B"
		if _, ok := parseID(iter.Key()[len(lower):]); !ok {
			continue
		}
		if err := fn(iter.Value()); err != nil {
			return fmt.Errorf("failed to decode %s: %w", iter.Key(), err)
		}
	}
	return iter.Error()
}

func (j *Journal) scanLastTradeID() (uint64, error) {
	lower := []byte(tradePrefix)
	iter, err := j.db.NewIter(&pebble.IterOptions{
		LowerBound: lower,
		UpperBound: upperBound(lower),
	})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	var last uint64
	for iter.First(); iter.Valid(); iter.Next() {
		key := iter.Key()
		slash := bytes.LastIndexByte(key, '/')
		if id, ok := parseID(key[slash+1:]); ok && id > last {
			last = id
		}
	}
	return last, iter.Error()
}

func recordKey(prefix string, symbol string, id uint64) []byte {
	return []byte(fmt.Sprintf("%s%s/%020d", prefix, symbol, id))
}

func parseID(b []byte) (uint64, bool) {
	if len(b) != 20 {
		return 0, false
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	return id, err == nil
}

// upperBound returns the smallest key greater than every key with the given prefix.
func upperBound(prefix []byte) []byte {
	end := bytes.Clone(prefix)
	end[len(end)-1]++
	return end
}
