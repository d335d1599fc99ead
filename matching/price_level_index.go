package matching

import (
	"github.com/cryptonstudio/crypton-orderbook/types/rbtree"
)

// PriceLevelIndex keeps price levels of one side of one order book ordered by price priority.
// Bids are ordered by descending price and asks by ascending price, so the best
// level is always the most left node of the underlying red-black tree.
// NOTE: Not thread-safe.
type PriceLevelIndex struct {
	side      OrderSide
	allocator *Allocator
	tree      rbtree.Tree[Uint, *PriceLevel]
	volume    Uint
}

// NewPriceLevelIndex creates and returns new PriceLevelIndex for the given side.
// Tree nodes and price levels are taken from the given allocator.
func NewPriceLevelIndex(side OrderSide, allocator *Allocator) *PriceLevelIndex {
	if allocator == nil {
		allocator = NewAllocator()
	}

	compare := func(a, b Uint) int { return a.Cmp(b) }
	if side == OrderSideBuy {
		compare = func(a, b Uint) int { return -a.Cmp(b) }
	}

	return &PriceLevelIndex{
		side:      side,
		allocator: allocator,
		tree:      rbtree.NewTreePooled[Uint, *PriceLevel](compare, &allocator.priceLevelNodes),
	}
}

// Side returns the book side served by the index.
func (idx *PriceLevelIndex) Side() OrderSide {
	return idx.side
}

// Len returns amount of price levels.
func (idx *PriceLevelIndex) Len() int {
	return idx.tree.Size()
}

// Volume returns total quantity resting on all levels.
func (idx *PriceLevelIndex) Volume() Uint {
	return idx.volume
}

// Best returns the best price level or nil if the index is empty.
func (idx *PriceLevelIndex) Best() *PriceLevel {
	node := idx.tree.MostLeft()
	if node == nil {
		return nil
	}
	return node.Value()
}

// Find returns the price level with exactly the given price or nil.
func (idx *PriceLevelIndex) Find(price Uint) *PriceLevel {
	node := idx.tree.Find(price)
	if node == nil {
		return nil
	}
	return node.Value()
}

// Depth returns copies of up to n best levels, best first. Non-positive n returns all levels.
func (idx *PriceLevelIndex) Depth(n int) []PriceLevelL2 {
	size := idx.tree.Size()
	if n <= 0 || n > size {
		n = size
	}
	levels := make([]PriceLevelL2, 0, n)
	if n == 0 {
		return levels
	}
	idx.tree.IterateInOrder(func(pl *PriceLevel) bool {
		levels = append(levels, pl.L2())
		return len(levels) == n
	})
	return levels
}

// Fits reports whether quantity can be added to the index without overflow.
// No level holds more than the whole index so this also covers every level.
func (idx *PriceLevelIndex) Fits(quantity Uint) bool {
	return !idx.volume.AddOverflows(quantity)
}

// InsertOrAccumulate adds quantity to the level at the given price creating the level if needed.
// Nothing changes when the quantity is zero or would overflow the index volume.
func (idx *PriceLevelIndex) InsertOrAccumulate(price Uint, quantity Uint) (update PriceLevelUpdate, err error) {
	if quantity.IsZero() || !idx.Fits(quantity) {
		err = ErrInvalidOrderQuantity
		return
	}

	update.Kind = PriceLevelUpdateKindUpdate

	node := idx.tree.Find(price)
	if node == nil {
		priceLevel := idx.allocator.GetPriceLevel()
		priceLevel.price = price
		node, err = idx.tree.Add(price, priceLevel)
		if err != nil {
			idx.allocator.PutPriceLevel(priceLevel)
			return
		}
		update.Kind = PriceLevelUpdateKindAdd
	}

	priceLevel := node.Value()
	priceLevel.quantity = priceLevel.quantity.Add(quantity)
	idx.volume = idx.volume.Add(quantity)

	update = PriceLevelUpdate{
		Kind:     update.Kind,
		Side:     idx.side,
		Price:    priceLevel.price,
		Quantity: priceLevel.quantity,
		Top:      node == idx.tree.MostLeft(),
	}

	return
}

// Decrement removes up to quantity from the level at the given price.
// Absent price is not an error: found is false and nothing changes.
// The level is unlinked from the tree as soon as its quantity reaches zero.
// Returned removed quantity never exceeds the level quantity.
func (idx *PriceLevelIndex) Decrement(price Uint, quantity Uint) (removed Uint, update PriceLevelUpdate, found bool) {
	node := idx.tree.Find(price)
	if node == nil {
		return
	}
	found = true

	priceLevel := node.Value()
	removed = Min(quantity, priceLevel.quantity)
	priceLevel.quantity = priceLevel.quantity.Sub(removed)
	idx.volume = idx.volume.Sub(removed)

	update = PriceLevelUpdate{
		Kind:     PriceLevelUpdateKindUpdate,
		Side:     idx.side,
		Price:    priceLevel.price,
		Quantity: priceLevel.quantity,
		Top:      node == idx.tree.MostLeft(),
	}

	// Delete the empty price level
	if priceLevel.quantity.IsZero() {
		if _, err := idx.tree.Remove(price); err != nil {
			panic("price level vanished from index: " + err.Error())
		}
		idx.allocator.PutPriceLevel(priceLevel)
		update.Kind = PriceLevelUpdateKindDelete
	}

	return
}

// Clean releases all price levels and tree nodes.
func (idx *PriceLevelIndex) Clean() {
	idx.tree.IteratePostOrder(func(pl *PriceLevel) {
		idx.allocator.PutPriceLevel(pl)
	})
	idx.tree.Clear()
	idx.volume = NewZeroUint()
}
