package matching

import (
	"sync"

	"github.com/cryptonstudio/crypton-orderbook/types/rbtree"
)

// Allocator is an object encapsulating all used objects allocation using sync.Pool internally.
// One allocator can be shared by all order books of an engine.
type Allocator struct {

	// Price levels
	priceLevels sync.Pool

	// Pool used by price level trees
	priceLevelNodes sync.Pool // used by rbtree.Tree[Uint, *PriceLevel]
}

// NewAllocator creates and returns new Allocator instance.
func NewAllocator() *Allocator {
	a := new(Allocator)
	a.priceLevels = sync.Pool{New: func() any {
		return NewPriceLevel()
	}}
	a.priceLevelNodes = sync.Pool{New: func() any {
		return new(rbtree.Node[Uint, *PriceLevel])
	}}
	return a
}

////////////////////////////////////////////////////////////////
// Price levels
////////////////////////////////////////////////////////////////

// GetPriceLevel allocates PriceLevel instance.
func (a *Allocator) GetPriceLevel() *PriceLevel {
	return a.priceLevels.Get().(*PriceLevel)
}

// PutPriceLevel releases PriceLevel instance.
func (a *Allocator) PutPriceLevel(priceLevel *PriceLevel) {
	// Clean up the instance before releasing
	priceLevel.Clean()
	a.priceLevels.Put(priceLevel)
}
