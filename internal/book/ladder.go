package book

import (
	"github.com/tidwall/btree"

	"matchcore/internal/types"
)

// ladder is one side of the book: a balanced tree of price levels kept
// sorted by a side-specific comparator, exactly the teacher's
// `PriceLevels = btree.BTreeG[*PriceLevel]` shape generalized to a
// fixed-point price key and to both sort directions.
type ladder struct {
	tree *btree.BTreeG[*PriceLevel]
}

// newBidLadder sorts greatest-price-first: the best bid is always the tree minimum.
func newBidLadder() *ladder {
	return &ladder{tree: btree.NewBTreeG(func(a, b *PriceLevel) bool {
		return a.Price > b.Price
	})}
}

// newAskLadder sorts least-price-first: the best ask is always the tree minimum.
func newAskLadder() *ladder {
	return &ladder{tree: btree.NewBTreeG(func(a, b *PriceLevel) bool {
		return a.Price < b.Price
	})}
}

// best returns the top-of-book level (highest bid / lowest ask) without removing it.
func (l *ladder) best() (*PriceLevel, bool) {
	return l.tree.Min()
}

// get returns the level at price, if one exists.
func (l *ladder) get(price types.Price) (*PriceLevel, bool) {
	return l.tree.Get(&PriceLevel{Price: price})
}

// getOrCreate returns the level at price, creating and inserting an empty one if absent.
func (l *ladder) getOrCreate(price types.Price) *PriceLevel {
	if existing, ok := l.tree.Get(&PriceLevel{Price: price}); ok {
		return existing
	}
	level := newPriceLevel(price)
	l.tree.Set(level)
	return level
}

// deleteIfEmpty removes level from the ladder if it has no resting orders.
// No empty level is ever retained.
func (l *ladder) deleteIfEmpty(level *PriceLevel) {
	if level.Empty() {
		l.tree.Delete(level)
	}
}

// ascend visits levels in the tree's natural (ascending by comparator)
// order, stopping if visit returns false.
func (l *ladder) ascend(visit func(*PriceLevel) bool) {
	l.tree.Scan(visit)
}

func (l *ladder) clear() {
	l.tree.Clear()
}

func (l *ladder) len() int {
	return l.tree.Len()
}
