// Package book implements the price-time-priority order book: the two
// sorted ladders, the order index, and the crossing algorithm that
// turns an incoming order into trades plus (optionally) resting
// liquidity.
package book

import "matchcore/internal/types"

// PriceLevel is a FIFO queue of resting orders at one price, plus a
// cached aggregate so callers never need to walk the queue to answer
// "how much quantity rests here".
type PriceLevel struct {
	Price         types.Price
	Orders        []*types.Order
	TotalQuantity types.Quantity
}

func newPriceLevel(price types.Price) *PriceLevel {
	return &PriceLevel{Price: price}
}

// Add appends to the tail, preserving arrival order.
func (l *PriceLevel) Add(order *types.Order) {
	l.Orders = append(l.Orders, order)
	l.TotalQuantity += order.RemainingQuantity
}

// Remove excises the order with the given id wherever it sits in the
// queue and returns it. O(depth).
func (l *PriceLevel) Remove(id types.OrderID) (*types.Order, bool) {
	for i, o := range l.Orders {
		if o.ID == id {
			l.Orders = append(l.Orders[:i], l.Orders[i+1:]...)
			l.TotalQuantity -= o.RemainingQuantity
			return o, true
		}
	}
	return nil, false
}

// Front inspects (does not pop) the priority head.
func (l *PriceLevel) Front() (*types.Order, bool) {
	if len(l.Orders) == 0 {
		return nil, false
	}
	return l.Orders[0], true
}

// PopFrontPartial reduces the head order's remaining quantity by qty,
// removing it entirely once it reaches zero. The level's aggregate is
// always decremented by qty regardless of whether the head is removed.
func (l *PriceLevel) PopFrontPartial(qty types.Quantity) {
	if len(l.Orders) == 0 {
		return
	}
	head := l.Orders[0]
	head.RemainingQuantity -= qty
	l.TotalQuantity -= qty
	if head.RemainingQuantity == 0 {
		l.Orders = l.Orders[1:]
	}
}

// Empty reports whether the level holds no resting orders.
func (l *PriceLevel) Empty() bool {
	return len(l.Orders) == 0
}

// Info returns the read-only projection of this level.
func (l *PriceLevel) Info() types.LevelInfo {
	return types.LevelInfo{
		Price:      l.Price,
		Quantity:   l.TotalQuantity,
		OrderCount: len(l.Orders),
	}
}
