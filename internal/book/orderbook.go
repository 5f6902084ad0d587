package book

import (
	"time"

	"github.com/google/uuid"

	"matchcore/internal/types"
)

// locator is the index's non-owning back-reference: enough to find an
// order's ladder side and price level in amortized O(1), without a
// back-pointer from the order itself (a back-pointer would create a
// cycle and buys nothing the locator doesn't already give us).
type locator struct {
	side  types.Side
	price types.Price
}

// OrderBook is the whole of one instrument's state: both ladders, the
// id index, and the running statistics. Every resting order and every
// price level is owned here; the index only ever holds a locator.
//
// OrderBook is not internally synchronized. Callers sharing one across
// goroutines must serialize every call, including the read-only ones
// (BestBid, BestAsk, Snapshot) — see internal/ingest.Supervisor for the
// reference pattern of holding one mutex around the whole call.
type OrderBook struct {
	bids  *ladder
	asks  *ladder
	index map[types.OrderID]locator

	stats              types.MarketDataStats
	lastSequenceNumber uint64
}

// NewOrderBook returns an empty book ready to accept orders.
func NewOrderBook() *OrderBook {
	return &OrderBook{
		bids:  newBidLadder(),
		asks:  newAskLadder(),
		index: make(map[types.OrderID]locator),
	}
}

// Size returns the number of resting orders across both ladders.
func (b *OrderBook) Size() int {
	return len(b.index)
}

// LastSequenceNumber returns the most recently applied market-data
// sequence number, or zero if none has been applied yet.
func (b *OrderBook) LastSequenceNumber() uint64 {
	return b.lastSequenceNumber
}

// SetLastSequenceNumber is used by marketdata.Processor to record the
// sequence number of the message it is about to apply. It is exported
// for that single collaborator; book callers adding orders directly
// never need it.
func (b *OrderBook) SetLastSequenceNumber(seq uint64) {
	b.lastSequenceNumber = seq
}

// MarketDataStats returns a copy of the running statistics.
func (b *OrderBook) MarketDataStats() types.MarketDataStats {
	return b.stats
}

// ResetMarketDataStats zeroes every counter and duration.
func (b *OrderBook) ResetMarketDataStats() {
	b.stats.Reset()
}

// BestBid returns the highest resting bid price, if any.
func (b *OrderBook) BestBid() (types.Price, bool) {
	level, ok := b.bids.best()
	if !ok {
		return 0, false
	}
	return level.Price, true
}

// BestAsk returns the lowest resting ask price, if any.
func (b *OrderBook) BestAsk() (types.Price, bool) {
	level, ok := b.asks.best()
	if !ok {
		return 0, false
	}
	return level.Price, true
}

// ClearAllOrders drops every resting order and level and resets
// statistics. It does not touch lastSequenceNumber — callers
// performing a snapshot rebuild apply a fresh sequence number
// immediately after, via SetLastSequenceNumber.
func (b *OrderBook) ClearAllOrders() {
	b.bids.clear()
	b.asks.clear()
	b.index = make(map[types.OrderID]locator)
	b.stats.Reset()
}

// Snapshot returns up to maxLevels of the best bids (highest first) and
// best asks (lowest first), each as a LevelInfo, plus the current
// timestamp and last applied sequence number.
func (b *OrderBook) Snapshot(maxLevels int) types.Snapshot {
	snap := types.Snapshot{
		Timestamp:          time.Now().UTC(),
		LastSequenceNumber: b.lastSequenceNumber,
	}
	b.bids.ascend(func(level *PriceLevel) bool {
		if len(snap.Bids) >= maxLevels {
			return false
		}
		snap.Bids = append(snap.Bids, level.Info())
		return true
	})
	b.asks.ascend(func(level *PriceLevel) bool {
		if len(snap.Asks) >= maxLevels {
			return false
		}
		snap.Asks = append(snap.Asks, level.Info())
		return true
	})
	return snap
}

// AddOrder validates, then matches and/or rests order per its type's
// policy, returning the ordered list of trades produced (possibly
// empty). See the match* functions in matching.go and SPEC_FULL.md §4.2
// for the full per-type contract.
func (b *OrderBook) AddOrder(order types.Order) ([]types.Trade, error) {
	start := time.Now()

	if _, exists := b.index[order.ID]; exists {
		return nil, &types.OrderAlreadyExistsError{OrderID: order.ID}
	}
	if order.Price == 0 && order.Type != types.Market {
		return nil, &types.InvalidPriceError{Price: order.Price}
	}
	if order.OriginalQuantity == 0 {
		return nil, &types.InvalidQuantityError{Quantity: order.OriginalQuantity}
	}

	var trades []types.Trade
	var err error

	switch order.Type {
	case types.Market:
		trades, err = b.matchMarket(&order)
	case types.FillOrKill:
		trades, err = b.matchFillOrKill(&order)
	case types.ImmediateOrCancel:
		trades, err = b.matchAggressive(&order)
	default: // Limit, GoodTillCancel, GoodForDay
		trades, err = b.matchAndRest(&order)
	}
	if err != nil {
		return nil, err
	}

	b.stats.NewOrders++
	b.stats.Observe(time.Since(start))

	return trades, nil
}

// CancelOrder removes a resting order from its level and the index,
// deleting the level if it becomes empty.
func (b *OrderBook) CancelOrder(id types.OrderID) error {
	loc, ok := b.index[id]
	if !ok {
		return &types.OrderNotFoundError{OrderID: id}
	}
	b.removeResting(id, loc)
	b.stats.Cancellations++
	return nil
}

// ModifyOrder is implemented as cancel-then-re-add with a fresh
// identifier and timestamp, which means the replacement loses its
// place in time priority at its price. This is intentional — see
// SPEC_FULL.md §9 — and must not be "optimized" into an in-place
// quantity change without changing the contract.
func (b *OrderBook) ModifyOrder(id types.OrderID, newPrice *types.Price, newQuantity *types.Quantity) ([]types.Trade, error) {
	loc, ok := b.index[id]
	if !ok {
		return nil, &types.OrderNotFoundError{OrderID: id}
	}
	existing, ok := b.removeResting(id, loc)
	if !ok {
		return nil, &types.OrderNotFoundError{OrderID: id}
	}

	replacement := existing
	replacement.ID = uuid.New()
	replacement.Timestamp = time.Now().UTC()
	if newPrice != nil {
		replacement.Price = *newPrice
	}
	if newQuantity != nil {
		replacement.OriginalQuantity = *newQuantity
		replacement.RemainingQuantity = *newQuantity
	}

	trades, err := b.AddOrder(replacement)
	if err != nil {
		return nil, err
	}
	b.stats.Modifications++
	return trades, nil
}

// removeResting excises the order at loc from its ladder, deleting the
// level if it empties, and drops it from the index.
func (b *OrderBook) removeResting(id types.OrderID, loc locator) (types.Order, bool) {
	side := b.ladderFor(loc.side)
	level, ok := side.get(loc.price)
	if !ok {
		delete(b.index, id)
		return types.Order{}, false
	}
	removed, ok := level.Remove(id)
	side.deleteIfEmpty(level)
	delete(b.index, id)
	if !ok {
		return types.Order{}, false
	}
	return *removed, true
}

// rest inserts order's residual quantity onto its ladder at its limit
// price and records its locator in the index. Called only after
// crossing has been attempted and quantity remains.
func (b *OrderBook) rest(order *types.Order) {
	level := b.ladderFor(order.Side).getOrCreate(order.Price)
	resting := *order
	level.Add(&resting)
	b.index[order.ID] = locator{side: order.Side, price: order.Price}
}

func (b *OrderBook) ladderFor(side types.Side) *ladder {
	if side == types.Buy {
		return b.bids
	}
	return b.asks
}

func (b *OrderBook) opposite(side types.Side) *ladder {
	if side == types.Buy {
		return b.asks
	}
	return b.bids
}
