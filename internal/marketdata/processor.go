// Package marketdata implements the single-writer ingest path: it
// checks sequencing, dispatches a tagged MarketDataMessage onto one
// OrderBook, and tracks its own latency/throughput statistics
// alongside the book's.
package marketdata

import (
	"strconv"
	"time"

	"matchcore/internal/book"
	"matchcore/internal/types"
)

// Processor applies sequenced messages to one OrderBook. It is not
// internally synchronized; callers sharing a Processor (or its book)
// across goroutines must serialize calls to Process/ProcessBatch —
// see internal/ingest.Supervisor for the reference pattern.
type Processor struct {
	book  *book.OrderBook
	stats types.MarketDataStats
}

// NewProcessor returns a processor driving the given book.
func NewProcessor(b *book.OrderBook) *Processor {
	return &Processor{book: b}
}

// Stats returns a copy of the processor's own running statistics
// (distinct from the book's — the book tracks AddOrder/CancelOrder
// traffic, the processor tracks the message stream it was handed).
func (p *Processor) Stats() types.MarketDataStats {
	return p.stats
}

// ResetStats zeroes every counter and duration.
func (p *Processor) ResetStats() {
	p.stats.Reset()
}

// Process applies one message to the book: checks that its sequence
// number strictly increases past the book's last-applied number,
// dispatches on the message's variant, and folds the elapsed time into
// the running statistics.
//
// The sequence check only catches regressions and duplicates
// (seq <= last); it does not separately flag a skipped number, e.g.
// 5 followed by 7 — that tolerance is intentional, see SPEC_FULL.md §9.
func (p *Processor) Process(msg types.MarketDataMessage) error {
	start := time.Now()

	seq := msg.SequenceNumber()
	last := p.book.LastSequenceNumber()
	if seq <= last {
		p.stats.SequenceGaps++
		return &types.SequenceGapError{Expected: last + 1, Actual: seq}
	}
	p.book.SetLastSequenceNumber(seq)

	if err := p.dispatch(msg); err != nil {
		return err
	}

	p.stats.MessagesProcessed++
	p.stats.Observe(time.Since(start))
	return nil
}

func (p *Processor) dispatch(msg types.MarketDataMessage) error {
	switch msg.Type {
	case types.MessageNewOrder:
		return p.applyNewOrder(msg.NewOrder)
	case types.MessageCancelOrder:
		return p.applyCancelOrder(msg.CancelOrder)
	case types.MessageModifyOrder:
		return p.applyModifyOrder(msg.ModifyOrder)
	case types.MessageTrade:
		// Informational only — record the counter, never mutate the book.
		p.stats.Trades++
		return nil
	case types.MessageBookSnapshot:
		return p.applyBookSnapshot(msg.BookSnapshot)
	default:
		return &types.MarketDataError{Message: "unknown message type"}
	}
}

func (p *Processor) applyNewOrder(msg *types.NewOrderMessage) error {
	// The message's OrderID is informational for the external feed;
	// identifiers are owned by the book, so a fresh one is minted here.
	order := types.NewOrder(msg.Side, msg.OrderType, msg.Price, msg.Quantity, "")
	if _, err := p.book.AddOrder(order); err != nil {
		return err
	}
	p.stats.NewOrders++
	return nil
}

func (p *Processor) applyCancelOrder(msg *types.CancelOrderMessage) error {
	if err := p.book.CancelOrder(msg.OrderID); err != nil {
		return err
	}
	p.stats.Cancellations++
	return nil
}

func (p *Processor) applyModifyOrder(msg *types.ModifyOrderMessage) error {
	// When NewPrice is absent, keep the order's existing price rather
	// than substituting zero — the legacy zero-substitution would fail
	// InvalidPrice validation and contradicts the "keep old price"
	// intent the open question in SPEC_FULL.md §9 resolves.
	if _, err := p.book.ModifyOrder(msg.OrderID, msg.NewPrice, msg.NewQuantity); err != nil {
		return err
	}
	p.stats.Modifications++
	return nil
}

func (p *Processor) applyBookSnapshot(msg *types.BookSnapshotMessage) error {
	p.book.ClearAllOrders()
	p.book.SetLastSequenceNumber(msg.SequenceNumber)

	for i, lvl := range msg.Bids {
		order := types.NewOrder(types.Buy, types.Limit, lvl.Price, lvl.Quantity, syntheticOwner("bid", i))
		if _, err := p.book.AddOrder(order); err != nil {
			return err
		}
	}
	for i, lvl := range msg.Asks {
		order := types.NewOrder(types.Sell, types.Limit, lvl.Price, lvl.Quantity, syntheticOwner("ask", i))
		if _, err := p.book.AddOrder(order); err != nil {
			return err
		}
	}

	p.stats.Snapshots++
	return nil
}

func syntheticOwner(side string, index int) string {
	return "snapshot_" + side + "_" + strconv.Itoa(index)
}

// ProcessBatch applies Process to each message in order, continuing
// past errors (counting them) instead of aborting the stream, and
// returns the count of successful applications.
func (p *Processor) ProcessBatch(messages []types.MarketDataMessage) int {
	processed := 0
	for _, msg := range messages {
		if err := p.Process(msg); err != nil {
			p.stats.Errors++
			continue
		}
		processed++
	}
	return processed
}
