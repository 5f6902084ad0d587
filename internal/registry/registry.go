// Package registry is the multi-instrument facade: a map from
// instrument symbol to its own OrderBook, created lazily on first use.
// This is the only place in the module that knows about more than one
// instrument — book.OrderBook itself stays strictly per-instrument.
package registry

import (
	"sync"

	"matchcore/internal/book"
	"matchcore/internal/types"
)

// MatchingEngine forwards every per-symbol operation to the
// corresponding OrderBook, creating one on first use. Like OrderBook
// itself, MatchingEngine applies no internal synchronization beyond
// protecting its own symbol map. Callers that need an atomic
// read-modify-write across multiple operations must hold their own
// lock around them (see ingest.Supervisor for that pattern).
type MatchingEngine struct {
	mu    sync.Mutex
	books map[string]*book.OrderBook
}

// New returns an empty registry.
func New() *MatchingEngine {
	return &MatchingEngine{books: make(map[string]*book.OrderBook)}
}

func (m *MatchingEngine) bookFor(symbol string) *book.OrderBook {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[symbol]
	if !ok {
		b = book.NewOrderBook()
		m.books[symbol] = b
	}
	return b
}

func (m *MatchingEngine) existingBook(symbol string) (*book.OrderBook, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[symbol]
	return b, ok
}

// AddOrder creates the book for symbol on first use, then forwards.
func (m *MatchingEngine) AddOrder(symbol string, order types.Order) ([]types.Trade, error) {
	return m.bookFor(symbol).AddOrder(order)
}

// CancelOrder fails with OrderNotFound if symbol has no book yet.
func (m *MatchingEngine) CancelOrder(symbol string, orderID types.OrderID) error {
	b, ok := m.existingBook(symbol)
	if !ok {
		return &types.OrderNotFoundError{OrderID: orderID}
	}
	return b.CancelOrder(orderID)
}

// ModifyOrder fails with OrderNotFound if symbol has no book yet. A
// successful modify can generate crossings; callers must expect trades.
func (m *MatchingEngine) ModifyOrder(symbol string, orderID types.OrderID, newPrice *types.Price, newQuantity *types.Quantity) ([]types.Trade, error) {
	b, ok := m.existingBook(symbol)
	if !ok {
		return nil, &types.OrderNotFoundError{OrderID: orderID}
	}
	return b.ModifyOrder(orderID, newPrice, newQuantity)
}

// Snapshot returns the book's snapshot, or false if symbol has no book yet.
func (m *MatchingEngine) Snapshot(symbol string, maxLevels int) (types.Snapshot, bool) {
	b, ok := m.existingBook(symbol)
	if !ok {
		return types.Snapshot{}, false
	}
	return b.Snapshot(maxLevels), true
}

// BestBidAsk returns the book's best bid and ask, or false if symbol has no book yet.
func (m *MatchingEngine) BestBidAsk(symbol string) (bid, ask types.Price, bidOK, askOK, found bool) {
	b, ok := m.existingBook(symbol)
	if !ok {
		return 0, 0, false, false, false
	}
	bid, bidOK = b.BestBid()
	ask, askOK = b.BestAsk()
	return bid, ask, bidOK, askOK, true
}

// Symbols returns every instrument symbol that has had a book created so far.
func (m *MatchingEngine) Symbols() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	symbols := make([]string, 0, len(m.books))
	for symbol := range m.books {
		symbols = append(symbols, symbol)
	}
	return symbols
}

// Book exposes the underlying per-symbol OrderBook, creating it on
// first use, for collaborators (ingest.Supervisor, cmd/matchcore) that
// need direct access beyond the forwarding methods above.
func (m *MatchingEngine) Book(symbol string) *book.OrderBook {
	return m.bookFor(symbol)
}
