// Package types holds the identifiers, enums, and wire-representable
// structs shared by the book, the market-data processor, and the
// registry. Nothing in here mutates a book; it is pure data.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Scale is the fixed-point multiplier applied to both price and
// quantity: 1,000,000 units per whole. All book arithmetic stays
// integer at this scale; floating point only appears at the feed
// boundary (internal/feed) and at display time (internal/render).
const Scale = 1_000_000

// Price and Quantity are both non-negative fixed-point integers at Scale.
type Price uint64
type Quantity uint64

// MaxPrice is the aggressive limit price substituted for a Market buy.
const MaxPrice Price = ^Price(0)

type Side int

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

// OrderType is the time-in-force / execution policy for an order.
type OrderType int

const (
	Limit OrderType = iota
	Market
	ImmediateOrCancel
	FillOrKill
	GoodTillCancel
	GoodForDay
)

func (t OrderType) String() string {
	switch t {
	case Limit:
		return "limit"
	case Market:
		return "market"
	case ImmediateOrCancel:
		return "ioc"
	case FillOrKill:
		return "fok"
	case GoodTillCancel:
		return "gtc"
	case GoodForDay:
		return "gfd"
	default:
		return "unknown"
	}
}

// Rests reports whether a fully or partially unfilled order of this
// type is eligible to be added to the book as resting liquidity.
// Market, IOC, and FOK orders never rest.
func (t OrderType) Rests() bool {
	switch t {
	case Limit, GoodTillCancel, GoodForDay:
		return true
	default:
		return false
	}
}

// OrderID uniquely identifies an order across the book's lifetime.
type OrderID = uuid.UUID

// TradeID uniquely identifies a trade.
type TradeID = uuid.UUID

// Order is immutable in Side, Type, Price, and ID once created;
// RemainingQuantity is the only field matching touches. ModifyOrder
// does not mutate a resting order in place: it removes it and adds a
// replacement with a fresh ID and timestamp.
type Order struct {
	ID                OrderID
	Side              Side
	Type              OrderType
	Price             Price
	OriginalQuantity  Quantity
	RemainingQuantity Quantity
	Timestamp         time.Time
	UserID            string
}

// NewOrder constructs an order with a fresh id and timestamp. The
// caller is responsible for validating Price/Quantity before handing
// it to a book — NewOrder itself never fails.
func NewOrder(side Side, orderType OrderType, price Price, quantity Quantity, userID string) Order {
	return Order{
		ID:                uuid.New(),
		Side:              side,
		Type:              orderType,
		Price:             price,
		OriginalQuantity:  quantity,
		RemainingQuantity: quantity,
		Timestamp:         time.Now().UTC(),
		UserID:            userID,
	}
}

// IsFilled reports whether the order has no remaining quantity.
func (o Order) IsFilled() bool {
	return o.RemainingQuantity == 0
}

// IsActive mirrors the original engine's predicate: a FillOrKill order
// is always considered inactive, regardless of fill state, since it
// never rests. It has no effect on book behavior; it exists for
// collaborators that render order status.
func (o Order) IsActive() bool {
	return !o.IsFilled() && o.Type != FillOrKill
}

// Trade is produced at the moment of crossing and never mutated
// afterwards.
type Trade struct {
	ID         TradeID
	BuyOrderID OrderID
	SellOrderID OrderID
	Price      Price
	Quantity   Quantity
	Timestamp  time.Time
}

// NewTrade stamps a trade with a fresh id and the current time.
func NewTrade(buyOrderID, sellOrderID OrderID, price Price, quantity Quantity) Trade {
	return Trade{
		ID:          uuid.New(),
		BuyOrderID:  buyOrderID,
		SellOrderID: sellOrderID,
		Price:       price,
		Quantity:    quantity,
		Timestamp:   time.Now().UTC(),
	}
}

// LevelInfo is the read-only view of a single price level.
type LevelInfo struct {
	Price      Price
	Quantity   Quantity
	OrderCount int
}

// Snapshot is the top-of-book view returned by OrderBook.Snapshot.
type Snapshot struct {
	Bids              []LevelInfo
	Asks              []LevelInfo
	Timestamp         time.Time
	LastSequenceNumber uint64
}
