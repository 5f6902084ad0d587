package types

import "time"

// MessageType discriminates the MarketDataMessage variant. Dispatch on
// this is a single switch in marketdata.Processor.Process — there is
// no class hierarchy here, just a tagged union.
type MessageType int

const (
	MessageNewOrder MessageType = iota
	MessageCancelOrder
	MessageModifyOrder
	MessageTrade
	MessageBookSnapshot
)

// NewOrderMessage carries an incoming order. OrderID is informational
// only: the book assigns its own identifier, because identifiers are
// owned by the book, not the external feed.
type NewOrderMessage struct {
	OrderID        OrderID
	Side           Side
	OrderType      OrderType
	Price          Price
	Quantity       Quantity
	Timestamp      time.Time
	SequenceNumber uint64
}

type CancelOrderMessage struct {
	OrderID        OrderID
	Timestamp      time.Time
	SequenceNumber uint64
}

// ModifyOrderMessage's NewPrice/NewQuantity are pointers so that
// "absent" is distinguishable from the zero value; see
// marketdata.Processor.applyModifyOrder for how an absent NewPrice is handled.
type ModifyOrderMessage struct {
	OrderID        OrderID
	NewPrice       *Price
	NewQuantity    *Quantity
	Timestamp      time.Time
	SequenceNumber uint64
}

// TradeMessage is informational only; processing it never mutates the book.
type TradeMessage struct {
	BuyOrderID     OrderID
	SellOrderID    OrderID
	Price          Price
	Quantity       Quantity
	Timestamp      time.Time
	SequenceNumber uint64
}

type BookSnapshotMessage struct {
	Bids           []LevelInfo
	Asks           []LevelInfo
	Timestamp      time.Time
	SequenceNumber uint64
}

// MarketDataMessage is the tagged-union envelope consumed by
// marketdata.Processor.Process. Exactly one of the variant pointer
// fields (NewOrder, CancelOrder, ModifyOrder, Trade, BookSnapshot) is
// set, selected by Type.
type MarketDataMessage struct {
	Type         MessageType
	NewOrder     *NewOrderMessage
	CancelOrder  *CancelOrderMessage
	ModifyOrder  *ModifyOrderMessage
	Trade        *TradeMessage
	BookSnapshot *BookSnapshotMessage
}

// SequenceNumber extracts the envelope's sequence number regardless of variant.
func (m MarketDataMessage) SequenceNumber() uint64 {
	switch m.Type {
	case MessageNewOrder:
		return m.NewOrder.SequenceNumber
	case MessageCancelOrder:
		return m.CancelOrder.SequenceNumber
	case MessageModifyOrder:
		return m.ModifyOrder.SequenceNumber
	case MessageTrade:
		return m.Trade.SequenceNumber
	case MessageBookSnapshot:
		return m.BookSnapshot.SequenceNumber
	default:
		return 0
	}
}
