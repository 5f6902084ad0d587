package marketdata

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchcore/internal/book"
	"matchcore/internal/types"
)

func newOrderMsg(seq uint64, side types.Side, price types.Price, qty types.Quantity) types.MarketDataMessage {
	return types.MarketDataMessage{
		Type: types.MessageNewOrder,
		NewOrder: &types.NewOrderMessage{
			OrderID:        uuid.New(),
			Side:           side,
			OrderType:      types.Limit,
			Price:          price,
			Quantity:       qty,
			Timestamp:      time.Now().UTC(),
			SequenceNumber: seq,
		},
	}
}

func TestProcess_RejectsNonIncreasingSequence(t *testing.T) {
	p := NewProcessor(book.NewOrderBook())
	require.NoError(t, p.Process(newOrderMsg(1, types.Buy, 100, 10)))

	err := p.Process(newOrderMsg(1, types.Buy, 100, 10))
	var want *types.SequenceGapError
	require.ErrorAs(t, err, &want)
	assert.EqualValues(t, 2, want.Expected)
	assert.EqualValues(t, 1, want.Actual)
	assert.EqualValues(t, 1, p.Stats().SequenceGaps)
}

func TestProcess_AppliesNewOrderWithFreshIdentifier(t *testing.T) {
	b := book.NewOrderBook()
	p := NewProcessor(b)

	msg := newOrderMsg(1, types.Buy, 100, 10)
	require.NoError(t, p.Process(msg))

	// The message's own OrderID is informational; the book assigns its own.
	assert.Equal(t, 1, b.Size())
	assert.EqualValues(t, 1, p.Stats().NewOrders)
	var notFound *types.OrderNotFoundError
	assert.ErrorAs(t, b.CancelOrder(msg.NewOrder.OrderID), &notFound)
}

func TestProcess_CancelAndModifyUpdateStats(t *testing.T) {
	b := book.NewOrderBook()
	p := NewProcessor(b)

	order := types.NewOrder(types.Buy, types.Limit, 100, 10, "")
	_, err := b.AddOrder(order)
	require.NoError(t, err)

	require.NoError(t, p.Process(types.MarketDataMessage{
		Type: types.MessageCancelOrder,
		CancelOrder: &types.CancelOrderMessage{
			OrderID:        order.ID,
			SequenceNumber: 1,
		},
	}))
	assert.EqualValues(t, 1, p.Stats().Cancellations)

	order2 := types.NewOrder(types.Buy, types.Limit, 100, 10, "")
	_, err = b.AddOrder(order2)
	require.NoError(t, err)

	newQty := types.Quantity(20)
	require.NoError(t, p.Process(types.MarketDataMessage{
		Type: types.MessageModifyOrder,
		ModifyOrder: &types.ModifyOrderMessage{
			OrderID:        order2.ID,
			NewQuantity:    &newQty,
			SequenceNumber: 2,
		},
	}))
	assert.EqualValues(t, 1, p.Stats().Modifications)
}

func TestProcess_ModifyWithoutNewPriceKeepsOldPrice(t *testing.T) {
	b := book.NewOrderBook()
	p := NewProcessor(b)

	order := types.NewOrder(types.Buy, types.Limit, 100, 10, "")
	_, err := b.AddOrder(order)
	require.NoError(t, err)

	newQty := types.Quantity(5)
	require.NoError(t, p.Process(types.MarketDataMessage{
		Type: types.MessageModifyOrder,
		ModifyOrder: &types.ModifyOrderMessage{
			OrderID:        order.ID,
			NewQuantity:    &newQty,
			SequenceNumber: 1,
		},
	}))

	bid, ok := b.BestBid()
	require.True(t, ok)
	assert.EqualValues(t, 100, bid, "price must be unchanged when NewPrice is absent")
}

func TestProcess_TradeMessageIsInformationalOnly(t *testing.T) {
	b := book.NewOrderBook()
	p := NewProcessor(b)

	require.NoError(t, p.Process(types.MarketDataMessage{
		Type: types.MessageTrade,
		Trade: &types.TradeMessage{
			BuyOrderID:     uuid.New(),
			SellOrderID:    uuid.New(),
			Price:          100,
			Quantity:       10,
			SequenceNumber: 1,
		},
	}))

	assert.Equal(t, 0, b.Size())
	assert.EqualValues(t, 1, p.Stats().Trades)
}

// A BookSnapshot applied twice produces identical book state:
// clear-and-rebuild is idempotent.
func TestProcess_BookSnapshotIsIdempotent(t *testing.T) {
	b := book.NewOrderBook()
	p := NewProcessor(b)

	snapshot := types.MarketDataMessage{
		Type: types.MessageBookSnapshot,
		BookSnapshot: &types.BookSnapshotMessage{
			Bids:           []types.LevelInfo{{Price: 100, Quantity: 1000, OrderCount: 1}},
			Asks:           []types.LevelInfo{{Price: 101, Quantity: 500, OrderCount: 1}},
			SequenceNumber: 1,
		},
	}
	require.NoError(t, p.Process(snapshot))
	first := b.Snapshot(10)

	snapshot.BookSnapshot.SequenceNumber = 2
	require.NoError(t, p.Process(snapshot))
	second := b.Snapshot(10)

	assert.Equal(t, first.Bids, second.Bids)
	assert.Equal(t, first.Asks, second.Asks)
}

func TestProcessBatch_ContinuesPastErrorsAndCountsThem(t *testing.T) {
	b := book.NewOrderBook()
	p := NewProcessor(b)

	messages := []types.MarketDataMessage{
		newOrderMsg(1, types.Buy, 100, 10),
		newOrderMsg(1, types.Buy, 100, 10), // duplicate sequence number -> error
		newOrderMsg(2, types.Buy, 99, 10),
	}

	processed := p.ProcessBatch(messages)
	assert.Equal(t, 2, processed)
	assert.EqualValues(t, 1, p.Stats().Errors)
}
