package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"matchcore/internal/types"
)

func TestLiveOrderBook_RendersSpreadFooterWhenBothSidesPresent(t *testing.T) {
	snapshot := types.Snapshot{
		Bids:      []types.LevelInfo{{Price: 100 * types.Scale, Quantity: 2 * types.Scale, OrderCount: 1}},
		Asks:      []types.LevelInfo{{Price: 101 * types.Scale, Quantity: 3 * types.Scale, OrderCount: 1}},
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	LiveOrderBook(&buf, "BTCUSD", snapshot, 1)
	out := buf.String()

	assert.Contains(t, out, "LIVE ORDERBOOK: BTCUSD")
	assert.Contains(t, out, "$100.00")
	assert.Contains(t, out, "$101.00")
	assert.Contains(t, out, "Best Bid: $100.00 | Best Ask: $101.00 | Spread: $1.00")
}

func TestLiveOrderBook_HandlesEmptyBook(t *testing.T) {
	snapshot := types.Snapshot{Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	var buf bytes.Buffer
	LiveOrderBook(&buf, "BTCUSD", snapshot, 3)

	assert.Contains(t, buf.String(), "Best Bid: None | Best Ask: None")
}

func TestLiveOrderBook_PadsShortSideWithBlanks(t *testing.T) {
	snapshot := types.Snapshot{
		Bids:      []types.LevelInfo{{Price: 100 * types.Scale, Quantity: 1 * types.Scale, OrderCount: 1}},
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	LiveOrderBook(&buf, "BTCUSD", snapshot, 2)

	assert.Contains(t, buf.String(), "Best Bid: $100.00 | Best Ask: None")
}
