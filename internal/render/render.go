// Package render is the console presentation of a book snapshot, adapted
// from the original implementation's display_live_orderbook. The core
// (internal/book) never prints; this is a cmd/matchcore collaborator
// only, built on the teacher's fmt-based console output rather than a
// TUI library, since this is a demo surface, not a library component.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"matchcore/internal/types"
)

const ruleWidth = 80

// LiveOrderBook writes a fixed-width table of up to maxLevels per side,
// best price first, followed by a best-bid/best-ask/spread footer.
func LiveOrderBook(w io.Writer, symbol string, snapshot types.Snapshot, maxLevels int) {
	rule := strings.Repeat("=", ruleWidth)

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "LIVE ORDERBOOK: %s\n", symbol)
	fmt.Fprintf(w, "%s\n", snapshot.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "%s\n", rule)

	fmt.Fprintf(w, "%-12s | %-12s | %-12s | %-12s\n", "BID QTY", "BID PRICE", "ASK PRICE", "ASK QTY")
	fmt.Fprintf(w, "%s\n", strings.Repeat("-", ruleWidth))

	for i := 0; i < maxLevels; i++ {
		bidQty, bidPrice := levelStrings(snapshot.Bids, i)
		askPrice, askQty := levelStrings(snapshot.Asks, i)
		fmt.Fprintf(w, "%-12s | %-12s | %-12s | %-12s\n", bidQty, bidPrice, askPrice, askQty)
	}

	fmt.Fprintf(w, "%s\n", rule)
	printFooter(w, snapshot)
	fmt.Fprintf(w, "%s\n", rule)
}

// levelStrings returns (quantity, price) formatted for index i of
// levels, or ("", "") past the end — the original's padding-with-blanks
// behavior for sides with fewer than maxLevels resting.
func levelStrings(levels []types.LevelInfo, i int) (qty, price string) {
	if i >= len(levels) {
		return "", ""
	}
	level := levels[i]
	return formatQuantity(level.Quantity), formatPrice(level.Price)
}

func formatPrice(p types.Price) string {
	return fmt.Sprintf("$%.2f", float64(p)/float64(types.Scale))
}

func formatQuantity(q types.Quantity) string {
	return fmt.Sprintf("%.2f", float64(q)/float64(types.Scale))
}

func printFooter(w io.Writer, snapshot types.Snapshot) {
	if len(snapshot.Bids) == 0 {
		if len(snapshot.Asks) == 0 {
			fmt.Fprintln(w, "Best Bid: None | Best Ask: None")
		} else {
			fmt.Fprintf(w, "Best Bid: None | Best Ask: %s\n", formatPrice(snapshot.Asks[0].Price))
		}
		return
	}
	bestBid := snapshot.Bids[0]
	if len(snapshot.Asks) == 0 {
		fmt.Fprintf(w, "Best Bid: %s | Best Ask: None\n", formatPrice(bestBid.Price))
		return
	}
	bestAsk := snapshot.Asks[0]
	spread := bestAsk.Price - bestBid.Price
	spreadBps := float64(spread) / float64(bestBid.Price) * 10000.0
	fmt.Fprintf(w, "Best Bid: %s | Best Ask: %s | Spread: %s (%.1f bps)\n",
		formatPrice(bestBid.Price), formatPrice(bestAsk.Price), formatPrice(spread), spreadBps)
}

// Duration is a small helper so cmd/matchcore doesn't need its own
// time-since formatting for stats display.
func Duration(d time.Duration) string {
	return d.Round(time.Microsecond).String()
}
