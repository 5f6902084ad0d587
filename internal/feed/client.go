// Package feed is the external-feed adapter contracted in
// SPEC_FULL.md §4.5/§6: it is explicitly out of the core's scope, but
// is the only collaborator that turns an exchange's decimal-string
// depth payload into a BookSnapshotMessage the core can consume. It is
// also the only place in the module where non-integer input is
// converted to fixed point; the only other non-integer arithmetic is
// display formatting in internal/render.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"matchcore/internal/types"
)

// Client polls one exchange-depth-shaped REST endpoint for a symbol's
// order book snapshot, modeled on the original implementation's
// Binance adapter (`BinanceMarketDataFeed` in the prior Rust source).
type Client struct {
	httpClient *http.Client
	baseURL    string
	symbol     string
	depth      int
	sequence   atomic.Uint64
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithHTTPClient overrides the default http.Client, useful for tests
// that stub the transport.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) { client.httpClient = c }
}

// WithDepth sets how many levels per side the endpoint should return.
func WithDepth(depth int) Option {
	return func(client *Client) { client.depth = depth }
}

// New returns a Client polling baseURL for symbol's depth.
func New(baseURL, symbol string, opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    baseURL,
		symbol:     symbol,
		depth:      1000,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// depthResponse mirrors the wire shape: price/quantity pairs encoded
// as decimal strings, e.g. {"bids": [["100.50", "12.0"], ...]}.
type depthResponse struct {
	Bids [][2]string `json:"bids"`
	Asks [][2]string `json:"asks"`
}

// FetchSnapshot fetches one depth snapshot and converts it to fixed
// point at types.Scale, stamping it with a locally incremented
// sequence number (the adapter's own monotonic counter — the
// upstream REST endpoint does not provide one).
func (c *Client) FetchSnapshot(ctx context.Context) (types.BookSnapshotMessage, error) {
	url := fmt.Sprintf("%s/api/v3/depth?symbol=%s&limit=%d", c.baseURL, c.symbol, c.depth)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return types.BookSnapshotMessage{}, &types.MarketDataError{Message: "building request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.BookSnapshotMessage{}, &types.MarketDataError{Message: "fetching depth", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.BookSnapshotMessage{}, &types.MarketDataError{Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	var depth depthResponse
	if err := json.NewDecoder(resp.Body).Decode(&depth); err != nil {
		return types.BookSnapshotMessage{}, &types.MarketDataError{Message: "decoding depth payload", Cause: err}
	}

	bids, err := convertLevels(depth.Bids)
	if err != nil {
		return types.BookSnapshotMessage{}, &types.MarketDataError{Message: "converting bid levels", Cause: err}
	}
	asks, err := convertLevels(depth.Asks)
	if err != nil {
		return types.BookSnapshotMessage{}, &types.MarketDataError{Message: "converting ask levels", Cause: err}
	}

	return types.BookSnapshotMessage{
		Bids:           bids,
		Asks:           asks,
		SequenceNumber: c.sequence.Add(1),
	}, nil
}

// scaleFactor is decimal.Decimal's view of types.Scale, used to convert
// parsed decimal strings into fixed-point integers.
var scaleFactor = decimal.NewFromInt(types.Scale)

// convertLevels parses each [price, quantity] decimal-string pair and
// scales it to a fixed-point LevelInfo. Binance-shaped depth payloads
// don't report an order count per level, so OrderCount is fixed at 1 —
// this is the one field the adapter cannot recover from the wire.
func convertLevels(raw [][2]string) ([]types.LevelInfo, error) {
	levels := make([]types.LevelInfo, 0, len(raw))
	for _, pair := range raw {
		price, err := decimal.NewFromString(pair[0])
		if err != nil {
			return nil, fmt.Errorf("parsing price %q: %w", pair[0], err)
		}
		quantity, err := decimal.NewFromString(pair[1])
		if err != nil {
			return nil, fmt.Errorf("parsing quantity %q: %w", pair[1], err)
		}

		levels = append(levels, types.LevelInfo{
			Price:      types.Price(price.Mul(scaleFactor).IntPart()),
			Quantity:   types.Quantity(quantity.Mul(scaleFactor).IntPart()),
			OrderCount: 1,
		})
	}
	return levels, nil
}
