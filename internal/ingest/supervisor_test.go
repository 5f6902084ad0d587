package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchcore/internal/book"
	"matchcore/internal/feed"
	"matchcore/internal/marketdata"
	"matchcore/internal/metrics"
)

func TestTick_FetchesAndAppliesOneSnapshotUnderLock(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"bids": [["100.00", "5.0"]],
			"asks": [["101.00", "5.0"]]
		}`))
	}))
	defer server.Close()

	b := book.NewOrderBook()
	processor := marketdata.NewProcessor(b)
	client := feed.New(server.URL, "BTCUSDT")
	var mu sync.Mutex
	collector := metrics.NewCollector(prometheus.NewRegistry())

	sup := New(client, processor, &mu, time.Millisecond, collector)
	sup.tick(context.Background())

	bestBid, ok := b.BestBid()
	require.True(t, ok)
	assert.EqualValues(t, 100_000_000, bestBid)

	bestAsk, ok := b.BestAsk()
	require.True(t, ok)
	assert.EqualValues(t, 101_000_000, bestAsk)
}

func TestStart_StopsCleanlyOnContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"bids": [], "asks": []}`))
	}))
	defer server.Close()

	b := book.NewOrderBook()
	processor := marketdata.NewProcessor(b)
	client := feed.New(server.URL, "BTCUSDT")
	var mu sync.Mutex

	ctx, cancel := context.WithCancel(context.Background())
	sup := New(client, processor, &mu, 5*time.Millisecond, nil)
	tb := sup.Start(ctx)

	time.Sleep(20 * time.Millisecond)
	cancel()
	require.NoError(t, tb.Wait())
}
