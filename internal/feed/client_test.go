package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSnapshot_ParsesDecimalLevelsToFixedPoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"bids": [["100.50", "1.0"], ["100.25", "2.5"]],
			"asks": [["100.75", "3.0"]]
		}`))
	}))
	defer server.Close()

	client := New(server.URL, "BTCUSDT")
	snapshot, err := client.FetchSnapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, snapshot.Bids, 2)
	assert.EqualValues(t, 100_500_000, snapshot.Bids[0].Price)
	assert.EqualValues(t, 1_000_000, snapshot.Bids[0].Quantity)
	assert.Equal(t, 1, snapshot.Bids[0].OrderCount)

	require.Len(t, snapshot.Asks, 1)
	assert.EqualValues(t, 100_750_000, snapshot.Asks[0].Price)
	assert.EqualValues(t, 3_000_000, snapshot.Asks[0].Quantity)

	assert.EqualValues(t, 1, snapshot.SequenceNumber)
}

func TestFetchSnapshot_SequenceNumberIncrementsAcrossCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"bids": [], "asks": []}`))
	}))
	defer server.Close()

	client := New(server.URL, "BTCUSDT")
	first, err := client.FetchSnapshot(context.Background())
	require.NoError(t, err)
	second, err := client.FetchSnapshot(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 1, first.SequenceNumber)
	assert.EqualValues(t, 2, second.SequenceNumber)
}

func TestFetchSnapshot_PropagatesNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, "BTCUSDT")
	_, err := client.FetchSnapshot(context.Background())
	assert.Error(t, err)
}
