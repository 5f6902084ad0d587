package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestObserveSuccess_IncrementsPerKindCounter(t *testing.T) {
	collector := NewCollector(prometheus.NewRegistry())

	collector.ObserveSuccess("new_order", 5*time.Microsecond)
	collector.ObserveSuccess("trade", time.Microsecond)

	assert.Equal(t, 1.0, counterValue(t, collector.newOrders))
	assert.Equal(t, 1.0, counterValue(t, collector.trades))
	assert.Equal(t, 0.0, counterValue(t, collector.cancellations))
}

func TestObserveSequenceGap_IncrementsSequenceGapCounter(t *testing.T) {
	collector := NewCollector(prometheus.NewRegistry())
	collector.ObserveSequenceGap()
	assert.Equal(t, 1.0, counterValue(t, collector.sequenceGaps))
}

func TestObserveError_IncrementsErrorCounter(t *testing.T) {
	collector := NewCollector(prometheus.NewRegistry())
	collector.ObserveError()
	assert.Equal(t, 1.0, counterValue(t, collector.errors))
}
