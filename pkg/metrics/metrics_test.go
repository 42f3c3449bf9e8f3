package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordBusinessCounters(t *testing.T) {
	m := NewWithRegistry("marketplace", prometheus.NewRegistry())

	m.RecordUnitsGenerated("activity", 4)
	m.RecordUnitsGenerated("activity", 0)
	m.RecordBookingTransition("confirm", "ok")
	m.RecordBookingTransition("confirm", "ok")

	assert.Equal(t, 4.0, testutil.ToFloat64(m.InventoryUnitsGenerated.WithLabelValues("marketplace", "activity")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingTransitions.WithLabelValues("marketplace", "confirm", "ok")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordUnitsGenerated("tour", 3)
		m.RecordBookingTransition("pay", "ok")
	})
}
