package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/tasks", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/tasks", "GET", 200, 20*time.Millisecond)
	m.RecordError("/tasks", "GET", "INTERNAL_ERROR")
	m.RecordSuggestion(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/tasks", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errors.WithLabelValues("/tasks", "GET", "INTERNAL_ERROR")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.suggestions))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordSuggestion(1)
	})
	assert.Nil(t, m.Registry())
}
