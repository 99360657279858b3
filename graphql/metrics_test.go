package graphql

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilIsNoOp(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observe(OutcomeSuccess, time.Millisecond)
		m.notified()
	})
}

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(
		WithRegistry(reg),
		WithNamespace("blog"),
		WithConstLabels(prometheus.Labels{"env": "test"}),
		WithBuckets([]float64{0.1, 1}),
	)

	m.observe(OutcomeSuccess, 50*time.Millisecond)
	m.observe(OutcomeSuccess, 2*time.Second)
	m.observe(OutcomeDecode, time.Millisecond)

	assert.Equal(t, float64(2), promtest.ToFloat64(m.requestsTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, float64(1), promtest.ToFloat64(m.requestsTotal.WithLabelValues(OutcomeDecode)))

	families, err := reg.Gather()
	assert.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "blog_graphql_requests_total")
	assert.Contains(t, names, "blog_graphql_request_duration_seconds")
}
