package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.IncrementWrite("create", OutcomeSuccess)
	m.IncrementWrite("create", OutcomeSuccess)
	m.IncrementWrite("delete", OutcomeRejected)
	m.IncrementRejection("MANDATORY_COMPONENT")
	m.IncrementCacheLookup("hit")
	m.ObserveResolveLatency(3 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Writes.WithLabelValues("create", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Writes.WithLabelValues("delete", OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RuleRejections.WithLabelValues("MANDATORY_COMPONENT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CountryCache.WithLabelValues("hit")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.ResolveLatency))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementWrite("create", OutcomeSuccess)
		m.IncrementRejection("X")
		m.ObserveResolveLatency(time.Second)
		m.IncrementCacheLookup("miss")
	})
}
