package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for write operations
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics provides observability for statutory component configuration.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Write operations by operation and outcome
	Writes *prometheus.CounterVec

	// Rule rejections by violated rule code
	RuleRejections *prometheus.CounterVec

	// Point-in-time resolution latency
	ResolveLatency prometheus.Histogram

	// Country directory cache lookups by result (hit, miss, error)
	CountryCache *prometheus.CounterVec
}

// New registers all metrics with reg. Pass prometheus.DefaultRegisterer in main
// and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Writes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "statutory_component_writes_total",
			Help: "Statutory component write operations by operation and outcome",
		}, []string{"operation", "outcome"}),

		RuleRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "statutory_component_rule_rejections_total",
			Help: "Writes rejected by the rule engine, by rule code",
		}, []string{"code"}),

		ResolveLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "statutory_component_resolve_duration_seconds",
			Help:    "Duration of point-in-time component resolution",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		CountryCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "country_cache_lookups_total",
			Help: "Country directory cache lookups by result",
		}, []string{"result"}),
	}
}

// IncrementWrite records a write outcome.
func (m *Metrics) IncrementWrite(operation, outcome string) {
	if m != nil {
		m.Writes.WithLabelValues(operation, outcome).Inc()
	}
}

// IncrementRejection records a rule violation.
func (m *Metrics) IncrementRejection(code string) {
	if m != nil {
		m.RuleRejections.WithLabelValues(code).Inc()
	}
}

// ObserveResolveLatency records how long a point-in-time query took.
func (m *Metrics) ObserveResolveLatency(d time.Duration) {
	if m != nil {
		m.ResolveLatency.Observe(d.Seconds())
	}
}

// IncrementCacheLookup records a cache hit, miss or error.
func (m *Metrics) IncrementCacheLookup(result string) {
	if m != nil {
		m.CountryCache.WithLabelValues(result).Inc()
	}
}
