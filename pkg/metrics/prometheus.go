package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements MatchMetrics with Prometheus
// collectors registered on a caller-supplied registerer.
type PrometheusMetrics struct {
	runs        *prometheus.CounterVec
	comparisons *prometheus.HistogramVec
	failures    *prometheus.CounterVec
	assertions  *prometheus.CounterVec
}

// NewPrometheusMetrics creates the collectors and registers them
// on reg. It fails if any of them is already registered.
func NewPrometheusMetrics(
	reg prometheus.Registerer,
) (*PrometheusMetrics, error) {
	m := &PrometheusMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "correspond_match_runs_total",
			Help: "Matching runs by kind, exactness and order",
		}, []string{"kind", "exact", "in_order"}),
		comparisons: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "correspond_match_comparisons",
			Help:    "Predicate evaluations per matching run",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"kind"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "correspond_predicate_failures_total",
			Help: "Correspondence method failures by method",
		}, []string{"method"}),
		assertions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "correspond_assertions_total",
			Help: "Evaluated assertions by type and result",
		}, []string{"type", "result"}),
	}

	for _, c := range []prometheus.Collector{
		m.runs, m.comparisons, m.failures, m.assertions,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) RecordMatch(
	kind string, exact, inOrder bool, comparisons int,
) {
	m.runs.WithLabelValues(
		kind, strconv.FormatBool(exact), strconv.FormatBool(inOrder),
	).Inc()
	m.comparisons.WithLabelValues(kind).Observe(float64(comparisons))
}

func (m *PrometheusMetrics) RecordPredicateFailures(method string, n int) {
	if n <= 0 {
		return
	}
	m.failures.WithLabelValues(method).Add(float64(n))
}

func (m *PrometheusMetrics) RecordAssertion(assertionType string, passed bool) {
	result := "failed"
	if passed {
		result = "passed"
	}
	m.assertions.WithLabelValues(assertionType, result).Inc()
}
