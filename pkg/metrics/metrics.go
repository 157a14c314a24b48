// Package metrics records what matching runs and assertions do.
package metrics

// MatchMetrics defines the interface for recording matching
// metrics.
type MatchMetrics interface {
	// RecordMatch records a completed matching run. kind is
	// "exactly" or "keyed".
	RecordMatch(kind string, exact, inOrder bool, comparisons int)
	// RecordPredicateFailures records n failures of the named
	// correspondence method within one run.
	RecordPredicateFailures(method string, n int)
	// RecordAssertion records an evaluated assertion.
	RecordAssertion(assertionType string, passed bool)
}

// NoopMetrics is a no-op implementation of MatchMetrics
// useful for testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordMatch(_ string, _, _ bool, _ int)  {}
func (NoopMetrics) RecordPredicateFailures(_ string, _ int) {}
func (NoopMetrics) RecordAssertion(_ string, _ bool)        {}
