// Package matching decides whether two collections contain
// corresponding elements with the same multiplicities, and
// describes the smallest discrepancy when they do not.
//
// Every predicate evaluation goes through the ledger package, so a
// misbehaving correspondence is recorded rather than propagated.
// Callers must inspect the ledger after a run; Evaluate does so and
// never reports success while a failure is recorded.
package matching

import (
	"slices"

	"digital.vasic.correspond/pkg/correspondence"
	"digital.vasic.correspond/pkg/ledger"
	"digital.vasic.correspond/pkg/logging"
)

// Pair links an actual element to the expected element it was
// matched with, by index.
type Pair struct {
	Actual   int `json:"actual"`
	Expected int `json:"expected"`
}

// Report is the result of MatchExactly. It is built fresh for
// every run and is not modified afterwards.
type Report[A, E any] struct {
	// Correspondence is the description of the predicate used.
	Correspondence string `json:"correspondence"`

	// Actual and Expected are the inputs of the run.
	Actual   []A `json:"actual"`
	Expected []E `json:"expected"`

	// Pairs is a maximum matching, ordered by actual index.
	Pairs []Pair `json:"pairs"`

	// Unexpected holds the actual elements left unmatched by the
	// maximum matching, and UnexpectedIndices their positions.
	Unexpected        []A   `json:"unexpected,omitempty"`
	UnexpectedIndices []int `json:"unexpected_indices,omitempty"`

	// Missing holds the expected elements left unmatched, and
	// MissingIndices their positions.
	Missing        []E   `json:"missing,omitempty"`
	MissingIndices []int `json:"missing_indices,omitempty"`

	// Exact is true iff both unmatched sets are empty.
	Exact bool `json:"exact"`

	// InOrder is only meaningful when Exact is true. It is true
	// iff the elements correspond position by position.
	InOrder bool `json:"in_order"`

	// OutOfOrder lists the positions whose elements do not
	// correspond when Exact is true and InOrder is false.
	OutOfOrder []int `json:"out_of_order,omitempty"`

	// FailedPairs lists the pairs whose comparison failed and was
	// counted as not corresponding.
	FailedPairs []Pair `json:"failed_pairs,omitempty"`

	// Comparisons is the number of predicate evaluations.
	Comparisons int `json:"comparisons"`

	// ActualCovered is true when every actual element matched at
	// least one expected element; ExpectedCovered is the converse.
	ActualCovered   bool `json:"actual_covered"`
	ExpectedCovered bool `json:"expected_covered"`

	edges [][]bool
}

// NoOneToOneMapping reports whether every element on both sides
// has at least one candidate, yet no bijection exists.
func (r Report[A, E]) NoOneToOneMapping() bool {
	return !r.Exact && r.ActualCovered && r.ExpectedCovered
}

// MatchExactly compares actual and expected as multisets under c.
// Every pair is evaluated once through ledger.SafeCompare; a failing
// pair counts as not corresponding and is recorded in l.
func MatchExactly[A, E any](
	actual []A,
	expected []E,
	c correspondence.Correspondence[A, E],
	l *ledger.Ledger,
	opts ...Option,
) Report[A, E] {
	cfg := newConfig(opts)
	before := l.Count()

	r := match(actual, expected, c, l)

	failures := l.Count() - before
	cfg.metrics.RecordMatch("exactly", r.Exact, r.Exact && r.InOrder, r.Comparisons)
	cfg.metrics.RecordPredicateFailures("compare", failures)
	logRun(cfg.logger, "exactly", c.String(), l, failures,
		logging.IntField("actual", len(actual)),
		logging.IntField("expected", len(expected)),
		logging.IntField("comparisons", r.Comparisons),
		logging.BoolField("exact", r.Exact),
		logging.BoolField("in_order", r.Exact && r.InOrder),
	)
	return r
}

func match[A, E any](
	actual []A,
	expected []E,
	c correspondence.Correspondence[A, E],
	l *ledger.Ledger,
) Report[A, E] {
	r := Report[A, E]{
		Correspondence:  c.String(),
		Actual:          actual,
		Expected:        expected,
		ActualCovered:   true,
		ExpectedCovered: true,
	}

	adj := make([][]bool, len(actual))
	expectedHit := make([]bool, len(expected))
	for i, a := range actual {
		adj[i] = make([]bool, len(expected))
		hit := false
		for j, e := range expected {
			before := l.Count()
			ok := ledger.SafeCompare(c, a, e, l)
			if l.Count() > before {
				r.FailedPairs = append(r.FailedPairs, Pair{Actual: i, Expected: j})
			}
			r.Comparisons++
			adj[i][j] = ok
			hit = hit || ok
			expectedHit[j] = expectedHit[j] || ok
		}
		if !hit {
			r.ActualCovered = false
		}
	}
	for _, hit := range expectedHit {
		if !hit {
			r.ExpectedCovered = false
		}
	}

	r.edges = adj
	actualTo, expectedTo := maxMatching(adj, len(expected))
	for i, j := range actualTo {
		if j == unmatched {
			r.Unexpected = append(r.Unexpected, actual[i])
			r.UnexpectedIndices = append(r.UnexpectedIndices, i)
			continue
		}
		r.Pairs = append(r.Pairs, Pair{Actual: i, Expected: j})
	}
	for j, i := range expectedTo {
		if i == unmatched {
			r.Missing = append(r.Missing, expected[j])
			r.MissingIndices = append(r.MissingIndices, j)
		}
	}

	r.Exact = len(r.Unexpected) == 0 && len(r.Missing) == 0
	if r.Exact {
		for i := range actual {
			if !adj[i][i] {
				r.OutOfOrder = append(r.OutOfOrder, i)
			}
		}
		r.InOrder = len(r.OutOfOrder) == 0
	}
	return r
}

// passesIfFailuresCorrespond reports whether the run would pass
// had every failed comparison returned true. When it would, the
// failures are the only reason it did not.
func (r Report[A, E]) passesIfFailuresCorrespond(requireOrder bool) bool {
	if len(r.Actual) != len(r.Expected) {
		return false
	}
	adj := make([][]bool, len(r.edges))
	for i, row := range r.edges {
		adj[i] = slices.Clone(row)
	}
	for _, p := range r.FailedPairs {
		adj[p.Actual][p.Expected] = true
	}

	actualTo, _ := maxMatching(adj, len(r.Expected))
	for _, j := range actualTo {
		if j == unmatched {
			return false
		}
	}
	if requireOrder {
		for i := range adj {
			if !adj[i][i] {
				return false
			}
		}
	}
	return true
}

func logRun(
	logger logging.Logger,
	kind, description string,
	l *ledger.Ledger,
	failures int,
	fields ...logging.Field,
) {
	logger = logger.WithFields(
		logging.StringField("kind", kind),
		logging.StringField("correspondence", description),
	)
	logger.Debug("matching run completed", fields...)

	if failures == 0 {
		return
	}
	first := l.First()
	logger.Warn("correspondence failed during matching",
		logging.IntField("failures", failures),
		logging.StringField("method", first.Method),
		logging.StringField("args", correspondence.FormatArgs(first.Args)),
		logging.ErrorField(first.Cause),
	)
}
