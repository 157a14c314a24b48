// Package correspondence defines the predicate that decides whether
// an actual value "corresponds to" an expected value, together with
// the built-in implementations. A correspondence is a behavior
// object: it is built once, shared read-only for a whole matching
// run and is never compared or hashed.
package correspondence

// Correspondence decides whether an actual value of type A
// corresponds to an expected value of type E.
//
// No reflexivity, symmetry or transitivity is assumed. For fixed
// inputs Compare must be deterministic.
type Correspondence[A, E any] interface {
	// Compare reports whether actual corresponds to expected. A
	// non-nil error means the pair could not be compared; it is
	// never a confirmed mismatch. A panic is treated the same way
	// by callers that go through the ledger.
	Compare(actual A, expected E) (bool, error)

	// FormatDiff describes why actual does not correspond to
	// expected. It returns "" when no diff is available and is
	// only meaningful for pairs where Compare returned false.
	FormatDiff(actual A, expected E) (string, error)

	// String returns a verb-phrase fragment such as "parses to"
	// that completes "<actual> is an element that ... <expected>".
	String() string
}

// CompareFunc is the predicate half of a Correspondence.
type CompareFunc[A, E any] func(actual A, expected E) (bool, error)

// DiffFunc is the optional diff half of a Correspondence.
type DiffFunc[A, E any] func(actual A, expected E) (string, error)

// noCompare makes any struct embedding it uncomparable, so using a
// correspondence with == or as a map key panics at run time.
type noCompare [0]func()

// Func is a Correspondence backed by plain functions.
type Func[A, E any] struct {
	_           noCompare
	compare     CompareFunc[A, E]
	diff        DiffFunc[A, E]
	description string
}

// From builds a Correspondence from a predicate and its
// description. The result has no diff formatter; see WithDiff.
func From[A, E any](
	compare CompareFunc[A, E],
	description string,
) Func[A, E] {
	return Func[A, E]{compare: compare, description: description}
}

// FromPredicate adapts a predicate that cannot fail.
func FromPredicate[A, E any](
	predicate func(actual A, expected E) bool,
	description string,
) Func[A, E] {
	return From(func(a A, e E) (bool, error) {
		return predicate(a, e), nil
	}, description)
}

// Compare calls the wrapped predicate.
func (f Func[A, E]) Compare(actual A, expected E) (bool, error) {
	return f.compare(actual, expected)
}

// FormatDiff calls the diff formatter if one was attached.
func (f Func[A, E]) FormatDiff(actual A, expected E) (string, error) {
	if f.diff == nil {
		return "", nil
	}
	return f.diff(actual, expected)
}

// String returns the description given to From.
func (f Func[A, E]) String() string {
	return f.description
}

// WithDiff returns a Correspondence that compares like c but
// formats diffs with diff.
func WithDiff[A, E any](
	c Correspondence[A, E],
	diff DiffFunc[A, E],
) Correspondence[A, E] {
	return diffing[A, E]{inner: c, diff: diff}
}

type diffing[A, E any] struct {
	_     noCompare
	inner Correspondence[A, E]
	diff  DiffFunc[A, E]
}

func (d diffing[A, E]) Compare(actual A, expected E) (bool, error) {
	return d.inner.Compare(actual, expected)
}

func (d diffing[A, E]) FormatDiff(actual A, expected E) (string, error) {
	return d.diff(actual, expected)
}

func (d diffing[A, E]) String() string {
	return d.inner.String()
}
