package correspondence

import "github.com/google/go-cmp/cmp"

// EqualCorrespondence considers values to correspond when cmp.Equal
// reports them equal under the configured options.
type EqualCorrespondence[T any] struct {
	_    noCompare
	opts []cmp.Option
}

// Equal returns a Correspondence based on cmp.Equal. cmp panics on
// unexported fields it was not told how to handle; through the
// ledger that surfaces as a predicate failure.
func Equal[T any](opts ...cmp.Option) EqualCorrespondence[T] {
	return EqualCorrespondence[T]{opts: opts}
}

// Compare reports whether actual and expected are equal.
func (c EqualCorrespondence[T]) Compare(actual, expected T) (bool, error) {
	return cmp.Equal(actual, expected, c.opts...), nil
}

// FormatDiff returns cmp's (-expected +actual) report.
func (c EqualCorrespondence[T]) FormatDiff(actual, expected T) (string, error) {
	return cmp.Diff(expected, actual, c.opts...), nil
}

func (c EqualCorrespondence[T]) String() string {
	return "is equal to"
}
