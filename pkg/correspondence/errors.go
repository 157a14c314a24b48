package correspondence

import "errors"

// Sentinel errors returned by this package.
var (
	// ErrInvalidTolerance is returned when a tolerance is negative,
	// NaN or infinite.
	ErrInvalidTolerance = errors.New("correspondence: invalid tolerance")

	// ErrTypeMismatch is returned by predicates that were handed a
	// value of a type they cannot compare.
	ErrTypeMismatch = errors.New("correspondence: type mismatch")
)
