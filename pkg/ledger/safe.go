package ledger

import (
	"errors"
	"fmt"

	"digital.vasic.correspond/pkg/correspondence"
)

// ErrPanicked wraps a value recovered from a panicking predicate.
var ErrPanicked = errors.New("ledger: predicate panicked")

// Outcome is the tagged result of one guarded call: either a value,
// or a failure and the zero value.
type Outcome[T any] struct {
	Value   T
	Failure *correspondence.PredicateFailure
}

// Failed reports whether the call failed.
func (o Outcome[T]) Failed() bool {
	return o.Failure != nil
}

// TryCompare calls c.Compare, converting a returned error or a
// panic into a failure.
func TryCompare[A, E any](
	c correspondence.Correspondence[A, E],
	actual A,
	expected E,
) Outcome[bool] {
	return invoke("compare", []any{actual, expected}, func() (bool, error) {
		return c.Compare(actual, expected)
	})
}

// TryFormatDiff calls c.FormatDiff with the same guarding as
// TryCompare.
func TryFormatDiff[A, E any](
	c correspondence.Correspondence[A, E],
	actual A,
	expected E,
) Outcome[string] {
	return invoke("formatDiff", []any{actual, expected}, func() (string, error) {
		return c.FormatDiff(actual, expected)
	})
}

// SafeCompare returns the predicate's answer, or false after
// recording the failure in l. Callers must fail their run later if
// l is not empty.
func SafeCompare[A, E any](
	c correspondence.Correspondence[A, E],
	actual A,
	expected E,
	l *Ledger,
) bool {
	out := TryCompare(c, actual, expected)
	if out.Failed() {
		l.Record(out.Failure)
		return false
	}
	return out.Value
}

// SafeFormatDiff returns the diff text, or "" after recording the
// failure in l.
func SafeFormatDiff[A, E any](
	c correspondence.Correspondence[A, E],
	actual A,
	expected E,
	l *Ledger,
) string {
	out := TryFormatDiff(c, actual, expected)
	if out.Failed() {
		l.Record(out.Failure)
		return ""
	}
	return out.Value
}

func invoke[T any](
	method string,
	args []any,
	call func() (T, error),
) (out Outcome[T]) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		out = Outcome[T]{Failure: &correspondence.PredicateFailure{
			Method: method,
			Args:   args,
			Cause:  panicCause(r),
			Stack:  truncate(panicFrames()),
		}}
	}()

	v, err := call()
	if err != nil {
		return Outcome[T]{Failure: &correspondence.PredicateFailure{
			Method: method,
			Args:   args,
			Cause:  err,
			Stack:  truncate(errorFrames(err)),
		}}
	}
	return Outcome[T]{Value: v}
}

func panicCause(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", ErrPanicked, err)
	}
	return fmt.Errorf("%w: %v", ErrPanicked, r)
}
