// Package ledger implements the first-failure-wins accumulator used
// while a matching run evaluates a correspondence, and the guarded
// invocations that feed it.
//
// A failing predicate must never let an assertion pass. The guarded
// calls substitute a conservative false so matching can continue
// and find a more specific mismatch; the caller inspects the ledger
// afterwards and fails the run if anything was recorded.
package ledger

import (
	"errors"

	"digital.vasic.correspond/pkg/correspondence"
	"digital.vasic.correspond/pkg/fact"
)

// Contexts used by the constructors below.
const (
	ContextCompare    = "comparing elements"
	ContextFormatDiff = "formatting diffs"
)

// ErrEmpty is returned when a main-cause description is requested
// from a ledger that recorded nothing.
var ErrEmpty = errors.New("ledger: no failure recorded")

// Ledger keeps the first predicate failure of a run. It is owned by
// a single run and is not safe for concurrent use.
type Ledger struct {
	context string
	first   *correspondence.PredicateFailure
	count   int
}

// New creates an empty ledger. context completes the phrase
// "failures occurred while ...".
func New(context string) *Ledger {
	return &Ledger{context: context}
}

// ForCompare creates a ledger for Compare calls.
func ForCompare() *Ledger {
	return New(ContextCompare)
}

// ForFormatDiff creates a ledger for FormatDiff calls.
func ForFormatDiff() *Ledger {
	return New(ContextFormatDiff)
}

// Record stores f if it is the first failure and counts it either
// way.
func (l *Ledger) Record(f *correspondence.PredicateFailure) {
	l.count++
	if l.first == nil {
		l.first = f
	}
}

// IsEmpty reports whether nothing was recorded.
func (l *Ledger) IsEmpty() bool {
	return l.first == nil
}

// HasFailure reports whether at least one failure was recorded.
func (l *Ledger) HasFailure() bool {
	return l.first != nil
}

// First returns the first recorded failure, or nil.
func (l *Ledger) First() *correspondence.PredicateFailure {
	return l.first
}

// Count returns how many failures were recorded, including the ones
// that were not retained.
func (l *Ledger) Count() int {
	return l.count
}

// Context returns the activity the ledger is scoped to.
func (l *Ledger) Context() string {
	return l.context
}

// DescribeAsMainCause returns the facts to report when the recorded
// failure is the only reason a run fails.
func (l *Ledger) DescribeAsMainCause() ([]fact.Fact, error) {
	if l.IsEmpty() {
		return nil, ErrEmpty
	}
	return []fact.Fact{
		fact.Simple("one or more failures occurred while " + l.context),
		l.firstFailureFact(),
	}, nil
}

// DescribeAsAdditionalInfo returns the facts to append when a more
// specific mismatch was found but a failure also occurred. It
// returns nil for an empty ledger.
func (l *Ledger) DescribeAsAdditionalInfo() []fact.Fact {
	if l.IsEmpty() {
		return nil
	}
	return []fact.Fact{
		fact.Simple(
			"additionally, one or more failures occurred while " + l.context,
		),
		l.firstFailureFact(),
	}
}

func (l *Ledger) firstFailureFact() fact.Fact {
	value := l.first.Error()
	if stack := l.first.FormatStack(); stack != "" {
		value += "\n" + stack
	}
	return fact.New("first failure", value)
}
