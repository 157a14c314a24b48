package matching

import (
	"errors"
	"fmt"

	"digital.vasic.correspond/pkg/correspondence"
	"digital.vasic.correspond/pkg/fact"
	"digital.vasic.correspond/pkg/ledger"
)

// Cause identifies why an outcome failed.
type Cause int

const (
	// CauseNone means the outcome passed.
	CauseNone Cause = iota
	// CauseMismatch means elements were missing or unexpected.
	CauseMismatch
	// CauseOrder means the contents matched in the wrong order.
	CauseOrder
	// CausePredicateFailure means the only reason for failure is
	// that the correspondence failed.
	CausePredicateFailure
)

// String returns a short name for the cause.
func (c Cause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseMismatch:
		return "mismatch"
	case CauseOrder:
		return "order"
	case CausePredicateFailure:
		return "predicate_failure"
	default:
		return fmt.Sprintf("cause(%d)", int(c))
	}
}

// MarshalText encodes the cause by name.
func (c Cause) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Outcome is the verdict on a report, with the facts that explain
// a failure.
type Outcome struct {
	Passed bool        `json:"passed"`
	Cause  Cause       `json:"cause"`
	Facts  []fact.Fact `json:"facts,omitempty"`
}

// Message renders the facts.
func (o Outcome) Message() string {
	return fact.Render(o.Facts)
}

// Evaluate turns a report into an outcome. A failure recorded in l
// is the main cause when nothing more specific went wrong, which
// includes the case where the run would have passed had the failed
// comparisons succeeded. Otherwise it is additional information.
// Either way the outcome fails.
//
// When exactly one element is missing and one is unexpected the
// pair's diff is included. FormatDiff failures go to a separate
// ledger and are only ever reported as additional information.
func Evaluate[A, E any](
	r Report[A, E],
	c correspondence.Correspondence[A, E],
	l *ledger.Ledger,
	requireOrder bool,
) Outcome {
	contents := []fact.Fact{
		fact.New("comparing contents by testing that each element",
			c.String()+" an expected value"),
		fact.New("expected", formatList(r.Expected)),
		fact.New("but was", formatList(r.Actual)),
	}

	switch {
	case len(r.FailedPairs) > 0 && r.passesIfFailuresCorrespond(requireOrder):
		return passOrFail(l, contents)

	case !r.Exact:
		facts := mismatchFacts(r.Missing, r.Unexpected, r.NoOneToOneMapping())
		diffs := ledger.ForFormatDiff()
		if len(r.Missing) == 1 && len(r.Unexpected) == 1 {
			diff := ledger.SafeFormatDiff(c, r.Unexpected[0], r.Missing[0], diffs)
			if diff != "" {
				facts = append(facts, fact.New("diff", diff))
			}
		}
		facts = append(facts, contents...)
		return failed(CauseMismatch, facts, l, diffs)

	case requireOrder && !r.InOrder:
		facts := []fact.Fact{
			fact.Simple("contents match, but order was wrong"),
			fact.New("out of order at positions", formatList(r.OutOfOrder)),
		}
		return failed(CauseOrder, append(facts, contents...), l, nil)
	}

	return passOrFail(l, contents)
}

// EvaluateKeyed is Evaluate for keyed reports. Key order and value
// order within a key are reported separately.
func EvaluateKeyed[K comparable, A, E any](
	r KeyedReport[K, A, E],
	c correspondence.Correspondence[A, E],
	l *ledger.Ledger,
	requireOrder bool,
) Outcome {
	contents := []fact.Fact{
		fact.New("comparing contents by testing that each element",
			"has a key that is equal to and a value that "+c.String()+
				" the key and value of an expected value"),
		fact.New("expected", formatList(expectedEntries(r))),
		fact.New("but was", formatList(actualEntries(r))),
	}

	switch {
	case r.passesIfFailuresCorrespond(requireOrder):
		return passOrFail(l, contents)

	case !r.Exact:
		facts := mismatchFacts(r.Missing, r.Unexpected, r.NoOneToOneMapping())
		diffs := ledger.ForFormatDiff()
		if len(r.Missing) == 1 && len(r.Unexpected) == 1 &&
			r.Missing[0].Key == r.Unexpected[0].Key {
			diff := ledger.SafeFormatDiff(
				c, r.Unexpected[0].Value, r.Missing[0].Value, diffs,
			)
			if diff != "" {
				facts = append(facts, fact.New("diff", diff))
			}
		}
		facts = append(facts, contents...)
		return failed(CauseMismatch, facts, l, diffs)

	case requireOrder && !r.KeysInOrder:
		facts := []fact.Fact{
			fact.Simple("contents match, but order was wrong"),
			fact.New("expected key order", formatList(r.ExpectedKeys)),
			fact.New("but key order was", formatList(r.ActualKeys)),
		}
		return failed(CauseOrder, append(facts, contents...), l, nil)

	case requireOrder && len(r.ValuesOutOfOrder) > 0:
		facts := []fact.Fact{
			fact.Simple("contents match, but order was wrong"),
			fact.Simple(fmt.Sprintf(
				"the values for keys %s are not in order",
				formatList(r.ValuesOutOfOrder),
			)),
		}
		return failed(CauseOrder, append(facts, contents...), l, nil)
	}

	return passOrFail(l, contents)
}

func mismatchFacts[A, E any](missing []E, unexpected []A, noMapping bool) []fact.Fact {
	var facts []fact.Fact
	if noMapping {
		facts = append(facts, fact.Simple(
			"each element matches at least one element on the other side, "+
				"but there was no 1:1 mapping between all the actual and "+
				"expected elements; using the most complete 1:1 mapping",
		))
	}
	if len(missing) > 0 {
		facts = append(facts, fact.New(
			fmt.Sprintf("missing (%d)", len(missing)), formatList(missing),
		))
	}
	if len(unexpected) > 0 {
		facts = append(facts, fact.New(
			fmt.Sprintf("unexpected (%d)", len(unexpected)), formatList(unexpected),
		))
	}
	return facts
}

// failed builds a failing outcome and appends any recorded compare
// or diff failures as additional information.
func failed(cause Cause, facts []fact.Fact, compares, diffs *ledger.Ledger) Outcome {
	facts = append(facts, compares.DescribeAsAdditionalInfo()...)
	if diffs != nil {
		facts = append(facts, diffs.DescribeAsAdditionalInfo()...)
	}
	return Outcome{Cause: cause, Facts: facts}
}

// passOrFail is reached when the report itself found nothing
// wrong. A recorded failure still fails the outcome.
func passOrFail(l *ledger.Ledger, contents []fact.Fact) Outcome {
	facts, err := l.DescribeAsMainCause()
	if errors.Is(err, ledger.ErrEmpty) {
		return Outcome{Passed: true, Cause: CauseNone}
	}
	return Outcome{
		Cause: CausePredicateFailure,
		Facts: append(facts, contents...),
	}
}

func expectedEntries[K comparable, A, E any](r KeyedReport[K, A, E]) []Entry[K, E] {
	var out []Entry[K, E]
	for _, k := range r.ExpectedKeys {
		for _, v := range r.PerKey[k].Expected {
			out = append(out, Entry[K, E]{Key: k, Value: v})
		}
	}
	return out
}

func actualEntries[K comparable, A, E any](r KeyedReport[K, A, E]) []Entry[K, A] {
	var out []Entry[K, A]
	for _, k := range r.ActualKeys {
		for _, v := range r.PerKey[k].Actual {
			out = append(out, Entry[K, A]{Key: k, Value: v})
		}
	}
	return out
}

func formatList[T any](xs []T) string {
	args := make([]any, len(xs))
	for i, x := range xs {
		args[i] = x
	}
	return correspondence.FormatArgs(args)
}
