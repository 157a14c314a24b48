package assertion

import (
	"fmt"
	"reflect"

	"digital.vasic.correspond/pkg/correspondence"
	"digital.vasic.correspond/pkg/ledger"
	"digital.vasic.correspond/pkg/matching"
)

// Built-in assertion types.
const (
	TypeContainsExactly               = "contains_exactly"
	TypeContainsExactlyInOrder        = "contains_exactly_in_order"
	TypeContainsExactlyEntries        = "contains_exactly_entries"
	TypeContainsExactlyEntriesInOrder = "contains_exactly_entries_in_order"
	TypeContainsEntry                 = "contains_entry"
	TypeDoesNotContainEntry           = "does_not_contain_entry"
)

// registerDefaults registers all built-in evaluators.
func (e *DefaultEngine) registerDefaults() {
	e.evaluators[TypeContainsExactly] = containsExactly(false)
	e.evaluators[TypeContainsExactlyInOrder] = containsExactly(true)
	e.evaluators[TypeContainsExactlyEntries] = containsExactlyEntries(false)
	e.evaluators[TypeContainsExactlyEntriesInOrder] = containsExactlyEntries(true)
	e.evaluators[TypeContainsEntry] = entryCheck(matching.ContainsEntry[string, any, any])
	e.evaluators[TypeDoesNotContainEntry] = entryCheck(matching.DoesNotContainEntry[string, any, any])
}

// containsExactly checks that the value holds exactly the expected
// elements under the correspondence, optionally in order.
func containsExactly(inOrder bool) Evaluator {
	return func(call Call) (matching.Outcome, error) {
		actual, err := toList(call.Actual)
		if err != nil {
			return matching.Outcome{}, fmt.Errorf("actual: %w", err)
		}
		expected, err := toList(call.Definition.Value)
		if err != nil {
			return matching.Outcome{}, fmt.Errorf("expected: %w", err)
		}

		l := ledger.ForCompare()
		r := matching.MatchExactly(
			actual, expected, call.Correspondence, l, call.Options...,
		)
		return matching.Evaluate(r, call.Correspondence, l, inOrder), nil
	}
}

// containsExactlyEntries checks key/value entries. Keys are
// compared by equality, values under the correspondence.
func containsExactlyEntries(inOrder bool) Evaluator {
	return func(call Call) (matching.Outcome, error) {
		if inOrder {
			if err := orderedEntries(call.Actual); err != nil {
				return matching.Outcome{}, fmt.Errorf("actual: %w", err)
			}
			if err := orderedEntries(call.Definition.Value); err != nil {
				return matching.Outcome{}, fmt.Errorf("expected: %w", err)
			}
		}
		actual, err := toEntries(call.Actual)
		if err != nil {
			return matching.Outcome{}, fmt.Errorf("actual: %w", err)
		}
		expected, err := toEntries(call.Definition.Value)
		if err != nil {
			return matching.Outcome{}, fmt.Errorf("expected: %w", err)
		}

		l := ledger.ForCompare()
		r := matching.MatchKeyedExactly(
			matching.GroupEntries(actual...),
			matching.GroupEntries(expected...),
			call.Correspondence, l, call.Options...,
		)
		return matching.EvaluateKeyed(r, call.Correspondence, l, inOrder), nil
	}
}

type entryFunc func(
	actual *matching.Grouping[string, any],
	key string,
	expected any,
	c correspondence.Correspondence[any, any],
	l *ledger.Ledger,
	opts ...matching.Option,
) matching.Outcome

// entryCheck adapts a single-entry check. The expected value is a
// map with one key whose value is not a list.
func entryCheck(check entryFunc) Evaluator {
	return func(call Call) (matching.Outcome, error) {
		actual, err := toEntries(call.Actual)
		if err != nil {
			return matching.Outcome{}, fmt.Errorf("actual: %w", err)
		}
		expected, err := toEntries(call.Definition.Value)
		if err != nil {
			return matching.Outcome{}, fmt.Errorf("expected: %w", err)
		}
		if len(expected) != 1 {
			return matching.Outcome{}, fmt.Errorf(
				"expected: %w: need exactly one entry, got %d", ErrShape, len(expected),
			)
		}

		return check(
			matching.GroupEntries(actual...),
			expected[0].Key, expected[0].Value,
			call.Correspondence, ledger.ForCompare(), call.Options...,
		), nil
	}
}

// orderedEntries rejects Go maps, whose key order is not the
// caller's.
func orderedEntries(value any) error {
	if value != nil && reflect.TypeOf(value).Kind() == reflect.Map {
		return fmt.Errorf(
			"%w: ordered entries need a list of single-key maps, got %T",
			ErrShape, value,
		)
	}
	return nil
}
