package assertion

import (
	"fmt"

	"digital.vasic.correspond/pkg/fact"
	"digital.vasic.correspond/pkg/matching"
)

// AllPassComposite evaluates all assertions and passes only if
// every one of them passed.
func AllPassComposite(
	engine Engine,
	assertions []Definition,
	values map[string]any,
) Result {
	results := engine.EvaluateAll(assertions, values)

	for _, r := range results {
		if !r.Passed {
			return Result{
				Type:   "all_pass",
				Passed: false,
				Cause:  r.Cause,
				Message: fmt.Sprintf(
					"assertion '%s' on target '%s' failed: %s",
					r.Type, r.Target, r.Message,
				),
				Facts: r.Facts,
			}
		}
	}

	return Result{
		Type:   "all_pass",
		Passed: true,
		Message: fmt.Sprintf(
			"all %d assertions passed", len(results),
		),
	}
}

// AnyPassComposite evaluates assertions and passes if at least
// one of them passed.
func AnyPassComposite(
	engine Engine,
	assertions []Definition,
	values map[string]any,
) Result {
	results := engine.EvaluateAll(assertions, values)

	for _, r := range results {
		if r.Passed {
			return Result{
				Type:   "any_pass",
				Passed: true,
				Message: fmt.Sprintf(
					"assertion '%s' on target '%s' passed",
					r.Type, r.Target,
				),
			}
		}
	}

	return Result{
		Type:   "any_pass",
		Passed: false,
		Message: fmt.Sprintf(
			"none of %d assertions passed",
			len(results),
		),
	}
}

// CompositeAllPass returns an Evaluator that runs a fixed set of
// sub-assertions against the value and requires all to pass.
func CompositeAllPass(
	engine Engine,
	subAssertions []Definition,
) Evaluator {
	return func(call Call) (matching.Outcome, error) {
		return compositeOutcome(
			AllPassComposite(engine, subAssertions, sameValue(subAssertions, call.Actual)),
		), nil
	}
}

// CompositeAnyPass returns an Evaluator that runs a fixed set of
// sub-assertions against the value and requires at least one to
// pass.
func CompositeAnyPass(
	engine Engine,
	subAssertions []Definition,
) Evaluator {
	return func(call Call) (matching.Outcome, error) {
		return compositeOutcome(
			AnyPassComposite(engine, subAssertions, sameValue(subAssertions, call.Actual)),
		), nil
	}
}

func sameValue(assertions []Definition, value any) map[string]any {
	values := map[string]any{}
	for _, a := range assertions {
		values[a.Target] = value
	}
	return values
}

func compositeOutcome(r Result) matching.Outcome {
	if r.Passed {
		return matching.Outcome{Passed: true}
	}
	facts := r.Facts
	if len(facts) == 0 {
		facts = []fact.Fact{fact.Simple(r.Message)}
	}
	return matching.Outcome{Cause: matching.CauseMismatch, Facts: facts}
}
