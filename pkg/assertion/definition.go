// Package assertion evaluates declarative collection assertions.
// Each assertion names a matching strategy, a correspondence and
// the expected contents; the engine resolves the correspondence by
// name and reports the outcome with its facts.
package assertion

import "digital.vasic.correspond/pkg/fact"

// Definition describes a single assertion to evaluate against a
// named value.
type Definition struct {
	// Type is the evaluator type (e.g., "contains_exactly",
	// "contains_exactly_entries_in_order").
	Type string `json:"type" yaml:"type"`

	// Target is the name of the value to check.
	Target string `json:"target" yaml:"target"`

	// Correspondence selects how elements are compared, in the
	// form "name[:arg]" (e.g., "tolerance:0.01"). Empty means
	// "equal".
	Correspondence string `json:"correspondence,omitempty" yaml:"correspondence,omitempty"`

	// Value is the expected collection.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Message is a human-readable description shown on
	// failure.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Result captures the outcome of evaluating a single assertion.
type Result struct {
	// Type is the assertion type that was evaluated.
	Type string `json:"type"`

	// Target is the name of the value checked.
	Target string `json:"target"`

	// Expected is the value the assertion expected.
	Expected any `json:"expected"`

	// Actual is the value that was observed.
	Actual any `json:"actual"`

	// Passed indicates whether the assertion succeeded.
	Passed bool `json:"passed"`

	// Cause names why a failed assertion failed.
	Cause string `json:"cause,omitempty"`

	// Message is a human-readable description of the outcome.
	Message string `json:"message"`

	// Facts are the structured failure details.
	Facts []fact.Fact `json:"facts,omitempty"`
}
