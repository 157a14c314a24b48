package assertion

import (
	"digital.vasic.correspond/pkg/correspondence"
	"digital.vasic.correspond/pkg/matching"
)

// Call carries everything an evaluator needs for one assertion.
type Call struct {
	Definition     Definition
	Actual         any
	Correspondence correspondence.Correspondence[any, any]
	Options        []matching.Option
}

// Evaluator evaluates a single assertion type. An error means the
// assertion could not be evaluated at all, for example because a
// value has the wrong shape.
type Evaluator func(call Call) (matching.Outcome, error)

// Factory builds a correspondence from the argument part of a
// "name[:arg]" reference. arg is "" when no argument was given.
type Factory func(arg string) (correspondence.Correspondence[any, any], error)
