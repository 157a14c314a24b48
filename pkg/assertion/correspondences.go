package assertion

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp/cmpopts"

	"digital.vasic.correspond/pkg/correspondence"
)

// DefaultCorrespondence is used when a definition names none.
const DefaultCorrespondence = "equal"

// registerCorrespondences registers the built-in correspondences.
func (e *DefaultEngine) registerCorrespondences() {
	e.correspondences["equal"] = newEqual
	e.correspondences["tolerance"] = newTolerance
	e.correspondences["case_insensitive"] = newCaseInsensitive
	e.correspondences["parses_to"] = newParsesTo
}

// newEqual compares decoded values structurally. Empty and nil
// collections are equal since decoders disagree on which to use.
func newEqual(arg string) (correspondence.Correspondence[any, any], error) {
	if arg != "" {
		return nil, fmt.Errorf("equal takes no argument, got %q", arg)
	}
	return correspondence.Equal[any](cmpopts.EquateEmpty()), nil
}

func newTolerance(arg string) (correspondence.Correspondence[any, any], error) {
	if arg == "" {
		return nil, fmt.Errorf(
			"%w: tolerance requires a value", correspondence.ErrInvalidTolerance,
		)
	}
	tol, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return nil, fmt.Errorf(
			"%w: %q is not a number", correspondence.ErrInvalidTolerance, arg,
		)
	}
	inner, err := correspondence.Tolerance[float64, float64](tol)
	if err != nil {
		return nil, err
	}

	c := correspondence.From(func(a, e any) (bool, error) {
		fa, fe, err := numbers(a, e)
		if err != nil {
			return false, err
		}
		return inner.Compare(fa, fe)
	}, inner.String())

	return correspondence.WithDiff[any, any](c, func(a, e any) (string, error) {
		fa, fe, err := numbers(a, e)
		if err != nil {
			return "", err
		}
		return inner.FormatDiff(fa, fe)
	}), nil
}

func newCaseInsensitive(arg string) (correspondence.Correspondence[any, any], error) {
	if arg != "" {
		return nil, fmt.Errorf("case_insensitive takes no argument, got %q", arg)
	}
	return correspondence.From(func(a, e any) (bool, error) {
		as, ok := a.(string)
		if !ok {
			return false, typeMismatch("actual", "string", a)
		}
		es, ok := e.(string)
		if !ok {
			return false, typeMismatch("expected", "string", e)
		}
		return strings.EqualFold(as, es), nil
	}, "equals (ignoring case)"), nil
}

// newParsesTo compares a string against an integer it parses to.
// Base prefixes and signs are accepted, so "+64" and "0x40" both
// parse to 64.
func newParsesTo(arg string) (correspondence.Correspondence[any, any], error) {
	if arg != "" {
		return nil, fmt.Errorf("parses_to takes no argument, got %q", arg)
	}
	return correspondence.From(func(a, e any) (bool, error) {
		s, ok := a.(string)
		if !ok {
			return false, typeMismatch("actual", "string", a)
		}
		want, err := toInt64(e)
		if err != nil {
			return false, err
		}
		got, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return false, err
		}
		return got == want, nil
	}, "parses to"), nil
}

func numbers(a, e any) (float64, float64, error) {
	fa, ok := toFloat64(a)
	if !ok {
		return 0, 0, typeMismatch("actual", "number", a)
	}
	fe, ok := toFloat64(e)
	if !ok {
		return 0, 0, typeMismatch("expected", "number", e)
	}
	return fa, fe, nil
}

func typeMismatch(side, want string, got any) error {
	return fmt.Errorf(
		"%w: %s value %v (%T) is not a %s",
		correspondence.ErrTypeMismatch, side, got, got, want,
	)
}
