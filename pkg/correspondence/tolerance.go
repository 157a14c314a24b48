package correspondence

import (
	"fmt"
	"math"
	"strconv"
)

// Number is the set of types the tolerance correspondence accepts.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// ToleranceCorrespondence considers two numbers to correspond when
// both are finite and their float64 values differ by at most the
// tolerance.
type ToleranceCorrespondence[A, E Number] struct {
	_         noCompare
	tolerance float64
}

// Tolerance returns a numeric correspondence with an inclusive
// bound. The tolerance must be finite and non-negative; -0.0
// compares equal to zero and is accepted.
func Tolerance[A, E Number](
	tolerance float64,
) (ToleranceCorrespondence[A, E], error) {
	if err := CheckTolerance(tolerance); err != nil {
		return ToleranceCorrespondence[A, E]{}, err
	}
	return ToleranceCorrespondence[A, E]{tolerance: tolerance}, nil
}

// MustTolerance is like Tolerance but panics on an invalid
// tolerance.
func MustTolerance[A, E Number](
	tolerance float64,
) ToleranceCorrespondence[A, E] {
	c, err := Tolerance[A, E](tolerance)
	if err != nil {
		panic(err)
	}
	return c
}

// CheckTolerance validates a tolerance value.
func CheckTolerance(tolerance float64) error {
	switch {
	case math.IsNaN(tolerance):
		return fmt.Errorf("%w: tolerance cannot be NaN", ErrInvalidTolerance)
	case math.IsInf(tolerance, 0):
		return fmt.Errorf(
			"%w: tolerance cannot be infinite", ErrInvalidTolerance,
		)
	case tolerance < 0:
		return fmt.Errorf(
			"%w: tolerance (%v) cannot be negative",
			ErrInvalidTolerance, tolerance,
		)
	}
	return nil
}

// WithinTolerance reports whether actual and expected are finite
// and no further apart than tolerance.
func WithinTolerance(actual, expected, tolerance float64) bool {
	if !isFinite(actual) || !isFinite(expected) {
		return false
	}
	return math.Abs(actual-expected) <= tolerance
}

// Compare never fails; non-finite operands simply do not correspond.
func (t ToleranceCorrespondence[A, E]) Compare(
	actual A, expected E,
) (bool, error) {
	return WithinTolerance(float64(actual), float64(expected), t.tolerance), nil
}

// FormatDiff reports how far apart two finite values are.
func (t ToleranceCorrespondence[A, E]) FormatDiff(
	actual A, expected E,
) (string, error) {
	a, e := float64(actual), float64(expected)
	if !isFinite(a) || !isFinite(e) {
		return "", nil
	}
	return "off by " + formatFloat(math.Abs(a-e)), nil
}

// Tolerance returns the configured bound.
func (t ToleranceCorrespondence[A, E]) Tolerance() float64 {
	return t.tolerance
}

func (t ToleranceCorrespondence[A, E]) String() string {
	return "is a finite number within " + formatFloat(t.tolerance) + " of"
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
