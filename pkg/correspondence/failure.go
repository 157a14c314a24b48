package correspondence

import (
	"fmt"
	"runtime"
	"strings"
)

// PredicateFailure records that a Correspondence method could not
// produce a result for a particular pair of arguments.
type PredicateFailure struct {
	// Method is the failing method, "compare" or "formatDiff".
	Method string

	// Args are the exact arguments the method was called with.
	Args []any

	// Cause is the returned error or the recovered panic.
	Cause error

	// Stack holds the frames inside the predicate that led to the
	// failure. It is empty when no trace was available.
	Stack []runtime.Frame
}

func (f *PredicateFailure) Error() string {
	return fmt.Sprintf(
		"%s(%s) failed with %v", f.Method, FormatArgs(f.Args), f.Cause,
	)
}

func (f *PredicateFailure) Unwrap() error {
	return f.Cause
}

// FormatStack renders Stack one frame per line.
func (f *PredicateFailure) FormatStack() string {
	var b strings.Builder
	for i, frame := range f.Stack {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "\tat %s(%s:%d)", frame.Function, frame.File, frame.Line)
	}
	return b.String()
}

// FormatArgs renders arguments as "[a, b]".
func FormatArgs(args []any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
