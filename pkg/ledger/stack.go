package ledger

import (
	"errors"
	"reflect"
	"runtime"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

const maxFrames = 64

// ledgerPackage is the import path frames are cut at.
var ledgerPackage = packageOf(
	runtime.FuncForPC(reflect.ValueOf(New).Pointer()).Name(),
)

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// panicFrames captures the stack of the panicking goroutine from
// inside a deferred recover, without the panic machinery on top.
func panicFrames() []runtime.Frame {
	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(2, pcs)
	frames := framesOf(pcs[:n])

	for i, f := range frames {
		if f.Function != "runtime.gopanic" {
			continue
		}
		rest := frames[i+1:]
		for len(rest) > 0 && strings.HasPrefix(rest[0].Function, "runtime.") {
			rest = rest[1:]
		}
		return rest
	}
	return frames
}

// errorFrames returns the trace attached by github.com/pkg/errors,
// if err or anything it wraps carries one.
func errorFrames(err error) []runtime.Frame {
	var st stackTracer
	if !errors.As(err, &st) {
		return nil
	}
	trace := st.StackTrace()
	pcs := make([]uintptr, len(trace))
	for i, f := range trace {
		pcs[i] = uintptr(f)
	}
	return framesOf(pcs)
}

// truncate keeps the frames above the first one that belongs to
// this package.
func truncate(frames []runtime.Frame) []runtime.Frame {
	for i, f := range frames {
		if packageOf(f.Function) == ledgerPackage {
			return frames[:i]
		}
	}
	return frames
}

func framesOf(pcs []uintptr) []runtime.Frame {
	if len(pcs) == 0 {
		return nil
	}
	var out []runtime.Frame
	iter := runtime.CallersFrames(pcs)
	for {
		f, more := iter.Next()
		out = append(out, f)
		if !more {
			break
		}
	}
	return out
}

// packageOf returns the import path part of a fully qualified
// function name such as "example.com/a/b.(*T).M[...]".
func packageOf(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	slash := strings.LastIndexByte(name, '/')
	if dot := strings.IndexByte(name[slash+1:], '.'); dot >= 0 {
		return name[:slash+1+dot]
	}
	return name
}
