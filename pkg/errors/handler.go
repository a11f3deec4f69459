package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// maxStackDepth bounds the frames kept by CaptureStack.
const maxStackDepth = 32

type handlerBox struct{ h ErrorHandler }

var current atomic.Pointer[handlerBox]

func init() {
	current.Store(&handlerBox{h: &LogHandler{}})
}

// SetHandler installs the global error handler and returns the one it
// replaces. Nil restores a LogHandler writing through slog.Default().
func SetHandler(h ErrorHandler) (previous ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	return current.Swap(&handlerBox{h: h}).h
}

// Handler returns the global error handler.
func Handler() ErrorHandler {
	return current.Load().h
}

// Report sends err to the global handler, stamping it if needed.
func Report(err *CoatError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	Handler().HandleError(err)
}

// Reportf reports a CoatError of the given kind raised by op while
// processing node (a full debug name, or "").
func Reportf(kind ErrorKind, op, node, format string, args ...any) {
	Report(&CoatError{Op: op, Kind: kind, Node: node, Err: fmt.Errorf(format, args...)})
}

// ReportUsage reports a logic error in component code. The frame goes on.
func ReportUsage(op, node, format string, args ...any) {
	Reportf(KindUsage, op, node, format, args...)
}

// ReportConstraint reports a constraint override that was ignored because
// the outer bound wins.
func ReportConstraint(op, node, format string, args ...any) {
	Reportf(KindConstraint, op, node, format, args...)
}

// ReportPanic sends a recovered panic to the global handler.
func ReportPanic(err *PanicError) {
	if err != nil {
		Handler().HandlePanic(err)
	}
}

// Invariant panics with an *InvariantError. It marks states that only arena
// corruption or a broken dispatch table can produce; Recover never swallows
// them.
func Invariant(op, format string, args ...any) {
	panic(&InvariantError{
		Op:         op,
		Detail:     fmt.Sprintf(format, args...),
		StackTrace: CaptureStack(),
	})
}

// Recover reports a panic raised below it. Use it deferred:
//
//	defer errors.Recover("backend.present")
//
// Invariant violations are re-raised.
func Recover(op string) {
	if r := recover(); r != nil {
		recovered(op, r)
	}
}

// RecoverWithCallback is Recover followed by callback(r), which typically
// turns the panic into the caller's error result.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		recovered(op, r)
		if callback != nil {
			callback(r)
		}
	}
}

func recovered(op string, r any) {
	if inv, ok := r.(*InvariantError); ok {
		panic(inv)
	}
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	})
}

// CaptureStack formats the caller's stack, one "function\n\tfile:line" entry
// per frame, without the runtime's panic machinery.
func CaptureStack() string {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !strings.HasPrefix(frame.Function, "runtime.") {
			fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}
