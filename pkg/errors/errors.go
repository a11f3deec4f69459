// Package errors provides structured error handling for the coat runtime.
//
// Errors fall into four groups. Invariant violations (arena corruption) abort
// immediately via [Invariant]. Usage errors, constraint conflicts and message
// delivery failures are reported to the global [ErrorHandler] and the frame
// continues in a degraded form. Backend failures are ordinary Go errors
// returned to the caller and reported with [KindBackend].
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInvariant indicates a broken runtime invariant. Never recoverable.
	KindInvariant
	// KindUsage indicates a logic error by component code, such as a
	// duplicate slot key or a mismatched event type.
	KindUsage
	// KindConstraint indicates a constraint override that was ignored.
	KindConstraint
	// KindDelivery indicates a message that could not be delivered.
	KindDelivery
	// KindOverflow indicates children that did not fit their container.
	KindOverflow
	// KindBackend indicates a renderer or windowing failure.
	KindBackend
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvariant:
		return "invariant"
	case KindUsage:
		return "usage"
	case KindConstraint:
		return "constraint"
	case KindDelivery:
		return "delivery"
	case KindOverflow:
		return "overflow"
	case KindBackend:
		return "backend"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// CoatError represents a structured, non-fatal error in the runtime.
type CoatError struct {
	// Op is the operation that failed (e.g., "core.Set").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Node is the full debug name of the component involved, if any.
	Node string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *CoatError) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("%s [%s] node=%s: %v", e.Op, e.Kind, e.Node, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *CoatError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.Frame").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// InvariantError is the panic value raised by [Invariant].
type InvariantError struct {
	// Op is the operation that detected the violation.
	Op string
	// Detail describes the violated invariant.
	Detail string
	// StackTrace contains the call stack at the time of the violation.
	StackTrace string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated in %s: %s", e.Op, e.Detail)
}

// ErrorHandler receives errors reported by the runtime.
type ErrorHandler interface {
	// HandleError is called when a non-fatal error occurs.
	HandleError(err *CoatError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
