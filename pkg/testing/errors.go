package testing

import (
	"sync"
	"testing"

	"github.com/go-coat/coat/pkg/errors"
)

// ErrorRecorder is an errors.ErrorHandler that keeps every report for
// assertions.
type ErrorRecorder struct {
	mu     sync.Mutex
	errs   []*errors.CoatError
	panics []*errors.PanicError
}

// RecordErrors installs a fresh recorder as the global error handler and
// restores the default handler when the test ends.
func RecordErrors(t *testing.T) *ErrorRecorder {
	t.Helper()
	rec := &ErrorRecorder{}
	previous := errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(previous) })
	return rec
}

// HandleError records a reported error.
func (r *ErrorRecorder) HandleError(err *errors.CoatError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

// HandlePanic records a recovered panic.
func (r *ErrorRecorder) HandlePanic(err *errors.PanicError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panics = append(r.panics, err)
}

// Errors returns the recorded errors in report order.
func (r *ErrorRecorder) Errors() []*errors.CoatError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.CoatError(nil), r.errs...)
}

// Panics returns the recorded panics in report order.
func (r *ErrorRecorder) Panics() []*errors.PanicError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*errors.PanicError(nil), r.panics...)
}

// Count returns the number of recorded errors of kind.
func (r *ErrorRecorder) Count(kind errors.ErrorKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.errs {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops everything recorded so far.
func (r *ErrorRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = nil
	r.panics = nil
}
