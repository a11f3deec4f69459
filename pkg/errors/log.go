package errors

import (
	"context"
	"log/slog"
)

// LogHandler is an ErrorHandler that writes errors to a structured logger.
type LogHandler struct {
	// Logger receives the records. Nil means slog.Default().
	Logger *slog.Logger
	// Verbose enables stack traces in the output.
	Verbose bool
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// levelFor maps an error kind to its log level. Conflicts that the runtime
// resolves on its own are warnings, everything else is an error.
func levelFor(kind ErrorKind) slog.Level {
	switch kind {
	case KindConstraint, KindDelivery, KindOverflow:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// HandleError logs a CoatError.
func (h *LogHandler) HandleError(err *CoatError) {
	if err == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("op", err.Op),
		slog.String("kind", err.Kind.String()),
	}
	if err.Node != "" {
		attrs = append(attrs, slog.String("node", err.Node))
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	msg := "coat error"
	if err.Err != nil {
		msg = err.Err.Error()
	}
	h.logger().LogAttrs(context.Background(), levelFor(err.Kind), msg, attrs...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []slog.Attr{slog.Any("value", err.Value)}
	if err.Op != "" {
		attrs = append(attrs, slog.String("op", err.Op))
	}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, slog.String("stack", err.StackTrace))
	}
	h.logger().LogAttrs(context.Background(), slog.LevelError, "coat panic", attrs...)
}
