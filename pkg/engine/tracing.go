package engine

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for coat engines.
const defaultTracerName = "coat"

// Pass names used for spans, metrics labels and trace samples.
const (
	passInput  = "input"
	passUpdate = "update"
	passView   = "view"
	passLayout = "layout"
	passRender = "render"
)

// newTracer resolves a tracer from the global OpenTelemetry provider, which
// is a no-op until the application installs one.
func newTracer(name string) trace.Tracer {
	if name == "" {
		name = defaultTracerName
	}
	return otel.Tracer(name)
}

// pass runs fn inside a child span of the frame span and returns its
// duration in milliseconds.
func (e *Engine) pass(ctx context.Context, name string, fn func()) float64 {
	_, span := e.tracer.Start(ctx, "coat.pass."+name,
		trace.WithAttributes(attribute.String("coat.pass", name)),
	)
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	span.End()
	e.metrics.observePass(name, elapsed)
	return durationToMillis(elapsed)
}
