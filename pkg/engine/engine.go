// Package engine drives a component tree frame by frame.
//
// An [Engine] owns the arena and runs the per-frame control flow:
// platform events go through the Input pass, queued messages through Update,
// and whenever state changed or events were emitted the tree is re-declared
// by View before Layout and Render produce a display list for the platform.
package engine

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/errors"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/input"
)

const (
	defaultMaxUpdateRounds = 8
	defaultFrameInterval   = 16 * time.Millisecond
)

// ErrClosed is returned by [Platform.PollEvents] when the user closed the
// window. [Engine.Run] treats it as a normal exit.
var ErrClosed = stderrors.New("platform closed")

// Platform is the windowing and presentation collaborator of an engine.
type Platform interface {
	// Size returns the current drawable size.
	Size() graphics.Size
	// PollEvents drains the events received since the last call without
	// blocking. resized reports a size change since the last call.
	PollEvents(ctx context.Context) (events []input.Event, resized bool, err error)
	// Present draws a rendered display list.
	Present(list *graphics.DisplayList) error
	// Close releases the platform.
	Close() error
}

// Config configures an [Engine]. The zero value is usable.
type Config struct {
	// MaxUpdateRounds bounds the Update/View rounds run in one frame while
	// messages keep arriving. Defaults to 8.
	MaxUpdateRounds int
	// OrphanTTL reclaims nodes that have not been declared for this many
	// frames. Zero keeps orphans forever.
	OrphanTTL uint64
	// FrameInterval is the minimum time between frames in [Engine.Run].
	// Defaults to 16ms.
	FrameInterval time.Duration
	// TraceSamples is the capacity of the frame trace ring buffer.
	TraceSamples int
	// TraceThreshold is the frame duration above which a frame counts as
	// dropped. Defaults to one 60Hz frame.
	TraceThreshold time.Duration
	// Metrics receives frame metrics. Nil disables metrics.
	Metrics *Metrics
	// TracerName names the OpenTelemetry tracer. Defaults to "coat".
	TracerName string
	// Logger receives engine and pass diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.MaxUpdateRounds <= 0 {
		c.MaxUpdateRounds = defaultMaxUpdateRounds
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = defaultFrameInterval
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// FrameResult describes what one call to [Engine.Frame] did.
type FrameResult struct {
	// Frame is the arena's View counter after the frame.
	Frame uint64
	// Viewed reports whether the tree was re-declared.
	Viewed bool
	// Rendered reports whether a new display list was produced.
	Rendered bool
	// UpdateRounds is the number of Update passes run.
	UpdateRounds int
	// Reclaimed is the number of orphaned nodes freed by the sweep.
	Reclaimed int
	// Sample is the trace sample recorded for the frame.
	Sample FrameSample
}

// Engine runs frames for one root component. It is not safe for concurrent
// use, except for the read-only accessors documented as such.
type Engine struct {
	cfg     Config
	app     *core.Root
	arena   *core.Arena
	root    core.Cid
	size    graphics.Size
	batch   *input.Batch
	list    *graphics.DisplayList
	runID   uuid.UUID
	trace   *FrameTraceBuffer
	metrics *Metrics
	tracer  trace.Tracer
	logger  *slog.Logger

	mu        sync.RWMutex
	snapshots bool
	tree      *core.NodeInfo
	listeners map[int]func(FrameSample)
	nextID    int
}

// New returns an engine that mounts app as the root of a fresh arena.
func New(app *core.Root, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	arena := core.NewArena()
	arena.SetLogger(cfg.Logger)
	e := &Engine{
		cfg:       cfg,
		app:       app,
		arena:     arena,
		root:      arena.FreshID(),
		batch:     input.NewBatch(),
		list:      graphics.NewDisplayList(graphics.Size{}),
		runID:     uuid.New(),
		trace:     NewFrameTraceBuffer(cfg.TraceSamples, cfg.TraceThreshold),
		metrics:   cfg.Metrics,
		tracer:    newTracer(cfg.TracerName),
		listeners: make(map[int]func(FrameSample)),
	}
	e.logger = cfg.Logger.With(slog.String("run", e.runID.String()), slog.String("root", app.Name()))
	return e
}

// Arena returns the engine's arena.
func (e *Engine) Arena() *core.Arena { return e.arena }

// Root returns the root node.
func (e *Engine) Root() core.Cid { return e.root }

// App returns the mounted root component.
func (e *Engine) App() *core.Root { return e.app }

// RunID identifies this engine in logs, spans and the debug server.
func (e *Engine) RunID() uuid.UUID { return e.runID }

// Size returns the window size of the latest frame.
func (e *Engine) Size() graphics.Size { return e.size }

// DisplayList returns the list produced by the latest rendered frame.
func (e *Engine) DisplayList() *graphics.DisplayList { return e.list }

// Trace returns the frame trace buffer. Safe for concurrent use.
func (e *Engine) Trace() *FrameTraceBuffer { return e.trace }

// EnableSnapshots makes the engine publish a tree snapshot after every
// rendered frame, for readers on other goroutines.
func (e *Engine) EnableSnapshots() {
	e.mu.Lock()
	e.snapshots = true
	e.mu.Unlock()
}

// Tree returns the latest published tree snapshot, or nil before the first
// rendered frame or when snapshots are disabled. Safe for concurrent use.
func (e *Engine) Tree() *core.NodeInfo {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tree
}

// Subscribe registers fn to receive every frame sample. fn runs on the frame
// goroutine and must not block. The returned function unregisters it.
func (e *Engine) Subscribe(fn func(FrameSample)) (cancel func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		delete(e.listeners, id)
		e.mu.Unlock()
	}
}

// Frame runs one frame with the given platform events and window size.
//
// Input is skipped until the root has been declared once. Update and View
// alternate while messages are pending, at most MaxUpdateRounds times;
// messages left over are kept for the next frame. Layout and Render run
// whenever the tree was re-declared or the window was resized.
func (e *Engine) Frame(ctx context.Context, events []input.Event, size graphics.Size) FrameResult {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "coat.frame",
		trace.WithAttributes(
			attribute.String("coat.run_id", e.runID.String()),
			attribute.String("coat.root", e.app.Name()),
			attribute.Int("coat.events", len(events)),
		),
	)
	defer span.End()

	a := e.arena
	first := a.IsFresh(e.root)
	resized := size != e.size
	e.size = size

	var res FrameResult
	var phases FramePhaseTimings

	e.batch.Clear()
	for _, ev := range events {
		e.batch.Push(ev)
	}
	var sent bool
	phases.InputMs = e.pass(ctx, passInput, func() {
		sent = core.RunInput(a, e.root, e.batch)
	})

	dirty := sent || a.HasPendingMessages(e.root)
	needView := first || resized
	for {
		if dirty && res.UpdateRounds < e.cfg.MaxUpdateRounds {
			res.UpdateRounds++
			var ur core.UpdateResult
			phases.UpdateMs += e.pass(ctx, passUpdate, func() {
				ur = core.RunUpdate(a, e.root)
			})
			dirty = ur.Pending
			needView = needView || ur.NeedsView()
		} else if dirty {
			errors.Reportf(errors.KindDelivery, "engine.Frame", a.FullDebugName(e.root),
				"messages still pending after %d update rounds, deferred to the next frame", res.UpdateRounds)
			dirty = false
		}
		if needView {
			var delivered int
			phases.ViewMs += e.pass(ctx, passView, func() {
				delivered = e.app.View(a, e.root)
			})
			res.Viewed = true
			needView = false
			if delivered > 0 && res.UpdateRounds < e.cfg.MaxUpdateRounds {
				dirty = true
			}
		}
		if !dirty {
			break
		}
	}

	if res.Viewed || resized {
		phases.LayoutMs = e.pass(ctx, passLayout, func() {
			core.RunLayout(a, e.root, size)
		})
		phases.RenderMs = e.pass(ctx, passRender, func() {
			e.list.Reset(size)
			core.RunRender(a, e.root, e.list)
		})
		res.Rendered = true
	}
	if res.Viewed && e.cfg.OrphanTTL > 0 {
		res.Reclaimed = a.Sweep(e.root, e.cfg.OrphanTTL)
		if res.Reclaimed > 0 {
			e.logger.Debug("reclaimed orphans", slog.Int("count", res.Reclaimed))
		}
	}

	elapsed := time.Since(start)
	res.Frame = a.Frame()
	res.Sample = FrameSample{
		Timestamp: start.UnixMilli(),
		Frame:     res.Frame,
		FrameMs:   durationToMillis(elapsed),
		Phases:    phases,
		Counts: FrameCounts{
			Events:       len(events),
			UpdateRounds: res.UpdateRounds,
			Slots:        a.Len(),
			Ops:          e.list.Len(),
			Reclaimed:    res.Reclaimed,
		},
		Flags: FrameFlags{
			First:    first,
			Resized:  resized,
			Viewed:   res.Viewed,
			Rendered: res.Rendered,
		},
	}
	e.publish(&res, elapsed)
	e.metrics.observeFrame(res, elapsed)

	span.SetAttributes(
		attribute.Int("coat.update_rounds", res.UpdateRounds),
		attribute.Bool("coat.rendered", res.Rendered),
		attribute.Int64("coat.frame", int64(res.Frame)),
	)
	span.SetStatus(codes.Ok, "")
	return res
}

// publish records the sample in the trace, stores the tree snapshot for
// concurrent readers and notifies frame listeners.
func (e *Engine) publish(res *FrameResult, took time.Duration) {
	e.mu.RLock()
	snapshots := e.snapshots
	e.mu.RUnlock()

	var tree *core.NodeInfo
	if snapshots && res.Rendered {
		tree = e.arena.Snapshot(e.root)
		res.Sample.Counts.Nodes = tree.Count()
	}
	res.Sample = e.trace.Add(res.Sample, took)

	e.mu.Lock()
	if tree != nil {
		e.tree = tree
	}
	listeners := make([]func(FrameSample), 0, len(e.listeners))
	for _, fn := range e.listeners {
		listeners = append(listeners, fn)
	}
	e.mu.Unlock()

	for _, fn := range listeners {
		fn(res.Sample)
	}
}

// Run drives frames from p until ctx is cancelled or the platform closes.
// Frames are paced to at most one per FrameInterval. Platform failures are
// reported with [errors.KindBackend] and returned.
func (e *Engine) Run(ctx context.Context, p Platform) error {
	defer func() {
		if err := p.Close(); err != nil {
			e.reportBackend("engine.Run", fmt.Errorf("close platform: %w", err))
		}
	}()

	e.logger.Info("engine started", slog.Duration("frame_interval", e.cfg.FrameInterval))
	for {
		start := time.Now()
		events, resized, err := p.PollEvents(ctx)
		if err != nil {
			if stderrors.Is(err, ErrClosed) || ctx.Err() != nil {
				e.logger.Info("engine stopped")
				return nil
			}
			err = fmt.Errorf("poll events: %w", err)
			e.reportBackend("engine.Run", err)
			return err
		}

		res := e.Frame(ctx, events, p.Size())
		if res.Rendered || resized {
			if err := e.present(p); err != nil {
				err = fmt.Errorf("present frame %d: %w", res.Frame, err)
				e.reportBackend("engine.Run", err)
				return err
			}
		}

		wait := e.cfg.FrameInterval - time.Since(start)
		if wait <= 0 {
			if ctx.Err() != nil {
				e.logger.Info("engine stopped")
				return nil
			}
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			e.logger.Info("engine stopped")
			return nil
		case <-timer.C:
		}
	}
}

// present hands the display list to the platform. Backend panics are
// reported and turned into errors; invariant panics propagate.
func (e *Engine) present(p Platform) (err error) {
	defer errors.RecoverWithCallback("engine.present", func(r any) {
		err = fmt.Errorf("present panicked: %v", r)
	})
	return p.Present(e.list)
}

func (e *Engine) reportBackend(op string, err error) {
	errors.Report(&errors.CoatError{
		Op:        op,
		Kind:      errors.KindBackend,
		Err:       err,
		Timestamp: time.Now(),
	})
}
