package testing

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/engine"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/input"
)

const (
	// DefaultTestWidth is the default logical width for the test surface.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height for the test surface.
	DefaultTestHeight = 600
	// DefaultSettleFrames bounds PumpAndSettle.
	DefaultSettleFrames = 32
)

// ErrSettleTimeout is returned when PumpAndSettle exceeds its frame budget.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: messages still pending")

// ErrNotPumped is returned by operations that need a mounted root.
var ErrNotPumped = errors.New("no root mounted: call Pump first")

// Tester runs component trees headlessly. It drives the same frame control
// flow as the engine's platform loop but feeds synthetic events and keeps
// the display list for inspection.
type Tester struct {
	engine *engine.Engine
	config engine.Config
	size   graphics.Size
	last   engine.FrameResult
}

// NewTester creates a tester with the default test environment.
func NewTester() *Tester {
	return &Tester{
		size: graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight},
		config: engine.Config{
			Logger: slog.New(slog.DiscardHandler),
		},
	}
}

// NewTesterWithT creates a tester whose engine logs through t.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	tester.config.Logger = slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return tester
}

// testWriter forwards log lines to t.Log.
type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// SetSize sets the logical surface size. It takes effect on the next frame.
func (t *Tester) SetSize(size graphics.Size) {
	t.size = size
}

// SetConfig replaces the engine configuration used by the next Pump. The
// logger is kept when cfg has none.
func (t *Tester) SetConfig(cfg engine.Config) {
	if cfg.Logger == nil {
		cfg.Logger = t.config.Logger
	}
	t.config = cfg
}

// Size returns the logical surface size.
func (t *Tester) Size() graphics.Size {
	return t.size
}

// Pump mounts app on a fresh engine and runs its first frame. Any
// previously mounted tree and its state are discarded.
func (t *Tester) Pump(app *core.Root) engine.FrameResult {
	t.engine = engine.New(app, t.config)
	return t.Frame()
}

// Frame runs one frame with the given events.
func (t *Tester) Frame(events ...input.Event) engine.FrameResult {
	if t.engine == nil {
		panic(ErrNotPumped)
	}
	t.last = t.engine.Frame(context.Background(), events, t.size)
	return t.last
}

// PumpAndSettle runs frames without input until no messages are pending,
// at most DefaultSettleFrames times.
func (t *Tester) PumpAndSettle() error {
	if t.engine == nil {
		return ErrNotPumped
	}
	for range DefaultSettleFrames {
		t.Frame()
		if !t.engine.Arena().HasPendingMessages(t.engine.Root()) {
			return nil
		}
	}
	return ErrSettleTimeout
}

// LastFrame returns the result of the most recent frame.
func (t *Tester) LastFrame() engine.FrameResult {
	return t.last
}

// Engine returns the engine of the mounted tree, or nil before Pump.
func (t *Tester) Engine() *engine.Engine {
	return t.engine
}

// Arena returns the arena of the mounted tree.
func (t *Tester) Arena() *core.Arena {
	if t.engine == nil {
		return nil
	}
	return t.engine.Arena()
}

// Root returns the root node of the mounted tree.
func (t *Tester) Root() core.Cid {
	if t.engine == nil {
		return core.NoCid
	}
	return t.engine.Root()
}

// DisplayList returns the list produced by the latest rendered frame.
func (t *Tester) DisplayList() *graphics.DisplayList {
	if t.engine == nil {
		return nil
	}
	return t.engine.DisplayList()
}

// Tree returns a snapshot of the attached tree, or nil before Pump.
func (t *Tester) Tree() *core.NodeInfo {
	if t.engine == nil {
		return nil
	}
	return t.engine.Arena().Snapshot(t.engine.Root())
}

// Find evaluates a finder against the attached tree.
func (t *Tester) Find(finder Finder) FinderResult {
	if t.engine == nil || t.engine.Arena().IsFresh(t.engine.Root()) {
		return FinderResult{finder: finder}
	}
	return FinderResult{
		ids:    finder.Evaluate(t.engine.Arena(), t.engine.Root()),
		finder: finder,
		arena:  t.engine.Arena(),
	}
}
