// Package terminal runs coat applications in a text terminal through tcell.
//
// One terminal cell is one logical unit: a window of 80x24 cells lays out
// as an 80x24 surface. [Platform] implements engine.Platform, translating
// tcell events into the canonical input events and drawing display lists
// into the cell grid. [CellShaper] shapes text into cells so Line and
// TextEdit line up with the grid.
package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/go-coat/coat/pkg/engine"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/input"
)

// eventBacklog bounds the events buffered between two polls.
const eventBacklog = 256

// Option configures a [Platform].
type Option func(*Platform)

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(p *Platform) { p.logger = l }
}

// WithQuitKeys replaces the keys that close the platform. Ctrl+C is the
// default.
func WithQuitKeys(keys ...tcell.Key) Option {
	return func(p *Platform) { p.quitKeys = keys }
}

// Platform is an engine.Platform backed by a tcell screen.
type Platform struct {
	screen   tcell.Screen
	logger   *slog.Logger
	quitKeys []tcell.Key

	events chan tcell.Event
	stop   chan struct{}
	done   chan struct{}

	mu         sync.Mutex
	translator translator
	reported   graphics.Size
	closed     bool
	presenter  presenter
}

// New opens the controlling terminal.
func New(opts ...Option) (*Platform, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return NewWithScreen(screen, opts...)
}

// NewWithScreen initialises screen and starts reading its events. Tests pass
// a tcell.SimulationScreen.
func NewWithScreen(screen tcell.Screen, opts ...Option) (*Platform, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	p := &Platform{
		screen:   screen,
		logger:   slog.New(slog.DiscardHandler),
		quitKeys: []tcell.Key{tcell.KeyCtrlC},
		events:   make(chan tcell.Event, eventBacklog),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.reported = p.Size()
	p.presenter.screen = screen

	go p.pump()
	return p, nil
}

// pump forwards screen events until the screen is finalised.
func (p *Platform) pump() {
	defer close(p.done)
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case p.events <- ev:
		case <-p.stop:
			return
		}
	}
}

// Screen returns the underlying tcell screen.
func (p *Platform) Screen() tcell.Screen {
	return p.screen
}

// Size returns the terminal size in cells.
func (p *Platform) Size() graphics.Size {
	w, h := p.screen.Size()
	return graphics.Size{Width: float64(w), Height: float64(h)}
}

// PollEvents drains the events read since the last call. A quit key ends
// the stream with engine.ErrClosed.
func (p *Platform) PollEvents(ctx context.Context) ([]input.Event, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, false, engine.ErrClosed
	}

	var out []input.Event
	for {
		select {
		case ev := <-p.events:
			if key, ok := ev.(*tcell.EventKey); ok && p.isQuit(key) {
				p.logger.Debug("quit key pressed", "key", key.Name())
				return out, p.checkResize(), engine.ErrClosed
			}
			out = append(out, p.translator.translate(ev)...)
		default:
			return out, p.checkResize(), nil
		}
	}
}

func (p *Platform) isQuit(ev *tcell.EventKey) bool {
	for _, k := range p.quitKeys {
		if ev.Key() == k {
			return true
		}
	}
	return false
}

// checkResize reports whether the size changed since the last poll.
func (p *Platform) checkResize() bool {
	size := p.Size()
	if size == p.reported {
		return false
	}
	p.logger.Debug("terminal resized", "width", size.Width, "height", size.Height)
	p.reported = size
	p.screen.Sync()
	return true
}

// Present draws list into the cell grid and flushes it to the terminal.
func (p *Platform) Present(list *graphics.DisplayList) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return engine.ErrClosed
	}
	p.presenter.present(list)
	return nil
}

// Close restores the terminal. It is safe to call more than once.
func (p *Platform) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	close(p.stop)
	p.screen.Fini()
	<-p.done
	return nil
}
