package core

import (
	"sync"
	"testing"

	"github.com/go-coat/coat/pkg/errors"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/layout"
)

// probeProps scripts a probe component from the test.
type probeProps struct {
	view     func(ctx *ViewContext[string])
	layout   func(children []Cid, c layout.Constraints, ctx *LayoutContext) graphics.Size
	onUpdate func(msg string, state Mut[probeState], ctx *UpdateContext[string])
	onInput  func(ctx *InputContext[string])
	log      *[]string
}

type probeState struct {
	derives int
	count   int
	props   probeProps
}

type probe struct {
	Base[probeProps, probeState, string, string]
}

func (probe) Init(probeProps) probeState { return probeState{} }

func (probe) DeriveState(p probeProps, s *probeState) {
	s.derives++
	s.props = p
}

func (probe) View(p probeProps, _ *probeState, ctx *ViewContext[string]) {
	if p.view != nil {
		p.view(ctx)
	}
}

func (probe) Update(msg string, s Mut[probeState], ctx *UpdateContext[string]) {
	if p := s.Get().props; p.onUpdate != nil {
		p.onUpdate(msg, s, ctx)
	}
}

func (probe) Layout(s *probeState, children []Cid, c layout.Constraints, ctx *LayoutContext) graphics.Size {
	if s.props.layout != nil {
		return s.props.layout(children, c, ctx)
	}
	return DefaultLayout(children, c, ctx)
}

func (probe) Input(s *probeState, ctx *InputContext[string]) {
	if s.props.onInput != nil {
		s.props.onInput(ctx)
	}
}

func (probe) Render(s *probeState, _ graphics.Rect, ctx *RenderContext) {
	if s.props.log != nil {
		*s.props.log = append(*s.props.log, ctx.FullDebugName())
	}
}

var (
	probeKind = Define[probeProps, probeState, string, string]("Probe", probe{})
	groupKind = Define[probeProps, probeState, string, string]("Group", probe{})
)

func stateOf(a *Arena, id Cid) *probeState {
	return a.states[a.check("test.stateOf", id)].(*probeState)
}

func enqueue(a *Arena, id Cid, msgs ...string) {
	q := a.messages[a.check("test.enqueue", id)].(*[]string)
	*q = append(*q, msgs...)
}

// childNamed returns the child of parent with the given debug name.
func childNamed(t *testing.T, a *Arena, parent Cid, name string) Cid {
	t.Helper()
	for _, c := range a.Children(parent) {
		if a.Name(c) == name {
			return c
		}
	}
	t.Fatalf("no child %q under %s", name, a.FullDebugName(parent))
	return NoCid
}

type recorder struct {
	mu   sync.Mutex
	errs []*errors.CoatError
}

func (r *recorder) HandleError(err *errors.CoatError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recorder) HandlePanic(*errors.PanicError) {}

func (r *recorder) count(kind errors.ErrorKind) int {
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

func recordErrors(t *testing.T) *recorder {
	t.Helper()
	r := &recorder{}
	previous := errors.SetHandler(r)
	t.Cleanup(func() { errors.SetHandler(previous) })
	return r
}

func expectInvariant(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatal("expected invariant panic")
		}
		if _, ok := r.(*errors.InvariantError); !ok {
			t.Fatalf("expected *errors.InvariantError, got %T: %v", r, r)
		}
	}()
	fn()
}
