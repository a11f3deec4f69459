package core

import (
	"sync/atomic"

	"github.com/go-coat/coat/pkg/errors"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/layout"
)

// Component is the contract every component kind implements.
//
// P is the props type received from the parent each frame, S the private
// state kept in the arena, M the message type the component handles in
// Update and E the event type it emits to its parent.
type Component[P, S, M, E any] interface {
	// Init creates the state the first time the component is declared.
	Init(props P) S
	// DeriveState refreshes state from new props on every declaration.
	DeriveState(props P, state *S)
	// Update handles one queued message. Writes through state are tracked.
	Update(msg M, state Mut[S], ctx *UpdateContext[E])
	// View declares the component's children.
	View(props P, state *S, ctx *ViewContext[M])
	// Layout sizes and positions children and returns the component's size.
	Layout(state *S, children []Cid, constraints layout.Constraints, ctx *LayoutContext) graphics.Size
	// Input inspects the frame's platform events.
	Input(state *S, ctx *InputContext[M])
	// Render pushes drawing primitives for the component's bounds.
	Render(state *S, bounds graphics.Rect, ctx *RenderContext)
}

// None is the message or event type of components that have none.
type None struct{}

// Base supplies the default behavior for every Component method except Init.
// Embed it and override what the component needs.
type Base[P, S, M, E any] struct{}

// DeriveState does nothing.
func (Base[P, S, M, E]) DeriveState(P, *S) {}

// Update ignores the message.
func (Base[P, S, M, E]) Update(M, Mut[S], *UpdateContext[E]) {}

// View declares no children.
func (Base[P, S, M, E]) View(P, *S, *ViewContext[M]) {}

// Layout applies [DefaultLayout].
func (Base[P, S, M, E]) Layout(_ *S, children []Cid, c layout.Constraints, ctx *LayoutContext) graphics.Size {
	return DefaultLayout(children, c, ctx)
}

// Input ignores events.
func (Base[P, S, M, E]) Input(*S, *InputContext[M]) {}

// Render draws nothing.
func (Base[P, S, M, E]) Render(*S, graphics.Rect, *RenderContext) {}

// DefaultLayout sizes a component with no children as zero and a component
// with one child as that child. With several children only the first is laid
// out and a usage error is reported.
func DefaultLayout(children []Cid, c layout.Constraints, ctx *LayoutContext) graphics.Size {
	switch len(children) {
	case 0:
		return graphics.Size{}
	case 1:
		return ctx.Size(children[0], c)
	default:
		errors.ReportUsage("core.DefaultLayout", ctx.FullDebugName(),
			"%d children but the default layout only handles one", len(children))
		return ctx.Size(children[0], c)
	}
}

// Mut gives Update access to state while recording whether it was written.
// Get never marks the state as mutated; Mutate and Set always do.
type Mut[S any] struct {
	value   *S
	mutated *bool
}

// NewMut wraps state with a mutation flag. It is exported for testing
// component Update methods directly.
func NewMut[S any](state *S, mutated *bool) Mut[S] {
	return Mut[S]{value: state, mutated: mutated}
}

// Get returns a copy of the state.
func (m Mut[S]) Get() S { return *m.value }

// Mutate marks the state as mutated and returns it for writing.
func (m Mut[S]) Mutate() *S {
	*m.mutated = true
	return m.value
}

// Set replaces the state and marks it as mutated.
func (m Mut[S]) Set(v S) {
	*m.mutated = true
	*m.value = v
}

// Mutated reports whether the state was written through this tracker.
func (m Mut[S]) Mutated() bool { return *m.mutated }

// dispatchTable holds the type-erased entry points of one component kind.
// Each entry asserts the boxed state and queues back to their concrete types.
type dispatchTable struct {
	id   kindID
	name string

	newQueues func() (messages, events any)
	pending   func(messages any) int
	update    func(p *updatePass, id Cid, state, messages any)
	layout    func(state any, children []Cid, c layout.Constraints, ctx *LayoutContext) graphics.Size
	input     func(p *inputPass, id Cid, state, messages any, bounds graphics.Rect)
	render    func(state any, bounds graphics.Rect, ctx *RenderContext)
}

var kindSeq atomic.Uint32

// Kind is a registered component kind. It carries the component
// implementation and its dispatch table and is passed to [Set] to declare
// instances.
type Kind[P, S, M, E any] struct {
	impl  Component[P, S, M, E]
	table *dispatchTable
}

// Name returns the name the kind was registered with.
func (k *Kind[P, S, M, E]) Name() string { return k.table.name }

// Define registers a component kind. It is normally called once per kind
// at package initialisation.
func Define[P, S, M, E any](name string, impl Component[P, S, M, E]) *Kind[P, S, M, E] {
	k := &Kind[P, S, M, E]{impl: impl}
	k.table = &dispatchTable{
		id:   kindID(kindSeq.Add(1)),
		name: name,
		newQueues: func() (any, any) {
			return &[]M{}, &[]E{}
		},
		pending: func(messages any) int {
			return len(*cast[*[]M](name, "pending", messages))
		},
		update: func(p *updatePass, id Cid, state, messages any) {
			s := cast[*S](name, "update", state)
			q := cast[*[]M](name, "update", messages)
			batch := *q
			*q = nil
			ctx := &UpdateContext[E]{pass: p, id: id}
			for _, msg := range batch {
				impl.Update(msg, Mut[S]{value: s, mutated: &p.mutated}, ctx)
			}
		},
		layout: func(state any, children []Cid, c layout.Constraints, ctx *LayoutContext) graphics.Size {
			return impl.Layout(cast[*S](name, "layout", state), children, c, ctx)
		},
		input: func(p *inputPass, id Cid, state, messages any, bounds graphics.Rect) {
			ctx := &InputContext[M]{
				pass:   p,
				id:     id,
				bounds: bounds,
				queue:  cast[*[]M](name, "input", messages),
			}
			impl.Input(cast[*S](name, "input", state), ctx)
		},
		render: func(state any, bounds graphics.Rect, ctx *RenderContext) {
			impl.Render(cast[*S](name, "render", state), bounds, ctx)
		},
	}
	return k
}

// newState runs Init and boxes the result.
func (k *Kind[P, S, M, E]) newState(props P) any {
	s := k.impl.Init(props)
	return &s
}

// cast asserts a boxed value to its concrete type. A mismatch means the
// arena handed a slot to the wrong dispatch table.
func cast[T any](kind, op string, v any) T {
	t, ok := v.(T)
	if !ok {
		var zero T
		errors.Invariant("core."+op, "%s: boxed value is %T, expected %T", kind, v, zero)
	}
	return t
}
