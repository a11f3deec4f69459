package core

import (
	"iter"

	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/input"
)

// FocusState describes a node's relation to keyboard focus.
type FocusState int

const (
	// FocusNone means neither the node nor a descendant holds focus.
	FocusNone FocusState = iota
	// FocusOwns means the node holds focus.
	FocusOwns
	// FocusDescendantOwns means an attached descendant holds focus.
	FocusDescendantOwns
)

func (f FocusState) String() string {
	switch f {
	case FocusOwns:
		return "owns"
	case FocusDescendantOwns:
		return "descendant"
	default:
		return "none"
	}
}

type inputPass struct {
	arena *Arena
	batch *input.Batch
	// focusPath maps the focused node and its attached ancestors to their
	// focus state.
	focusPath map[Cid]FocusState
	sent      bool
}

// InputContext is handed to Input. M is the message type of the component.
type InputContext[M any] struct {
	pass   *inputPass
	id     Cid
	bounds graphics.Rect
	queue  *[]M
}

// ID returns the running component's node.
func (ctx *InputContext[M]) ID() Cid { return ctx.id }

// FullDebugName returns the running component's full debug name.
func (ctx *InputContext[M]) FullDebugName() string {
	return ctx.pass.arena.FullDebugName(ctx.id)
}

// Bounds returns the component's rectangle in absolute coordinates.
func (ctx *InputContext[M]) Bounds() graphics.Rect { return ctx.bounds }

// Fresh yields the events no component has consumed yet.
func (ctx *InputContext[M]) Fresh() iter.Seq[input.Pending] { return ctx.pass.batch.Fresh() }

// Consumed yields the events already consumed by earlier components.
func (ctx *InputContext[M]) Consumed() iter.Seq[input.Event] { return ctx.pass.batch.Consumed() }

// All yields every event with its consumed flag.
func (ctx *InputContext[M]) All() iter.Seq2[input.Event, bool] { return ctx.pass.batch.All() }

// Send queues a message for the running component's next Update.
func (ctx *InputContext[M]) Send(msg M) {
	*ctx.queue = append(*ctx.queue, msg)
	ctx.pass.sent = true
}

// Focus returns the running component's relation to keyboard focus.
func (ctx *InputContext[M]) Focus() FocusState {
	return ctx.pass.focusPath[ctx.id]
}

// RunInput offers the batch to every attached node under root, children
// before parents and later siblings before earlier ones, so the topmost
// component sees an event first. It reports whether any component sent a
// message.
func RunInput(a *Arena, root Cid, batch *input.Batch) bool {
	idx := a.check("core.RunInput", root)
	if a.kinds[idx] == voidKind || batch.Len() == 0 {
		return false
	}
	p := &inputPass{arena: a, batch: batch, focusPath: focusPath(a, root)}
	p.visit(root, graphics.Offset{})
	return p.sent
}

func (p *inputPass) visit(id Cid, parentOrigin graphics.Offset) {
	a := p.arena
	idx := int(id.index)
	origin := parentOrigin.Add(a.positions[idx])
	children := a.children[idx]
	for i := len(children) - 1; i >= 0; i-- {
		p.visit(children[i], origin)
	}
	bounds := graphics.Rect{Origin: origin, Size: a.sizes[idx]}
	state := a.takeState("core.RunInput", idx)
	a.tables[idx].input(p, id, state, a.messages[idx], bounds)
	a.states[idx] = state
}

// focusPath resolves the focused node's chain of attached ancestors. Focus
// held by an orphaned node yields an empty path.
func focusPath(a *Arena, root Cid) map[Cid]FocusState {
	focused := a.focused
	if focused == NoCid || !a.Contains(focused) || !a.isAttached(root, focused) {
		return nil
	}
	path := map[Cid]FocusState{focused: FocusOwns}
	for cur := a.parents[focused.index]; cur != NoCid; cur = a.parents[cur.index] {
		path[cur] = FocusDescendantOwns
		if cur == root {
			break
		}
	}
	return path
}
