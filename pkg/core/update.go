package core

import (
	"github.com/go-coat/coat/pkg/errors"
)

// UpdateResult summarises an Update pass.
type UpdateResult struct {
	// Mutated is set when any handler wrote its state.
	Mutated bool
	// Emitted is set when any handler emitted an event.
	Emitted bool
	// Pending is set when messages were queued for nodes the pass had
	// already visited. They are delivered by the next Update pass.
	Pending bool
}

// NeedsView reports whether a View pass is required to observe the result.
func (r UpdateResult) NeedsView() bool { return r.Mutated || r.Emitted }

type updatePass struct {
	arena   *Arena
	mutated bool
	emitted bool
}

// UpdateContext is handed to Update. E is the event type of the component.
type UpdateContext[E any] struct {
	pass *updatePass
	id   Cid
}

// ID returns the running component's node.
func (ctx *UpdateContext[E]) ID() Cid { return ctx.id }

// FullDebugName returns the running component's full debug name.
func (ctx *UpdateContext[E]) FullDebugName() string {
	return ctx.pass.arena.FullDebugName(ctx.id)
}

// Emit queues an event for the parent. The parent receives it through
// [MapEvents] during the next View pass.
func (ctx *UpdateContext[E]) Emit(event E) {
	a := ctx.pass.arena
	queue, ok := a.events[ctx.id.index].(*[]E)
	if !ok {
		errors.ReportUsage("core.UpdateContext.Emit", a.FullDebugName(ctx.id),
			"event queue holds %T, not %T", a.events[ctx.id.index], queue)
		return
	}
	*queue = append(*queue, event)
	ctx.pass.emitted = true
}

// AcquireFocus gives keyboard focus to the running component.
func (ctx *UpdateContext[E]) AcquireFocus() {
	ctx.pass.arena.focused = ctx.id
}

// LoseFocus releases keyboard focus if the running component holds it.
// Focus acquired by another component earlier in the pass is kept.
func (ctx *UpdateContext[E]) LoseFocus() {
	if ctx.pass.arena.focused == ctx.id {
		ctx.pass.arena.focused = NoCid
	}
}

// HasFocus reports whether the running component holds keyboard focus.
func (ctx *UpdateContext[E]) HasFocus() bool {
	return ctx.pass.arena.focused == ctx.id
}

// Send queues msg for the component behind mailbox.
func Send[M, E any](ctx *UpdateContext[E], to Mailbox[M], msg M) {
	a := ctx.pass.arena
	if !a.Contains(to.id) || a.kinds[to.id.index] == voidKind {
		errors.Reportf(errors.KindDelivery, "core.Send", ctx.FullDebugName(),
			"mailbox %s no longer exists", to.id)
		return
	}
	queue, ok := a.messages[to.id.index].(*[]M)
	if !ok {
		errors.ReportUsage("core.Send", ctx.FullDebugName(),
			"%s does not accept %T", a.FullDebugName(to.id), msg)
		return
	}
	*queue = append(*queue, msg)
}

// Bubble delivers msg to the nearest ancestor of kind. It returns false and
// reports a delivery warning when no ancestor of that kind exists.
func Bubble[P, S, M, E, CE any](ctx *UpdateContext[CE], kind *Kind[P, S, M, E], msg M) bool {
	a := ctx.pass.arena
	for cur := a.parents[ctx.id.index]; cur != NoCid; cur = a.parents[cur.index] {
		if a.kinds[cur.index] != kind.table.id {
			continue
		}
		queue := cast[*[]M](kind.table.name, "Bubble", a.messages[cur.index])
		*queue = append(*queue, msg)
		return true
	}
	errors.Reportf(errors.KindDelivery, "core.Bubble", ctx.FullDebugName(),
		"no ancestor of kind %s, message %T lost", kind.table.name, msg)
	return false
}

// RunUpdate delivers queued messages to every attached node under root,
// children before parents, so a message bubbled up during the pass is handled
// in the same pass. A root that has never been through View reports
// Mutated so the caller runs one.
func RunUpdate(a *Arena, root Cid) UpdateResult {
	idx := a.check("core.RunUpdate", root)
	if a.kinds[idx] == voidKind {
		return UpdateResult{Mutated: true}
	}
	p := &updatePass{arena: a}
	p.visit(root)
	return UpdateResult{
		Mutated: p.mutated,
		Emitted: p.emitted,
		Pending: hasPending(a, root),
	}
}

func (p *updatePass) visit(id Cid) {
	a := p.arena
	for _, c := range a.children[id.index] {
		p.visit(c)
	}
	idx := int(id.index)
	t := a.tables[idx]
	if t.pending(a.messages[idx]) == 0 {
		return
	}
	state := a.takeState("core.RunUpdate", idx)
	t.update(p, id, state, a.messages[idx])
	a.states[idx] = state
}

// hasPending reports whether any attached node under id has queued messages.
func hasPending(a *Arena, id Cid) bool {
	if a.tables[id.index].pending(a.messages[id.index]) > 0 {
		return true
	}
	for _, c := range a.children[id.index] {
		if hasPending(a, c) {
			return true
		}
	}
	return false
}

// HasPendingMessages reports whether any attached node under root has
// messages waiting for an Update pass.
func (a *Arena) HasPendingMessages(root Cid) bool {
	idx := a.check("core.Arena.HasPendingMessages", root)
	if a.kinds[idx] == voidKind {
		return false
	}
	return hasPending(a, root)
}
