package core

import (
	"github.com/go-coat/coat/pkg/errors"
)

// viewPass is shared by every ViewContext of one View pass.
type viewPass struct {
	arena     *Arena
	frame     uint64
	delivered int
}

// ViewContext is handed to View. Children declared through it attach to the
// current attach-parent, which is the running component unless inside
// [ViewContext.Add]. Mapped events always become messages of the running
// component.
type ViewContext[M any] struct {
	pass   *viewPass
	owner  Cid
	parent Cid
}

// Child is the handle returned by [Set] for a declared child emitting E.
type Child[E any] struct {
	ID Cid
}

// Valid reports whether the declaration produced a node.
func (c Child[E]) Valid() bool { return c.ID.Valid() }

// ID returns the running component's node.
func (ctx *ViewContext[M]) ID() Cid { return ctx.owner }

// FullDebugName returns the running component's full debug name.
func (ctx *ViewContext[M]) FullDebugName() string {
	return ctx.pass.arena.FullDebugName(ctx.owner)
}

// Add runs build with child as the attach-parent, so declarations inside
// build become content of child. Messages mapped inside build still go to
// the running component.
func (ctx *ViewContext[M]) Add(child Cid, build func()) {
	if !child.Valid() {
		return
	}
	ctx.pass.arena.check("core.ViewContext.Add", child)
	prev := ctx.parent
	ctx.parent = child
	defer func() { ctx.parent = prev }()
	build()
}

// Mailbox returns an address other components can [Send] messages of the
// running component's type to.
func (ctx *ViewContext[M]) Mailbox() Mailbox[M] {
	return Mailbox[M]{id: ctx.owner}
}

// Mailbox addresses the message queue of one component.
type Mailbox[M any] struct {
	id Cid
}

// ID returns the addressed node.
func (m Mailbox[M]) ID() Cid { return m.id }

// Set declares a child of kind under iid with props. On first declaration the
// child is created and its state initialised. Its state is then derived from
// props and its View run. The returned handle can be passed to [MapEvents]
// and [ViewContext.Add].
//
// Declaring the same iid twice under one parent in one frame is a usage
// error: the second declaration is ignored and the first handle returned.
func Set[P, S, M, E, PM any](ctx *ViewContext[PM], iid Iid, kind *Kind[P, S, M, E], props P) Child[E] {
	a := ctx.pass.arena
	parent := ctx.parent
	pidx := a.check("core.Set", parent)

	id, ok := a.lookup(parent, iid)
	var idx int
	if ok {
		idx = a.check("core.Set", id)
		if a.kinds[idx] != kind.table.id {
			errors.ReportUsage("core.Set", a.FullDebugName(id),
				"declared as %s but created as %s", kind.table.name, a.tables[idx].name)
			return Child[E]{ID: NoCid}
		}
		if a.lastSeen[idx] == ctx.pass.frame {
			errors.ReportUsage("core.Set", a.FullDebugName(id),
				"duplicate identifier %q declared under %s", iid, a.FullDebugName(parent))
			return Child[E]{ID: id}
		}
	} else {
		id = a.FreshID()
		idx = a.register(id, parent, iid, iid.String(), kind.table)
		a.states[idx] = kind.newState(props)
		a.logger.Debug("component created", "node", a.FullDebugName(id), "kind", kind.table.name)
	}

	a.lastSeen[idx] = ctx.pass.frame
	a.children[pidx] = append(a.children[pidx], id)
	a.children[idx] = a.children[idx][:0]

	declare(ctx.pass, kind, idx, id, props)
	return Child[E]{ID: id}
}

// declare runs DeriveState and View for an attached node with its state
// detached.
func declare[P, S, M, E any](p *viewPass, kind *Kind[P, S, M, E], idx int, id Cid, props P) {
	a := p.arena
	boxed := a.takeState("core.View", idx)
	s := cast[*S](kind.table.name, "View", boxed)
	kind.impl.DeriveState(props, s)
	kind.impl.View(props, s, &ViewContext[M]{pass: p, owner: id, parent: id})
	a.states[idx] = boxed
}

// MapEvents drains the events child emitted since the last frame and turns
// each into a message of the running component. Events for which handler
// returns false are dropped.
func MapEvents[E, M any](ctx *ViewContext[M], child Child[E], handler func(E) (M, bool)) {
	if !child.Valid() {
		return
	}
	a := ctx.pass.arena
	cidx := a.check("core.MapEvents", child.ID)
	events, ok := a.events[cidx].(*[]E)
	if !ok {
		errors.ReportUsage("core.MapEvents", a.FullDebugName(child.ID),
			"event queue holds %T, not %T", a.events[cidx], events)
		return
	}
	if len(*events) == 0 {
		return
	}
	batch := *events
	*events = nil
	queue := cast[*[]M](a.tables[ctx.owner.index].name, "MapEvents", a.messages[ctx.owner.index])
	for _, e := range batch {
		if msg, ok := handler(e); ok {
			*queue = append(*queue, msg)
			ctx.pass.delivered++
		}
	}
}

// RunView reconciles the tree under root against the declaration produced by
// kind's View for props. root must come from [Arena.FreshID]; it is
// initialised on the first run. It returns the number of messages delivered
// by [MapEvents], which need an Update pass.
func RunView[P, S, M, E any](a *Arena, root Cid, kind *Kind[P, S, M, E], props P) int {
	idx := a.check("core.RunView", root)
	if a.kinds[idx] == voidKind {
		a.register(root, NoCid, ID(kind.table.name), kind.table.name, kind.table)
		a.states[idx] = kind.newState(props)
	} else if a.kinds[idx] != kind.table.id {
		errors.Invariant("core.RunView", "root is %s, not %s", a.tables[idx].name, kind.table.name)
	}
	a.frame++
	p := &viewPass{arena: a, frame: a.frame}
	a.lastSeen[idx] = a.frame
	a.children[idx] = a.children[idx][:0]
	declare(p, kind, idx, root, props)
	return p.delivered
}
