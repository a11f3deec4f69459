package core

import (
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/layout"
)

// LayoutContext is handed to Layout. It sizes and positions the running
// component's children.
type LayoutContext struct {
	arena *Arena
	id    Cid
}

// ID returns the running component's node, or NoCid above the root.
func (ctx *LayoutContext) ID() Cid { return ctx.id }

// FullDebugName returns the running component's full debug name.
func (ctx *LayoutContext) FullDebugName() string {
	return ctx.arena.FullDebugName(ctx.id)
}

// Size lays out child under constraints and returns its size. The size the
// child reports is clamped into the constraints before it is stored.
func (ctx *LayoutContext) Size(child Cid, c layout.Constraints) graphics.Size {
	a := ctx.arena
	idx := a.check("core.LayoutContext.Size", child)
	state := a.peekState("core.LayoutContext.Size", idx)
	size := a.tables[idx].layout(state, a.children[idx], c, &LayoutContext{arena: a, id: child})
	size = c.Constrain(size)
	a.sizes[idx] = size
	return size
}

// Position places child relative to the running component. Children that
// are never positioned keep their previous position.
func (ctx *LayoutContext) Position(child Cid, at graphics.Offset) {
	ctx.arena.positions[ctx.arena.check("core.LayoutContext.Position", child)] = at
}

// SizeOf returns the size child was given in this or the previous pass.
func (ctx *LayoutContext) SizeOf(child Cid) graphics.Size {
	return ctx.arena.sizes[ctx.arena.check("core.LayoutContext.SizeOf", child)]
}

// RunLayout lays out the tree under root to fill window exactly and returns
// the root's size.
func RunLayout(a *Arena, root Cid, window graphics.Size) graphics.Size {
	idx := a.check("core.RunLayout", root)
	if a.kinds[idx] == voidKind {
		return graphics.Size{}
	}
	ctx := &LayoutContext{arena: a, id: NoCid}
	size := ctx.Size(root, layout.Tight(window))
	a.positions[idx] = graphics.Offset{}
	return size
}
