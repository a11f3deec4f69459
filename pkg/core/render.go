package core

import (
	"github.com/go-coat/coat/pkg/graphics"
)

// RenderContext is handed to Render. Primitives pushed through it go to the
// frame's display list builder.
type RenderContext struct {
	arena   *Arena
	id      Cid
	builder graphics.DisplayListBuilder
}

// ID returns the running component's node.
func (ctx *RenderContext) ID() Cid { return ctx.id }

// FullDebugName returns the running component's full debug name.
func (ctx *RenderContext) FullDebugName() string {
	return ctx.arena.FullDebugName(ctx.id)
}

// FillRect pushes a solid rectangle.
func (ctx *RenderContext) FillRect(rect graphics.Rect, color graphics.Color) {
	ctx.builder.FillRect(rect, color)
}

// DrawGlyphs pushes a glyph run.
func (ctx *RenderContext) DrawGlyphs(run graphics.GlyphRun) {
	ctx.builder.DrawGlyphs(run)
}

// Builder returns the underlying display list builder.
func (ctx *RenderContext) Builder() graphics.DisplayListBuilder { return ctx.builder }

// RunRender walks the tree under root in pre-order, parents before children
// and siblings in declaration order, calling each component's Render with
// its absolute bounds.
func RunRender(a *Arena, root Cid, builder graphics.DisplayListBuilder) {
	idx := a.check("core.RunRender", root)
	if a.kinds[idx] == voidKind {
		return
	}
	ctx := &RenderContext{arena: a, builder: builder}
	renderNode(a, ctx, root, graphics.Offset{})
}

func renderNode(a *Arena, ctx *RenderContext, id Cid, parentOrigin graphics.Offset) {
	idx := int(id.index)
	origin := parentOrigin.Add(a.positions[idx])
	ctx.id = id
	state := a.peekState("core.RunRender", idx)
	a.tables[idx].render(state, graphics.Rect{Origin: origin, Size: a.sizes[idx]}, ctx)
	for _, c := range a.children[idx] {
		renderNode(a, ctx, c, origin)
	}
}
