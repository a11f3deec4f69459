// Package widgets provides the built-in components: layout containers,
// leaf primitives and input areas.
//
// Every component is exported as a [core.Kind] together with its props
// type, and is declared with [core.Set]:
//
//	row := core.Set(ctx, core.ID("row"), widgets.Linear, widgets.LinearProps{Spacing: 8})
//	ctx.Add(row.ID, func() {
//	    core.Set(ctx, core.ID("swatch"), widgets.Rectangle, widgets.RectangleProps{Color: graphics.ColorRed})
//	    core.Set(ctx, core.ID("label"), widgets.Line, widgets.LineProps{Text: "Red"})
//	})
//
// Layout containers (Linear, Stack, Padding, Constrained, Offset) size the
// content attached with [core.ViewContext.Add]. Leaves (Rectangle, Glyphs)
// report a usage error when content is attached to them. TouchArea and
// KeyArea wrap content and emit events the parent maps into messages.
package widgets
