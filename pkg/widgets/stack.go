package widgets

import (
	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/layout"
)

// StackProps configures a [Stack]. It has no options.
type StackProps struct{}

type stack struct {
	core.Base[StackProps, StackProps, core.None, core.None]
}

// Stack overlays its children, centred within the largest of them.
// Later children are drawn on top and receive input first.
var Stack = core.Define[StackProps, StackProps, core.None, core.None]("Stack", stack{})

func (stack) Init(p StackProps) StackProps { return p }

func (stack) Layout(_ *StackProps, children []core.Cid, c layout.Constraints, ctx *core.LayoutContext) graphics.Size {
	c = c.Loosen()
	var largest graphics.Size
	for _, child := range children {
		largest = largest.Max(ctx.Size(child, c))
	}
	for _, child := range children {
		size := ctx.SizeOf(child)
		ctx.Position(child, graphics.Offset{
			X: (largest.Width - size.Width) / 2,
			Y: (largest.Height - size.Height) / 2,
		})
	}
	return largest
}
