package widgets

import (
	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/layout"
)

// OffsetProps configures an [Offset].
type OffsetProps struct {
	X float64
	Y float64
}

type offset struct {
	core.Base[OffsetProps, OffsetProps, core.None, core.None]
}

// Offset places every child at a fixed offset. Children receive the loosened
// constraints; the offset's size encloses the largest child at its offset.
var Offset = core.Define[OffsetProps, OffsetProps, core.None, core.None]("Offset", offset{})

func (offset) Init(p OffsetProps) OffsetProps { return p }

func (offset) DeriveState(p OffsetProps, s *OffsetProps) { *s = p }

func (offset) Layout(s *OffsetProps, children []core.Cid, c layout.Constraints, ctx *core.LayoutContext) graphics.Size {
	c = c.Loosen()
	var largest graphics.Size
	for _, child := range children {
		largest = largest.Max(ctx.Size(child, c))
		ctx.Position(child, graphics.Offset{X: s.X, Y: s.Y})
	}
	if len(children) == 0 {
		return graphics.Size{}
	}
	return graphics.Size{Width: largest.Width + s.X, Height: largest.Height + s.Y}
}
