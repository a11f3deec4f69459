package widgets

import (
	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/layout"
)

// RectangleProps configures a [Rectangle].
type RectangleProps struct {
	Color graphics.Color
}

type rectangle struct {
	core.Base[RectangleProps, RectangleProps, core.None, core.None]
}

// Rectangle fills all the space it is offered with a solid color. Under an
// unbounded axis it has zero size.
var Rectangle = core.Define[RectangleProps, RectangleProps, core.None, core.None]("Rectangle", rectangle{})

func (rectangle) Init(p RectangleProps) RectangleProps { return p }

func (rectangle) DeriveState(p RectangleProps, s *RectangleProps) { *s = p }

func (rectangle) Layout(_ *RectangleProps, children []core.Cid, c layout.Constraints, ctx *core.LayoutContext) graphics.Size {
	reportIgnoredContent("widgets.Rectangle", children, ctx)
	if c.HasBoundedWidth() && c.HasBoundedHeight() {
		return c.Biggest()
	}
	return graphics.Size{}
}

func (rectangle) Render(s *RectangleProps, bounds graphics.Rect, ctx *core.RenderContext) {
	if s.Color.Alpha() == 0 || bounds.Size.Width <= 0 || bounds.Size.Height <= 0 {
		return
	}
	ctx.FillRect(bounds, s.Color)
}
