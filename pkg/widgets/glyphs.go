package widgets

import (
	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/layout"
	"github.com/go-coat/coat/pkg/text"
)

// GlyphsProps configures a [Glyphs] leaf.
type GlyphsProps struct {
	Layout text.TextLayout
	Color  graphics.Color
}

type glyphs struct {
	core.Base[GlyphsProps, GlyphsProps, core.None, core.None]
}

// Glyphs draws an already shaped text layout. Its size is the layout's size,
// and drawing is clipped to its bounds.
var Glyphs = core.Define[GlyphsProps, GlyphsProps, core.None, core.None]("Glyphs", glyphs{})

func (glyphs) Init(p GlyphsProps) GlyphsProps { return p }

func (glyphs) DeriveState(p GlyphsProps, s *GlyphsProps) { *s = p }

func (glyphs) Layout(s *GlyphsProps, children []core.Cid, _ layout.Constraints, ctx *core.LayoutContext) graphics.Size {
	reportIgnoredContent("widgets.Glyphs", children, ctx)
	return s.Layout.Size
}

func (glyphs) Render(s *GlyphsProps, bounds graphics.Rect, ctx *core.RenderContext) {
	if len(s.Layout.Glyphs) == 0 {
		return
	}
	color := s.Color
	if color == graphics.ColorTransparent {
		color = graphics.ColorWhite
	}
	ctx.DrawGlyphs(s.Layout.GlyphRun(bounds.Origin, color, bounds))
}
