package widgets

import (
	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/errors"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/layout"
)

// ConstrainedProps configures a [Constrained]. Zero fields impose nothing.
type ConstrainedProps struct {
	MinWidth  float64
	MinHeight float64
	MaxWidth  float64
	MaxHeight float64
}

type constrained struct {
	core.Base[ConstrainedProps, ConstrainedProps, core.None, core.None]
}

// Constrained further restricts the constraints of its single child.
//
// Minimums are applied to the loosened incoming constraints and clamped to
// the resulting maximum. A maximum only tightens: one larger than a bounded
// incoming maximum is ignored with a constraint warning.
var Constrained = core.Define[ConstrainedProps, ConstrainedProps, core.None, core.None]("Constrained", constrained{})

func (constrained) Init(p ConstrainedProps) ConstrainedProps { return p }

func (constrained) DeriveState(p ConstrainedProps, s *ConstrainedProps) { *s = p }

func (constrained) Layout(s *ConstrainedProps, children []core.Cid, c layout.Constraints, ctx *core.LayoutContext) graphics.Size {
	if !requireOneChild("widgets.Constrained", children, ctx) {
		return graphics.Size{}
	}
	c = c.Loosen()
	if s.MaxWidth > 0 {
		if !c.HasBoundedWidth() || s.MaxWidth <= c.MaxWidth {
			c = c.WithMaxWidth(s.MaxWidth)
		} else {
			errors.ReportConstraint("widgets.Constrained", ctx.FullDebugName(),
				"max width ignored, larger than the imposed constraint (%g > %g)", s.MaxWidth, c.MaxWidth)
		}
	}
	if s.MaxHeight > 0 {
		if !c.HasBoundedHeight() || s.MaxHeight <= c.MaxHeight {
			c = c.WithMaxHeight(s.MaxHeight)
		} else {
			errors.ReportConstraint("widgets.Constrained", ctx.FullDebugName(),
				"max height ignored, larger than the imposed constraint (%g > %g)", s.MaxHeight, c.MaxHeight)
		}
	}
	if s.MinWidth > 0 {
		width := s.MinWidth
		if width > c.MaxWidth {
			errors.ReportConstraint("widgets.Constrained", ctx.FullDebugName(),
				"min width clamped to the maximum (%g > %g)", s.MinWidth, c.MaxWidth)
			width = c.MaxWidth
		}
		c = c.WithMinWidth(width)
	}
	if s.MinHeight > 0 {
		height := s.MinHeight
		if height > c.MaxHeight {
			errors.ReportConstraint("widgets.Constrained", ctx.FullDebugName(),
				"min height clamped to the maximum (%g > %g)", s.MinHeight, c.MaxHeight)
			height = c.MaxHeight
		}
		c = c.WithMinHeight(height)
	}
	return ctx.Size(children[0], c)
}
