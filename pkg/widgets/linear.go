package widgets

import (
	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/errors"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/layout"
)

// Direction is the main axis of a [Linear] layout.
type Direction int

const (
	// Horizontal lays children out left to right.
	Horizontal Direction = iota
	// Vertical lays children out top to bottom.
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// LinearProps configures a [Linear] layout.
type LinearProps struct {
	Direction Direction
	// Spacing is the gap between adjacent children.
	Spacing float64
}

type linear struct {
	core.Base[LinearProps, LinearProps, core.None, core.None]
}

// Linear places its children one after another along an axis.
//
// Along an unbounded main axis every child takes its natural length. Along a
// bounded one each child is offered only the remaining length; children
// that no longer fit are not laid out and an overflow warning is reported.
// The cross-axis size is the thickest child.
var Linear = core.Define[LinearProps, LinearProps, core.None, core.None]("Linear", linear{})

func (linear) Init(p LinearProps) LinearProps { return p }

func (linear) DeriveState(p LinearProps, s *LinearProps) { *s = p }

func (linear) Layout(s *LinearProps, children []core.Cid, c layout.Constraints, ctx *core.LayoutContext) graphics.Size {
	horizontal := s.Direction == Horizontal
	var bounded bool
	var maxLength float64
	if horizontal {
		bounded, maxLength = c.HasBoundedWidth(), c.MaxWidth
		c = c.WithMinWidth(0)
	} else {
		bounded, maxLength = c.HasBoundedHeight(), c.MaxHeight
		c = c.WithMinHeight(0)
	}

	length := -s.Spacing
	thickness := 0.0
	for i, child := range children {
		length += s.Spacing
		childConstraints := c
		if bounded {
			remaining := max(maxLength-length, 0)
			if horizontal {
				childConstraints = c.WithMaxWidth(remaining)
			} else {
				childConstraints = c.WithMaxHeight(remaining)
			}
		}
		size := ctx.Size(child, childConstraints)
		distance, cross := size.Width, size.Height
		if horizontal {
			ctx.Position(child, graphics.Offset{X: length})
		} else {
			ctx.Position(child, graphics.Offset{Y: length})
			distance, cross = size.Height, size.Width
		}
		length += distance
		thickness = max(thickness, cross)

		if bounded && length >= maxLength {
			if length > maxLength || i != len(children)-1 {
				errors.Reportf(errors.KindOverflow, "widgets.Linear", ctx.FullDebugName(),
					"more children than it can fit (%d of %d laid out)", i+1, len(children))
			}
			break
		}
	}
	length = max(length, 0)
	if horizontal {
		return graphics.Size{Width: length, Height: thickness}
	}
	return graphics.Size{Width: thickness, Height: length}
}
