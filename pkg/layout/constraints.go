// Package layout provides the box constraint model used by the layout pass.
//
// Constraints flow down the tree from parent to child and sizes flow back up.
// Minimum extents are always finite. Maximum extents may be unbounded, which
// is represented by positive infinity.
package layout

import (
	"fmt"
	"math"

	"github.com/go-coat/coat/pkg/graphics"
)

// Unbounded is the maximum extent used for an axis without an upper limit.
var Unbounded = math.Inf(1)

// Constraints bound the size a component may report.
type Constraints struct {
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	MaxHeight float64
}

// Tight returns constraints that only allow the given size.
func Tight(size graphics.Size) Constraints {
	return Constraints{
		MinWidth:  size.Width,
		MaxWidth:  size.Width,
		MinHeight: size.Height,
		MaxHeight: size.Height,
	}
}

// Loose returns constraints from zero up to the given size.
func Loose(size graphics.Size) Constraints {
	return Constraints{MaxWidth: size.Width, MaxHeight: size.Height}
}

// UnboundedConstraints returns constraints with zero minimum and no maximum.
func UnboundedConstraints() Constraints {
	return Constraints{MaxWidth: Unbounded, MaxHeight: Unbounded}
}

// HasBoundedWidth reports whether MaxWidth is finite.
func (c Constraints) HasBoundedWidth() bool {
	return !math.IsInf(c.MaxWidth, 1)
}

// HasBoundedHeight reports whether MaxHeight is finite.
func (c Constraints) HasBoundedHeight() bool {
	return !math.IsInf(c.MaxHeight, 1)
}

// IsTight reports whether only a single size satisfies the constraints.
func (c Constraints) IsTight() bool {
	return c.MinWidth == c.MaxWidth && c.MinHeight == c.MaxHeight
}

// Biggest returns the largest size allowed. Unbounded axes report infinity.
func (c Constraints) Biggest() graphics.Size {
	return graphics.Size{Width: c.MaxWidth, Height: c.MaxHeight}
}

// Smallest returns the smallest size allowed.
func (c Constraints) Smallest() graphics.Size {
	return graphics.Size{Width: c.MinWidth, Height: c.MinHeight}
}

// ConstrainWidth clamps a width into [MinWidth, MaxWidth].
// The minimum wins when the two bounds conflict.
func (c Constraints) ConstrainWidth(width float64) float64 {
	if width < c.MinWidth {
		return c.MinWidth
	}
	if width > c.MaxWidth {
		return c.MaxWidth
	}
	return width
}

// ConstrainHeight clamps a height into [MinHeight, MaxHeight].
// The minimum wins when the two bounds conflict.
func (c Constraints) ConstrainHeight(height float64) float64 {
	if height < c.MinHeight {
		return c.MinHeight
	}
	if height > c.MaxHeight {
		return c.MaxHeight
	}
	return height
}

// Constrain clamps a size so that it satisfies the constraints.
func (c Constraints) Constrain(size graphics.Size) graphics.Size {
	return graphics.Size{
		Width:  c.ConstrainWidth(size.Width),
		Height: c.ConstrainHeight(size.Height),
	}
}

// Loosen returns a copy with both minimum extents set to zero.
func (c Constraints) Loosen() Constraints {
	c.MinWidth = 0
	c.MinHeight = 0
	return c
}

// WithMaxWidth returns a copy with MaxWidth replaced.
func (c Constraints) WithMaxWidth(width float64) Constraints {
	c.MaxWidth = width
	return c
}

// WithMaxHeight returns a copy with MaxHeight replaced.
func (c Constraints) WithMaxHeight(height float64) Constraints {
	c.MaxHeight = height
	return c
}

// WithMinWidth returns a copy with MinWidth replaced.
func (c Constraints) WithMinWidth(width float64) Constraints {
	c.MinWidth = width
	return c
}

// WithMinHeight returns a copy with MinHeight replaced.
func (c Constraints) WithMinHeight(height float64) Constraints {
	c.MinHeight = height
	return c
}

// Deflate loosens the constraints and shrinks the maximum extents by the
// insets. Unbounded axes stay unbounded and bounded axes never go below zero.
func (c Constraints) Deflate(insets EdgeInsets) Constraints {
	c = c.Loosen()
	if c.HasBoundedWidth() {
		c.MaxWidth = math.Max(0, c.MaxWidth-insets.Horizontal())
	}
	if c.HasBoundedHeight() {
		c.MaxHeight = math.Max(0, c.MaxHeight-insets.Vertical())
	}
	return c
}

func (c Constraints) String() string {
	return fmt.Sprintf("Constraints(w: %s..%s, h: %s..%s)",
		formatExtent(c.MinWidth), formatExtent(c.MaxWidth),
		formatExtent(c.MinHeight), formatExtent(c.MaxHeight))
}

func formatExtent(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%g", v)
}
