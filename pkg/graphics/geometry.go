package graphics

import "math"

// Offset represents a 2D point or vector in logical pixels.
type Offset struct {
	X float64
	Y float64
}

// Add returns the component-wise sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Sub returns the component-wise difference of two offsets.
func (o Offset) Sub(other Offset) Offset {
	return Offset{X: o.X - other.X, Y: o.Y - other.Y}
}

// Size represents width and height dimensions in logical pixels.
type Size struct {
	Width  float64
	Height float64
}

// Max returns the element-wise maximum of two sizes.
func (s Size) Max(other Size) Size {
	return Size{Width: math.Max(s.Width, other.Width), Height: math.Max(s.Height, other.Height)}
}

// IsFinite reports whether both dimensions are finite numbers.
func (s Size) IsFinite() bool {
	return !math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0) &&
		!math.IsNaN(s.Width) && !math.IsNaN(s.Height)
}

// Rect is an axis-aligned rectangle described by its origin and size.
// It is the "bounds" handed to input and render callbacks.
type Rect struct {
	Origin Offset
	Size   Size
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{Origin: Offset{X: left, Y: top}, Size: Size{Width: width, Height: height}}
}

// Left returns the minimum x coordinate.
func (r Rect) Left() float64 { return r.Origin.X }

// Top returns the minimum y coordinate.
func (r Rect) Top() float64 { return r.Origin.Y }

// Right returns the maximum x coordinate.
func (r Rect) Right() float64 { return r.Origin.X + r.Size.Width }

// Bottom returns the maximum y coordinate.
func (r Rect) Bottom() float64 { return r.Origin.Y + r.Size.Height }

// Contains reports whether the point lies inside the rectangle.
// The left and top edges are inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left() && p.X < r.Right() && p.Y >= r.Top() && p.Y < r.Bottom()
}

// Translate returns the rectangle moved by the given offset.
func (r Rect) Translate(by Offset) Rect {
	return Rect{Origin: r.Origin.Add(by), Size: r.Size}
}

// Intersect returns the overlapping area of two rectangles.
// The result has zero size when they do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := math.Max(r.Left(), other.Left())
	top := math.Max(r.Top(), other.Top())
	right := math.Min(r.Right(), other.Right())
	bottom := math.Min(r.Bottom(), other.Bottom())
	if right < left {
		right = left
	}
	if bottom < top {
		bottom = top
	}
	return RectFromLTWH(left, top, right-left, bottom-top)
}
