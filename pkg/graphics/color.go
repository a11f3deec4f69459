package graphics

import "math"

// Color is a straight-alpha ARGB value, 8 bits per channel (0xAARRGGBB).
// Primitives carry it unchanged to the backend.
type Color uint32

// Named colors.
const (
	ColorTransparent Color = 0x00000000
	ColorBlack       Color = 0xFF000000
	ColorWhite       Color = 0xFFFFFFFF
	ColorRed         Color = 0xFFFF0000
	ColorGreen       Color = 0xFF00FF00
	ColorBlue        Color = 0xFF0000FF
)

func pack(r, g, b, a uint8) Color {
	return Color(a)<<24 | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// unit maps [0, 1] onto a channel byte, clamping out of range values.
func unit(v float64) uint8 {
	return uint8(math.Round(math.Min(math.Max(v, 0), 1) * 255))
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color { return pack(r, g, b, 0xFF) }

// RGBA returns a color with alpha in [0, 1].
func RGBA(r, g, b uint8, a float64) Color { return pack(r, g, b, unit(a)) }

// RGBF returns an opaque color from channels in [0, 1].
func RGBF(r, g, b float64) Color { return RGBAF(r, g, b, 1) }

// RGBAF returns a color from channels in [0, 1].
func RGBAF(r, g, b, a float64) Color { return pack(unit(r), unit(g), unit(b), unit(a)) }

// Components returns the channel bytes.
func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(c >> 24)
}

// Float returns the channels in [0, 1].
func (c Color) Float() (r, g, b, a float64) {
	cr, cg, cb, ca := c.Components()
	return float64(cr) / 255, float64(cg) / 255, float64(cb) / 255, float64(ca) / 255
}

// Alpha returns the alpha channel in [0, 1]. Zero means the color draws
// nothing.
func (c Color) Alpha() float64 {
	return float64(uint8(c>>24)) / 255
}

// WithAlpha replaces the alpha channel.
func (c Color) WithAlpha(a float64) Color {
	r, g, b, _ := c.Components()
	return pack(r, g, b, unit(a))
}
