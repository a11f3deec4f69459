// Package text shapes strings into positioned glyph runs and provides the
// editable buffer used by text input components.
//
// Shaping is reached through the [Shaper] interface so components never
// depend on a concrete font stack. [FontManager] shapes with the bundled Go
// fonts via golang.org/x/image; backends with their own notion of glyph cells
// (such as the terminal backend) provide their own Shaper.
package text

import (
	"github.com/go-coat/coat/pkg/graphics"
)

// Font selects a registered font family.
type Font struct {
	Family string
}

// Shaper turns a string into a positioned glyph layout.
type Shaper interface {
	Layout(text string, font Font, size float64) TextLayout
}

// LayoutGlyph is one shaped glyph. Bounds are relative to the layout origin
// (top-left of the line box).
type LayoutGlyph struct {
	Index   uint32
	Rune    rune
	Bounds  graphics.Rect
	Advance float64
	// Byte offset of the glyph's rune in the source string.
	Cluster int
}

// TextLayout is the result of shaping a single line of text.
type TextLayout struct {
	Text    string
	Font    graphics.FontInstance
	Glyphs  []LayoutGlyph
	Size    graphics.Size
	Ascent  float64
	Descent float64
}

// GlyphRun places the layout at origin and returns a run ready for a
// display list builder.
func (l TextLayout) GlyphRun(origin graphics.Offset, color graphics.Color, clip graphics.Rect) graphics.GlyphRun {
	glyphs := make([]graphics.Glyph, len(l.Glyphs))
	for i, g := range l.Glyphs {
		glyphs[i] = graphics.Glyph{
			Index:  g.Index,
			Rune:   g.Rune,
			Bounds: g.Bounds.Translate(origin),
		}
	}
	return graphics.GlyphRun{
		Font:   l.Font,
		Color:  color,
		Glyphs: glyphs,
		Clip:   clip,
	}
}

// CaretX returns the horizontal pen position before the glyph at index,
// or the full advance when index is past the end.
func (l TextLayout) CaretX(index int) float64 {
	x := 0.0
	for i, g := range l.Glyphs {
		if i == index {
			return g.Bounds.Left()
		}
		x = g.Bounds.Left() + g.Advance
	}
	return x
}
