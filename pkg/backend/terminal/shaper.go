package terminal

import (
	"github.com/mattn/go-runewidth"

	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/text"
)

// CellShaper shapes text into terminal cells: each rune advances by its
// display width and a line is one cell tall. Font and size only label the
// result. Zero width runes are dropped.
type CellShaper struct{}

// Layout implements text.Shaper.
func (CellShaper) Layout(s string, font text.Font, size float64) text.TextLayout {
	l := text.TextLayout{
		Text:   s,
		Font:   graphics.FontInstance{Family: font.Family, Size: size},
		Ascent: 1,
	}
	x := 0.0
	for i, r := range s {
		w := float64(runewidth.RuneWidth(r))
		if w == 0 {
			continue
		}
		l.Glyphs = append(l.Glyphs, text.LayoutGlyph{
			Index:   uint32(r),
			Rune:    r,
			Bounds:  graphics.Rect{Origin: graphics.Offset{X: x}, Size: graphics.Size{Width: w, Height: 1}},
			Advance: w,
			Cluster: i,
		})
		x += w
	}
	l.Size = graphics.Size{Width: x, Height: 1}
	return l
}
