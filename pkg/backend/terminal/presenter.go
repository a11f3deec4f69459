package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/go-coat/coat/pkg/graphics"
)

// presenter replays display lists into a tcell screen. Rectangles paint the
// background of the cells they cover; glyphs are drawn over the background
// already painted beneath them.
type presenter struct {
	screen     tcell.Screen
	width      int
	height     int
	background []tcell.Color
}

func (p *presenter) present(list *graphics.DisplayList) {
	p.width, p.height = p.screen.Size()
	p.background = p.background[:0]
	for range p.width * p.height {
		p.background = append(p.background, tcell.ColorDefault)
	}
	p.screen.Clear()
	if list != nil {
		list.Replay(p)
	}
	p.screen.Show()
}

// FillRect paints every cell whose area the rectangle covers.
func (p *presenter) FillRect(rect graphics.Rect, color graphics.Color) {
	if color.Alpha() == 0 {
		return
	}
	bg := toTcell(color)
	x0, y0, x1, y1 := p.cells(rect)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p.background[y*p.width+x] = bg
			p.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(bg))
		}
	}
}

// DrawGlyphs places each glyph in the cell at its top-left corner. Glyphs
// starting outside the clip, or too wide to fit in it, are skipped.
func (p *presenter) DrawGlyphs(run graphics.GlyphRun) {
	fg := toTcell(run.Color)
	cx0, cy0, cx1, cy1 := p.cells(run.Clip)
	for _, g := range run.Glyphs {
		x, y := int(math.Floor(g.Bounds.Left())), int(math.Floor(g.Bounds.Top()))
		w := runewidth.RuneWidth(g.Rune)
		if w == 0 || x < cx0 || y < cy0 || y >= cy1 || x+w > cx1 {
			continue
		}
		style := tcell.StyleDefault.Foreground(fg).Background(p.background[y*p.width+x])
		p.screen.SetContent(x, y, g.Rune, nil, style)
	}
}

// cells returns the cell range covered by rect, clamped to the screen.
func (p *presenter) cells(rect graphics.Rect) (x0, y0, x1, y1 int) {
	x0 = clamp(int(math.Floor(rect.Left())), p.width)
	y0 = clamp(int(math.Floor(rect.Top())), p.height)
	x1 = clamp(int(math.Ceil(rect.Right())), p.width)
	y1 = clamp(int(math.Ceil(rect.Bottom())), p.height)
	return x0, y0, x1, y1
}

func clamp(v, limit int) int {
	return max(0, min(v, limit))
}

func toTcell(c graphics.Color) tcell.Color {
	r, g, b, _ := c.Components()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
