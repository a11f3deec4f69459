package widgets

import (
	"reflect"

	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/layout"
	"github.com/go-coat/coat/pkg/text"
)

const defaultFontSize = 12

// LineProps configures a [Line].
type LineProps struct {
	Text  string
	Font  text.Font
	Size  float64
	Color graphics.Color
	// Shaper shapes the text. Nil uses the shared default font manager.
	Shaper text.Shaper
}

type lineState struct {
	text   string
	font   text.Font
	size   float64
	shaper text.Shaper
	layout text.TextLayout
	shaped bool
}

type line struct {
	core.Base[LineProps, lineState, core.None, core.None]
}

// Line shows a single line of text. The text is shaped again only when the
// content, font, size or shaper changes.
var Line = core.Define[LineProps, lineState, core.None, core.None]("Line", line{})

func (line) Init(LineProps) lineState { return lineState{} }

func (line) DeriveState(p LineProps, s *lineState) {
	shaper := resolveShaper(p.Shaper)
	size := p.Size
	if size <= 0 {
		size = defaultFontSize
	}
	if s.shaped && p.Text == s.text && p.Font == s.font && size == s.size && sameShaper(shaper, s.shaper) {
		return
	}
	s.text, s.font, s.size, s.shaper = p.Text, p.Font, size, shaper
	s.layout = shape(shaper, p.Text, p.Font, size)
	s.shaped = true
}

func (line) View(p LineProps, s *lineState, ctx *core.ViewContext[core.None]) {
	core.Set(ctx, core.ID("glyphs"), Glyphs, GlyphsProps{Layout: s.layout, Color: p.Color})
}

func (line) Layout(s *lineState, children []core.Cid, c layout.Constraints, ctx *core.LayoutContext) graphics.Size {
	size := c.Constrain(s.layout.Size)
	for _, child := range children {
		ctx.Size(child, layout.Tight(size))
	}
	return size
}

// sameShaper compares shapers without panicking on uncomparable dynamic
// types. Those never match, so their text is shaped on every View.
func sameShaper(a, b text.Shaper) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil {
		return true
	}
	return ta.Comparable() && a == b
}

func resolveShaper(s text.Shaper) text.Shaper {
	if s != nil {
		return s
	}
	if m := text.DefaultFontManager(); m != nil {
		return m
	}
	return nil
}

func shape(shaper text.Shaper, s string, font text.Font, size float64) text.TextLayout {
	if shaper == nil {
		return text.TextLayout{Text: s}
	}
	return shaper.Layout(s, font, size)
}
