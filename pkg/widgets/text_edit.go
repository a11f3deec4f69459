package widgets

import (
	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/layout"
	"github.com/go-coat/coat/pkg/text"
)

// TextEditProps configures a [TextEdit].
type TextEditProps struct {
	// Buffer is read for display. The edit never changes it; the parent
	// applies the emitted [text.Update] events.
	Buffer      *text.Buffer
	Font        text.Font
	Size        float64
	Color       graphics.Color
	CursorColor graphics.Color
	CursorWidth float64
	Shaper      text.Shaper
}

type textEditState struct {
	line        lineState
	cursorWidth float64
	focused     bool
}

type textEdit struct {
	core.Base[TextEditProps, textEditState, KeyAreaEvent, text.Update]
}

// TextEdit shows a buffer with a caret and turns typing into buffer updates
// while focused. Clicking it takes focus.
//
//	edit := core.Set(ctx, core.ID("name"), widgets.TextEdit, widgets.TextEditProps{Buffer: s.name})
//	core.MapEvents(ctx, edit, func(u text.Update) (Msg, bool) { return Msg{Edit: u}, true })
var TextEdit = core.Define[TextEditProps, textEditState, KeyAreaEvent, text.Update]("TextEdit", textEdit{})

func (textEdit) Init(TextEditProps) textEditState { return textEditState{} }

func (textEdit) DeriveState(p TextEditProps, s *textEditState) {
	content := ""
	if p.Buffer != nil {
		content = p.Buffer.Text()
	}
	line{}.DeriveState(LineProps{Text: content, Font: p.Font, Size: p.Size, Shaper: p.Shaper}, &s.line)
	s.cursorWidth = cursorWidth(p)
}

func (textEdit) Update(msg KeyAreaEvent, s core.Mut[textEditState], ctx *core.UpdateContext[text.Update]) {
	switch msg.Kind {
	case KeyFocus:
		if s.Get().focused != msg.Focused {
			s.Mutate().focused = msg.Focused
		}
	case KeyText:
		ctx.Emit(text.Insert{Char: msg.Char})
	case KeyPressed:
		ctx.Emit(text.Key{Event: msg.Key})
	}
}

func (textEdit) View(p TextEditProps, s *textEditState, ctx *core.ViewContext[KeyAreaEvent]) {
	core.Set(ctx, core.ID("glyphs"), Glyphs, GlyphsProps{Layout: s.line.layout, Color: p.Color})

	caret := 0.0
	if p.Buffer != nil {
		caret = s.line.layout.CaretX(p.Buffer.Cursor())
	}
	cursorColor := graphics.ColorTransparent
	if s.focused {
		cursorColor = p.CursorColor
		if cursorColor == graphics.ColorTransparent {
			cursorColor = graphics.RGBF(0.1, 0.1, 0.1)
		}
	}
	at := core.Set(ctx, core.ID("caret"), Offset, OffsetProps{X: caret})
	ctx.Add(at.ID, func() {
		size := core.Set(ctx, core.ID("size"), Constrained, ConstrainedProps{
			MaxWidth:  s.cursorWidth,
			MaxHeight: s.line.layout.Size.Height,
		})
		ctx.Add(size.ID, func() {
			core.Set(ctx, core.ID("cursor"), Rectangle, RectangleProps{Color: cursorColor})
		})
	})

	keys := core.Set(ctx, core.ID("keys"), KeyArea, KeyAreaProps{Filter: text.EventFilter})
	core.MapEvents(ctx, keys, func(e KeyAreaEvent) (KeyAreaEvent, bool) { return e, true })
}

func (textEdit) Layout(s *textEditState, children []core.Cid, c layout.Constraints, ctx *core.LayoutContext) graphics.Size {
	c = c.WithMinWidth(max(c.MinWidth, s.cursorWidth))
	size := c.Constrain(s.line.layout.Size)
	for _, child := range children {
		ctx.Size(child, layout.Tight(size))
	}
	return size
}

func cursorWidth(p TextEditProps) float64 {
	if p.CursorWidth > 0 {
		return p.CursorWidth
	}
	return 2
}
