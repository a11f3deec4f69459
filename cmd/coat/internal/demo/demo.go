// Package demo is the sample application run by coat demo and dumped by
// coat tree.
package demo

import (
	"fmt"
	"strings"

	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/text"
	"github.com/go-coat/coat/pkg/widgets"
)

// Button label and the width of the name field, in shaper units.
const (
	ButtonLabel = " + click "
	FieldWidth  = 24
)

// Palette.
var (
	TitleColor  = graphics.RGB(250, 200, 80)
	ButtonColor = graphics.RGB(40, 90, 160)
	FieldColor  = graphics.RGB(50, 50, 50)
	CaretColor  = graphics.RGB(230, 230, 230)
)

// Props configures the demo app.
type Props struct {
	Title string
	// Shaper lays out every line of text. Units are whatever it measures in.
	Shaper text.Shaper
}

type state struct {
	clicks int
	name   *text.Buffer
}

// msg is either a click or an edit of the name buffer.
type msg struct {
	click bool
	edit  text.Update
}

type app struct {
	core.Base[Props, state, msg, core.None]
}

// App shows a title, a click counter and a name field with a greeting.
var App = core.Define[Props, state, msg, core.None]("Demo", app{})

func (app) Init(Props) state { return state{name: text.NewBuffer("")} }

func (app) Update(m msg, s core.Mut[state], _ *core.UpdateContext[core.None]) {
	st := s.Mutate()
	if m.click {
		st.clicks++
	}
	if m.edit != nil {
		st.name.Apply(m.edit)
	}
}

func (app) View(p Props, s *state, ctx *core.ViewContext[msg]) {
	column := core.Set(ctx, core.ID("column"), widgets.Linear, widgets.LinearProps{
		Direction: widgets.Vertical,
		Spacing:   1,
	})
	ctx.Add(column.ID, func() {
		line(ctx, p, core.ID("title"), p.Title, TitleColor)

		click := core.Set(ctx, core.ID("click"), widgets.TouchArea, widgets.TouchAreaProps{})
		ctx.Add(click.ID, func() {
			box(ctx, core.ID("button"), float64(len(ButtonLabel)), ButtonColor, func() {
				line(ctx, p, core.ID("label"), ButtonLabel, graphics.ColorWhite)
			})
		})
		core.MapEvents(ctx, click, func(e widgets.TouchAreaEvent) (msg, bool) {
			return msg{click: true}, e.Kind == widgets.TouchActivated
		})

		line(ctx, p, core.ID("count"), fmt.Sprintf("clicks: %d", s.clicks), graphics.ColorWhite)

		row := core.Set(ctx, core.ID("row"), widgets.Linear, widgets.LinearProps{
			Direction: widgets.Horizontal,
			Spacing:   1,
		})
		ctx.Add(row.ID, func() {
			line(ctx, p, core.ID("prompt"), "name:", graphics.ColorWhite)
			box(ctx, core.ID("field"), FieldWidth, FieldColor, func() {
				edit := core.Set(ctx, core.ID("name"), widgets.TextEdit, widgets.TextEditProps{
					Buffer:      s.name,
					Color:       graphics.ColorWhite,
					CursorColor: CaretColor,
					CursorWidth: 1,
					Shaper:      p.Shaper,
				})
				core.MapEvents(ctx, edit, func(u text.Update) (msg, bool) { return msg{edit: u}, true })
			})
		})

		line(ctx, p, core.ID("greeting"), Greeting(s.name.Text()), graphics.ColorWhite)
	})
}

// Greeting is the text shown under the name field.
func Greeting(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "type your name above"
	}
	return "hello, " + name
}

func line(ctx *core.ViewContext[msg], p Props, iid core.Iid, s string, color graphics.Color) {
	core.Set(ctx, iid, widgets.Line, widgets.LineProps{Text: s, Color: color, Shaper: p.Shaper})
}

// box is a one line high filled strip holding content.
func box(ctx *core.ViewContext[msg], iid core.Iid, width float64, color graphics.Color, content func()) {
	size := core.Set(ctx, iid, widgets.Constrained, widgets.ConstrainedProps{MaxWidth: width, MaxHeight: 1})
	ctx.Add(size.ID, func() {
		stack := core.Set(ctx, core.ID("stack"), widgets.Stack, widgets.StackProps{})
		ctx.Add(stack.ID, func() {
			core.Set(ctx, core.ID("fill"), widgets.Rectangle, widgets.RectangleProps{Color: color})
			content()
		})
	})
}
