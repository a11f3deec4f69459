// Package testbed provides internal test components for the testing harness.
package testbed

import (
	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/widgets"
)

// Geometry of the counter layout.
const (
	ButtonWidth  = 40
	ButtonHeight = 20
	DotSize      = 10
	Spacing      = 4
)

// ButtonColor is the fill of the add button.
var ButtonColor = graphics.RGB(200, 40, 40)

// CounterProps configures a Counter.
type CounterProps struct {
	Initial int
}

type counterState struct {
	count int
}

type increment struct{}

type counter struct {
	core.Base[CounterProps, counterState, increment, core.None]
}

// Counter stacks an "add" button above one "dot[i]" square per tap.
var Counter = core.Define[CounterProps, counterState, increment, core.None]("Counter", counter{})

func (counter) Init(p CounterProps) counterState { return counterState{count: p.Initial} }

func (counter) Update(_ increment, s core.Mut[counterState], _ *core.UpdateContext[core.None]) {
	s.Mutate().count++
}

func (counter) View(_ CounterProps, s *counterState, ctx *core.ViewContext[increment]) {
	column := core.Set(ctx, core.ID("column"), widgets.Linear, widgets.LinearProps{
		Direction: widgets.Vertical,
		Spacing:   Spacing,
	})
	ctx.Add(column.ID, func() {
		add := core.Set(ctx, core.ID("add"), widgets.TouchArea, widgets.TouchAreaProps{})
		ctx.Add(add.ID, func() {
			box(ctx, core.ID("size"), ButtonWidth, ButtonHeight, ButtonColor)
		})
		core.MapEvents(ctx, add, func(e widgets.TouchAreaEvent) (increment, bool) {
			return increment{}, e.Kind == widgets.TouchActivated
		})

		for i := range s.count {
			box(ctx, core.IDIndex("dot", i), DotSize, DotSize, graphics.RGB(0, 0, uint8(i)))
		}
	})
}

func box(ctx *core.ViewContext[increment], iid core.Iid, w, h float64, color graphics.Color) {
	size := core.Set(ctx, iid, widgets.Constrained, widgets.ConstrainedProps{MaxWidth: w, MaxHeight: h})
	ctx.Add(size.ID, func() {
		core.Set(ctx, core.ID("fill"), widgets.Rectangle, widgets.RectangleProps{Color: color})
	})
}
