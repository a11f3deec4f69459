package widgets_test

import (
	"testing"

	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/errors"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/layout"
	coattest "github.com/go-coat/coat/pkg/testing"
	"github.com/go-coat/coat/pkg/widgets"
)

func TestLinear_Unbounded(t *testing.T) {
	tester, _ := pump(t, func(ctx *core.ViewContext[string]) {
		wrap := core.Set(ctx, core.ID("wrap"), probeKind, within(layout.UnboundedConstraints()))
		ctx.Add(wrap.ID, func() {
			row := core.Set(ctx, core.ID("row"), widgets.Linear, widgets.LinearProps{Direction: widgets.Horizontal, Spacing: 10})
			ctx.Add(row.ID, func() {
				core.Set(ctx, core.ID("a"), probeKind, fixed(50, 20))
				core.Set(ctx, core.ID("b"), probeKind, fixed(30, 20))
			})
		})
	})

	if got := tester.Find(coattest.ByName("row")).Size(); got != (graphics.Size{Width: 90, Height: 20}) {
		t.Errorf("expected row size 90x20, got %+v", got)
	}
	assertBounds(t, tester, "a", rect(0, 0, 50, 20))
	assertBounds(t, tester, "b", rect(60, 0, 30, 20))
}

func TestLinear_Vertical(t *testing.T) {
	tester, _ := pump(t, func(ctx *core.ViewContext[string]) {
		wrap := core.Set(ctx, core.ID("wrap"), probeKind, within(layout.Loose(graphics.Size{Width: 100, Height: 100})))
		ctx.Add(wrap.ID, func() {
			column := core.Set(ctx, core.ID("column"), widgets.Linear, widgets.LinearProps{Direction: widgets.Vertical, Spacing: 5})
			ctx.Add(column.ID, func() {
				core.Set(ctx, core.ID("a"), probeKind, fixed(40, 20))
				core.Set(ctx, core.ID("b"), probeKind, fixed(60, 30))
			})
		})
	})

	if got := tester.Find(coattest.ByName("column")).Size(); got != (graphics.Size{Width: 60, Height: 55}) {
		t.Errorf("expected column size 60x55, got %+v", got)
	}
	assertBounds(t, tester, "b", rect(0, 25, 60, 30))
}

func TestLinear_BoundedOverflow(t *testing.T) {
	tests := []struct {
		name      string
		widths    []float64
		overflows int
		last      graphics.Size
	}{
		{"fits", []float64{30, 30}, 0, graphics.Size{Width: 30, Height: 20}},
		{"last child squeezed", []float64{50, 30}, 0, graphics.Size{Width: 10, Height: 20}},
		{"children dropped", []float64{50, 30, 30}, 1, graphics.Size{Width: 10, Height: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := coattest.RecordErrors(t)
			tester, _ := pump(t, func(ctx *core.ViewContext[string]) {
				wrap := core.Set(ctx, core.ID("wrap"), probeKind, within(layout.Loose(graphics.Size{Width: 70, Height: 20})))
				ctx.Add(wrap.ID, func() {
					row := core.Set(ctx, core.ID("row"), widgets.Linear, widgets.LinearProps{Spacing: 10})
					ctx.Add(row.ID, func() {
						for i, w := range tt.widths {
							core.Set(ctx, core.IDIndex("child", i), probeKind, fixed(w, 20))
						}
					})
				})
			})

			if got := rec.Count(errors.KindOverflow); got != tt.overflows {
				t.Errorf("expected %d overflow reports, got %d", tt.overflows, got)
			}
			if got := tester.Find(coattest.ByName("child[1]")).Size(); got != tt.last {
				t.Errorf("expected child[1] size %+v, got %+v", tt.last, got)
			}
		})
	}
}

func TestPadding(t *testing.T) {
	var offered layout.Constraints
	tester, _ := pump(t, func(ctx *core.ViewContext[string]) {
		wrap := core.Set(ctx, core.ID("wrap"), probeKind, within(layout.Loose(graphics.Size{Width: 100, Height: 100})))
		ctx.Add(wrap.ID, func() {
			pad := core.Set(ctx, core.ID("pad"), widgets.Padding, widgets.PaddingProps{Insets: layout.EdgeInsetsAll(5)})
			ctx.Add(pad.ID, func() {
				core.Set(ctx, core.ID("child"), probeKind, recording(&offered, graphics.Size{Width: 40, Height: 40}))
			})
		})
	})

	if offered.MaxWidth != 90 || offered.MaxHeight != 90 {
		t.Errorf("expected the child to be offered at most 90x90, got %v", offered)
	}
	assertBounds(t, tester, "pad", rect(0, 0, 50, 50))
	assertBounds(t, tester, "child", rect(5, 5, 40, 40))
}

func TestPadding_MissingChild(t *testing.T) {
	rec := coattest.RecordErrors(t)
	tester, _ := pump(t, func(ctx *core.ViewContext[string]) {
		core.Set(ctx, core.ID("pad"), widgets.Padding, widgets.PaddingProps{Insets: layout.EdgeInsetsAll(5)})
	})

	if got := rec.Count(errors.KindUsage); got != 1 {
		t.Errorf("expected one usage report, got %d", got)
	}
	if !tester.Find(coattest.ByName("pad")).Exists() {
		t.Error("expected the padding to stay in the tree")
	}
}

func TestStack_CentersChildren(t *testing.T) {
	tester, _ := pump(t, func(ctx *core.ViewContext[string]) {
		wrap := core.Set(ctx, core.ID("wrap"), probeKind, within(layout.Loose(graphics.Size{Width: 100, Height: 100})))
		ctx.Add(wrap.ID, func() {
			stack := core.Set(ctx, core.ID("stack"), widgets.Stack, widgets.StackProps{})
			ctx.Add(stack.ID, func() {
				core.Set(ctx, core.ID("small"), probeKind, fixed(20, 20))
				core.Set(ctx, core.ID("large"), probeKind, fixed(60, 40))
			})
		})
	})

	assertBounds(t, tester, "stack", rect(0, 0, 60, 40))
	assertBounds(t, tester, "small", rect(20, 10, 20, 20))
	assertBounds(t, tester, "large", rect(0, 0, 60, 40))
}

func TestConstrained(t *testing.T) {
	outer := layout.Loose(graphics.Size{Width: 50, Height: 50})
	tests := []struct {
		name        string
		props       widgets.ConstrainedProps
		want        graphics.Size
		constraints int
	}{
		{"zero imposes nothing", widgets.ConstrainedProps{}, graphics.Size{Width: 50, Height: 50}, 0},
		{"tightens maxima", widgets.ConstrainedProps{MaxWidth: 30, MaxHeight: 10}, graphics.Size{Width: 30, Height: 10}, 0},
		{"never loosens", widgets.ConstrainedProps{MaxWidth: 80, MaxHeight: 20}, graphics.Size{Width: 50, Height: 20}, 1},
		{"both maxima ignored", widgets.ConstrainedProps{MaxWidth: 80, MaxHeight: 80}, graphics.Size{Width: 50, Height: 50}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := coattest.RecordErrors(t)
			tester, _ := pump(t, func(ctx *core.ViewContext[string]) {
				wrap := core.Set(ctx, core.ID("wrap"), probeKind, within(outer))
				ctx.Add(wrap.ID, func() {
					box := core.Set(ctx, core.ID("box"), widgets.Constrained, tt.props)
					ctx.Add(box.ID, func() {
						core.Set(ctx, core.ID("fill"), widgets.Rectangle, widgets.RectangleProps{Color: graphics.ColorWhite})
					})
				})
			})

			if got := tester.Find(coattest.ByName("fill")).Size(); got != tt.want {
				t.Errorf("expected fill size %+v, got %+v", tt.want, got)
			}
			if got := rec.Count(errors.KindConstraint); got != tt.constraints {
				t.Errorf("expected %d constraint reports, got %d", tt.constraints, got)
			}
		})
	}
}

func TestConstrained_Minimum(t *testing.T) {
	tester, _ := pump(t, func(ctx *core.ViewContext[string]) {
		wrap := core.Set(ctx, core.ID("wrap"), probeKind, within(layout.Loose(graphics.Size{Width: 50, Height: 50})))
		ctx.Add(wrap.ID, func() {
			box := core.Set(ctx, core.ID("box"), widgets.Constrained, widgets.ConstrainedProps{MinWidth: 20})
			ctx.Add(box.ID, func() {
				core.Set(ctx, core.ID("child"), probeKind, fixed(5, 5))
			})
		})
	})

	if got := tester.Find(coattest.ByName("child")).Size(); got != (graphics.Size{Width: 20, Height: 5}) {
		t.Errorf("expected the minimum width to apply, got %+v", got)
	}
}

func TestConstrained_MinimumClampedToOuterMax(t *testing.T) {
	tests := []struct {
		name  string
		props widgets.ConstrainedProps
		want  graphics.Size
	}{
		{"outer bound wins", widgets.ConstrainedProps{MinWidth: 80}, graphics.Size{Width: 50, Height: 5}},
		{"own maximum wins", widgets.ConstrainedProps{MinHeight: 30, MaxHeight: 10}, graphics.Size{Width: 5, Height: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := coattest.RecordErrors(t)
			tester, _ := pump(t, func(ctx *core.ViewContext[string]) {
				wrap := core.Set(ctx, core.ID("wrap"), probeKind, within(layout.Loose(graphics.Size{Width: 50, Height: 50})))
				ctx.Add(wrap.ID, func() {
					box := core.Set(ctx, core.ID("box"), widgets.Constrained, tt.props)
					ctx.Add(box.ID, func() {
						core.Set(ctx, core.ID("child"), probeKind, fixed(5, 5))
					})
				})
			})

			if got := tester.Find(coattest.ByName("child")).Size(); got != tt.want {
				t.Errorf("expected child size %+v, got %+v", tt.want, got)
			}
			if got := tester.Find(coattest.ByName("box")).Size(); got.Width > 50 || got.Height > 50 {
				t.Errorf("expected box within the outer bound, got %+v", got)
			}
			if got := rec.Count(errors.KindConstraint); got != 1 {
				t.Errorf("expected 1 constraint report, got %d", got)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	tester, _ := pump(t, func(ctx *core.ViewContext[string]) {
		wrap := core.Set(ctx, core.ID("wrap"), probeKind, within(layout.Loose(graphics.Size{Width: 100, Height: 100})))
		ctx.Add(wrap.ID, func() {
			at := core.Set(ctx, core.ID("at"), widgets.Offset, widgets.OffsetProps{X: 10, Y: 5})
			ctx.Add(at.ID, func() {
				core.Set(ctx, core.ID("child"), probeKind, fixed(20, 20))
			})
		})
	})

	assertBounds(t, tester, "at", rect(0, 0, 30, 25))
	assertBounds(t, tester, "child", rect(10, 5, 20, 20))
}

func TestRectangle(t *testing.T) {
	red := graphics.RGB(255, 0, 0)
	tests := []struct {
		name  string
		color graphics.Color
		ops   int
	}{
		{"opaque", red, 1},
		{"transparent", graphics.ColorTransparent, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester, _ := pump(t, func(ctx *core.ViewContext[string]) {
				core.Set(ctx, core.ID("fill"), widgets.Rectangle, widgets.RectangleProps{Color: tt.color})
			})

			list := tester.DisplayList()
			if list.Len() != tt.ops {
				t.Fatalf("expected %d ops, got %d", tt.ops, list.Len())
			}
			if tt.ops == 0 {
				return
			}
			op, ok := list.Ops()[0].(graphics.FillRectOp)
			if !ok {
				t.Fatalf("expected a FillRectOp, got %T", list.Ops()[0])
			}
			want := rect(0, 0, coattest.DefaultTestWidth, coattest.DefaultTestHeight)
			if op.Rect != want || op.Color != tt.color {
				t.Errorf("expected fill %+v %v, got %+v %v", want, tt.color, op.Rect, op.Color)
			}
		})
	}
}

func TestRectangle_UnboundedIsEmpty(t *testing.T) {
	tester, _ := pump(t, func(ctx *core.ViewContext[string]) {
		wrap := core.Set(ctx, core.ID("wrap"), probeKind, within(layout.UnboundedConstraints()))
		ctx.Add(wrap.ID, func() {
			core.Set(ctx, core.ID("fill"), widgets.Rectangle, widgets.RectangleProps{Color: graphics.ColorWhite})
		})
	})

	if got := tester.Find(coattest.ByName("fill")).Size(); got != (graphics.Size{}) {
		t.Errorf("expected zero size under unbounded constraints, got %+v", got)
	}
	if got := tester.DisplayList().Len(); got != 0 {
		t.Errorf("expected nothing drawn, got %d ops", got)
	}
}
