package widgets_test

import (
	"slices"
	"testing"

	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/input"
	"github.com/go-coat/coat/pkg/layout"
	coattest "github.com/go-coat/coat/pkg/testing"
	"github.com/go-coat/coat/pkg/widgets"
)

// touchScene lays a 100x50 touch area at the origin and logs its events.
func touchScene(ctx *core.ViewContext[string]) {
	wrap := core.Set(ctx, core.ID("wrap"), probeKind, within(layout.Loose(graphics.Size{Width: 100, Height: 50})))
	ctx.Add(wrap.ID, func() {
		area := core.Set(ctx, core.ID("area"), widgets.TouchArea, widgets.TouchAreaProps{})
		ctx.Add(area.ID, func() {
			core.Set(ctx, core.ID("fill"), widgets.Rectangle, widgets.RectangleProps{Color: graphics.ColorWhite})
		})
		core.MapEvents(ctx, area, func(e widgets.TouchAreaEvent) (string, bool) {
			return e.String(), true
		})
	})
}

func TestTouchArea_Sequences(t *testing.T) {
	inside := graphics.Offset{X: 10, Y: 10}
	outside := graphics.Offset{X: 10, Y: 200}

	tests := []struct {
		name    string
		gesture func(tester *coattest.Tester)
		want    []string
	}{
		{"click inside", func(tester *coattest.Tester) { tester.TapAt(inside) },
			[]string{"Pressed(Left)", "Released(Left)", "Activated(Left)"}},
		{"release anywhere", func(tester *coattest.Tester) {
			tester.PressAt(inside)
			tester.MoveTo(outside)
			tester.ReleaseAt(outside)
		}, []string{"Pressed(Left)", "Released(Left)", "Activated(Left)"}},
		{"press outside", func(tester *coattest.Tester) {
			tester.PressAt(outside)
			tester.ReleaseAt(inside)
		}, []string{"Released(Left)"}},
		{"release outside without press", func(tester *coattest.Tester) { tester.ReleaseAt(outside) }, nil},
		{"hover", func(tester *coattest.Tester) {
			tester.MoveTo(inside)
			tester.MoveTo(graphics.Offset{X: 20, Y: 10})
			tester.MoveTo(outside)
		}, []string{"Entered", "Moved(10, 10)", "Moved(20, 10)", "Exited"}},
		{"touch", func(tester *coattest.Tester) { tester.TouchAt(inside) },
			[]string{"Pressed(Left)", "Released(Left)", "Activated(Left)"}},
		{"touch cancelled", func(tester *coattest.Tester) {
			tester.Frame(
				input.Touch{Position: inside, Phase: input.TouchStarted, ID: 7},
				input.Touch{Position: inside, Phase: input.TouchCancelled, ID: 7},
			)
			tester.ReleaseAt(outside)
		}, []string{"Pressed(Left)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tester, log := pump(t, touchScene)
			tt.gesture(tester)
			if !slices.Equal(*log, tt.want) {
				t.Errorf("expected events %v, got %v", tt.want, *log)
			}
		})
	}
}

func TestTouchArea_SizesToContent(t *testing.T) {
	tester, _ := pump(t, touchScene)
	assertBounds(t, tester, "area", rect(0, 0, 100, 50))
}

func TestTouchArea_OccludedByLaterSibling(t *testing.T) {
	tester, log := pump(t, func(ctx *core.ViewContext[string]) {
		stack := core.Set(ctx, core.ID("stack"), widgets.Stack, widgets.StackProps{})
		ctx.Add(stack.ID, func() {
			for _, name := range []string{"below", "above"} {
				area := core.Set(ctx, core.ID(name), widgets.TouchArea, widgets.TouchAreaProps{})
				ctx.Add(area.ID, func() {
					core.Set(ctx, core.ID("fill"), widgets.Rectangle, widgets.RectangleProps{Color: graphics.ColorWhite})
				})
				core.MapEvents(ctx, area, func(e widgets.TouchAreaEvent) (string, bool) {
					return name + ":" + e.String(), e.Kind == widgets.TouchActivated
				})
			}
		})
	})

	tester.TapAt(graphics.Offset{X: 5, Y: 5})
	if want := []string{"above:Activated(Left)"}; !slices.Equal(*log, want) {
		t.Errorf("expected only the top area to activate, got %v", *log)
	}
}
