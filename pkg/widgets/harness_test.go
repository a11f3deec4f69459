package widgets_test

import (
	"testing"
	"unicode/utf8"

	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/layout"
	coattest "github.com/go-coat/coat/pkg/testing"
	"github.com/go-coat/coat/pkg/text"
)

type layoutFunc func(children []core.Cid, c layout.Constraints, ctx *core.LayoutContext) graphics.Size

// probeProps describe a scriptable test component. Messages it receives are
// appended to log.
type probeProps struct {
	view   func(ctx *core.ViewContext[string])
	layout layoutFunc
	log    *[]string
}

type probeState struct {
	props probeProps
}

type probe struct {
	core.Base[probeProps, probeState, string, core.None]
}

var probeKind = core.Define[probeProps, probeState, string, core.None]("Probe", probe{})

func (probe) Init(p probeProps) probeState { return probeState{props: p} }

func (probe) DeriveState(p probeProps, s *probeState) { s.props = p }

func (probe) Update(msg string, s core.Mut[probeState], _ *core.UpdateContext[core.None]) {
	if log := s.Get().props.log; log != nil {
		*log = append(*log, msg)
	}
}

func (probe) View(p probeProps, _ *probeState, ctx *core.ViewContext[string]) {
	if p.view != nil {
		p.view(ctx)
	}
}

func (probe) Layout(s *probeState, children []core.Cid, c layout.Constraints, ctx *core.LayoutContext) graphics.Size {
	if s.props.layout != nil {
		return s.props.layout(children, c, ctx)
	}
	return core.DefaultLayout(children, c, ctx)
}

// fixed reports size regardless of constraints. The caller clamps it.
func fixed(width, height float64) probeProps {
	return probeProps{layout: func([]core.Cid, layout.Constraints, *core.LayoutContext) graphics.Size {
		return graphics.Size{Width: width, Height: height}
	}}
}

// within offers c to every child and takes the size of the last one.
func within(c layout.Constraints) probeProps {
	return probeProps{layout: func(children []core.Cid, _ layout.Constraints, ctx *core.LayoutContext) graphics.Size {
		var size graphics.Size
		for _, child := range children {
			size = ctx.Size(child, c)
		}
		return size
	}}
}

// recording returns a leaf that stores the constraints it is offered.
func recording(got *layout.Constraints, size graphics.Size) probeProps {
	return probeProps{layout: func(_ []core.Cid, c layout.Constraints, _ *core.LayoutContext) graphics.Size {
		*got = c
		return size
	}}
}

func pump(t *testing.T, view func(ctx *core.ViewContext[string])) (*coattest.Tester, *[]string) {
	t.Helper()
	log := &[]string{}
	tester := coattest.NewTesterWithT(t)
	tester.Pump(core.Mount(probeKind, probeProps{view: view, log: log}))
	return tester, log
}

func assertBounds(t *testing.T, tester *coattest.Tester, name string, want graphics.Rect) {
	t.Helper()
	result := tester.Find(coattest.ByName(name))
	if !result.Exists() {
		t.Fatalf("no node named %q", name)
	}
	if got := result.Bounds(); got != want {
		t.Errorf("%s: expected bounds %+v, got %+v", name, want, got)
	}
}

func rect(x, y, w, h float64) graphics.Rect {
	return graphics.Rect{Origin: graphics.Offset{X: x, Y: y}, Size: graphics.Size{Width: w, Height: h}}
}

// monoShaper lays every rune out in a fixed cell.
type monoShaper struct{}

const (
	cellWidth  = 8
	cellHeight = 16
)

func (monoShaper) Layout(s string, f text.Font, size float64) text.TextLayout {
	l := text.TextLayout{
		Text:   s,
		Font:   graphics.FontInstance{Family: f.Family, Size: size},
		Ascent: cellHeight * 0.75,
	}
	x := 0.0
	for i, r := range s {
		l.Glyphs = append(l.Glyphs, text.LayoutGlyph{
			Index:   uint32(r),
			Rune:    r,
			Bounds:  rect(x, 0, cellWidth, cellHeight),
			Advance: cellWidth,
			Cluster: i,
		})
		x += cellWidth
	}
	l.Size = graphics.Size{Width: float64(utf8.RuneCountInString(s)) * cellWidth, Height: cellHeight}
	l.Descent = cellHeight - l.Ascent
	return l
}
