package testing

import (
	"testing"

	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/testing/internal/testbed"
)

func TestFinders(t *testing.T) {
	tester := pumpCounter(t, 3)

	tests := []struct {
		name   string
		finder Finder
		want   int
	}{
		{"by name", ByName("add"), 1},
		{"by indexed name", ByName("dot[1]"), 1},
		{"by name shared", ByName("fill"), 4},
		{"by name missing", ByName("nope"), 0},
		{"by path", ByPath("/Counter/column/add"), 1},
		{"by path partial", ByPath("/Counter/add"), 0},
		{"by path suffix", ByPathSuffix("add/size/fill"), 1},
		{"by kind", ByKind("Rectangle"), 4},
		{"by kind root", ByKind("Counter"), 1},
		{"by predicate", ByPredicate(func(a *core.Arena, id core.Cid) bool {
			return len(a.Children(id)) > 1
		}), 1},
		{"descendant", Descendant(ByName("add"), ByKind("Rectangle")), 1},
		{"descendant excludes self", Descendant(ByName("column"), ByName("column")), 0},
		{"descendant missing ancestor", Descendant(ByName("nope"), ByKind("Rectangle")), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tester.Find(tt.finder)
			if result.Count() != tt.want {
				t.Errorf("%s: expected %d matches, got %d", tt.finder.Description(), tt.want, result.Count())
			}
			if result.Exists() != (tt.want > 0) {
				t.Errorf("Exists() = %v with %d matches", result.Exists(), result.Count())
			}
		})
	}
}

func TestFinders_PreOrder(t *testing.T) {
	tester := pumpCounter(t, 2)

	ids := tester.Find(ByKind("Constrained")).All()
	if len(ids) != 3 {
		t.Fatalf("expected 3 Constrained nodes, got %d", len(ids))
	}
	want := []string{"size", "dot[0]", "dot[1]"}
	for i, id := range ids {
		if got := tester.Arena().Name(id); got != want[i] {
			t.Errorf("match %d: expected %q, got %q", i, want[i], got)
		}
	}
}

func TestFinderResult_Geometry(t *testing.T) {
	tester := pumpCounter(t, 2)

	// The column keeps its cross axis tight, so the area spans the surface
	// while the button fill keeps its constrained size.
	add := tester.Find(ByName("add"))
	if got := add.Bounds(); got != (graphics.Rect{Size: graphics.Size{Width: DefaultTestWidth, Height: testbed.ButtonHeight}}) {
		t.Errorf("unexpected add bounds %+v", got)
	}
	if got := add.Path(); got != "/Counter/column/add" {
		t.Errorf("unexpected path %q", got)
	}
	button := tester.Find(ByPath("/Counter/column/add/size/fill"))
	if got := button.Size(); got != (graphics.Size{Width: testbed.ButtonWidth, Height: testbed.ButtonHeight}) {
		t.Errorf("unexpected button size %+v", got)
	}

	dot := tester.Find(ByName("dot[1]"))
	wantY := float64(testbed.ButtonHeight + testbed.DotSize + 2*testbed.Spacing)
	if got := dot.Position(); got != (graphics.Offset{Y: wantY}) {
		t.Errorf("expected dot[1] at y=%v, got %+v", wantY, got)
	}

	fill := tester.Find(Descendant(ByName("dot[1]"), ByName("fill")))
	if got := fill.Bounds(); got != (graphics.Rect{Origin: graphics.Offset{Y: wantY}, Size: graphics.Size{Width: testbed.DotSize, Height: testbed.DotSize}}) {
		t.Errorf("unexpected dot fill bounds %+v", got)
	}
}

func TestFinderResult_Accessors(t *testing.T) {
	tester := pumpCounter(t, 0)

	none := tester.Find(ByName("dot[0]"))
	if none.FirstOrNone() != core.NoCid {
		t.Error("expected FirstOrNone to return NoCid without matches")
	}

	fill := tester.Find(ByName("fill"))
	if fill.At(0) != fill.First() {
		t.Error("expected At(0) to equal First()")
	}

	assertPanics(t, "First", func() { none.First() })
	assertPanics(t, "At", func() { fill.At(1) })
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
