package graphics

import "testing"

func TestColorComponents(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		r     uint8
		g     uint8
		b     uint8
		a     uint8
	}{
		{"rgb", RGB(200, 40, 4), 200, 40, 4, 255},
		{"half alpha", RGBA(1, 2, 3, 0.5), 1, 2, 3, 128},
		{"float", RGBF(1, 0, 0.5), 255, 0, 128, 255},
		{"clamped", RGBAF(2, -1, 0, 1), 255, 0, 0, 255},
		{"with alpha", ColorWhite.WithAlpha(0), 255, 255, 255, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.color.Components()
			if r != tt.r || g != tt.g || b != tt.b || a != tt.a {
				t.Errorf("Components() = %d,%d,%d,%d, want %d,%d,%d,%d", r, g, b, a, tt.r, tt.g, tt.b, tt.a)
			}
		})
	}
	if ColorTransparent.Alpha() != 0 || ColorBlack.Alpha() != 1 {
		t.Error("unexpected alpha for the named colors")
	}
}

func TestRectContainsIsHalfOpen(t *testing.T) {
	r := RectFromLTWH(10, 20, 30, 40)
	tests := []struct {
		p    Offset
		want bool
	}{
		{Offset{X: 10, Y: 20}, true},
		{Offset{X: 39.9, Y: 59.9}, true},
		{Offset{X: 40, Y: 30}, false},
		{Offset{X: 20, Y: 60}, false},
		{Offset{X: 9.9, Y: 30}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRectIntersectAndTranslate(t *testing.T) {
	a := RectFromLTWH(0, 0, 10, 10)
	if got := a.Intersect(RectFromLTWH(5, 5, 10, 10)); got != RectFromLTWH(5, 5, 5, 5) {
		t.Errorf("Intersect = %v", got)
	}
	if got := a.Intersect(RectFromLTWH(20, 20, 1, 1)); got.Size != (Size{}) {
		t.Errorf("disjoint Intersect = %v, want empty", got)
	}
	if got := a.Translate(Offset{X: 3, Y: -2}); got.Origin != (Offset{X: 3, Y: -2}) || got.Size != a.Size {
		t.Errorf("Translate = %v", got)
	}
}

type recordingBuilder struct {
	calls []string
}

func (b *recordingBuilder) FillRect(Rect, Color) { b.calls = append(b.calls, "fill") }

func (b *recordingBuilder) DrawGlyphs(GlyphRun) { b.calls = append(b.calls, "glyphs") }

func TestDisplayList(t *testing.T) {
	list := NewDisplayList(Size{Width: 100, Height: 50})
	glyphs := []Glyph{{Rune: 'a'}}
	list.FillRect(RectFromLTWH(0, 0, 1, 1), ColorRed)
	list.DrawGlyphs(GlyphRun{Glyphs: glyphs})
	glyphs[0].Rune = 'z'

	if list.Len() != 2 || list.Size() != (Size{Width: 100, Height: 50}) {
		t.Fatalf("unexpected list %d ops, size %v", list.Len(), list.Size())
	}
	run := list.Ops()[1].(GlyphRunOp).Run
	if run.Glyphs[0].Rune != 'a' {
		t.Error("recorded glyphs must not alias the caller's slice")
	}

	var b recordingBuilder
	list.Replay(&b)
	if len(b.calls) != 2 || b.calls[0] != "fill" || b.calls[1] != "glyphs" {
		t.Errorf("Replay order = %v", b.calls)
	}

	list.Reset(Size{Width: 1, Height: 1})
	if list.Len() != 0 || list.Size().Width != 1 {
		t.Errorf("Reset left %d ops, size %v", list.Len(), list.Size())
	}
}
