package text

import (
	"testing"

	"github.com/go-coat/coat/pkg/graphics"
)

func TestFontManager_LayoutAdvances(t *testing.T) {
	m, err := NewFontManager()
	if err != nil {
		t.Fatalf("NewFontManager: %v", err)
	}
	l := m.Layout("Hello", Font{}, 16)
	if len(l.Glyphs) != 5 {
		t.Fatalf("expected 5 glyphs, got %d", len(l.Glyphs))
	}
	if l.Font.Family != DefaultFamily || l.Font.Size != 16 {
		t.Errorf("unexpected font instance %+v", l.Font)
	}
	if l.Size.Width <= 0 || l.Size.Height <= 0 {
		t.Errorf("expected positive size, got %+v", l.Size)
	}
	x := 0.0
	for i, g := range l.Glyphs {
		if g.Bounds.Left() < x {
			t.Errorf("glyph %d starts at %v, before previous pen %v", i, g.Bounds.Left(), x)
		}
		x = g.Bounds.Left()
	}
	last := l.Glyphs[len(l.Glyphs)-1]
	if got := last.Bounds.Left() + last.Advance; got != l.Size.Width {
		t.Errorf("expected width %v to end at last advance, got %v", l.Size.Width, got)
	}
}

func TestFontManager_UnknownFamilyFallsBack(t *testing.T) {
	m, err := NewFontManager()
	if err != nil {
		t.Fatalf("NewFontManager: %v", err)
	}
	l := m.Layout("a", Font{Family: "missing"}, 12)
	if l.Font.Family != DefaultFamily {
		t.Errorf("expected fallback to %q, got %q", DefaultFamily, l.Font.Family)
	}
}

func TestFontManager_BasicFace(t *testing.T) {
	m, err := NewFontManager()
	if err != nil {
		t.Fatalf("NewFontManager: %v", err)
	}
	l := m.Layout("abc", Font{Family: BasicFamily}, 13)
	// basicfont.Face7x13 advances 7 pixels per glyph.
	if l.Size.Width != 21 {
		t.Errorf("expected width 21, got %v", l.Size.Width)
	}
	if l.Glyphs[1].Index != 'b' {
		t.Errorf("expected rune index for basic face, got %d", l.Glyphs[1].Index)
	}
}

func TestFontManager_RegisterFontRejectsGarbage(t *testing.T) {
	m, err := NewFontManager()
	if err != nil {
		t.Fatalf("NewFontManager: %v", err)
	}
	if err := m.RegisterFont("junk", []byte("not a font")); err == nil {
		t.Error("expected parse error")
	}
	if err := m.RegisterFont("", nil); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestTextLayout_GlyphRunAndCaret(t *testing.T) {
	l := TextLayout{
		Font: graphics.FontInstance{Family: "cells", Size: 1},
		Glyphs: []LayoutGlyph{
			{Rune: 'a', Bounds: graphics.RectFromLTWH(0, 0, 1, 1), Advance: 1},
			{Rune: 'b', Bounds: graphics.RectFromLTWH(1, 0, 1, 1), Advance: 1},
		},
		Size: graphics.Size{Width: 2, Height: 1},
	}
	run := l.GlyphRun(graphics.Offset{X: 10, Y: 5}, graphics.ColorWhite, graphics.RectFromLTWH(10, 5, 2, 1))
	if got := run.Glyphs[1].Bounds.Origin; got != (graphics.Offset{X: 11, Y: 5}) {
		t.Errorf("expected second glyph at (11,5), got %+v", got)
	}
	if got := l.CaretX(1); got != 1 {
		t.Errorf("CaretX(1) = %v, want 1", got)
	}
	if got := l.CaretX(2); got != 2 {
		t.Errorf("CaretX(2) = %v, want 2", got)
	}
	if got := (TextLayout{}).CaretX(0); got != 0 {
		t.Errorf("empty CaretX = %v, want 0", got)
	}
}
