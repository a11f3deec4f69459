package text

import (
	"testing"

	"github.com/go-coat/coat/pkg/input"
)

func press(k input.Key) Update {
	return Key{Event: input.Keyboard{Key: k, Pressed: true}}
}

func TestBuffer_Edits(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		updates    []Update
		wantText   string
		wantCursor int
	}{
		{"insert at end", "ab", []Update{Insert{'c'}}, "abc", 3},
		{"backspace", "abc", []Update{press(input.KeyBackspace)}, "ab", 2},
		{"backspace at start", "abc", []Update{press(input.KeyHome), press(input.KeyBackspace)}, "abc", 0},
		{"delete forward", "abc", []Update{press(input.KeyLeft), press(input.KeyDelete)}, "ab", 2},
		{"delete at end", "abc", []Update{press(input.KeyDelete)}, "abc", 3},
		{"insert in middle", "ac", []Update{press(input.KeyLeft), Insert{'b'}}, "abc", 2},
		{"right clamps", "a", []Update{press(input.KeyRight), press(input.KeyRight)}, "a", 1},
		{"release ignored", "ab", []Update{Key{Event: input.Keyboard{Key: input.KeyBackspace}}}, "ab", 2},
		{"click moves cursor", "abc", []Update{Click{Pressed: true, Position: 1}}, "abc", 1},
		{"click release ignored", "abc", []Update{Click{Position: 0}}, "abc", 3},
		{"multibyte", "héllo", []Update{press(input.KeyHome), press(input.KeyRight), press(input.KeyDelete)}, "hllo", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(tt.initial)
			for _, u := range tt.updates {
				b.Apply(u)
			}
			if got := b.Text(); got != tt.wantText {
				t.Errorf("Text() = %q, want %q", got, tt.wantText)
			}
			if got := b.Cursor(); got != tt.wantCursor {
				t.Errorf("Cursor() = %d, want %d", got, tt.wantCursor)
			}
		})
	}
}

func TestBuffer_MoveCursorClamps(t *testing.T) {
	b := NewBuffer("abc")
	b.MoveCursor(-4)
	if b.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", b.Cursor())
	}
	b.MoveCursor(10)
	if b.Cursor() != 3 {
		t.Errorf("expected cursor 3, got %d", b.Cursor())
	}
}

func TestEventFilter(t *testing.T) {
	if !EventFilter(input.Keyboard{Key: input.KeyBackspace}) {
		t.Error("expected Backspace to pass the filter")
	}
	if EventFilter(input.Keyboard{Key: input.KeyEnter}) {
		t.Error("expected Enter to be rejected")
	}
}
