package input

import (
	"testing"

	"github.com/go-coat/coat/pkg/graphics"
)

func TestBatchConsumption(t *testing.T) {
	b := NewBatch(
		CursorMoved{Position: graphics.Offset{X: 1, Y: 1}},
		CharacterInput{Char: 'a'},
		CharacterInput{Char: 'b'},
	)

	for p := range b.Fresh() {
		if ch, ok := p.Event().(CharacterInput); ok && ch.Char == 'a' {
			p.Consume()
		}
	}

	var fresh []Event
	for p := range b.Fresh() {
		fresh = append(fresh, p.Event())
	}
	if len(fresh) != 2 {
		t.Fatalf("expected 2 fresh events, got %d", len(fresh))
	}

	var consumed []Event
	for e := range b.Consumed() {
		consumed = append(consumed, e)
	}
	if len(consumed) != 1 || consumed[0] != (CharacterInput{Char: 'a'}) {
		t.Errorf("expected consumed [a], got %v", consumed)
	}

	count := 0
	for range b.All() {
		count++
	}
	if count != 3 {
		t.Errorf("All() yielded %d events, want 3", count)
	}
}

func TestBatchClear(t *testing.T) {
	b := NewBatch(CharacterInput{Char: 'x'})
	b.Clear()
	if b.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", b.Len())
	}
}

func TestPositionOf(t *testing.T) {
	pos := graphics.Offset{X: 3, Y: 4}
	tests := []struct {
		event Event
		ok    bool
	}{
		{CursorMoved{Position: pos}, true},
		{MouseInput{Position: pos, Button: MouseLeft, Pressed: true}, true},
		{Touch{Position: pos, Phase: TouchStarted}, true},
		{Keyboard{Key: KeyLeft}, false},
		{CharacterInput{Char: 'q'}, false},
	}
	for _, tt := range tests {
		got, ok := PositionOf(tt.event)
		if ok != tt.ok {
			t.Errorf("PositionOf(%T) ok = %v, want %v", tt.event, ok, tt.ok)
		}
		if ok && got != pos {
			t.Errorf("PositionOf(%T) = %v, want %v", tt.event, got, pos)
		}
	}
}

func TestMouseButtonString(t *testing.T) {
	if got := MouseOther(2).String(); got != "Other(2)" {
		t.Errorf("MouseOther(2).String() = %q", got)
	}
	if got := MouseLeft.String(); got != "Left" {
		t.Errorf("MouseLeft.String() = %q", got)
	}
}
