package terminal

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/input"
)

func at(x, y float64) graphics.Offset { return graphics.Offset{X: x, Y: y} }

func TestTranslator_Mouse(t *testing.T) {
	tests := []struct {
		name   string
		events []tcell.Event
		want   []input.Event
	}{
		{
			name:   "first event reports the cursor",
			events: []tcell.Event{tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone)},
			want:   []input.Event{input.CursorMoved{Position: at(0, 0)}},
		},
		{
			name: "click",
			events: []tcell.Event{
				tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModNone),
				tcell.NewEventMouse(3, 4, tcell.ButtonNone, tcell.ModNone),
			},
			want: []input.Event{
				input.CursorMoved{Position: at(3, 4)},
				input.MouseInput{Position: at(3, 4), Button: input.MouseLeft, Pressed: true},
				input.MouseInput{Position: at(3, 4), Button: input.MouseLeft, Pressed: false},
			},
		},
		{
			name: "drag keeps the button down",
			events: []tcell.Event{
				tcell.NewEventMouse(1, 1, tcell.Button2, tcell.ModNone),
				tcell.NewEventMouse(2, 1, tcell.Button2, tcell.ModNone),
				tcell.NewEventMouse(5, 1, tcell.ButtonNone, tcell.ModNone),
			},
			want: []input.Event{
				input.CursorMoved{Position: at(1, 1)},
				input.MouseInput{Position: at(1, 1), Button: input.MouseRight, Pressed: true},
				input.CursorMoved{Position: at(2, 1)},
				input.CursorMoved{Position: at(5, 1)},
				input.MouseInput{Position: at(5, 1), Button: input.MouseRight, Pressed: false},
			},
		},
		{
			name: "chord",
			events: []tcell.Event{
				tcell.NewEventMouse(0, 0, tcell.Button1|tcell.Button3, tcell.ModNone),
			},
			want: []input.Event{
				input.CursorMoved{Position: at(0, 0)},
				input.MouseInput{Position: at(0, 0), Button: input.MouseLeft, Pressed: true},
				input.MouseInput{Position: at(0, 0), Button: input.MouseMiddle, Pressed: true},
			},
		},
		{
			name: "wheel is dropped",
			events: []tcell.Event{
				tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone),
				tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone),
			},
			want: []input.Event{input.CursorMoved{Position: at(0, 0)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr translator
			var got []input.Event
			for _, ev := range tt.events {
				got = append(got, tr.translate(ev)...)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v\nwant %#v", got, tt.want)
			}
		})
	}
}

// tcell folds DEL into KeyBackspace on some versions, so the scancode is
// whatever the event reports.
func TestTranslator_Backspace2(t *testing.T) {
	ev := tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone)
	want := []input.Event{
		input.Keyboard{Scancode: uint32(ev.Key()), Key: input.KeyBackspace, Pressed: true},
		input.Keyboard{Scancode: uint32(ev.Key()), Key: input.KeyBackspace},
	}
	var tr translator
	if got := tr.translate(ev); !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v\nwant %#v", got, want)
	}
}

func TestTranslator_Keys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want []input.Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone),
			[]input.Event{input.CharacterInput{Char: 'é'}}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), []input.Event{
			input.Keyboard{Scancode: uint32(tcell.KeyBackspace), Key: input.KeyBackspace, Pressed: true},
			input.Keyboard{Scancode: uint32(tcell.KeyBackspace), Key: input.KeyBackspace},
		}},
		{"modifiers", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift|tcell.ModAlt), []input.Event{
			input.Keyboard{Scancode: uint32(tcell.KeyLeft), Key: input.KeyLeft, Pressed: true, Modifiers: input.Modifiers{Shift: true, Alt: true}},
			input.Keyboard{Scancode: uint32(tcell.KeyLeft), Key: input.KeyLeft, Modifiers: input.Modifiers{Shift: true, Alt: true}},
		}},
		{"unknown", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), []input.Event{
			input.Keyboard{Scancode: uint32(tcell.KeyF5), Key: input.KeyUnknown, Pressed: true},
			input.Keyboard{Scancode: uint32(tcell.KeyF5), Key: input.KeyUnknown},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr translator
			if got := tr.translate(tt.ev); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v\nwant %#v", got, tt.want)
			}
		})
	}
}

func TestTranslator_IgnoresOtherEvents(t *testing.T) {
	var tr translator
	if got := tr.translate(tcell.NewEventResize(10, 10)); got != nil {
		t.Errorf("expected resize to translate to nothing, got %v", got)
	}
}
