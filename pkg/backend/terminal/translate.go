package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/input"
)

// trackedButtons are the tcell buttons reported as mouse input. Wheel
// motion has no canonical event and is dropped.
var trackedButtons = []struct {
	mask   tcell.ButtonMask
	button input.MouseButton
}{
	{tcell.Button1, input.MouseLeft},
	{tcell.Button3, input.MouseMiddle},
	{tcell.Button2, input.MouseRight},
}

var keyMap = map[tcell.Key]input.Key{
	tcell.KeyBackspace:  input.KeyBackspace,
	tcell.KeyBackspace2: input.KeyBackspace,
	tcell.KeyDelete:     input.KeyDelete,
	tcell.KeyLeft:       input.KeyLeft,
	tcell.KeyRight:      input.KeyRight,
	tcell.KeyUp:         input.KeyUp,
	tcell.KeyDown:       input.KeyDown,
	tcell.KeyHome:       input.KeyHome,
	tcell.KeyEnd:        input.KeyEnd,
	tcell.KeyEnter:      input.KeyEnter,
	tcell.KeyEscape:     input.KeyEscape,
	tcell.KeyTab:        input.KeyTab,
}

// translator turns tcell events into canonical events. tcell reports the
// whole button state with every mouse event, so presses and releases are
// derived from the change against the previous state, at the last cursor
// position.
type translator struct {
	cursor  graphics.Offset
	buttons tcell.ButtonMask
	moved   bool
}

func (t *translator) translate(ev tcell.Event) []input.Event {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		return t.mouse(ev)
	case *tcell.EventKey:
		return key(ev)
	}
	return nil
}

func (t *translator) mouse(ev *tcell.EventMouse) []input.Event {
	var out []input.Event
	x, y := ev.Position()
	pos := graphics.Offset{X: float64(x), Y: float64(y)}
	if !t.moved || pos != t.cursor {
		t.cursor, t.moved = pos, true
		out = append(out, input.CursorMoved{Position: pos})
	}

	buttons := ev.Buttons()
	for _, b := range trackedButtons {
		was, is := t.buttons&b.mask != 0, buttons&b.mask != 0
		if was != is {
			out = append(out, input.MouseInput{Position: t.cursor, Button: b.button, Pressed: is})
		}
	}
	t.buttons = buttons
	return out
}

// key reports a press and, since terminals never send releases, an
// immediate release. Printable keys become character input.
func key(ev *tcell.EventKey) []input.Event {
	if ev.Key() == tcell.KeyRune {
		return []input.Event{input.CharacterInput{Char: ev.Rune()}}
	}
	k, ok := keyMap[ev.Key()]
	if !ok {
		k = input.KeyUnknown
	}
	mods := modifiers(ev.Modifiers())
	press := input.Keyboard{Scancode: uint32(ev.Key()), Key: k, Pressed: true, Modifiers: mods}
	release := press
	release.Pressed = false
	return []input.Event{press, release}
}

func modifiers(m tcell.ModMask) input.Modifiers {
	return input.Modifiers{
		Shift: m&tcell.ModShift != 0,
		Ctrl:  m&tcell.ModCtrl != 0,
		Alt:   m&tcell.ModAlt != 0,
		Logo:  m&tcell.ModMeta != 0,
	}
}
