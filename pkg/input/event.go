// Package input defines the canonical platform event set delivered to the
// input pass, and the per-frame batch that tracks which events were consumed.
//
// Windowing backends translate their native events into these types before
// handing a batch to the engine.
package input

import (
	"fmt"

	"github.com/go-coat/coat/pkg/graphics"
)

// Event is one of [CursorMoved], [MouseInput], [Touch], [Keyboard] or
// [CharacterInput].
type Event interface {
	isEvent()
}

// MouseButton identifies a pointer button.
type MouseButton uint16

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	mouseOtherBase
)

// MouseOther returns the button for an extra (non-standard) button index.
func MouseOther(n uint8) MouseButton {
	return mouseOtherBase + MouseButton(n)
}

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "Left"
	case MouseMiddle:
		return "Middle"
	case MouseRight:
		return "Right"
	default:
		return fmt.Sprintf("Other(%d)", int(b-mouseOtherBase))
	}
}

// TouchPhase is the stage of a touch contact.
type TouchPhase int

const (
	TouchStarted TouchPhase = iota
	TouchMoved
	TouchEnded
	TouchCancelled
)

func (p TouchPhase) String() string {
	switch p {
	case TouchStarted:
		return "started"
	case TouchMoved:
		return "moved"
	case TouchEnded:
		return "ended"
	case TouchCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("TouchPhase(%d)", int(p))
	}
}

// Modifiers is the state of the modifier keys during a keyboard event.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
	Logo  bool
}

// Key is a virtual key code. Only keys the runtime's widgets care about are
// named; everything else arrives as KeyUnknown with the raw scancode.
type Key int

const (
	KeyUnknown Key = iota
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyEnter
	KeyEscape
	KeyTab
)

var keyNames = map[Key]string{
	KeyUnknown:   "Unknown",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyEnter:     "Enter",
	KeyEscape:    "Escape",
	KeyTab:       "Tab",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// CursorMoved reports a new pointer position.
type CursorMoved struct {
	Position graphics.Offset
}

// MouseInput reports a button press or release at a position.
type MouseInput struct {
	Position graphics.Offset
	Button   MouseButton
	Pressed  bool
}

// Touch reports one phase of a touch contact.
type Touch struct {
	Position graphics.Offset
	Phase    TouchPhase
	ID       uint64
}

// Keyboard reports a physical key press or release.
type Keyboard struct {
	Scancode  uint32
	Key       Key
	Pressed   bool
	Modifiers Modifiers
}

// CharacterInput reports text produced by the keyboard.
type CharacterInput struct {
	Char rune
}

func (CursorMoved) isEvent()    {}
func (MouseInput) isEvent()     {}
func (Touch) isEvent()          {}
func (Keyboard) isEvent()       {}
func (CharacterInput) isEvent() {}

// PositionOf returns the position carried by pointer events
// (cursor, mouse and touch). Other events report false.
func PositionOf(e Event) (graphics.Offset, bool) {
	switch ev := e.(type) {
	case CursorMoved:
		return ev.Position, true
	case MouseInput:
		return ev.Position, true
	case Touch:
		return ev.Position, true
	default:
		return graphics.Offset{}, false
	}
}
