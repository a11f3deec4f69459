package widgets

import (
	"fmt"
	"unicode"

	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/input"
)

// KeyKind identifies a [KeyAreaEvent].
type KeyKind int

const (
	// KeyFocus reports a focus change; Focused holds the new value.
	KeyFocus KeyKind = iota
	// KeyPressed carries a keyboard event accepted by the filter.
	KeyPressed
	// KeyText carries a typed character.
	KeyText
)

// KeyAreaEvent is emitted by a [KeyArea].
type KeyAreaEvent struct {
	Kind    KeyKind
	Focused bool
	Key     input.Keyboard
	Char    rune
}

func (e KeyAreaEvent) String() string {
	switch e.Kind {
	case KeyFocus:
		return fmt.Sprintf("Focus(%t)", e.Focused)
	case KeyPressed:
		return fmt.Sprintf("Key(%s)", e.Key.Key)
	default:
		return fmt.Sprintf("Text(%q)", e.Char)
	}
}

// KeyAreaProps configures a [KeyArea].
type KeyAreaProps struct {
	// Filter selects the keyboard events the area consumes while focused.
	// Events it rejects stay available to other components. A nil filter
	// accepts none.
	Filter func(input.Keyboard) bool
}

type keyAreaState struct {
	filter func(input.Keyboard) bool
}

type keyAreaMsg struct {
	kind  KeyKind
	focus bool
	key   input.Keyboard
	char  rune
}

type keyArea struct {
	core.Base[KeyAreaProps, keyAreaState, keyAreaMsg, KeyAreaEvent]
}

// KeyArea takes keyboard focus on any button or touch event inside it and,
// while focused, turns typed characters and filtered key events into events.
// Button or touch events outside the area release focus. It takes the size of its content.
var KeyArea = core.Define[KeyAreaProps, keyAreaState, keyAreaMsg, KeyAreaEvent]("KeyArea", keyArea{})

func (keyArea) Init(p KeyAreaProps) keyAreaState { return keyAreaState{filter: p.Filter} }

func (keyArea) DeriveState(p KeyAreaProps, s *keyAreaState) { s.filter = p.Filter }

func (keyArea) Update(msg keyAreaMsg, _ core.Mut[keyAreaState], ctx *core.UpdateContext[KeyAreaEvent]) {
	switch msg.kind {
	case KeyFocus:
		if msg.focus {
			ctx.AcquireFocus()
		} else {
			ctx.LoseFocus()
		}
		ctx.Emit(KeyAreaEvent{Kind: KeyFocus, Focused: msg.focus})
	case KeyPressed:
		ctx.Emit(KeyAreaEvent{Kind: KeyPressed, Key: msg.key})
	case KeyText:
		ctx.Emit(KeyAreaEvent{Kind: KeyText, Char: msg.char})
	}
}

func (keyArea) Input(s *keyAreaState, ctx *core.InputContext[keyAreaMsg]) {
	bounds := ctx.Bounds()
	focused := ctx.Focus() == core.FocusOwns
	wantFocus := focused

	for ev := range ctx.All() {
		var pos graphics.Offset
		switch ev := ev.(type) {
		case input.MouseInput:
			pos = ev.Position
		case input.Touch:
			pos = ev.Position
		default:
			continue
		}
		inside := bounds.Contains(pos)
		if inside && !wantFocus {
			wantFocus = true
			ctx.Send(keyAreaMsg{kind: KeyFocus, focus: true})
		} else if !inside && wantFocus {
			wantFocus = false
			ctx.Send(keyAreaMsg{kind: KeyFocus, focus: false})
		}
	}

	if !focused {
		return
	}
	for p := range ctx.Fresh() {
		switch ev := p.Event().(type) {
		case input.CharacterInput:
			if !unicode.IsControl(ev.Char) {
				ctx.Send(keyAreaMsg{kind: KeyText, char: ev.Char})
				p.Consume()
			}
		case input.Keyboard:
			if s.filter != nil && s.filter(ev) {
				ctx.Send(keyAreaMsg{kind: KeyPressed, key: ev})
				p.Consume()
			}
		}
	}
}
