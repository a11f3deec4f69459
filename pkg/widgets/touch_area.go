package widgets

import (
	"fmt"

	"github.com/go-coat/coat/pkg/core"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/input"
)

// TouchKind identifies a [TouchAreaEvent].
type TouchKind int

const (
	// TouchPressed is emitted when a button goes down inside the area.
	TouchPressed TouchKind = iota
	// TouchReleased is emitted when a button goes up inside the area, or
	// anywhere while the area is pressed.
	TouchReleased
	// TouchActivated follows TouchReleased when the press started inside
	// the area. It is the click.
	TouchActivated
	// TouchEntered is emitted when the pointer moves into the area.
	TouchEntered
	// TouchMoved is emitted for every pointer move inside the area.
	TouchMoved
	// TouchExited is emitted when the pointer leaves the area or another
	// component takes a pointer event inside it.
	TouchExited
)

var touchKindNames = [...]string{"Pressed", "Released", "Activated", "Entered", "Moved", "Exited"}

func (k TouchKind) String() string {
	if k >= 0 && int(k) < len(touchKindNames) {
		return touchKindNames[k]
	}
	return fmt.Sprintf("TouchKind(%d)", int(k))
}

// TouchAreaEvent is emitted by a [TouchArea].
type TouchAreaEvent struct {
	Kind TouchKind
	// Button is set for Pressed, Released and Activated.
	Button input.MouseButton
	// Position is set for Moved, in absolute coordinates.
	Position graphics.Offset
}

func (e TouchAreaEvent) String() string {
	switch e.Kind {
	case TouchPressed, TouchReleased, TouchActivated:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Button)
	case TouchMoved:
		return fmt.Sprintf("Moved(%g, %g)", e.Position.X, e.Position.Y)
	}
	return e.Kind.String()
}

// TouchAreaProps configures a [TouchArea]. It has no options.
type TouchAreaProps struct{}

type touchAreaState struct {
	pressed bool
	inside  bool
}

type touchMsgKind int

const (
	touchPress touchMsgKind = iota
	touchRelease
	touchHover
	touchLeave
	touchCancel
)

type touchAreaMsg struct {
	kind     touchMsgKind
	button   input.MouseButton
	position graphics.Offset
}

type touchArea struct {
	core.Base[TouchAreaProps, touchAreaState, touchAreaMsg, TouchAreaEvent]
}

// TouchArea turns pointer and touch input over its bounds into hover and
// click events. It takes the size of its content.
//
// A click needs a press inside the area; the release may happen anywhere.
var TouchArea = core.Define[TouchAreaProps, touchAreaState, touchAreaMsg, TouchAreaEvent]("TouchArea", touchArea{})

func (touchArea) Init(TouchAreaProps) touchAreaState { return touchAreaState{} }

func (touchArea) Update(msg touchAreaMsg, s core.Mut[touchAreaState], ctx *core.UpdateContext[TouchAreaEvent]) {
	switch msg.kind {
	case touchPress:
		s.Mutate().pressed = true
		ctx.Emit(TouchAreaEvent{Kind: TouchPressed, Button: msg.button})
	case touchRelease:
		ctx.Emit(TouchAreaEvent{Kind: TouchReleased, Button: msg.button})
		if s.Get().pressed {
			s.Mutate().pressed = false
			ctx.Emit(TouchAreaEvent{Kind: TouchActivated, Button: msg.button})
		}
	case touchHover:
		if !s.Get().inside {
			s.Mutate().inside = true
			ctx.Emit(TouchAreaEvent{Kind: TouchEntered})
		}
		ctx.Emit(TouchAreaEvent{Kind: TouchMoved, Position: msg.position})
	case touchLeave:
		if s.Get().inside {
			s.Mutate().inside = false
			ctx.Emit(TouchAreaEvent{Kind: TouchExited})
		}
	case touchCancel:
		if s.Get().pressed {
			s.Mutate().pressed = false
		}
	}
}

func (touchArea) Input(s *touchAreaState, ctx *core.InputContext[touchAreaMsg]) {
	bounds := ctx.Bounds()
	// Track the state the queued messages will produce so several events in
	// one batch are judged consistently.
	pressed, inside := s.pressed, s.inside
	leave := func() {
		if inside {
			inside = false
			ctx.Send(touchAreaMsg{kind: touchLeave})
		}
	}

	for ev := range ctx.Consumed() {
		if pos, ok := input.PositionOf(ev); ok && bounds.Contains(pos) {
			// Something above this area took the event.
			leave()
		}
	}

	for p := range ctx.Fresh() {
		switch ev := p.Event().(type) {
		case input.MouseInput:
			hit := bounds.Contains(ev.Position)
			switch {
			case ev.Pressed && hit:
				pressed = true
				ctx.Send(touchAreaMsg{kind: touchPress, button: ev.Button})
				p.Consume()
			case !ev.Pressed && (hit || pressed):
				pressed = false
				ctx.Send(touchAreaMsg{kind: touchRelease, button: ev.Button})
				if hit {
					p.Consume()
				}
			}
		case input.CursorMoved:
			if bounds.Contains(ev.Position) {
				inside = true
				ctx.Send(touchAreaMsg{kind: touchHover, position: ev.Position})
				p.Consume()
			} else {
				leave()
			}
		case input.Touch:
			hit := bounds.Contains(ev.Position)
			switch ev.Phase {
			case input.TouchStarted:
				if hit {
					pressed = true
					ctx.Send(touchAreaMsg{kind: touchPress, button: input.MouseLeft})
					p.Consume()
				}
			case input.TouchMoved:
				if hit {
					inside = true
					ctx.Send(touchAreaMsg{kind: touchHover, position: ev.Position})
					p.Consume()
				} else {
					leave()
				}
			case input.TouchEnded:
				if hit || pressed {
					pressed = false
					ctx.Send(touchAreaMsg{kind: touchRelease, button: input.MouseLeft})
					if hit {
						p.Consume()
					}
				}
				leave()
			case input.TouchCancelled:
				if pressed {
					pressed = false
					ctx.Send(touchAreaMsg{kind: touchCancel})
				}
				leave()
			}
		}
	}
}
