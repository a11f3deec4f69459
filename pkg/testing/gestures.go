package testing

import (
	"fmt"

	"github.com/go-coat/coat/pkg/engine"
	"github.com/go-coat/coat/pkg/graphics"
	"github.com/go-coat/coat/pkg/input"
)

// nextTouchID is incremented for each new touch contact to avoid collisions.
var nextTouchID uint64

func allocTouchID() uint64 {
	nextTouchID++
	return nextTouchID
}

// Tap presses and releases the left button at the center of the first node
// matched by finder, in one frame.
func (t *Tester) Tap(finder Finder) (engine.FrameResult, error) {
	center, err := t.centerOf("Tap", finder)
	if err != nil {
		return engine.FrameResult{}, err
	}
	return t.TapAt(center), nil
}

// TapAt presses and releases the left button at pos, in one frame.
func (t *Tester) TapAt(pos graphics.Offset) engine.FrameResult {
	return t.Frame(
		input.MouseInput{Position: pos, Button: input.MouseLeft, Pressed: true},
		input.MouseInput{Position: pos, Button: input.MouseLeft, Pressed: false},
	)
}

// PressAt presses the left button at pos.
func (t *Tester) PressAt(pos graphics.Offset) engine.FrameResult {
	return t.Frame(input.MouseInput{Position: pos, Button: input.MouseLeft, Pressed: true})
}

// ReleaseAt releases the left button at pos.
func (t *Tester) ReleaseAt(pos graphics.Offset) engine.FrameResult {
	return t.Frame(input.MouseInput{Position: pos, Button: input.MouseLeft, Pressed: false})
}

// MoveTo moves the pointer to pos.
func (t *Tester) MoveTo(pos graphics.Offset) engine.FrameResult {
	return t.Frame(input.CursorMoved{Position: pos})
}

// Hover moves the pointer to the center of the first node matched by finder.
func (t *Tester) Hover(finder Finder) (engine.FrameResult, error) {
	center, err := t.centerOf("Hover", finder)
	if err != nil {
		return engine.FrameResult{}, err
	}
	return t.MoveTo(center), nil
}

// TouchAt starts and ends a touch contact at pos, in one frame.
func (t *Tester) TouchAt(pos graphics.Offset) engine.FrameResult {
	id := allocTouchID()
	return t.Frame(
		input.Touch{Position: pos, Phase: input.TouchStarted, ID: id},
		input.Touch{Position: pos, Phase: input.TouchEnded, ID: id},
	)
}

// Type delivers text as character input, in one frame.
func (t *Tester) Type(text string) engine.FrameResult {
	events := make([]input.Event, 0, len(text))
	for _, r := range text {
		events = append(events, input.CharacterInput{Char: r})
	}
	return t.Frame(events...)
}

// PressKey presses and releases key, in one frame.
func (t *Tester) PressKey(key input.Key) engine.FrameResult {
	return t.Frame(
		input.Keyboard{Key: key, Pressed: true},
		input.Keyboard{Key: key, Pressed: false},
	)
}

func (t *Tester) centerOf(op string, finder Finder) (graphics.Offset, error) {
	result := t.Find(finder)
	if !result.Exists() {
		return graphics.Offset{}, fmt.Errorf("%s: finder matched no nodes: %s", op, finder.Description())
	}
	b := result.Bounds()
	return graphics.Offset{
		X: b.Left() + b.Size.Width/2,
		Y: b.Top() + b.Size.Height/2,
	}, nil
}
