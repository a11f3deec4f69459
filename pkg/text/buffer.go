package text

import (
	"github.com/go-coat/coat/pkg/input"
)

// Buffer is an editable line of text with a cursor. The cursor counts runes,
// so it always sits on a character boundary.
type Buffer struct {
	text   []rune
	cursor int
}

// NewBuffer returns a buffer holding s with the cursor at the end.
func NewBuffer(s string) *Buffer {
	r := []rune(s)
	return &Buffer{text: r, cursor: len(r)}
}

// Text returns the buffer contents.
func (b *Buffer) Text() string {
	return string(b.text)
}

// Cursor returns the cursor position in runes.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int {
	return len(b.text)
}

// EventFilter selects the keyboard events a buffer knows how to apply.
func EventFilter(ev input.Keyboard) bool {
	switch ev.Key {
	case input.KeyBackspace, input.KeyDelete, input.KeyLeft, input.KeyRight, input.KeyHome, input.KeyEnd:
		return true
	}
	return false
}

// Update is an edit operation produced by a text input component.
type Update interface {
	isBufferUpdate()
}

// Insert inserts a character at the cursor.
type Insert struct {
	Char rune
}

// Key applies an editing key such as Backspace or Left.
type Key struct {
	Event input.Keyboard
}

// Click moves the cursor to a position on press.
type Click struct {
	Pressed  bool
	Position int
}

func (Insert) isBufferUpdate() {}
func (Key) isBufferUpdate()    {}
func (Click) isBufferUpdate()  {}

// Apply performs an edit.
func (b *Buffer) Apply(u Update) {
	switch u := u.(type) {
	case Insert:
		b.text = append(b.text, 0)
		copy(b.text[b.cursor+1:], b.text[b.cursor:])
		b.text[b.cursor] = u.Char
		b.cursor++
	case Key:
		if !u.Event.Pressed {
			return
		}
		switch u.Event.Key {
		case input.KeyBackspace:
			b.Delete(-1)
		case input.KeyDelete:
			b.Delete(1)
		case input.KeyLeft:
			b.MoveCursor(b.cursor - 1)
		case input.KeyRight:
			b.MoveCursor(b.cursor + 1)
		case input.KeyHome:
			b.MoveCursor(0)
		case input.KeyEnd:
			b.MoveCursor(len(b.text))
		}
	case Click:
		// Releases are ignored until the cursor becomes a selection range.
		if u.Pressed {
			b.MoveCursor(u.Position)
		}
	}
}

// MoveCursor sets the cursor, clamped to the buffer.
func (b *Buffer) MoveCursor(position int) {
	b.cursor = max(0, min(position, len(b.text)))
}

// Delete removes runes next to the cursor. A negative direction deletes
// before the cursor, a positive one after it.
func (b *Buffer) Delete(direction int) {
	if direction == 0 {
		return
	}
	start, end := b.cursor, b.cursor+direction
	if direction < 0 {
		start, end = end, b.cursor
	}
	start = max(0, min(start, len(b.text)))
	end = max(0, min(end, len(b.text)))
	b.text = append(b.text[:start], b.text[end:]...)
	b.cursor = start
}
