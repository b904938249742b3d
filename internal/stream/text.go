package stream

import "unicode/utf16"

// Text is a Stream over the UTF-16 code units of a string.
type Text struct {
	units []uint16
	pos   Position
	marks []Position
}

// NewText creates a stream positioned at the start of s.
// Runes outside the 16-bit range become surrogate pairs, i.e. two units.
func NewText(s string) *Text {
	return &Text{
		units: utf16.Encode([]rune(s)),
		pos:   Position{Index: 0, Line: 1, Column: 1},
	}
}

func (t *Text) Position() Position {
	return t.pos
}

func (t *Text) HasMore() bool {
	return t.pos.Index < len(t.units)
}

func (t *Text) Next() rune {
	if !t.HasMore() {
		return 0
	}
	c := rune(t.units[t.pos.Index])
	t.pos.Index++
	switch c {
	case '\n':
		t.pos.Line++
		t.pos.Column = 1
	case '\r':
		// carriage return holds the column
	default:
		t.pos.Column++
	}
	return c
}

func (t *Text) Mark() {
	t.marks = append(t.marks, t.pos)
}

func (t *Text) Unmark() {
	if len(t.marks) == 0 {
		panic("golex: unmark on an empty mark stack")
	}
	t.marks = t.marks[:len(t.marks)-1]
}

func (t *Text) Reset() {
	if len(t.marks) == 0 {
		panic("golex: reset on an empty mark stack")
	}
	t.pos = t.marks[len(t.marks)-1]
	t.marks = t.marks[:len(t.marks)-1]
}

// MarkDepth returns the number of outstanding marks. Scanners must leave
// the stream at the depth they found it.
func (t *Text) MarkDepth() int {
	return len(t.marks)
}
