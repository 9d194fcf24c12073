package pager

import (
	"slices"
	"unicode"
)

// Query is an editable single-line search buffer. The cursor is a rune
// offset in [0, len].
type Query struct {
	runes  []rune
	cursor int
}

// NewQuery returns a buffer holding s with the cursor at the end.
func NewQuery(s string) Query {
	r := []rune(s)
	return Query{runes: r, cursor: len(r)}
}

// Value returns the buffer contents.
func (q Query) Value() string {
	return string(q.runes)
}

// Cursor returns the cursor position in runes.
func (q Query) Cursor() int {
	return q.cursor
}

// Empty reports whether the buffer has no text.
func (q Query) Empty() bool {
	return len(q.runes) == 0
}

// Apply edits the buffer according to k and reports whether the text
// changed. Keys carrying a rune insert it at the cursor.
func (q *Query) Apply(k Key) bool {
	if k.Rune != 0 && unicode.IsPrint(k.Rune) {
		q.runes = slices.Insert(slices.Clip(q.runes), q.cursor, k.Rune)
		q.cursor++
		return true
	}

	switch k.Code {
	case KeyBackspace:
		if q.cursor == 0 {
			return false
		}
		q.runes = slices.Delete(slices.Clone(q.runes), q.cursor-1, q.cursor)
		q.cursor--
		return true
	case KeyDelete:
		if q.cursor >= len(q.runes) {
			return false
		}
		q.runes = slices.Delete(slices.Clone(q.runes), q.cursor, q.cursor+1)
		return true
	case KeyLeft:
		q.cursor = max(0, q.cursor-1)
	case KeyRight:
		q.cursor = min(len(q.runes), q.cursor+1)
	case KeyHome:
		q.cursor = 0
	case KeyEnd:
		q.cursor = len(q.runes)
	case KeyDeleteWord:
		from := wordStart(q.runes, q.cursor)
		if from == q.cursor {
			return false
		}
		q.runes = slices.Delete(slices.Clone(q.runes), from, q.cursor)
		q.cursor = from
		return true
	case KeyClearLine:
		if q.cursor == 0 {
			return false
		}
		q.runes = slices.Delete(slices.Clone(q.runes), 0, q.cursor)
		q.cursor = 0
		return true
	}
	return false
}

// wordStart returns the start of the word before cursor, skipping any
// spaces directly before it.
func wordStart(runes []rune, cursor int) int {
	i := cursor
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
