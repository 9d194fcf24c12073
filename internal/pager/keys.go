package pager

// KeyCode is an abstract key the engine understands. Terminal libraries
// translate their own events into a Key.
type KeyCode int

const (
	KeyOther KeyCode = iota
	KeyQuit
	KeyEscape
	KeyEnter
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeySearch
	KeyNext
	KeyPrev
	KeyRune
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyDeleteWord
	KeyClearLine
	KeyInterrupt
)

var keyNames = map[KeyCode]string{
	KeyOther:      "other",
	KeyQuit:       "quit",
	KeyEscape:     "escape",
	KeyEnter:      "enter",
	KeyUp:         "up",
	KeyDown:       "down",
	KeyPageUp:     "page-up",
	KeyPageDown:   "page-down",
	KeySearch:     "search",
	KeyNext:       "next",
	KeyPrev:       "prev",
	KeyRune:       "rune",
	KeyBackspace:  "backspace",
	KeyDelete:     "delete",
	KeyLeft:       "left",
	KeyRight:      "right",
	KeyHome:       "home",
	KeyEnd:        "end",
	KeyDeleteWord: "delete-word",
	KeyClearLine:  "clear-line",
	KeyInterrupt:  "interrupt",
}

func (c KeyCode) String() string {
	if name, ok := keyNames[c]; ok {
		return name
	}
	return "unknown"
}

// Key is one key event. Rune carries the printable character that produced
// the event, if any, so a key bound to a command while paging (q, n, /)
// still types that character while a query is being edited.
type Key struct {
	Code KeyCode
	Rune rune
}

// RuneKey returns a printable-character key.
func RuneKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}
