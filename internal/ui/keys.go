package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gitpeek/internal/pager"
)

// keyMap defines all keyboard bindings for the pager.
type keyMap struct {
	// Global
	Quit      key.Binding
	Escape    key.Binding
	Interrupt key.Binding
	Help      key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Search
	Search    key.Binding
	NextMatch key.Binding
	PrevMatch key.Binding
	Confirm   key.Binding

	// Query editing
	Backspace  key.Binding
	Delete     key.Binding
	Left       key.Binding
	Right      key.Binding
	Home       key.Binding
	End        key.Binding
	DeleteWord key.Binding
	ClearLine  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Exit now"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Line up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Line down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup/b", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " ", "f"),
			key.WithHelp("pgdn/space", "Page down"),
		),

		// Search
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "Previous match"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),

		// Query editing
		Backspace:  key.NewBinding(key.WithKeys("backspace")),
		Delete:     key.NewBinding(key.WithKeys("delete")),
		Left:       key.NewBinding(key.WithKeys("left")),
		Right:      key.NewBinding(key.WithKeys("right")),
		Home:       key.NewBinding(key.WithKeys("home", "ctrl+a")),
		End:        key.NewBinding(key.WithKeys("end", "ctrl+e")),
		DeleteWord: key.NewBinding(key.WithKeys("ctrl+w", "alt+backspace")),
		ClearLine:  key.NewBinding(key.WithKeys("ctrl+u")),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.PageDown, k.Search, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Down, k.Up, k.PageDown, k.PageUp},
		// Search
		{k.Search, k.Confirm, k.NextMatch, k.PrevMatch},
		// General
		{k.Escape, k.Help, k.Quit, k.Interrupt},
	}
}

// modeHelp returns the footer bindings relevant to mode.
func (k keyMap) modeHelp(mode pager.Mode) []key.Binding {
	switch mode.(type) {
	case pager.Editing:
		return []key.Binding{k.Confirm, k.Escape}
	case pager.Active:
		return []key.Binding{k.NextMatch, k.PrevMatch, k.Search, k.Escape}
	default:
		return k.ShortHelp()
	}
}

// bindings maps key bindings to engine key codes, checked in order.
func (k keyMap) bindings() []struct {
	binding key.Binding
	code    pager.KeyCode
} {
	return []struct {
		binding key.Binding
		code    pager.KeyCode
	}{
		{k.Interrupt, pager.KeyInterrupt},
		{k.Quit, pager.KeyQuit},
		{k.Escape, pager.KeyEscape},
		{k.Confirm, pager.KeyEnter},
		{k.Up, pager.KeyUp},
		{k.Down, pager.KeyDown},
		{k.PageUp, pager.KeyPageUp},
		{k.PageDown, pager.KeyPageDown},
		{k.Search, pager.KeySearch},
		{k.NextMatch, pager.KeyNext},
		{k.PrevMatch, pager.KeyPrev},
		{k.Backspace, pager.KeyBackspace},
		{k.Delete, pager.KeyDelete},
		{k.Left, pager.KeyLeft},
		{k.Right, pager.KeyRight},
		{k.Home, pager.KeyHome},
		{k.End, pager.KeyEnd},
		{k.DeleteWord, pager.KeyDeleteWord},
		{k.ClearLine, pager.KeyClearLine},
	}
}

// translate converts a terminal key message into engine keys. Most
// messages yield one key; a paste yields one rune key per character.
func (k keyMap) translate(msg tea.KeyMsg) []pager.Key {
	if msg.Paste || len(msg.Runes) > 1 {
		keys := make([]pager.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, pager.RuneKey(r))
		}
		return keys
	}

	r := keyRune(msg)
	for _, b := range k.bindings() {
		if key.Matches(msg, b.binding) {
			return []pager.Key{{Code: b.code, Rune: r}}
		}
	}
	if r != 0 {
		return []pager.Key{pager.RuneKey(r)}
	}
	return []pager.Key{{Code: pager.KeyOther}}
}

// keyRune returns the printable character typed by msg, or zero.
func keyRune(msg tea.KeyMsg) rune {
	if msg.Alt || len(msg.Runes) != 1 {
		return 0
	}
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		return msg.Runes[0]
	}
	return 0
}
