package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// diffColorizer colours unified-diff and git log lines with a chroma style.
type diffColorizer struct {
	lexer  chroma.Lexer
	style  *chroma.Style
	base   lipgloss.Style
	styles map[chroma.TokenType]lipgloss.Style
}

// newDiffColorizer returns nil when chroma has no diff lexer.
func newDiffColorizer(styleName string, base lipgloss.Style) *diffColorizer {
	lexer := lexers.Get("diff")
	if lexer == nil {
		return nil
	}
	return &diffColorizer{
		lexer:  chroma.Coalesce(lexer),
		style:  styles.Get(styleName),
		base:   base,
		styles: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// Render colours a single line. Lexing failures fall back to the base
// style.
func (d *diffColorizer) Render(line string) string {
	if line == "" {
		return ""
	}
	tokens, err := chroma.Tokenise(d.lexer, nil, line+"\n")
	if err != nil {
		return d.base.Render(line)
	}

	var b strings.Builder
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		text := strings.ReplaceAll(tok.Value, "\n", "")
		if text == "" {
			continue
		}
		b.WriteString(d.styleFor(tok.Type).Render(text))
	}
	return b.String()
}

func (d *diffColorizer) styleFor(tt chroma.TokenType) lipgloss.Style {
	if st, ok := d.styles[tt]; ok {
		return st
	}
	st := d.base
	entry := d.style.Get(tt)
	if entry.Colour.IsSet() {
		st = st.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	d.styles[tt] = st
	return st
}
