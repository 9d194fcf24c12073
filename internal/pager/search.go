package pager

import (
	"fmt"
	"unicode/utf8"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Direction selects which way Search scans the store.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Span is a half-open byte range [Start, End) within a line.
type Span struct {
	Start int
	End   int
}

// Segment is a run of text that is either highlighted or plain.
type Segment struct {
	Text      string
	Highlight bool
}

type matcher struct {
	ac    ahocorasick.AhoCorasick
	empty bool
}

func newMatcher(term string) (m matcher, err error) {
	if !utf8.ValidString(term) {
		return matcher{}, fmt.Errorf("%w: term is not valid UTF-8", ErrSearchBuild)
	}
	if term == "" {
		return matcher{empty: true}, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSearchBuild, r)
		}
	}()
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
		DFA:                  true,
	})
	return matcher{ac: builder.Build([]string{term})}, nil
}

func (m matcher) matches(line string) bool {
	if m.empty {
		return true
	}
	return len(m.ac.FindAll(line)) > 0
}

func (m matcher) spans(line string) []Span {
	if m.empty {
		return nil
	}
	found := m.ac.FindAll(line)
	if len(found) == 0 {
		return nil
	}
	spans := make([]Span, 0, len(found))
	end := 0
	for _, match := range found {
		// A self-overlapping term can match again inside the last kept span.
		if match.Start() < end {
			continue
		}
		spans = append(spans, Span{Start: match.Start(), End: match.End()})
		end = match.End()
	}
	return spans
}

// Search returns the index of the first line containing term, matched
// ASCII case-insensitively, scanning from start in the given direction.
//
// Forward scans start through the last line. Backward scans the lines
// strictly above start, nearest first; a start past the end is treated as
// the store length. ok is false when nothing matches. An empty term
// matches every line in range.
func Search(term string, start int, lines []string, dir Direction) (idx int, ok bool, err error) {
	m, err := newMatcher(term)
	if err != nil {
		return 0, false, err
	}
	start = max(0, start)
	switch dir {
	case Backward:
		for i := min(start, len(lines)) - 1; i >= 0; i-- {
			if m.matches(lines[i]) {
				return i, true, nil
			}
		}
	default:
		for i := start; i < len(lines); i++ {
			if m.matches(lines[i]) {
				return i, true, nil
			}
		}
	}
	return 0, false, nil
}

// MatchSpans returns the ordered, disjoint byte ranges of term within line.
// An empty or unbuildable term yields no spans.
func MatchSpans(term, line string) []Span {
	m, err := newMatcher(term)
	if err != nil {
		return nil
	}
	return m.spans(line)
}

// Segments splits line into alternating plain and highlighted runs using
// spans, which must be ordered and disjoint. Empty plain runs are omitted.
func Segments(line string, spans []Span) []Segment {
	if len(spans) == 0 {
		if line == "" {
			return nil
		}
		return []Segment{{Text: line}}
	}
	segments := make([]Segment, 0, 2*len(spans)+1)
	cursor := 0
	for _, span := range spans {
		if span.Start < cursor || span.End > len(line) || span.Start >= span.End {
			continue
		}
		if span.Start > cursor {
			segments = append(segments, Segment{Text: line[cursor:span.Start]})
		}
		segments = append(segments, Segment{Text: line[span.Start:span.End], Highlight: true})
		cursor = span.End
	}
	if cursor < len(line) {
		segments = append(segments, Segment{Text: line[cursor:]})
	}
	return segments
}

// Highlighter splits lines around the matches of one term. Build it once
// and reuse it for every line of a frame.
type Highlighter struct {
	m  matcher
	ok bool
}

// NewHighlighter builds a Highlighter for term. An empty or unbuildable
// term highlights nothing.
func NewHighlighter(term string) Highlighter {
	m, err := newMatcher(term)
	if err != nil || m.empty {
		return Highlighter{}
	}
	return Highlighter{m: m, ok: true}
}

// Segments splits line into plain and highlighted runs.
func (h Highlighter) Segments(line string) []Segment {
	if !h.ok {
		return Segments(line, nil)
	}
	return Segments(line, h.m.spans(line))
}

// Highlight is MatchSpans followed by Segments.
func Highlight(term, line string) []Segment {
	return NewHighlighter(term).Segments(line)
}
