package ui

import "time"

// Frame geometry, in terminal rows.
const (
	// ContextMaxRows caps the context panel, bottom border included.
	ContextMaxRows = 7

	// MainMinRows is the main pane height the layout tries to keep.
	MainMinRows = 8

	// SearchBoxRows is the bordered search box height.
	SearchBoxRows = 3

	// FooterRows is the status line height.
	FooterRows = 1

	// FrameMargin is the blank border around the whole screen.
	FrameMargin = 1
)

// Streaming limits.
const (
	// MaxBatchesPerTick bounds how many queued batches one tick ingests.
	MaxBatchesPerTick = 64

	// DefaultTick is the default interval between stream polls.
	DefaultTick = 250 * time.Millisecond
)

// layout is the row allocation for one screen.
type layout struct {
	Width   int
	Context int
	Main    int
	Search  int
	Footer  int
}

// computeLayout splits a width×height screen. contextLines is the length
// of the current context block, zero for none. The context panel gives up
// rows before the main pane drops below MainMinRows.
func computeLayout(width, height, contextLines int, searching bool) layout {
	inner := max(0, height-2*FrameMargin)
	l := layout{Width: max(0, width-2*FrameMargin)}

	if inner > FooterRows {
		l.Footer = FooterRows
	}
	if searching && inner-l.Footer >= SearchBoxRows+1 {
		l.Search = SearchBoxRows
	}
	if contextLines > 0 {
		want := min(ContextMaxRows, contextLines+1)
		room := inner - l.Footer - l.Search - MainMinRows
		l.Context = max(0, min(want, room))
		if l.Context < 2 {
			l.Context = 0
		}
	}
	l.Main = max(1, inner-l.Footer-l.Search-l.Context)
	return l
}
