// Package ui provides the terminal front end for gitpeek.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program wrapped around a pager.Engine. The engine
// holds every piece of pager state; the Model here only translates and
// draws:
//
//	tea.KeyMsg ──► keyMap.translate ──► pager.Key ──► Engine.HandleKey
//	tickMsg    ──► Engine.Poll (up to MaxBatchesPerTick)
//	                     │
//	                 Model.sync: computeLayout, SetViewportHeight, Frame
//	                     │
//	                 Model.View ──► context panel, lines, search box, footer
//
// # Package Structure
//
//   - app.go: Model, Update loop, tick scheduling and Run
//   - keys.go: bubbles/key bindings and translation to engine keys
//   - layout.go: row allocation and timing constants
//   - render.go: panel rendering with lipgloss and x/ansi truncation
//   - syntax.go: chroma-based colouring of diff lines
//   - theme.go: colour palettes (Nightfox, Kanagawa, Slate)
//   - help.go: full key help overlay
//
// # Layout
//
// Inside a one-cell margin, top to bottom:
//
//   - Context panel: the commit header enclosing the top visible line,
//     at most ContextMaxRows rows including its double bottom rule.
//   - Main pane: the visible window, search matches highlighted.
//   - Search box: SearchBoxRows rows titled "Search", only while searching.
//   - Footer: position, stream state and key help for the current mode.
//
// The context panel shrinks first so the main pane keeps MainMinRows rows
// when the terminal allows it. The main pane height is reported to the
// engine on every update so paging moves by exactly one screen.
//
// # Input
//
// Lines usually arrive on stdin, so keys are read from the controlling
// terminal (Options.InputTTY). Keys bound to commands while paging still
// carry their character, which lets the engine type them into a query.
//
// # Errors
//
// Engine errors end the program. The Model keeps the error and Run
// returns it after Bubble Tea has restored the terminal.
package ui
