// Package pager is the streaming pager engine: scroll arithmetic, context
// detection, incremental search and the key-driven state machine.
//
// # Overview
//
// Engine owns a state.Store fed from a stream channel. The UI drives it:
//
//	Start (one bounded receive)
//	loop:
//	    Poll            non-blocking, appends at most one batch
//	    Frame           visible window, context block, highlight term
//	    render          reports the main pane height via SetViewportHeight
//	    HandleKey       abstract Key from the terminal adapter
//
// Nothing in this package knows about a terminal library. Keys arrive as
// Key values and output leaves as Frame values.
//
// # Modes
//
// Mode is a closed sum type:
//
//	Paging ──/──► Editing ──enter──► Active
//	  ▲  │          │  ▲               │ │
//	  │  │        esc  └──────/────────┘ │
//	  │  q/esc      ▼                    │
//	  │  ▼        Paging ◄────esc/q──────┘
//	  Exiting
//
// Editing re-runs a forward search after every edit so the view follows
// the query as it is typed. Active always holds a non-empty term; n and N
// move to the next and previous matching line.
//
// # Scroll position
//
// Scrolling keeps 0 <= position <= max(0, len-height). Search jumps place
// the matched line at the top of the viewport, which may sit past that
// ceiling but is always a valid index.
//
// # Errors
//
// ErrGetLines and ErrSearchBuild are returned from Frame and HandleKey and
// are fatal to the caller. ErrRegexBuild only comes from NewContextFinder.
// ErrStartupTimeout comes from Start.
package pager
