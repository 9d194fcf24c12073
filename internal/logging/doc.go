// Package logging builds the opt-in diagnostic logger.
//
// Tracing is off unless ENABLE_TRACING is "1" or "true". When off, Setup
// hands back a logger that discards everything so callers never check for
// nil. When on, records go through log/slog's text handler at debug level
// into a size-rotated file managed by lumberjack. The terminal is owned by
// the pager, so nothing is ever written to stderr.
package logging
