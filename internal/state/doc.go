// Package state holds the pager's line buffer.
//
// # Overview
//
// Store is an append-only, ordered sequence of decoded text lines. It is
// created empty when the pager starts, grown from streamer batches until
// the input is exhausted, and never shrunk:
//
//	stream.Batch ──► engine.Poll ──► Store.Append
//	                                     │
//	          VisibleWindow / context / search read Store.Lines()
//
// # Invariants
//
//   - An index, once assigned, always refers to the same line.
//   - Appending N lines increases Len by exactly N and leaves earlier lines
//     untouched.
//   - After Finalize, Append is a no-op.
//
// # Concurrency
//
// Unlike a shared snapshot store, Store is owned by the UI goroutine alone.
// The streamer never touches it: lines cross goroutines only through the
// stream channel, so Store needs no mutex.
package state
