// Package stream reads line-oriented input in the background and hands it
// to the pager in batches.
//
// # Overview
//
// Start spawns one goroutine per source. The goroutine reads until end of
// input and pushes Batch values onto a buffered channel:
//
//	reader ──► bufio + UTF-8 decoder ──► readBatch (size N) ──► chan Batch
//
// The consumer polls the channel without blocking (see pager.Engine.Poll).
// A closed channel means no more data will ever arrive; it is not an error.
//
// # Batching
//
// The batch size is chosen by the caller, usually a small multiple of the
// terminal height, so the first screenful arrives quickly on slow producers
// without flooding small terminals with per-line messages. The final batch
// may be shorter than the requested size.
//
// # Decoding
//
// Input is decoded with golang.org/x/text's UTF-8 decoder, which replaces
// invalid byte sequences with U+FFFD. Decoding never fails. Lines are split
// on '\n' and the delimiter is dropped; a trailing '\r' is kept.
//
// # Errors
//
// A read error is delivered in-band: any lines read so far are sent first,
// then a Batch whose Err wraps ErrStreamRead, then the channel is closed.
// The streamer never retries. Cancelling the context passed to Start stops
// the goroutine at its next send.
package stream
