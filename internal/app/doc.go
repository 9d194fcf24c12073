// Package app is the composition root for gitpeek.
//
// # Overview
//
// Run wires configuration, logging, the background streamer, the pager
// engine and the Bubble Tea UI together, then blocks until the user quits
// or the context is cancelled.
//
// # Startup Sequence
//
//  1. Load ~/.config/gitpeek/config.toml (or --config), apply flag overrides
//  2. Set up the diagnostic logger (ENABLE_TRACING)
//  3. Open the input: a file argument, or stdin when it is not a terminal
//  4. Start the streamer with batch size batch_factor × terminal rows
//  5. Build the git context finder and the engine
//  6. Wait up to startup_timeout for the first batch
//  7. Pick the colour profile and run the UI
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        TOML settings
//	       ├─────> logging.Setup()      slog over lumberjack, or discard
//	       ├─────> openInput()          file or stdin
//	       ├─────> stream.Start()       reader goroutine ──► chan Batch
//	       ├─────> pager.New().Start()  first batch, bounded by timeout
//	       └─────> ui.Run()             Bubble Tea loop (blocks)
//
// Once the UI is running, its tick drains the batch channel into the
// engine. Nothing else touches the engine.
//
// # Input
//
// When stdin carries the data, keyboard input is read from the controlling
// terminal instead. With no file argument and an interactive stdin, Run
// returns ErrNoInput before touching the screen.
//
// # Shutdown
//
// Run cancels its context on return, which stops the streamer at its next
// send. A file input is closed, which also unblocks a pending read. The log
// file is closed last.
package app
