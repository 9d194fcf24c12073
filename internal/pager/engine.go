package pager

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/five82/gitpeek/internal/state"
	"github.com/five82/gitpeek/internal/stream"
)

// Engine owns the line store, the scroll position and the interaction
// mode. It is not safe for concurrent use; drive it from one goroutine.
type Engine struct {
	store    state.Store
	feed     <-chan stream.Batch
	finder   *ContextFinder
	logger   *slog.Logger
	mode     Mode
	position int
	height   int
}

// Frame is everything a renderer needs to draw one screen.
type Frame struct {
	Mode Mode
	// Lines is the visible window; Lines[0] is store line First.
	Lines []string
	First int
	// Context is the enclosing block plus one trailing line, or nil.
	Context      []string
	ContextStart int
	// Highlight is the term to highlight in Lines, empty for none.
	Highlight string
	Total     int
	Final     bool
}

// New returns an engine in Paging mode reading batches from feed. A nil
// finder disables context detection.
func New(feed <-chan stream.Batch, finder *ContextFinder, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		feed:   feed,
		finder: finder,
		logger: logger,
		mode:   Paging{},
		height: 1,
	}
}

// Start blocks for the first batch, at most timeout. A feed that closes
// without data starts an empty pager.
func (e *Engine) Start(ctx context.Context, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case batch, ok := <-e.feed:
		if !ok {
			e.logger.Info("input closed before any data")
			e.store.Finalize()
			return nil
		}
		if batch.Err != nil {
			return fmt.Errorf("initial read: %w", batch.Err)
		}
		e.store.Append(batch.Lines)
		e.logger.Debug("initial batch", "lines", len(batch.Lines))
		return nil
	case <-timer.C:
		return fmt.Errorf("%w after %s", ErrStartupTimeout, timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Poll performs one non-blocking receive and reports whether the store
// changed. Stream errors are logged and otherwise ignored.
func (e *Engine) Poll() bool {
	if e.store.Final() {
		return false
	}
	select {
	case batch, ok := <-e.feed:
		if !ok {
			e.store.Finalize()
			e.logger.Debug("input exhausted", "lines", e.store.Len())
			return true
		}
		if batch.Err != nil {
			e.logger.Warn("receive lines", "error", batch.Err)
			return false
		}
		return e.store.Append(batch.Lines) > 0
	default:
		return false
	}
}

// SetViewportHeight records the rows the renderer gave the main pane.
// Heights below one are treated as one.
func (e *Engine) SetViewportHeight(height int) {
	e.height = max(1, height)
}

// ViewportHeight returns the last reported main pane height.
func (e *Engine) ViewportHeight() int {
	return e.height
}

// Position returns the index of the first visible line.
func (e *Engine) Position() int {
	return e.position
}

// Mode returns the current interaction mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Exiting reports whether the engine has reached its terminal mode.
func (e *Engine) Exiting() bool {
	_, ok := e.mode.(Exiting)
	return ok
}

// Len returns the number of lines received so far.
func (e *Engine) Len() int {
	return e.store.Len()
}

// Final reports whether the input has been fully received.
func (e *Engine) Final() bool {
	return e.store.Final()
}

// Frame builds the display data for the current state.
func (e *Engine) Frame() (Frame, error) {
	lines := e.store.Lines()
	window, err := VisibleWindow(lines, e.position, e.height)
	if err != nil {
		return Frame{}, fmt.Errorf("visible window: %w", err)
	}

	frame := Frame{
		Mode:  e.mode,
		Lines: window,
		First: e.position,
		Total: len(lines),
		Final: e.store.Final(),
	}
	if e.finder != nil {
		frame.Context, frame.ContextStart = e.finder.Locate(lines, e.position)
	}
	switch m := e.mode.(type) {
	case Editing:
		frame.Highlight = m.Query.Value()
	case Active:
		frame.Highlight = m.Term
	}
	return frame, nil
}
