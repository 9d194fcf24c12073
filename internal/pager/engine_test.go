package pager

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/five82/gitpeek/internal/stream"
)

func numbered(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return lines
}

// startedEngine returns an engine that already holds lines and whose
// feed is still open.
func startedEngine(t *testing.T, lines []string, height int) (*Engine, chan stream.Batch) {
	t.Helper()
	feed := make(chan stream.Batch, 4)
	feed <- stream.Batch{Lines: lines}
	e := New(feed, newGitFinder(t), nil)
	if err := e.Start(context.Background(), time.Second); err != nil {
		t.Fatalf("Start: %v", err)
	}
	e.SetViewportHeight(height)
	return e, feed
}

func press(t *testing.T, e *Engine, keys ...Key) {
	t.Helper()
	for _, k := range keys {
		if err := e.HandleKey(k); err != nil {
			t.Fatalf("HandleKey(%s): %v", k.Code, err)
		}
	}
}

func typeText(t *testing.T, e *Engine, s string) {
	t.Helper()
	for _, r := range s {
		press(t, e, RuneKey(r))
	}
}

func TestEngine_StartReceivesFirstBatch(t *testing.T) {
	e, _ := startedEngine(t, []string{"a", "b"}, 10)
	if e.Len() != 2 {
		t.Fatalf("Len = %d, want 2", e.Len())
	}
	if _, ok := e.Mode().(Paging); !ok {
		t.Fatalf("Mode = %s, want paging", ModeName(e.Mode()))
	}
}

func TestEngine_StartTimeout(t *testing.T) {
	e := New(make(chan stream.Batch), nil, nil)
	err := e.Start(context.Background(), 10*time.Millisecond)
	if !errors.Is(err, ErrStartupTimeout) {
		t.Fatalf("Start error = %v, want ErrStartupTimeout", err)
	}
}

func TestEngine_StartClosedFeedIsEmptyPager(t *testing.T) {
	feed := make(chan stream.Batch)
	close(feed)
	e := New(feed, nil, nil)
	if err := e.Start(context.Background(), time.Second); err != nil {
		t.Fatalf("Start error = %v, want nil", err)
	}
	if !e.Final() || e.Len() != 0 {
		t.Fatalf("Final = %v Len = %d, want final empty store", e.Final(), e.Len())
	}
	frame, err := e.Frame()
	if err != nil {
		t.Fatalf("Frame error = %v", err)
	}
	if len(frame.Lines) != 0 {
		t.Fatalf("Frame.Lines = %q, want none", frame.Lines)
	}
}

func TestEngine_StartStreamError(t *testing.T) {
	feed := make(chan stream.Batch, 1)
	feed <- stream.Batch{Err: stream.ErrStreamRead}
	e := New(feed, nil, nil)
	if err := e.Start(context.Background(), time.Second); !errors.Is(err, stream.ErrStreamRead) {
		t.Fatalf("Start error = %v, want ErrStreamRead", err)
	}
}

func TestEngine_StartCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	e := New(make(chan stream.Batch), nil, nil)
	if err := e.Start(ctx, time.Second); !errors.Is(err, context.Canceled) {
		t.Fatalf("Start error = %v, want context.Canceled", err)
	}
}

func TestEngine_Poll(t *testing.T) {
	e, feed := startedEngine(t, []string{"a"}, 10)

	if e.Poll() {
		t.Fatal("Poll on empty feed reported a change")
	}

	feed <- stream.Batch{Lines: []string{"b", "c"}}
	if !e.Poll() || e.Len() != 3 {
		t.Fatalf("Poll after batch: Len = %d, want 3", e.Len())
	}

	feed <- stream.Batch{Err: errors.New("boom")}
	if e.Poll() || e.Len() != 3 {
		t.Fatalf("Poll after error batch: Len = %d, want 3", e.Len())
	}

	close(feed)
	if !e.Poll() || !e.Final() {
		t.Fatal("Poll after close did not finalize the store")
	}
	if e.Poll() {
		t.Fatal("Poll after finalize reported a change")
	}
}

func TestEngine_PollOneBatchAtATime(t *testing.T) {
	e, feed := startedEngine(t, []string{"a"}, 10)
	feed <- stream.Batch{Lines: []string{"b"}}
	feed <- stream.Batch{Lines: []string{"c"}}
	e.Poll()
	if e.Len() != 2 {
		t.Fatalf("Len = %d, want 2 after one poll", e.Len())
	}
}

func TestEngine_PagingScroll(t *testing.T) {
	e, _ := startedEngine(t, numbered(30), 10)

	press(t, e, Key{Code: KeyDown}, Key{Code: KeyDown})
	if e.Position() != 2 {
		t.Fatalf("after 2x down: position %d, want 2", e.Position())
	}
	press(t, e, Key{Code: KeyUp})
	if e.Position() != 1 {
		t.Fatalf("after up: position %d, want 1", e.Position())
	}
	press(t, e, Key{Code: KeyPageDown}, Key{Code: KeyPageDown}, Key{Code: KeyPageDown})
	if e.Position() != 20 {
		t.Fatalf("after 3x page down: position %d, want 20 (bottom anchor)", e.Position())
	}
	press(t, e, Key{Code: KeyPageUp}, Key{Code: KeyPageUp}, Key{Code: KeyPageUp})
	if e.Position() != 0 {
		t.Fatalf("after 3x page up: position %d, want 0", e.Position())
	}
	press(t, e, Key{Code: KeyOther}, RuneKey('z'))
	if e.Position() != 0 {
		t.Fatalf("unbound keys moved position to %d", e.Position())
	}
}

func TestEngine_QuitAndEscapeExit(t *testing.T) {
	for _, k := range []Key{{Code: KeyQuit, Rune: 'q'}, {Code: KeyEscape}, {Code: KeyInterrupt}} {
		e, _ := startedEngine(t, numbered(3), 10)
		press(t, e, k)
		if !e.Exiting() {
			t.Fatalf("%s did not exit", k.Code)
		}
	}
}

func TestEngine_InterruptExitsWhileEditing(t *testing.T) {
	e, _ := startedEngine(t, numbered(3), 10)
	press(t, e, Key{Code: KeySearch, Rune: '/'}, Key{Code: KeyInterrupt})
	if !e.Exiting() {
		t.Fatalf("Mode = %s, want exiting", ModeName(e.Mode()))
	}
}

func TestEngine_EditThenEscapeKeepsLiveSearchPosition(t *testing.T) {
	lines := []string{"a", "b", "c", "x marks", "d", "e", "f", "g"}
	e, _ := startedEngine(t, lines, 3)

	press(t, e, Key{Code: KeySearch, Rune: '/'})
	if _, ok := e.Mode().(Editing); !ok {
		t.Fatalf("Mode = %s, want editing", ModeName(e.Mode()))
	}
	typeText(t, e, "x")
	if e.Position() != 3 {
		t.Fatalf("live search moved to %d, want 3", e.Position())
	}
	press(t, e, Key{Code: KeyEscape})
	if _, ok := e.Mode().(Paging); !ok {
		t.Fatalf("Mode = %s, want paging", ModeName(e.Mode()))
	}
	if e.Position() != 3 {
		t.Fatalf("position after escape = %d, want 3", e.Position())
	}
}

func TestEngine_EditWithoutMatchKeepsPosition(t *testing.T) {
	e, _ := startedEngine(t, numbered(20), 5)
	press(t, e, Key{Code: KeyDown}, Key{Code: KeySearch, Rune: '/'})
	typeText(t, e, "nope")
	press(t, e, Key{Code: KeyEscape})
	if e.Position() != 1 {
		t.Fatalf("position = %d, want 1", e.Position())
	}
}

func TestEngine_ActiveSearchNavigation(t *testing.T) {
	lines := []string{"hit 0", "x", "hit 2", "y", "z", "HIT 5", "w", "v"}
	e, _ := startedEngine(t, lines, 2)

	press(t, e, Key{Code: KeySearch, Rune: '/'})
	typeText(t, e, "hit")
	if e.Position() != 0 {
		t.Fatalf("live search position = %d, want 0", e.Position())
	}
	press(t, e, Key{Code: KeyEnter})
	active, ok := e.Mode().(Active)
	if !ok {
		t.Fatalf("Mode = %s, want active", ModeName(e.Mode()))
	}
	if active.Term != "hit" || active.Base != 0 {
		t.Fatalf("Active = %+v, want term hit base 0", active)
	}

	press(t, e, Key{Code: KeyNext, Rune: 'n'})
	if e.Position() != 2 {
		t.Fatalf("n: position = %d, want 2", e.Position())
	}
	press(t, e, Key{Code: KeyNext, Rune: 'n'})
	if e.Position() != 5 {
		t.Fatalf("n: position = %d, want 5", e.Position())
	}
	press(t, e, Key{Code: KeyNext, Rune: 'n'})
	if e.Position() != 5 {
		t.Fatalf("n past last match: position = %d, want 5", e.Position())
	}
	press(t, e, Key{Code: KeyPrev, Rune: 'N'})
	if e.Position() != 2 {
		t.Fatalf("N: position = %d, want 2", e.Position())
	}
	press(t, e, Key{Code: KeyPrev, Rune: 'N'}, Key{Code: KeyPrev, Rune: 'N'})
	if e.Position() != 0 {
		t.Fatalf("N at first match: position = %d, want 0", e.Position())
	}

	press(t, e, Key{Code: KeyDown})
	if e.Position() != 0 {
		t.Fatalf("scroll key in active search moved to %d", e.Position())
	}

	press(t, e, Key{Code: KeySearch, Rune: '/'})
	if ed, ok := e.Mode().(Editing); !ok || !ed.Query.Empty() {
		t.Fatalf("Mode = %s, want editing with empty query", ModeName(e.Mode()))
	}
	press(t, e, Key{Code: KeyEscape})
	press(t, e, Key{Code: KeySearch, Rune: '/'})
	typeText(t, e, "x")
	press(t, e, Key{Code: KeyEnter}, Key{Code: KeyQuit, Rune: 'q'})
	if _, ok := e.Mode().(Paging); !ok {
		t.Fatalf("q in active search: Mode = %s, want paging", ModeName(e.Mode()))
	}
}

func TestEngine_EnterWithEmptyQueryReturnsToPaging(t *testing.T) {
	e, _ := startedEngine(t, numbered(5), 2)
	press(t, e, Key{Code: KeySearch, Rune: '/'}, Key{Code: KeyEnter})
	if _, ok := e.Mode().(Paging); !ok {
		t.Fatalf("Mode = %s, want paging", ModeName(e.Mode()))
	}
}

func TestEngine_SearchStartsWithEmptyQuery(t *testing.T) {
	e, _ := startedEngine(t, numbered(5), 2)
	press(t, e, Key{Code: KeySearch, Rune: '/'})
	ed, ok := e.Mode().(Editing)
	if !ok {
		t.Fatalf("Mode = %s, want editing", ModeName(e.Mode()))
	}
	if ed.Query.Value() != "" || ed.Query.Cursor() != 0 || !ed.Query.Empty() {
		t.Fatalf("query = %q cursor %d, want empty at 0", ed.Query.Value(), ed.Query.Cursor())
	}
}

func TestEngine_EditingTypesBoundRunes(t *testing.T) {
	e, _ := startedEngine(t, numbered(5), 2)
	press(t, e, Key{Code: KeySearch, Rune: '/'},
		Key{Code: KeyQuit, Rune: 'q'},
		Key{Code: KeyNext, Rune: 'n'},
		Key{Code: KeySearch, Rune: '/'})
	ed, ok := e.Mode().(Editing)
	if !ok {
		t.Fatalf("Mode = %s, want editing", ModeName(e.Mode()))
	}
	if got := ed.Query.Value(); got != "qn/" {
		t.Fatalf("query = %q, want qn/", got)
	}
}

func TestEngine_Frame(t *testing.T) {
	lines := []string{
		"commit abcdef",
		"Author: someone",
		"",
		"    subject",
		"",
		"diff --git a/f b/f",
		"+added",
		"+more",
		"+lines",
		"+here",
	}
	e, _ := startedEngine(t, lines, 3)
	press(t, e, Key{Code: KeyPageDown}, Key{Code: KeyPageDown})

	frame, err := e.Frame()
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if frame.First != 6 || !reflect.DeepEqual(frame.Lines, lines[6:9]) {
		t.Fatalf("window = %d %q, want 6 %q", frame.First, frame.Lines, lines[6:9])
	}
	if frame.ContextStart != 0 || !reflect.DeepEqual(frame.Context, lines[0:6]) {
		t.Fatalf("context = %d %q, want 0 %q", frame.ContextStart, frame.Context, lines[0:6])
	}
	if frame.Total != len(lines) || frame.Final {
		t.Fatalf("Total = %d Final = %v, want %d false", frame.Total, frame.Final, len(lines))
	}
	if frame.Highlight != "" {
		t.Fatalf("Highlight = %q in paging mode", frame.Highlight)
	}

	press(t, e, Key{Code: KeySearch, Rune: '/'})
	typeText(t, e, "more")
	frame, err = e.Frame()
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if frame.Highlight != "more" || frame.First != 7 {
		t.Fatalf("Highlight = %q First = %d, want more 7", frame.Highlight, frame.First)
	}
}

func TestEngine_SetViewportHeightFloor(t *testing.T) {
	e, _ := startedEngine(t, numbered(3), 0)
	if e.ViewportHeight() != 1 {
		t.Fatalf("ViewportHeight = %d, want 1", e.ViewportHeight())
	}
	press(t, e, Key{Code: KeyPageDown}, Key{Code: KeyPageDown}, Key{Code: KeyPageDown})
	if _, err := e.Frame(); err != nil {
		t.Fatalf("Frame at bottom: %v", err)
	}
}
