package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/gitpeek/internal/pager"
	"github.com/five82/gitpeek/internal/stream"
)

func numberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	return lines
}

func newTestModel(t *testing.T, lines []string, width, height int) (Model, *pager.Engine, chan stream.Batch) {
	t.Helper()
	feed := make(chan stream.Batch, 8)
	feed <- stream.Batch{Lines: lines}
	finder, err := pager.NewContextFinder(pager.InputGit)
	if err != nil {
		t.Fatalf("NewContextFinder: %v", err)
	}
	engine := pager.New(feed, finder, nil)
	if err := engine.Start(context.Background(), time.Second); err != nil {
		t.Fatalf("Start: %v", err)
	}
	m := New(Options{Engine: engine})
	m = update(t, m, tea.WindowSizeMsg{Width: width, Height: height})
	return m, engine, feed
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func typeKeys(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_ReportsViewportHeight(t *testing.T) {
	_, engine, _ := newTestModel(t, numberedLines(100), 80, 24)
	if got := engine.ViewportHeight(); got != 21 {
		t.Fatalf("ViewportHeight = %d, want 21", got)
	}
}

func TestModel_ViewShowsWindowAndFooter(t *testing.T) {
	m, _, _ := newTestModel(t, numberedLines(100), 80, 24)
	view := ansi.Strip(m.View())
	for _, want := range []string{"line 0", "line 20", "lines 1-21 of 100", "streaming"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "line 21 ") || strings.Contains(view, "┌─ Search") {
		t.Fatalf("view shows more than the window:\n%s", view)
	}
	if rows := strings.Count(m.View(), "\n") + 1; rows != 24 {
		t.Fatalf("view has %d rows, want 24", rows)
	}
}

func TestModel_Scrolling(t *testing.T) {
	m, engine, _ := newTestModel(t, numberedLines(100), 80, 24)
	m = typeKeys(t, m, "j")
	if engine.Position() != 1 {
		t.Fatalf("after j: position %d, want 1", engine.Position())
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if engine.Position() != 22 {
		t.Fatalf("after space: position %d, want 22", engine.Position())
	}
	m = typeKeys(t, m, "b")
	if engine.Position() != 1 {
		t.Fatalf("after b: position %d, want 1", engine.Position())
	}
	if view := ansi.Strip(m.View()); !strings.Contains(view, "lines 2-22 of 100") {
		t.Fatalf("footer not updated:\n%s", view)
	}
}

func TestModel_SearchFlow(t *testing.T) {
	m, engine, _ := newTestModel(t, numberedLines(100), 80, 24)

	m = typeKeys(t, m, "/")
	if _, ok := engine.Mode().(pager.Editing); !ok {
		t.Fatalf("Mode = %s, want editing", pager.ModeName(engine.Mode()))
	}
	if got := engine.ViewportHeight(); got != 21-SearchBoxRows {
		t.Fatalf("ViewportHeight while searching = %d, want %d", got, 21-SearchBoxRows)
	}
	if view := ansi.Strip(m.View()); !strings.Contains(view, "┌─ Search") {
		t.Fatalf("search box missing:\n%s", view)
	}

	m = typeKeys(t, m, "50")
	if engine.Position() != 50 {
		t.Fatalf("live search position = %d, want 50", engine.Position())
	}
	if view := ansi.Strip(m.View()); !strings.Contains(view, "/50") {
		t.Fatalf("query not shown:\n%s", view)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if _, ok := engine.Mode().(pager.Active); !ok {
		t.Fatalf("Mode = %s, want active", pager.ModeName(engine.Mode()))
	}
	m = typeKeys(t, m, "N")
	if engine.Position() != 50 {
		t.Fatalf("N with no earlier match moved to %d", engine.Position())
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if isQuit(cmd) {
		t.Fatal("q in active search quit the program")
	}
	if _, ok := engine.Mode().(pager.Paging); !ok {
		t.Fatalf("Mode = %s, want paging", pager.ModeName(engine.Mode()))
	}
	if view := ansi.Strip(next.View()); strings.Contains(view, "┌─ Search") {
		t.Fatalf("search box still shown after leaving search:\n%s", view)
	}
}

func TestModel_QuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		m, _, _ := newTestModel(t, numberedLines(5), 80, 24)
		_, cmd := m.Update(msg)
		if !isQuit(cmd) {
			t.Fatalf("%s did not quit", msg.String())
		}
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m, engine, _ := newTestModel(t, numberedLines(5), 80, 24)
	m = typeKeys(t, m, "?")
	if view := ansi.Strip(m.View()); !strings.Contains(view, "Keyboard Shortcuts") {
		t.Fatalf("help overlay missing:\n%s", view)
	}
	m = typeKeys(t, m, "q")
	if engine.Exiting() {
		t.Fatal("key that closed help reached the engine")
	}
	if view := ansi.Strip(m.View()); strings.Contains(view, "Keyboard Shortcuts") {
		t.Fatal("help overlay still shown")
	}

	m = typeKeys(t, m, "/?")
	if ed, ok := engine.Mode().(pager.Editing); !ok || ed.Query.Value() != "?" {
		t.Fatalf("? while editing should type, mode %s", pager.ModeName(engine.Mode()))
	}
}

func TestModel_TickIngestsBatches(t *testing.T) {
	m, engine, feed := newTestModel(t, numberedLines(5), 80, 24)

	feed <- stream.Batch{Lines: []string{"more 1"}}
	feed <- stream.Batch{Lines: []string{"more 2"}}
	m = update(t, m, tickMsg(time.Now()))
	if engine.Len() != 7 {
		t.Fatalf("Len after tick = %d, want 7", engine.Len())
	}
	if view := ansi.Strip(m.View()); !strings.Contains(view, "more 1") {
		t.Fatalf("new lines not shown:\n%s", view)
	}

	close(feed)
	m = update(t, m, tickMsg(time.Now()))
	if !engine.Final() {
		t.Fatal("engine not final after feed closed")
	}
	if view := ansi.Strip(m.View()); !strings.Contains(view, "end") {
		t.Fatalf("footer does not show end of input:\n%s", view)
	}
}

func TestModel_ContextPanel(t *testing.T) {
	lines := append([]string{
		"commit 0123abcd",
		"Author: Someone <someone@example.com>",
		"",
		"    Fix the widget",
	}, numberedLines(60)...)
	m, engine, _ := newTestModel(t, lines, 80, 24)
	if view := ansi.Strip(m.View()); strings.Contains(view, "═") {
		t.Fatalf("context panel shown at top of input:\n%s", view)
	}

	m = typeKeys(t, m, "jj")
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "═") || !strings.Contains(view, "commit 0123abcd") {
		t.Fatalf("context panel missing:\n%s", view)
	}
	// Three context lines plus the rule take four rows from the main pane.
	if got := engine.ViewportHeight(); got != 21-4 {
		t.Fatalf("ViewportHeight = %d, want %d", got, 21-4)
	}
	if !strings.Contains(view, "commit @1") {
		t.Fatalf("footer missing commit position:\n%s", view)
	}
}

func TestModel_FailStoresErrorAndQuits(t *testing.T) {
	m, _, _ := newTestModel(t, numberedLines(5), 80, 24)
	boom := errors.New("boom")
	next, cmd := m.fail(boom)
	if !isQuit(cmd) {
		t.Fatal("fail did not quit")
	}
	model := next.(Model)
	if !errors.Is(model.Err(), boom) {
		t.Fatalf("Err = %v, want boom", model.Err())
	}
	if model.View() != "" {
		t.Fatal("View after failure should be empty")
	}
}

func TestModel_LoadingBeforeSize(t *testing.T) {
	feed := make(chan stream.Batch)
	m := New(Options{Engine: pager.New(feed, nil, nil)})
	if m.View() != "Loading..." {
		t.Fatalf("View = %q, want Loading...", m.View())
	}
}
