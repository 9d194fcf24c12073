package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gitpeek/internal/pager"
)

// Options configures the UI.
type Options struct {
	Engine    *pager.Engine
	Logger    *slog.Logger
	Tick      time.Duration
	ThemeName string
	// Syntax enables diff colouring of lines without search matches.
	Syntax bool
	// InputTTY reads keys from the controlling terminal instead of stdin.
	InputTTY bool
	// Output overrides the program output, mainly for tests.
	Output io.Writer
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	engine *pager.Engine
	logger *slog.Logger
	tick   time.Duration

	// UI state
	theme    Theme
	styles   Styles
	keys     keyMap
	help     help.Model
	search   textinput.Model
	diff     *diffColorizer
	width    int
	height   int
	ready    bool
	showHelp bool

	// Render state, refreshed by sync after every update
	layout layout
	frame  pager.Frame

	// err is the engine error that ended the program.
	err error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultTick
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	theme := GetTheme(opts.ThemeName)
	styles := theme.Styles()

	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "type to search"
	ti.PromptStyle = styles.AccentText
	ti.TextStyle = styles.Text
	ti.PlaceholderStyle = styles.FaintText
	ti.Cursor.SetMode(cursor.CursorStatic)

	h := help.New()
	footer := styles.WithBackground(theme.Surface)
	h.Styles.ShortKey = footer.AccentText
	h.Styles.ShortDesc = footer.MutedText
	h.Styles.ShortSeparator = footer.FaintText
	h.Styles.FullKey = styles.AccentText
	h.Styles.FullDesc = styles.Text
	h.Styles.FullSeparator = styles.FaintText

	m := Model{
		engine: opts.Engine,
		logger: logger,
		tick:   tick,
		theme:  theme,
		styles: styles,
		keys:   DefaultKeyMap(),
		help:   h,
		search: ti,
	}
	if opts.Syntax {
		m.diff = newDiffColorizer(theme.ChromaStyle, styles.Text)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = max(0, msg.Width-2*FrameMargin)
		cmd := m.sync()
		return m, cmd

	case tickMsg:
		return m.handleTick()
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.err != nil {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// Err returns the engine error that stopped the program, if any.
func (m Model) Err() error {
	return m.err
}

// handleKey forwards keyboard input to the engine.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if _, paging := m.engine.Mode().(pager.Paging); paging && key.Matches(msg, m.keys.Help) {
		m.showHelp = true
		return m, nil
	}

	for _, k := range m.keys.translate(msg) {
		if err := m.engine.HandleKey(k); err != nil {
			return m.fail(err)
		}
	}
	m.engine.Poll()
	if m.engine.Exiting() {
		return m, tea.Quit
	}
	cmd := m.sync()
	return m, cmd
}

// handleTick ingests queued batches so new lines show without key presses.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	changed := false
	for range MaxBatchesPerTick {
		if !m.engine.Poll() {
			break
		}
		changed = true
	}

	var cmds []tea.Cmd
	if changed {
		cmds = append(cmds, m.sync())
	}
	// Schedule next tick while input is still arriving
	if !m.engine.Final() {
		cmds = append(cmds, tickCmd(m.tick))
	}
	return m, tea.Batch(cmds...)
}

// sync lays out the screen for the engine's current state, reports the
// main pane height back to the engine and caches the frame to draw.
func (m *Model) sync() tea.Cmd {
	if !m.ready {
		return nil
	}

	frame, err := m.engine.Frame()
	if err != nil {
		_, cmd := m.fail(err)
		return cmd
	}
	_, searching := frame.Mode.(pager.Editing)
	if _, active := frame.Mode.(pager.Active); active {
		searching = true
	}

	m.layout = computeLayout(m.width, m.height, len(frame.Context), searching)
	if m.layout.Main != m.engine.ViewportHeight() {
		m.engine.SetViewportHeight(m.layout.Main)
		if frame, err = m.engine.Frame(); err != nil {
			_, cmd := m.fail(err)
			return cmd
		}
	}
	m.frame = frame
	m.syncSearchInput()
	return nil
}

// syncSearchInput mirrors the engine's query into the text input widget.
func (m *Model) syncSearchInput() {
	m.search.Width = max(1, m.layout.Width-4-len(m.search.Prompt))
	switch mode := m.frame.Mode.(type) {
	case pager.Editing:
		m.search.SetValue(mode.Query.Value())
		m.search.SetCursor(mode.Query.Cursor())
		m.search.Focus()
	case pager.Active:
		m.search.SetValue(mode.Term)
		m.search.Blur()
	default:
		m.search.SetValue("")
		m.search.Blur()
	}
}

// fail records err and ends the program.
func (m *Model) fail(err error) (tea.Model, tea.Cmd) {
	m.logger.Error("pager failed", "error", err)
	m.err = err
	return *m, tea.Quit
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program and blocks until the pager exits.
// The returned error is the engine error that ended the session, if any.
func Run(ctx context.Context, opts Options) error {
	if opts.Engine == nil {
		return errors.New("ui: nil engine")
	}
	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.InputTTY {
		programOpts = append(programOpts, tea.WithInputTTY())
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}

	final, err := tea.NewProgram(New(opts), programOpts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}
