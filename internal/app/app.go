package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/five82/gitpeek/internal/config"
	"github.com/five82/gitpeek/internal/logging"
	"github.com/five82/gitpeek/internal/pager"
	"github.com/five82/gitpeek/internal/stream"
	"github.com/five82/gitpeek/internal/ui"
)

// ErrNoInput is returned when no file is given and stdin is a terminal.
var ErrNoInput = errors.New("no input: pipe git log output or pass a file")

const fallbackRows = 24

// Options configure the gitpeek application. Zero values defer to the
// config file.
type Options struct {
	ConfigPath  string
	InputPath   string // empty reads Stdin
	Theme       string
	BatchFactor int
	NoSyntax    bool

	Stdin  io.Reader // nil uses os.Stdin
	Output io.Writer // nil uses the terminal
}

// isTerminal is swapped in tests.
var isTerminal = term.IsTerminal

// session is everything Run needs once startup has succeeded.
type session struct {
	cfg      config.Config
	logger   *slog.Logger
	engine   *pager.Engine
	inputTTY bool
	cleanup  []func() error
}

func (s *session) close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		if err := s.cleanup[i](); err != nil && s.logger != nil {
			s.logger.Debug("cleanup failed", "error", err)
		}
	}
}

// Run boots the pager and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s, err := prepare(ctx, opts)
	if err != nil {
		return err
	}
	defer s.close()

	syntax := s.cfg.Syntax && !opts.NoSyntax
	if colorProfile() == termenv.Ascii {
		syntax = false
	}

	return ui.Run(ctx, ui.Options{
		Engine:    s.engine,
		Logger:    s.logger,
		Tick:      s.cfg.Tick,
		ThemeName: s.cfg.Theme,
		Syntax:    syntax,
		InputTTY:  s.inputTTY,
		Output:    opts.Output,
	})
}

// prepare loads configuration, starts the streamer and waits for the first
// batch. On error every resource it opened is already released.
func prepare(ctx context.Context, opts Options) (s *session, err error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if theme := strings.TrimSpace(opts.Theme); theme != "" {
		cfg.Theme = theme
	}
	if opts.BatchFactor > 0 {
		cfg.BatchFactor = opts.BatchFactor
	}

	logger, closeLog, err := logging.Setup(cfg.LogPath(), logging.EnabledFromEnv())
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	s = &session{cfg: cfg, logger: logger, cleanup: []func() error{closeLog}}
	defer func() {
		if err != nil {
			s.close()
			s = nil
		}
	}()

	if !ui.HasTheme(cfg.Theme) {
		logger.Warn("unknown theme, using default", "theme", cfg.Theme, "available", ui.ThemeNames())
	}

	src, closeSrc, fromStdin, err := openInput(opts)
	if err != nil {
		return s, err
	}
	s.cleanup = append(s.cleanup, closeSrc)
	s.inputTTY = fromStdin

	batchSize := cfg.BatchFactor * terminalRows()
	logger.Debug("starting stream", "batch_size", batchSize, "stdin", fromStdin)
	feed := stream.Start(ctx, src, batchSize, logger)

	finder, err := pager.NewContextFinder(pager.InputGit)
	if err != nil {
		return s, fmt.Errorf("init context finder: %w", err)
	}

	s.engine = pager.New(feed, finder, logger)
	if err := s.engine.Start(ctx, cfg.StartupTimeout); err != nil {
		return s, fmt.Errorf("start pager: %w", err)
	}
	return s, nil
}

// openInput returns the data source. Closing a file source also unblocks
// the streamer if it is mid-read.
func openInput(opts Options) (io.Reader, func() error, bool, error) {
	noop := func() error { return nil }

	if path := strings.TrimSpace(opts.InputPath); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, false, fmt.Errorf("open input: %w", err)
		}
		return f, f.Close, false, nil
	}

	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	if f, ok := stdin.(*os.File); ok && isTerminal(int(f.Fd())) {
		return nil, nil, true, ErrNoInput
	}
	return stdin, noop, true, nil
}

// terminalRows sizes stream batches before Bubble Tea reports the real size.
func terminalRows() int {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		if _, rows, err := term.GetSize(int(f.Fd())); err == nil && rows > 0 {
			return rows
		}
	}
	return fallbackRows
}

// colorProfile applies NO_COLOR / CLICOLOR_FORCE to lipgloss and returns
// the detected profile.
func colorProfile() termenv.Profile {
	profile := termenv.EnvColorProfile()
	lipgloss.SetColorProfile(profile)
	return profile
}
