package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/five82/gitpeek/internal/app"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, done, err := parseArgs(args, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "gitpeek: %v\n", err)
		return 2
	}
	if done {
		return 0
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(stderr, "gitpeek: %v\n", err)
		return 1
	}
	return 0
}

// parseArgs turns the command line into app options. done reports that
// help or version output was printed and nothing else should run.
func parseArgs(args []string, stdout, stderr io.Writer) (opts app.Options, done bool, err error) {
	flagSet := pflag.NewFlagSet("gitpeek", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/gitpeek/config.toml)")
	flagSet.StringVar(&opts.Theme, "theme", "", "colour theme: Nightfox, Kanagawa or Slate")
	flagSet.IntVar(&opts.BatchFactor, "batch-factor", 0, "lines per read batch as a multiple of terminal height")
	flagSet.BoolVar(&opts.NoSyntax, "no-syntax", false, "disable diff colouring")
	showVersion := flagSet.Bool("version", false, "print version and exit")
	flagSet.BoolP("help", "h", false, "show help")
	flagSet.Usage = func() { printHelp(flagSet, stderr) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return opts, true, nil
		}
		return opts, false, err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet, stderr)
		return opts, true, nil
	}
	if *showVersion {
		fmt.Fprintf(stdout, "gitpeek %s\n", version)
		return opts, true, nil
	}
	if opts.BatchFactor < 0 {
		return opts, false, fmt.Errorf("--batch-factor must be positive, got %d", opts.BatchFactor)
	}

	switch rest := flagSet.Args(); len(rest) {
	case 0:
	case 1:
		opts.InputPath = rest[0]
	default:
		return opts, false, fmt.Errorf("unexpected argument: %s", rest[1])
	}
	return opts, false, nil
}

func printHelp(flagSet *pflag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, `gitpeek: a streaming pager for git log output.

Lines are shown as soon as they arrive. The commit you are reading stays
pinned at the top of the screen while you scroll through its diff.

Usage:
  git log -p | gitpeek [flags]
  gitpeek [flags] FILE

Keys:
  j/k, arrows     scroll one line
  space/b         page down/up
  /               search as you type
  n/N             next/previous match
  ?               help
  q               quit

Set ENABLE_TRACING=1 to write diagnostics to log_dir/runlog.log.

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
