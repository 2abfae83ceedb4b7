package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/example/whiteboard/internal/board"
	"github.com/example/whiteboard/internal/config"
	"github.com/example/whiteboard/internal/notify"
	"github.com/example/whiteboard/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs         *flag.FlagSet
	program    string
	stdout     io.Writer
	notifier   *notify.Notifier
	config     *config.Config
	saveAlerts bool
	copyAlerts bool
	themeName  string
	debug      bool
	logger     *slog.Logger
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) Template() string {
	return "root.txt"
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("whiteboard", flag.ExitOnError),
		program:  "whiteboard",
		stdout:   os.Stdout,
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after downloading the board")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying the board")
	r.fs.StringVar(&r.themeName, "theme", "", "color theme for the window ("+strings.Join(theme.Names(), ", ")+" or a file)")
	r.fs.BoolVar(&r.debug, "debug", false, "log board activity to stderr")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	if r.debug {
		r.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "open":
		cmd, err = parseOpenCmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "fit":
		cmd, err = parseFitCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "monitors":
		cmd, err = parseMonitorsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// activeTheme resolves the window theme. A theme that fails to load falls
// back to the built-in one with a warning.
func (r *root) activeTheme() *theme.Theme {
	name := config.ResolveTheme(r.themeName, r.config)
	t, err := config.ThemeLoader(r.config).Load(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		return theme.Default()
	}
	return t
}

// boardOptions turns the configuration into board options for a container
// of the given size.
func (r *root) boardOptions(containerW, containerH int) []board.Option {
	cfg := r.config
	opts := []board.Option{
		board.WithContainer(containerW, containerH),
		board.WithPenWidth(cfg.Tools.PenWidth),
		board.WithEraserWidth(cfg.Tools.EraserWidth),
		board.WithHistoryLimit(cfg.History.Limit),
		board.WithBackground(cfg.Background),
		board.WithDebounce(cfg.Resize.Debounce()),
	}
	if r.logger != nil {
		opts = append(opts, board.WithLogger(r.logger))
	}
	return opts
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
