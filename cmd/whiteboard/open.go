package main

import (
	"flag"
	"image"
	"log"

	"github.com/example/whiteboard/internal/appstate"
	"github.com/example/whiteboard/internal/board"
	"github.com/example/whiteboard/internal/display"
)

type openCmd struct {
	*root
	fs      *flag.FlagSet
	monitor string
	share   float64
	width   int
	height  int
	saveDir string
}

func parseOpenCmd(args []string, r *root) (*openCmd, error) {
	fs := flag.NewFlagSet("open", flag.ExitOnError)
	c := &openCmd{root: r, fs: fs}
	fs.StringVar(&c.monitor, "monitor", "primary", "monitor to size the window for: index, name or primary")
	fs.Float64Var(&c.share, "share", 0.8, "fraction of the monitor the window covers")
	fs.IntVar(&c.width, "width", 0, "window width in pixels; overrides -monitor")
	fs.IntVar(&c.height, "height", 0, "window height in pixels; overrides -monitor")
	fs.StringVar(&c.saveDir, "save-dir", r.config.SaveDir, "directory downloads are written to")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *openCmd) Program() string { return c.root.program + " open" }

func (c *openCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *openCmd) Template() string { return "open.txt" }

func (c *openCmd) windowSize() image.Point {
	if c.width > 0 && c.height > 0 {
		return image.Pt(c.width, c.height)
	}
	size, err := display.InitialWindowSize(c.monitor, c.share)
	if err != nil {
		log.Printf("monitor layout unavailable, using %dx%d: %v", size.X, size.Y, err)
	}
	return size
}

func (c *openCmd) Run() error {
	win := c.windowSize()
	container := appstate.ContainerSize(win.X, win.Y)
	b := board.New(c.boardOptions(container.X, container.Y)...)
	st := appstate.New(
		appstate.WithBoard(b),
		appstate.WithTheme(c.activeTheme()),
		appstate.WithWindowSize(win),
		appstate.WithSaveDir(c.saveDir),
		appstate.WithNotifier(c.notifier),
	)
	st.Run()
	return nil
}
