package main

import (
	"flag"
	"fmt"

	"github.com/example/whiteboard/internal/display"
	"github.com/example/whiteboard/internal/tool"
)

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	fmt.Fprintln(c.stdout, "toolbar pens (* marks the default pen):")
	for idx, entry := range tool.PenColors() {
		marker := " "
		if entry == tool.Black {
			marker = "*"
		}
		hex := fmt.Sprintf("#%02X%02X%02X", entry.Color.R, entry.Color.G, entry.Color.B)
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(c.stdout, "%s %d: %-8s %s %s\n", marker, idx+1, entry.Name, hex, block)
	}
	return nil
}

func (c *colorsCmd) Program() string { return c.root.program + " colors" }

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *colorsCmd) Template() string {
	return "colors.txt"
}

type monitorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseMonitorsCmd(args []string, r *root) (*monitorsCmd, error) {
	fs := flag.NewFlagSet("monitors", flag.ExitOnError)
	cmd := &monitorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *monitorsCmd) Run() error {
	monitors, err := display.ListMonitors()
	if err != nil {
		return fmt.Errorf("list monitors: %w", err)
	}
	if len(monitors) == 0 {
		fmt.Fprintln(c.stdout, "no monitors available")
		return nil
	}
	fmt.Fprintln(c.stdout, "available monitors (* marks the primary monitor):")
	for _, mon := range monitors {
		marker := " "
		if mon.Primary {
			marker = "*"
		}
		fmt.Fprintf(c.stdout, "%s %d: %s %dx%d+%d+%d\n", marker, mon.Index, mon.Name,
			mon.Rect.Dx(), mon.Rect.Dy(), mon.Rect.Min.X, mon.Rect.Min.Y)
	}
	return nil
}

func (c *monitorsCmd) Program() string { return c.root.program + " monitors" }

func (c *monitorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *monitorsCmd) Template() string {
	return "monitors.txt"
}
