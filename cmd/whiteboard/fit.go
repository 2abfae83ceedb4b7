package main

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/example/whiteboard/internal/resize"
)

type fitCmd struct {
	*root
	fs            *flag.FlagSet
	width, height int
}

func parseFitCmd(args []string, r *root) (*fitCmd, error) {
	fs := flag.NewFlagSet("fit", flag.ExitOnError)
	c := &fitCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 2 {
		return nil, &UsageError{of: c}
	}
	var err error
	if c.width, err = strconv.Atoi(fs.Arg(0)); err != nil {
		return nil, fmt.Errorf("invalid width %q: %w", fs.Arg(0), err)
	}
	if c.height, err = strconv.Atoi(fs.Arg(1)); err != nil {
		return nil, fmt.Errorf("invalid height %q: %w", fs.Arg(1), err)
	}
	return c, nil
}

func (c *fitCmd) Program() string { return c.root.program + " fit" }

func (c *fitCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *fitCmd) Template() string { return "fit.txt" }

func (c *fitCmd) Run() error {
	w, h := resize.Fit(c.width, c.height)
	fmt.Fprintf(c.stdout, "%dx%d\n", w, h)
	return nil
}
