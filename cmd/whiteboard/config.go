package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/whiteboard/internal/config"
)

type configCmd struct {
	*root
	fs     *flag.FlagSet
	format string
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.StringVar(&c.format, "format", "rc", "output format for print: rc or yaml")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Program() string { return c.root.program + " config" }

func (c *configCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *configCmd) Template() string { return "config.txt" }

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}

	switch args[0] {
	case "print":
		switch c.format {
		case "rc":
			fmt.Fprint(c.stdout, c.root.config.String())
			return nil
		case "yaml":
			return c.root.config.WriteYAML(c.stdout)
		default:
			return fmt.Errorf("unknown config format: %s", c.format)
		}
	case "save":
		path, err := config.NewLoader(version, configPathOverride).Save(c.root.config)
		if err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
		return nil
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}
