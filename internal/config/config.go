package config

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"
	"time"

	"github.com/example/whiteboard/internal/theme"
	"github.com/example/whiteboard/internal/tool"
)

// ErrInvalidColor is returned for colour values that cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Tools holds the stroke widths.
type Tools struct {
	PenWidth    int
	EraserWidth int
}

// History holds undo settings.
type History struct {
	// Limit caps the undo stack; 0 means unbounded.
	Limit int
}

// Resize holds the resize debounce.
type Resize struct {
	DebounceMS int
}

// Debounce returns the configured quiet period.
func (r Resize) Debounce() time.Duration {
	return time.Duration(r.DebounceMS) * time.Millisecond
}

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme      string
	SaveDir    string
	Background color.RGBA
	Tools      Tools
	History    History
	Resize     Resize
	Notify     Notify
	Themes     map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:      "", // Empty lets the environment or the built-in theme win
		Background: color.RGBA{255, 255, 255, 255},
		Tools: Tools{
			PenWidth:    tool.DefaultPenWidth,
			EraserWidth: tool.DefaultEraserWidth,
		},
		Resize: Resize{DebounceMS: 300},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "background = %s\n", theme.Hex(c.Background))
	sb.WriteString("\n")

	sb.WriteString("[tools]\n")
	fmt.Fprintf(&sb, "pen_width = %d\n", c.Tools.PenWidth)
	fmt.Fprintf(&sb, "eraser_width = %d\n", c.Tools.EraserWidth)
	sb.WriteString("\n")

	sb.WriteString("[history]\n")
	fmt.Fprintf(&sb, "limit = %d\n", c.History.Limit)
	sb.WriteString("\n")

	sb.WriteString("[resize]\n")
	fmt.Fprintf(&sb, "debounce_ms = %d\n", c.Resize.DebounceMS)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	themeNames := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = theme.Write(&sb, c.Themes[name])
		sb.WriteString("\n")
	}

	return sb.String()
}
