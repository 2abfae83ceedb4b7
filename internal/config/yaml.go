package config

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/example/whiteboard/internal/theme"
)

// document is the YAML layout of a Config. It mirrors the rc sections.
type document struct {
	Theme      string `yaml:"theme,omitempty"`
	SaveDir    string `yaml:"save_dir,omitempty"`
	Background string `yaml:"background"`
	Tools      struct {
		PenWidth    int `yaml:"pen_width"`
		EraserWidth int `yaml:"eraser_width"`
	} `yaml:"tools"`
	History struct {
		Limit int `yaml:"limit"`
	} `yaml:"history"`
	Resize struct {
		DebounceMS int `yaml:"debounce_ms"`
	} `yaml:"resize"`
	Notify struct {
		Save bool `yaml:"save"`
		Copy bool `yaml:"copy"`
	} `yaml:"notify"`
	Themes map[string]map[string]string `yaml:"themes,omitempty"`
}

func toDocument(c *Config) document {
	var d document
	d.Theme = c.Theme
	d.SaveDir = c.SaveDir
	d.Background = theme.Hex(c.Background)
	d.Tools.PenWidth = c.Tools.PenWidth
	d.Tools.EraserWidth = c.Tools.EraserWidth
	d.History.Limit = c.History.Limit
	d.Resize.DebounceMS = c.Resize.DebounceMS
	d.Notify.Save = c.Notify.Save
	d.Notify.Copy = c.Notify.Copy
	if len(c.Themes) > 0 {
		d.Themes = make(map[string]map[string]string, len(c.Themes))
		for name, t := range c.Themes {
			d.Themes[name] = theme.Fields(t)
		}
	}
	return d
}

// WriteYAML writes c as YAML.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDocument(c)); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// ParseYAML reads a configuration written by WriteYAML. Missing keys keep
// their defaults and values are validated like the rc format.
func ParseYAML(r io.Reader) (*Config, error) {
	d := toDocument(New())
	if err := yaml.NewDecoder(r).Decode(&d); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	cfg := New()
	for _, kv := range [][2]string{{"theme", d.Theme}, {"save_dir", d.SaveDir}, {"background", d.Background}} {
		if err := setRootField(cfg, kv[0], kv[1]); err != nil {
			return nil, err
		}
	}
	var err error
	if cfg.Tools.PenWidth, err = parseInt("pen_width", strconv.Itoa(d.Tools.PenWidth), 1); err != nil {
		return nil, fmt.Errorf("tools: %w", err)
	}
	if cfg.Tools.EraserWidth, err = parseInt("eraser_width", strconv.Itoa(d.Tools.EraserWidth), 1); err != nil {
		return nil, fmt.Errorf("tools: %w", err)
	}
	if cfg.History.Limit, err = parseInt("limit", strconv.Itoa(d.History.Limit), 0); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	if cfg.Resize.DebounceMS, err = parseInt("debounce_ms", strconv.Itoa(d.Resize.DebounceMS), 0); err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	cfg.Notify.Save = d.Notify.Save
	cfg.Notify.Copy = d.Notify.Copy

	for name, fields := range d.Themes {
		t := theme.Default()
		t.Name = name
		for key, value := range fields {
			if err := theme.Set(t, key, value); err != nil {
				return nil, fmt.Errorf("theme %s: %w", name, err)
			}
		}
		cfg.Themes[name] = t
	}
	return cfg, nil
}
