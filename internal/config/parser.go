package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/whiteboard/internal/theme"
	"github.com/example/whiteboard/internal/tool"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			raw := strings.TrimSpace(line[1 : len(line)-1])
			currentSection = strings.ToLower(raw)
			currentTheme = nil

			if strings.HasPrefix(currentSection, "theme.") {
				name := raw[len("theme."):]
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = name
				cfg.Themes[name] = currentTheme
			}
			continue
		}

		// Key = Value or Key: Value
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			key, value, ok = strings.Cut(line, ":")
		}
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = theme.Set(currentTheme, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		case currentSection == "tools":
			err = setToolsField(&cfg.Tools, key, value)
		case currentSection == "history":
			if key == "limit" {
				cfg.History.Limit, err = parseInt(key, value, 0)
			}
		case currentSection == "resize":
			if key == "debounce_ms" {
				cfg.Resize.DebounceMS, err = parseInt(key, value, 0)
			}
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			section := currentSection
			if section == "" {
				section = "root"
			}
			return nil, fmt.Errorf("line %d [%s]: %w", lineNo, section, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	switch key {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	case "background":
		c, err := tool.ParsePenColor(value)
		if err != nil {
			return fmt.Errorf("%w for key %s: %v", ErrInvalidColor, key, err)
		}
		cfg.Background = tool.Opaque(c.Color)
	}
	return nil
}

func setToolsField(t *Tools, key, value string) error {
	var err error
	switch key {
	case "pen_width":
		t.PenWidth, err = parseInt(key, value, 1)
	case "eraser_width":
		t.EraserWidth, err = parseInt(key, value, 1)
	}
	return err
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch key {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func parseInt(key, value string, min int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	if n < min {
		return 0, fmt.Errorf("key %s must be at least %d", key, min)
	}
	return n, nil
}
