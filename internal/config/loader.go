package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/whiteboard/internal/theme"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load attempts to load the configuration.
func (l *Loader) Load() (*Config, error) {
	path := l.GetConfigPath()
	if path == "" {
		return New(), nil // No config file found, return defaults
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	parse := Parse
	if isYAML(path) {
		parse = ParseYAML
	}
	cfg, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath is where Save writes when no config file exists yet.
func (l *Loader) DefaultPath() (string, error) {
	if l.OverridePath != "" {
		return l.OverridePath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, ".config", "whiteboard", "config.rc"), nil
}

// Save writes cfg to the active config file, creating the default one when
// none exists. It returns the path written.
func (l *Loader) Save(cfg *Config) (string, error) {
	path := l.GetConfigPath()
	if path == "" {
		var err error
		if path, err = l.DefaultPath(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	data := []byte(cfg.String())
	if isYAML(path) {
		var buf bytes.Buffer
		if err := cfg.WriteYAML(&buf); err != nil {
			return "", err
		}
		data = buf.Bytes()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

// ThemeLoader returns a theme loader that also resolves the themes defined
// in cfg.
func ThemeLoader(cfg *Config) *theme.Loader {
	l := theme.NewLoader()
	l.Inline = cfg.Themes
	return l
}

// ResolveTheme picks the theme name by precedence: flag, then the
// WHITEBOARD_THEME environment variable, then the config file.
func ResolveTheme(flagValue string, cfg *Config) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("WHITEBOARD_THEME"); env != "" {
		return env
	}
	return cfg.Theme
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	// 1. Variable override path
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	// 2. Local run directory (dev mode)
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".whiteboardrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	// 3. XDG Config Path, rc before yaml
	home, _ := os.UserHomeDir()
	for _, name := range []string{"config.rc", "config.yaml"} {
		xdgPath := filepath.Join(home, ".config", "whiteboard", name)
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	return ""
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
