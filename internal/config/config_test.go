package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/boards
background = "#F0F0F0"

[tools]
pen_width = 4
eraser_width = 30

[history]
limit = 50

[resize]
debounce_ms = 150

[notify]
save = true
copy = false

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/boards" {
		t.Errorf("Expected save_dir '/tmp/boards', got '%s'", cfg.SaveDir)
	}
	if cfg.Background != (color.RGBA{0xF0, 0xF0, 0xF0, 255}) {
		t.Errorf("Unexpected background %v", cfg.Background)
	}
	if cfg.Tools.PenWidth != 4 || cfg.Tools.EraserWidth != 30 {
		t.Errorf("Unexpected tools %+v", cfg.Tools)
	}
	if cfg.History.Limit != 50 {
		t.Errorf("Unexpected history limit %d", cfg.History.Limit)
	}
	if cfg.Resize.Debounce() != 150*time.Millisecond {
		t.Errorf("Unexpected debounce %v", cfg.Resize.Debounce())
	}
	if !cfg.Notify.Save || cfg.Notify.Copy {
		t.Errorf("Unexpected notify %+v", cfg.Notify)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Background.R != 0x11 || th.Background.G != 0x11 || th.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", th.Background)
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("# nothing here\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Tools.PenWidth != 2 || cfg.Tools.EraserWidth != 24 {
		t.Errorf("tools = %+v", cfg.Tools)
	}
	if cfg.Resize.DebounceMS != 300 || cfg.History.Limit != 0 {
		t.Errorf("resize/history = %+v/%+v", cfg.Resize, cfg.History)
	}
	if cfg.Background != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background = %v", cfg.Background)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bad color", "background = nope"},
		{"bad width", "[tools]\npen_width = wide"},
		{"zero width", "[tools]\neraser_width = 0"},
		{"negative limit", "[history]\nlimit = -1"},
		{"bad bool", "[notify]\nsave = maybe"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tc.input)); err == nil {
				t.Fatalf("expected error for %q", tc.input)
			}
		})
	}
	cfg, err := Parse(strings.NewReader("background = #ff000080"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Background != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("background = %v, want opaque red", cfg.Background)
	}
	_, err = Parse(strings.NewReader("background = nope"))
	if !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("err = %v, want ErrInvalidColor", err)
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/boards
background = ivory

[tools]
pen_width = 3

[history]
limit = 7

[notify]
save = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Background != cfg2.Background {
		t.Errorf("Background mismatch: %v vs %v", cfg.Background, cfg2.Background)
	}
	if cfg.Tools != cfg2.Tools || cfg.History != cfg2.History || cfg.Resize != cfg2.Resize {
		t.Errorf("Section mismatch:\n%+v\n%+v", cfg, cfg2)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderOverrideAndSave(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "sub", "config.rc")
	l := NewLoader("v1", path)

	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load without file: %v", err)
	}
	cfg.SaveDir = dir
	cfg.Tools.EraserWidth = 40

	written, err := l.Save(cfg)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if written != path {
		t.Fatalf("written to %s, want %s", written, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	loaded, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.SaveDir != dir || loaded.Tools.EraserWidth != 40 {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestResolveTheme(t *testing.T) {
	cfg := New()
	cfg.Theme = "from-config"

	t.Setenv("WHITEBOARD_THEME", "")
	if got := ResolveTheme("", cfg); got != "from-config" {
		t.Errorf("got %q", got)
	}
	t.Setenv("WHITEBOARD_THEME", "from-env")
	if got := ResolveTheme("", cfg); got != "from-env" {
		t.Errorf("got %q", got)
	}
	if got := ResolveTheme("from-flag", cfg); got != "from-flag" {
		t.Errorf("got %q", got)
	}
}

func TestThemeLoaderUsesInlineThemes(t *testing.T) {
	cfg, err := Parse(strings.NewReader("[theme.board]\nCanvasBorder = #FF0000\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	th, err := ThemeLoader(cfg).Load("board")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.CanvasBorder != (color.RGBA{255, 0, 0, 255}) {
		t.Fatalf("border = %v", th.CanvasBorder)
	}
}
