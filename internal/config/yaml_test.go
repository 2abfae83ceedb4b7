package config

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestYAMLRoundTrip(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
theme = dark
background = #102030
[tools]
pen_width = 4
[history]
limit = 12
[notify]
copy = true
[theme.board]
CanvasBorder = #FF0000
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf bytes.Buffer
	if err := cfg.WriteYAML(&buf); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	if !strings.Contains(buf.String(), "pen_width: 4") {
		t.Fatalf("unexpected yaml:\n%s", buf.String())
	}
	got, err := ParseYAML(&buf)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if got.String() != cfg.String() {
		t.Fatalf("round trip mismatch:\n%s\nvs\n%s", got, cfg)
	}
}

func TestParseYAMLDefaultsAndErrors(t *testing.T) {
	cfg, err := ParseYAML(strings.NewReader("tools:\n  eraser_width: 30\n"))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if cfg.Tools.EraserWidth != 30 || cfg.Tools.PenWidth != 2 || cfg.Resize.DebounceMS != 300 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Background != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("background = %v", cfg.Background)
	}

	if _, err := ParseYAML(strings.NewReader("background: nope\n")); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("err = %v, want ErrInvalidColor", err)
	}
	if _, err := ParseYAML(strings.NewReader("tools:\n  pen_width: 0\n")); err == nil {
		t.Fatalf("expected width error")
	}
	if _, err := ParseYAML(strings.NewReader("")); err != nil {
		t.Fatalf("empty document: %v", err)
	}
}

func TestLoaderYAMLFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "config.yaml")
	l := NewLoader("v1", path)

	cfg := New()
	cfg.History.Limit = 5
	if _, err := l.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "limit: 5") {
		t.Fatalf("not yaml:\n%s", data)
	}
	loaded, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.History.Limit != 5 {
		t.Fatalf("limit = %d", loaded.History.Limit)
	}
}
