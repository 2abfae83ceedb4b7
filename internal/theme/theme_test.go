package theme

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	th, err := Parse(strings.NewReader("Name: mine\nbackground: #102030\nStatusText: navy\n# comment\nunknown: #FFFFFF\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "mine" {
		t.Errorf("name = %q", th.Name)
	}
	if th.Background != (color.RGBA{0x10, 0x20, 0x30, 255}) {
		t.Errorf("background = %v", th.Background)
	}
	if th.StatusText != (color.RGBA{0, 0, 128, 255}) {
		t.Errorf("status text = %v", th.StatusText)
	}
	if th.ButtonBorder != Default().ButtonBorder {
		t.Errorf("default not kept")
	}
}

func TestParseBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Background: #12")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	in := Default()
	in.Name = "rt"
	in.CheckerDark = color.RGBA{0, 0, 128, 128}
	var buf bytes.Buffer
	if err := Write(&buf, in); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(buf.String(), "CheckerDark: #0000FF80") {
		t.Fatalf("translucent colour not written straight:\n%s", buf.String())
	}
	out, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if *out != *in {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", in, out)
	}
}

func TestEmbeddedThemesParse(t *testing.T) {
	names := Names()
	if len(names) < 2 {
		t.Fatalf("embedded themes = %v", names)
	}
	l := &Loader{}
	for _, n := range names {
		th, err := l.Load(n)
		if err != nil {
			t.Fatalf("Load(%s): %v", n, err)
		}
		if th.Name != n {
			t.Errorf("theme %s has name %q", n, th.Name)
		}
	}
}

func TestLoaderOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "custom.theme"), []byte("Name: custom\nForeground: #FF0000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	inline := Default()
	inline.Name = "dark"
	l := &Loader{ConfigDir: dir, Inline: map[string]*Theme{"dark": inline}}

	if th, err := l.Load("dark"); err != nil || th != inline {
		t.Fatalf("inline theme not preferred: %v %v", th, err)
	}
	th, err := l.Load("custom")
	if err != nil {
		t.Fatalf("Load(custom): %v", err)
	}
	if th.Foreground != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("foreground = %v", th.Foreground)
	}
	if _, err := l.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if th, err := l.Load(""); err != nil || th.Name != "Default" {
		t.Fatalf("empty name: %v %v", th, err)
	}
}
