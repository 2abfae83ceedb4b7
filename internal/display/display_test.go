package display

import (
	"errors"
	"image"
	"testing"
)

type fakeBackend struct {
	monitors []Monitor
	err      error
}

func (f fakeBackend) ListMonitors() ([]Monitor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.monitors, nil
}

func withBackend(t *testing.T, b backend) {
	t.Helper()
	prev := current
	current = b
	t.Cleanup(func() { current = prev })
}

var layout = []Monitor{
	{Index: 0, Name: "HDMI-1", Rect: image.Rect(0, 0, 1920, 1080)},
	{Index: 1, Name: "eDP-1", Rect: image.Rect(1920, 0, 3200, 800), Primary: true},
}

func TestFindMonitor(t *testing.T) {
	tests := []struct {
		sel  string
		want string
	}{
		{"", "HDMI-1"},
		{"primary", "eDP-1"},
		{"#1", "eDP-1"},
		{"0", "HDMI-1"},
		{"edp", "eDP-1"},
	}
	for _, tc := range tests {
		got, err := FindMonitor(layout, tc.sel)
		if err != nil {
			t.Fatalf("FindMonitor(%q): %v", tc.sel, err)
		}
		if got.Name != tc.want {
			t.Errorf("FindMonitor(%q) = %s, want %s", tc.sel, got.Name, tc.want)
		}
	}
	if _, err := FindMonitor(layout, "7"); err == nil {
		t.Fatalf("expected out of range error")
	}
	if _, err := FindMonitor(layout, "dp-9"); err == nil {
		t.Fatalf("expected not found error")
	}
	if _, err := FindMonitor(nil, ""); !errors.Is(err, errNoMonitors) {
		t.Fatalf("err = %v, want errNoMonitors", err)
	}
}

func TestWindowSize(t *testing.T) {
	if got := WindowSize(layout[0], 0.5); got != image.Pt(960, 540) {
		t.Fatalf("WindowSize = %v", got)
	}
	if got := WindowSize(layout[0], 0); got != image.Pt(1920, 1080) {
		t.Fatalf("WindowSize share 0 = %v", got)
	}
	small := Monitor{Rect: image.Rect(0, 0, 400, 300)}
	if got := WindowSize(small, 0.5); got != image.Pt(320, 240) {
		t.Fatalf("WindowSize small = %v", got)
	}
}

func TestInitialWindowSizeFallsBack(t *testing.T) {
	withBackend(t, fakeBackend{err: errors.New("no display")})
	got, err := InitialWindowSize("", 0.8)
	if err == nil {
		t.Fatalf("expected error")
	}
	if got != Fallback {
		t.Fatalf("size = %v, want fallback", got)
	}
}

func TestInitialWindowSize(t *testing.T) {
	withBackend(t, fakeBackend{monitors: layout})
	got, err := InitialWindowSize("primary", 0.5)
	if err != nil {
		t.Fatalf("InitialWindowSize: %v", err)
	}
	if got != image.Pt(640, 400) {
		t.Fatalf("size = %v", got)
	}
}
