// Package display reports the monitor layout so the host can pick an
// initial window size for the board.
package display

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

type backend interface {
	ListMonitors() ([]Monitor, error)
}

var current backend = newBackend()

var errNoMonitors = errors.New("no monitors available")

// Fallback is the window size used when no monitor can be queried.
var Fallback = image.Pt(1200, 800)

// Monitor describes one output in the display layout.
type Monitor struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// ListMonitors queries the platform for the connected monitors.
func ListMonitors() ([]Monitor, error) {
	return current.ListMonitors()
}

// FindMonitor resolves a selector: empty picks the first monitor,
// "primary" the primary one, a number or "#n" an index, anything else a
// case-insensitive substring of the name.
func FindMonitor(monitors []Monitor, selector string) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, errNoMonitors
	}
	lower := strings.ToLower(strings.TrimSpace(selector))
	if lower == "" {
		return monitors[0], nil
	}
	if lower == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	lower = strings.TrimPrefix(lower, "#")
	if idx, err := strconv.Atoi(lower); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return Monitor{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), lower) {
			return mon, nil
		}
	}
	return Monitor{}, fmt.Errorf("monitor %q not found", selector)
}

// WindowSize returns the window size for a monitor: share of its width and
// height, never larger than the monitor and never smaller than 320x240.
func WindowSize(mon Monitor, share float64) image.Point {
	if share <= 0 || share > 1 {
		share = 1
	}
	w := int(float64(mon.Rect.Dx()) * share)
	h := int(float64(mon.Rect.Dy()) * share)
	if w < 320 {
		w = min(320, mon.Rect.Dx())
	}
	if h < 240 {
		h = min(240, mon.Rect.Dy())
	}
	if w <= 0 || h <= 0 {
		return Fallback
	}
	return image.Pt(w, h)
}

// InitialWindowSize picks the monitor matching selector and sizes a window
// for it. The error is returned together with Fallback when the layout
// cannot be read.
func InitialWindowSize(selector string, share float64) (image.Point, error) {
	monitors, err := ListMonitors()
	if err != nil {
		return Fallback, err
	}
	mon, err := FindMonitor(monitors, selector)
	if err != nil {
		return Fallback, err
	}
	return WindowSize(mon, share), nil
}
