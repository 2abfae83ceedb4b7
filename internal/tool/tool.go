// Package tool defines the drawing tools of the whiteboard and the selector
// that holds the active one.
package tool

import (
	"fmt"
	"image/color"
)

// Mode identifies what a tool does to the surface.
type Mode int

const (
	ModeDraw Mode = iota
	ModeErase
)

func (m Mode) String() string {
	switch m {
	case ModeDraw:
		return "draw"
	case ModeErase:
		return "erase"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Cursor names the pointer style a host should show while a tool is active.
type Cursor string

const (
	CursorDefault Cursor = "default-cursor"
	CursorErase   Cursor = "erase-cursor"
)

const (
	DefaultPenWidth    = 2
	DefaultEraserWidth = 24
)

// Tool is an immutable tool description. A draw tool carries a colour and a
// width; an erase tool carries only a width and always reports a transparent
// colour, so it never inherits the colour of a previously selected pen.
type Tool struct {
	mode  Mode
	width int
	color color.RGBA
}

// Draw returns a pen tool.
func Draw(col color.RGBA, width int) Tool {
	return Tool{mode: ModeDraw, width: clampWidth(width), color: Opaque(col)}
}

// Erase returns an eraser tool.
func Erase(width int) Tool {
	return Tool{mode: ModeErase, width: clampWidth(width)}
}

func clampWidth(w int) int {
	if w < 1 {
		return 1
	}
	return w
}

func (t Tool) Mode() Mode { return t.mode }

func (t Tool) Width() int { return t.width }

// Color returns the stroke colour. Erase tools return color.RGBA{}.
func (t Tool) Color() color.RGBA {
	if t.mode == ModeErase {
		return color.RGBA{}
	}
	return t.color
}

func (t Tool) Cursor() Cursor {
	if t.mode == ModeErase {
		return CursorErase
	}
	return CursorDefault
}

func (t Tool) String() string {
	if t.mode == ModeErase {
		return fmt.Sprintf("erase(width=%d)", t.width)
	}
	return fmt.Sprintf("draw(#%02x%02x%02x, width=%d)", t.color.R, t.color.G, t.color.B, t.width)
}
