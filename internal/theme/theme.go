// Package theme holds the colour palettes of the desktop host.
package theme

import (
	"image/color"
)

// Theme defines the colours of the window chrome around the board.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window area around the board
	Foreground color.RGBA // Main text colour

	// Toolbar & status line
	ToolbarBackground color.RGBA
	StatusBackground  color.RGBA
	StatusText        color.RGBA

	// Tool buttons
	ButtonBackground         color.RGBA
	ButtonBackgroundHover    color.RGBA
	ButtonBackgroundActive   color.RGBA // Selected tool
	ButtonBackgroundDisabled color.RGBA // Undo/redo with empty stacks
	ButtonText               color.RGBA
	ButtonTextDisabled       color.RGBA
	ButtonBorder             color.RGBA

	// Board
	CanvasBorder color.RGBA
	CheckerLight color.RGBA // Letterbox pattern around the board
	CheckerDark  color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:                     "Default",
		Background:               color.RGBA{220, 220, 220, 255},
		Foreground:               color.RGBA{0, 0, 0, 255},
		ToolbarBackground:        color.RGBA{220, 220, 220, 255},
		StatusBackground:         color.RGBA{235, 235, 235, 255},
		StatusText:               color.RGBA{40, 40, 40, 255},
		ButtonBackground:         color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover:    color.RGBA{180, 180, 180, 255},
		ButtonBackgroundActive:   color.RGBA{150, 150, 150, 255},
		ButtonBackgroundDisabled: color.RGBA{215, 215, 215, 255},
		ButtonText:               color.RGBA{0, 0, 0, 255},
		ButtonTextDisabled:       color.RGBA{150, 150, 150, 255},
		ButtonBorder:             color.RGBA{0, 0, 0, 255},
		CanvasBorder:             color.RGBA{120, 120, 120, 255},
		CheckerLight:             color.RGBA{220, 220, 220, 255},
		CheckerDark:              color.RGBA{205, 205, 205, 255},
	}
}
