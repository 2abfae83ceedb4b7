package tool

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrUnknownColor is returned when a colour specification cannot be parsed.
var ErrUnknownColor = errors.New("unknown color")

// PenColor is a named pen colour offered on the toolbar.
type PenColor struct {
	Name  string
	Color color.RGBA
}

var (
	Black = PenColor{Name: "black", Color: color.RGBA{0, 0, 0, 255}}
	Red   = PenColor{Name: "red", Color: color.RGBA{255, 0, 0, 255}}
	Blue  = PenColor{Name: "blue", Color: color.RGBA{0, 0, 255, 255}}
)

// PenColors returns the toolbar pens in display order.
func PenColors() []PenColor {
	return []PenColor{Black, Red, Blue}
}

// LookupPen returns the toolbar pen with the given name.
func LookupPen(name string) (PenColor, bool) {
	for _, p := range PenColors() {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return p, true
		}
	}
	return PenColor{}, false
}

// ParsePenColor resolves a toolbar pen name, an SVG colour name or a
// #rgb / #rrggbb hex value into a pen colour.
func ParsePenColor(spec string) (PenColor, error) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if s == "" {
		return PenColor{}, fmt.Errorf("%w: empty", ErrUnknownColor)
	}
	if p, ok := LookupPen(s); ok {
		return p, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return PenColor{Name: s, Color: c}, nil
	}
	if c, err := ParseHex(s); err == nil {
		return PenColor{Name: s, Color: c}, nil
	}
	return PenColor{}, fmt.Errorf("%w %q", ErrUnknownColor, spec)
}

// ParseHex parses #rgb, #rrggbb or #rrggbbaa. The digits are straight
// alpha; the result is premultiplied like every color.RGBA.
func ParseHex(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("%w %q: must start with #", ErrUnknownColor, s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("%w %q: invalid hex length", ErrUnknownColor, s)
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w %q: %v", ErrUnknownColor, s, err)
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}, nil
	}
	n := color.NRGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}
	return color.RGBAModel.Convert(n).(color.RGBA), nil
}

// Opaque returns c with full alpha, keeping its hue. c is premultiplied.
func Opaque(c color.RGBA) color.RGBA {
	if c.A != 0 && c.A != 255 {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		c = color.RGBA{R: n.R, G: n.G, B: n.B}
	}
	c.A = 255
	return c
}
