// Package render holds compositing helpers shared by export and the host.
package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Flatten composites img over an opaque background and returns the result.
// Transparent regions of img, such as erased areas, take the background
// colour. The output always has a zero-based origin.
func Flatten(img *image.RGBA, background color.Color) *image.RGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	bg := opaque(background)
	draw.Draw(out, out.Bounds(), &image.Uniform{bg}, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

func opaque(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{255, 255, 255, 255}
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return color.RGBA{255, 255, 255, 255}
	}
	// un-premultiply so a translucent background keeps its hue
	return color.RGBA{
		R: uint8((r * 0xffff / a) >> 8),
		G: uint8((g * 0xffff / a) >> 8),
		B: uint8((b * 0xffff / a) >> 8),
		A: 255,
	}
}

// DrawCheckerboard fills rect of dst with a checkerboard of the given colours.
// size controls the square size.
func DrawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	if size <= 0 {
		size = 8
	}
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}
