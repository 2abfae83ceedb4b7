package canvas

import (
	"image"
	"image/color"
)

// setThickPixel paints a square brush of side thick whose centre is (x, y).
// Even widths extend one pixel further up and left.
func setThickPixel(img *image.RGBA, x, y, thick int, col color.RGBA) {
	lo := -(thick / 2)
	hi := thick - 1 + lo
	b := img.Bounds()
	for dy := lo; dy <= hi; dy++ {
		py := y + dy
		if py < b.Min.Y || py >= b.Max.Y {
			continue
		}
		for dx := lo; dx <= hi; dx++ {
			px := x + dx
			if px < b.Min.X || px >= b.Max.X {
				continue
			}
			img.SetRGBA(px, py, col)
		}
	}
}

// drawLine stamps the brush along a Bresenham line from (x0, y0) to
// (x1, y1), both ends included.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA, thick int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
