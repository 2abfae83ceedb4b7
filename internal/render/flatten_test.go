package render

import (
	"image"
	"image/color"
	"testing"
)

func TestFlattenTransparentTakesBackground(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(1, 1, color.RGBA{A: 255})

	out := Flatten(img, color.White)
	if got := out.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("transparent pixel = %+v, want white", got)
	}
	if got := out.RGBAAt(1, 1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("drawn pixel = %+v, want black", got)
	}
}

func TestFlattenIsOpaqueEverywhere(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 1, color.RGBA{R: 128, A: 128})
	out := Flatten(img, color.RGBA{10, 20, 30, 255})
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			if a := out.RGBAAt(x, y).A; a != 255 {
				t.Fatalf("alpha at (%d,%d) = %d", x, y, a)
			}
		}
	}
	if got := out.RGBAAt(0, 0); got != (color.RGBA{10, 20, 30, 255}) {
		t.Fatalf("background = %+v", got)
	}
}

func TestFlattenRebasesOrigin(t *testing.T) {
	img := image.NewRGBA(image.Rect(5, 5, 8, 9))
	out := Flatten(img, nil)
	if !out.Bounds().Eq(image.Rect(0, 0, 3, 4)) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if got := out.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("nil background should be white, got %+v", got)
	}
}

func TestDrawCheckerboard(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	light := color.RGBA{220, 220, 220, 255}
	dark := color.RGBA{192, 192, 192, 255}
	DrawCheckerboard(dst, dst.Bounds(), 2, light, dark)
	if dst.RGBAAt(0, 0) != light || dst.RGBAAt(2, 0) != dark || dst.RGBAAt(2, 2) != light {
		t.Fatalf("unexpected checker pattern")
	}
}
