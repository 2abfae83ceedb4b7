package canvas

import (
	"image"
)

// Snapshot is an immutable capture of a surface. Only the surface creates
// snapshots and it always copies the pixels in, so later drawing never
// reaches a snapshot that is already on a history stack.
type Snapshot struct {
	width  int
	height int
	pix    []uint8 // RGBA, stride width*4
}

func newSnapshot(img *image.RGBA) *Snapshot {
	b := img.Bounds()
	s := &Snapshot{width: b.Dx(), height: b.Dy(), pix: make([]uint8, b.Dx()*b.Dy()*4)}
	rowLen := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		src := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(s.pix[y*rowLen:(y+1)*rowLen], img.Pix[src:src+rowLen])
	}
	return s
}

func (s *Snapshot) Width() int { return s.width }

func (s *Snapshot) Height() int { return s.height }

func (s *Snapshot) Bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }

// view wraps the pixels without copying. Callers must only read from it.
func (s *Snapshot) view() *image.RGBA {
	return &image.RGBA{Pix: s.pix, Stride: s.width * 4, Rect: s.Bounds()}
}

// Equal reports whether two snapshots hold identical dimensions and pixels.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.width != o.width || s.height != o.height || len(s.pix) != len(o.pix) {
		return false
	}
	for i := range s.pix {
		if s.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}
