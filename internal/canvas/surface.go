// Package canvas implements the live raster surface of the whiteboard.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log/slog"

	xdraw "golang.org/x/image/draw"

	"github.com/example/whiteboard/internal/render"
	"github.com/example/whiteboard/internal/tool"
)

// Quality selects the scaler used when a snapshot is redrawn at a different
// size.
type Quality int

const (
	// QualityFast is used for intermediate passes while a resize is in
	// progress. It may blur.
	QualityFast Quality = iota
	// QualityHigh is used for restores and the final resize pass.
	QualityHigh
)

func (q Quality) scaler() xdraw.Scaler {
	if q == QualityFast {
		return xdraw.ApproxBiLinear
	}
	return xdraw.CatmullRom
}

// Surface owns the live bitmap. Pixels start fully transparent; the
// background colour is only applied when exporting.
type Surface struct {
	img *image.RGBA
	log *slog.Logger
}

// Option configures a Surface.
type Option func(*Surface)

// WithLogger sets the logger used for debug traces.
func WithLogger(l *slog.Logger) Option {
	return func(s *Surface) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a transparent surface of the given size. Non-positive
// dimensions are raised to 1.
func New(width, height int, opts ...Option) *Surface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s := &Surface{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		log: slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Surface) Width() int { return s.img.Bounds().Dx() }

func (s *Surface) Height() int { return s.img.Bounds().Dy() }

// Size returns the surface dimensions.
func (s *Surface) Size() (int, int) { return s.Width(), s.Height() }

func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

// Image returns a copy of the live pixels.
func (s *Surface) Image() *image.RGBA {
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// DrawTo composites the surface onto dst inside r using op. The surface is
// scaled when r differs from its size.
func (s *Surface) DrawTo(dst draw.Image, r image.Rectangle, op draw.Op) {
	if r.Size() == s.img.Bounds().Size() {
		draw.Draw(dst, r, s.img, image.Point{}, op)
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, r, s.img, s.img.Bounds(), op, nil)
}

// ApplyStroke draws points with t. A draw tool renders a connected polyline
// (a single point renders a dot); an erase tool clears one square of side
// t.Width() centred on every point, without interpolating between them.
func (s *Surface) ApplyStroke(points []image.Point, t tool.Tool) {
	if len(points) == 0 {
		return
	}
	switch t.Mode() {
	case tool.ModeErase:
		for _, p := range points {
			s.eraseSquare(p, t.Width())
		}
	default:
		col := t.Color()
		if len(points) == 1 {
			setThickPixel(s.img, points[0].X, points[0].Y, t.Width(), col)
			return
		}
		for i := 1; i < len(points); i++ {
			a, b := points[i-1], points[i]
			drawLine(s.img, a.X, a.Y, b.X, b.Y, col, t.Width())
		}
	}
}

func (s *Surface) eraseSquare(p image.Point, side int) {
	min := p.Sub(image.Pt(side/2, side/2))
	r := image.Rectangle{Min: min, Max: min.Add(image.Pt(side, side))}
	draw.Draw(s.img, r.Intersect(s.img.Bounds()), image.Transparent, image.Point{}, draw.Src)
}

// Clear makes every pixel transparent.
func (s *Surface) Clear() {
	clear(s.img.Pix)
}

// Fill paints the whole surface with c.
func (s *Surface) Fill(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
}

// Snapshot captures the current pixels.
func (s *Surface) Snapshot() *Snapshot {
	return newSnapshot(s.img)
}

// Restore replaces the surface content with snap, scaled to the current
// dimensions.
func (s *Surface) Restore(snap *Snapshot) {
	s.RestoreQuality(snap, QualityHigh)
}

// RestoreQuality is Restore with an explicit scaler quality. Snapshots of
// the same size are copied bit for bit.
func (s *Surface) RestoreQuality(snap *Snapshot, q Quality) {
	if snap == nil {
		return
	}
	if snap.width == s.Width() && snap.height == s.Height() {
		copy(s.img.Pix, snap.pix)
		return
	}
	s.log.Debug("restore rescale",
		slog.Int("from_w", snap.width), slog.Int("from_h", snap.height),
		slog.Int("to_w", s.Width()), slog.Int("to_h", s.Height()))
	s.Clear()
	src := snap.view()
	q.scaler().Scale(s.img, s.img.Bounds(), src, src.Bounds(), draw.Src, nil)
}

// ResizeTo changes the surface dimensions, redrawing the previous content
// scaled to the new size.
func (s *Surface) ResizeTo(width, height int) {
	s.ResizeToQuality(width, height, QualityHigh)
}

// ResizeToQuality is ResizeTo with an explicit scaler quality. Non-positive
// or unchanged dimensions are ignored.
func (s *Surface) ResizeToQuality(width, height int, q Quality) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == s.Width() && height == s.Height() {
		return
	}
	prev := s.Snapshot()
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.RestoreQuality(prev, q)
	s.log.Debug("surface resized", slog.Int("width", width), slog.Int("height", height))
}

// Export returns an opaque copy of the surface composited over background.
func (s *Surface) Export(background color.Color) *image.RGBA {
	return render.Flatten(s.img, background)
}

// EncodePNG writes the exported image as PNG.
func (s *Surface) EncodePNG(w io.Writer, background color.Color) error {
	return png.Encode(w, s.Export(background))
}
