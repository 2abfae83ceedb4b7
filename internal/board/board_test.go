package board

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"
	"time"

	"github.com/example/whiteboard/internal/gesture"
	"github.com/example/whiteboard/internal/resize"
	"github.com/example/whiteboard/internal/tool"
)

type manualTimer struct {
	f       func()
	stopped bool
}

func (m *manualTimer) Stop() bool {
	was := !m.stopped
	m.stopped = true
	return was
}

type manualClock struct{ last *manualTimer }

func (c *manualClock) AfterFunc(_ time.Duration, f func()) resize.Timer {
	c.last = &manualTimer{f: f}
	return c.last
}

func (c *manualClock) fire() {
	if c.last != nil && !c.last.stopped {
		c.last.f()
	}
}

func stroke(b *Board, pts ...image.Point) {
	b.PointerDown(gesture.Mouse, pts[0])
	for _, p := range pts[1:] {
		b.PointerMove(gesture.Mouse, p)
	}
	b.PointerUp(gesture.Mouse, pts[len(pts)-1])
}

func TestNewBoardFitsContainer(t *testing.T) {
	b := New()
	if w, h := b.Size(); w != 1200 || h != 792 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if b.CanUndo() || b.CanRedo() {
		t.Fatalf("fresh board has history")
	}
	if b.ResizePending() {
		t.Fatalf("fresh board has a pending resize")
	}
}

func TestDrawUndoRedo(t *testing.T) {
	b := New(WithContainer(100, 100))
	stroke(b, image.Pt(10, 10), image.Pt(40, 10))
	drawn := b.Image()
	if drawn.RGBAAt(25, 10).A == 0 {
		t.Fatalf("stroke not drawn")
	}
	if !b.Undo() {
		t.Fatalf("undo failed")
	}
	if b.Image().RGBAAt(25, 10).A != 0 {
		t.Fatalf("undo kept ink")
	}
	if !b.Redo() {
		t.Fatalf("redo failed")
	}
	if !bytes.Equal(b.Image().Pix, drawn.Pix) {
		t.Fatalf("redo differs from drawn state")
	}
}

func TestOffsetMapping(t *testing.T) {
	b := New(WithContainer(300, 300), WithOffset(func() image.Point { return image.Pt(50, 50) }))
	if got := b.MapPoint(image.Pt(150, 150)); got != image.Pt(100, 100) {
		t.Fatalf("MapPoint = %v", got)
	}
	stroke(b, image.Pt(150, 150))
	if b.Image().RGBAAt(100, 100).A == 0 {
		t.Fatalf("dot not at mapped position")
	}
}

func TestEraseExportsBackground(t *testing.T) {
	b := New(WithContainer(100, 100), WithBackground(color.RGBA{10, 20, 30, 255}))
	b.Fill(color.Black)
	b.SelectErase()
	stroke(b, image.Pt(30, 30))
	out := b.Export()
	if got := out.RGBAAt(30, 30); got != (color.RGBA{10, 20, 30, 255}) {
		t.Fatalf("erased pixel = %v", got)
	}
	if got := out.RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("filled pixel = %v", got)
	}
}

func TestUndoDuringGestureCommitsFirst(t *testing.T) {
	b := New(WithContainer(100, 100))
	stroke(b, image.Pt(5, 5))
	b.PointerDown(gesture.Mouse, image.Pt(50, 50))
	if !b.Undo() {
		t.Fatalf("undo failed")
	}
	if b.Tracking() {
		t.Fatalf("gesture still running after undo")
	}
	img := b.Image()
	if img.RGBAAt(50, 50).A != 0 {
		t.Fatalf("in-progress stroke survived undo")
	}
	if img.RGBAAt(5, 5).A == 0 {
		t.Fatalf("earlier stroke lost")
	}
	if !b.CanRedo() {
		t.Fatalf("interrupted stroke not redoable")
	}
}

func TestClearIsUndoable(t *testing.T) {
	b := New(WithContainer(100, 100))
	stroke(b, image.Pt(20, 20), image.Pt(20, 40))
	b.Clear()
	if b.Image().RGBAAt(20, 30).A != 0 {
		t.Fatalf("clear left ink")
	}
	b.Undo()
	if b.Image().RGBAAt(20, 30).A == 0 {
		t.Fatalf("undo of clear lost ink")
	}
}

func TestHistoryLimit(t *testing.T) {
	b := New(WithContainer(100, 100), WithHistoryLimit(1))
	stroke(b, image.Pt(10, 10))
	stroke(b, image.Pt(20, 20))
	if u, _ := b.HistoryDepths(); u != 1 {
		t.Fatalf("undo depth = %d", u)
	}
}

func TestToolSelection(t *testing.T) {
	b := New(WithPenWidth(4), WithEraserWidth(10))
	var changes []tool.Tool
	b.OnToolChange(func(t tool.Tool) { changes = append(changes, t) })
	b.SelectDraw(tool.Red)
	b.SelectErase()
	if len(changes) != 2 {
		t.Fatalf("changes = %v", changes)
	}
	if changes[0].Width() != 4 || changes[1].Width() != 10 {
		t.Fatalf("widths = %d/%d", changes[0].Width(), changes[1].Width())
	}
	if b.ActiveTool().Cursor() != tool.CursorErase {
		t.Fatalf("cursor = %v", b.ActiveTool().Cursor())
	}
}

func TestResizeDebounce(t *testing.T) {
	clock := &manualClock{}
	var posted []func()
	b := New(WithContainer(1000, 800), WithAfterFunc(clock.AfterFunc))
	b.SetPost(func(f func()) { posted = append(posted, f) })
	stroke(b, image.Pt(100, 330), image.Pt(900, 330))

	b.Resize(700, 800)
	b.Resize(800, 400)
	if w, h := b.Size(); w != 600 || h != 400 {
		t.Fatalf("size after fast pass = %dx%d", w, h)
	}
	clock.fire()
	if len(posted) != 1 {
		t.Fatalf("posted = %d", len(posted))
	}
	posted[0]()
	if b.ResizePending() {
		t.Fatalf("resize still pending")
	}
	if a := b.Image().RGBAAt(300, 200).A; a < 128 {
		t.Fatalf("stroke lost on resize, alpha=%d", a)
	}
}

func TestResizeDuringGestureKeepsStroke(t *testing.T) {
	b := New(WithContainer(1000, 800))
	b.PointerDown(gesture.Mouse, image.Pt(500, 300))
	b.Resize(1000, 700)
	b.FlushResize()
	if !b.Tracking() {
		t.Fatalf("resize ended the gesture")
	}
	b.PointerUp(gesture.Mouse, image.Pt(500, 300))
	if !b.CanUndo() {
		t.Fatalf("stroke not committed")
	}
}

func TestResizeDuringGestureStartsNewSegment(t *testing.T) {
	clock := &manualClock{}
	b := New(WithContainer(1000, 800), WithAfterFunc(clock.AfterFunc))
	b.PointerDown(gesture.Mouse, image.Pt(900, 600))
	b.Resize(800, 400)
	if w, h := b.Size(); w != 600 || h != 400 {
		t.Fatalf("size = %dx%d, want 600x400", w, h)
	}
	b.PointerMove(gesture.Mouse, image.Pt(100, 100))
	b.PointerMove(gesture.Mouse, image.Pt(120, 100))
	b.PointerUp(gesture.Mouse, image.Pt(120, 100))

	img := b.Image()
	inked := 0
	for y := 150; y < 320; y++ {
		for x := 200; x < 480; x++ {
			if img.RGBAAt(x, y).A != 0 {
				inked++
			}
		}
	}
	if inked != 0 {
		t.Fatalf("%d pixels joined the stroke across the resize", inked)
	}
	if a := img.RGBAAt(110, 100).A; a != 255 {
		t.Fatalf("segment after resize missing, alpha=%d", a)
	}
	if !b.CanUndo() {
		t.Fatalf("stroke not committed")
	}
}

func TestTranslucentFillExport(t *testing.T) {
	b := New(WithContainer(30, 30))
	half, err := tool.ParsePenColor("#ff000080")
	if err != nil {
		t.Fatalf("ParsePenColor: %v", err)
	}
	b.Fill(half.Color)
	got := b.Export().RGBAAt(5, 5)
	if got.R < 250 || got.G < 120 || got.G > 135 || got.B < 120 || got.B > 135 || got.A != 255 {
		t.Fatalf("export = %v, want about {255 127 127 255}", got)
	}
}

func TestModifiedTracksExport(t *testing.T) {
	b := New(WithContainer(100, 100))
	if b.Modified() {
		t.Fatalf("blank board reported modified")
	}
	stroke(b, image.Pt(10, 10), image.Pt(40, 10))
	if !b.Modified() {
		t.Fatalf("stroke not reported")
	}
	if err := b.WritePNG(io.Discard); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	if b.Modified() {
		t.Fatalf("modified after export")
	}
	b.Undo()
	if !b.Modified() {
		t.Fatalf("undo after export not reported")
	}
	b.Redo()
	if b.Modified() {
		t.Fatalf("redo back to the exported drawing reported modified")
	}
}

func TestWritePNG(t *testing.T) {
	b := New(WithContainer(30, 30))
	var buf bytes.Buffer
	if err := b.WritePNG(&buf); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w, h := b.Size(); img.Bounds().Dx() != w || img.Bounds().Dy() != h {
		t.Fatalf("png bounds %v, board %dx%d", img.Bounds(), w, h)
	}
}
