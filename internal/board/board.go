// Package board ties the surface, tools, gestures, history and resize
// handling of a single whiteboard together.
//
// A Board belongs to one goroutine. Deferred work from the resize debounce
// is handed back through the post function so that every mutation happens
// on that goroutine.
package board

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"time"

	"github.com/example/whiteboard/internal/canvas"
	"github.com/example/whiteboard/internal/gesture"
	"github.com/example/whiteboard/internal/history"
	"github.com/example/whiteboard/internal/resize"
	"github.com/example/whiteboard/internal/tool"
)

type Board struct {
	surface  *canvas.Surface
	selector *tool.Selector
	tracker  *gesture.Tracker
	history  *history.History
	resizer  *resize.Coordinator

	background color.Color
	exported   *canvas.Snapshot
	post       func(func())
	log        *slog.Logger
}

// New builds a board fitted to the configured container with an empty,
// committed surface.
func New(opts ...Option) *Board {
	o := options{
		background: color.White,
		container:  image.Pt(DefaultContainerWidth, DefaultContainerHeight),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.New(slog.DiscardHandler)
	}
	if o.background == nil {
		o.background = color.White
	}
	b := &Board{
		background: o.background,
		post:       o.post,
		log:        o.log,
	}
	w, h := resize.Fit(o.container.X, o.container.Y)
	b.surface = canvas.New(w, h, canvas.WithLogger(o.log.With("component", "canvas")))
	b.selector = tool.NewSelector(o.penWidth, o.eraserWidth)
	b.history = history.New(b.surface, o.historyLimit, o.log.With("component", "history"))
	b.tracker = gesture.New(b.surface, b.selector,
		gesture.WithOffset(o.offset),
		gesture.WithOnEnd(b.history.RecordGestureEnd),
		gesture.WithLogger(o.log.With("component", "gesture")),
	)
	b.resizer = resize.New(b.surface, resize.Config{
		Debounce:  o.debounce,
		Source:    b.resizeSource,
		Post:      b.postFunc,
		AfterFunc: o.afterFunc,
		Container: o.container,
		OnResize:  b.resized,
		Logger:    o.log.With("component", "resize"),
	})
	b.history.Reset(b.surface.Snapshot())
	b.exported = b.history.Current()
	b.log.Debug("board ready", slog.Int("width", w), slog.Int("height", h))
	return b
}

// SetPost replaces the post function. A nil f runs deferred work directly
// on the timer goroutine.
func (b *Board) SetPost(f func(func())) { b.post = f }

func (b *Board) postFunc(f func()) {
	if b.post == nil {
		f()
		return
	}
	b.post(f)
}

// The final resize pass rescales the live pixels while a stroke is in
// progress, since the committed state does not hold it yet.
func (b *Board) resizeSource() *canvas.Snapshot {
	if b.tracker.State() == gesture.Tracking {
		return nil
	}
	return b.history.Current()
}

// SetOffset replaces the source of the surface's page offset, read on every
// pointer event.
func (b *Board) SetOffset(f gesture.OffsetFunc) { b.tracker.SetOffset(f) }

// resized breaks the stroke in progress. Its last point belongs to the
// surface size before the pass.
func (b *Board) resized(w, h int, final bool) {
	if b.tracker.State() == gesture.Tracking {
		b.tracker.Break()
	}
}

// PointerDown starts a gesture at a page position. The result reports
// whether the host should suppress default handling of the event.
func (b *Board) PointerDown(kind gesture.Kind, page image.Point) bool {
	return b.tracker.Down(kind, page)
}

func (b *Board) PointerMove(kind gesture.Kind, page image.Point) bool {
	return b.tracker.Move(kind, page)
}

func (b *Board) PointerUp(kind gesture.Kind, page image.Point) bool {
	return b.tracker.Up(kind, page)
}

// PointerCancel ends the gesture and keeps what was drawn.
func (b *Board) PointerCancel() bool {
	return b.tracker.Cancel()
}

// Tracking reports whether a gesture is in progress.
func (b *Board) Tracking() bool { return b.tracker.State() == gesture.Tracking }

// MapPoint converts a page position into surface coordinates.
func (b *Board) MapPoint(page image.Point) image.Point { return b.tracker.Map(page) }

func (b *Board) SelectDraw(c tool.PenColor) tool.Tool { return b.selector.SelectDraw(c) }

func (b *Board) SelectErase() tool.Tool { return b.selector.SelectErase() }

func (b *Board) ActiveTool() tool.Tool { return b.selector.Active() }

func (b *Board) Pen() tool.PenColor { return b.selector.Pen() }

// OnToolChange registers fn to run after every tool selection.
func (b *Board) OnToolChange(fn func(tool.Tool)) { b.selector.Subscribe(fn) }

// OnHistoryChange registers fn to run after every history change with the
// availability of undo and redo.
func (b *Board) OnHistoryChange(fn func(canUndo, canRedo bool)) { b.history.OnChange = fn }

// Undo ends any running gesture, recording it, and then steps back one
// committed state.
func (b *Board) Undo() bool {
	b.tracker.Cancel()
	return b.history.Undo()
}

func (b *Board) Redo() bool {
	b.tracker.Cancel()
	return b.history.Redo()
}

// Clear wipes the surface as one undoable step.
func (b *Board) Clear() {
	b.tracker.Cancel()
	b.history.RecordClear()
}

// Fill paints the surface with c as one undoable step.
func (b *Board) Fill(c color.Color) {
	b.tracker.Cancel()
	b.history.Commit(func() { b.surface.Fill(c) })
}

func (b *Board) CanUndo() bool { return b.history.CanUndo() }

func (b *Board) CanRedo() bool { return b.history.CanRedo() }

// HistoryDepths returns the sizes of the undo and redo stacks.
func (b *Board) HistoryDepths() (undo, redo int) { return b.history.Depths() }

// Resize fits the surface to a new container size.
func (b *Board) Resize(containerW, containerH int) {
	b.resizer.Resize(containerW, containerH)
}

// FlushResize runs a pending final resize pass now.
func (b *Board) FlushResize() { b.resizer.Flush() }

// ResizePending reports whether a final resize pass is scheduled.
func (b *Board) ResizePending() bool { return b.resizer.Pending() }

// Close drops any scheduled work.
func (b *Board) Close() { b.resizer.Stop() }

func (b *Board) Size() (int, int) { return b.surface.Size() }

// Image returns a copy of the live, unflattened pixels.
func (b *Board) Image() *image.RGBA { return b.surface.Image() }

// DrawTo composites the live pixels onto dst inside r.
func (b *Board) DrawTo(dst *image.RGBA, r image.Rectangle) {
	b.surface.DrawTo(dst, r, draw.Over)
}

func (b *Board) Background() color.Color { return b.background }

// Export returns the surface flattened onto the background colour.
func (b *Board) Export() *image.RGBA { return b.surface.Export(b.background) }

// WritePNG encodes Export as PNG.
func (b *Board) WritePNG(w io.Writer) error {
	if err := png.Encode(w, b.Export()); err != nil {
		return err
	}
	b.exported = b.history.Current()
	return nil
}

// Modified reports whether the committed drawing differs from the one last
// written with WritePNG, or from the blank board when nothing was written.
func (b *Board) Modified() bool {
	return !b.history.Current().Equal(b.exported)
}

// Debounce reports the resize quiet period in use.
func (b *Board) Debounce() time.Duration { return b.resizer.Debounce() }
