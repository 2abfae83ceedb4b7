package board

import (
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/example/whiteboard/internal/gesture"
	"github.com/example/whiteboard/internal/resize"
)

// Default container size used when none is given.
const (
	DefaultContainerWidth  = 1200
	DefaultContainerHeight = 800
)

type options struct {
	log          *slog.Logger
	historyLimit int
	penWidth     int
	eraserWidth  int
	background   color.Color
	debounce     time.Duration
	post         func(func())
	afterFunc    func(time.Duration, func()) resize.Timer
	offset       gesture.OffsetFunc
	container    image.Point
}

// Option configures a Board.
type Option func(*options)

// WithLogger sets the logger shared by every component.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithHistoryLimit caps the undo stack. Zero keeps it unbounded.
func WithHistoryLimit(n int) Option {
	return func(o *options) { o.historyLimit = n }
}

func WithPenWidth(w int) Option {
	return func(o *options) { o.penWidth = w }
}

func WithEraserWidth(w int) Option {
	return func(o *options) { o.eraserWidth = w }
}

// WithBackground sets the colour exports are flattened onto. Defaults to
// white.
func WithBackground(c color.Color) Option {
	return func(o *options) { o.background = c }
}

// WithDebounce sets the quiet period before the final resize pass.
func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.debounce = d }
}

// WithPost sets the function that moves deferred work onto the goroutine
// owning the board. See Board.SetPost.
func WithPost(f func(func())) Option {
	return func(o *options) { o.post = f }
}

// WithAfterFunc replaces time.AfterFunc for the resize debounce.
func WithAfterFunc(f func(time.Duration, func()) resize.Timer) Option {
	return func(o *options) { o.afterFunc = f }
}

// WithOffset sets the page position of the surface origin.
func WithOffset(f gesture.OffsetFunc) Option {
	return func(o *options) { o.offset = f }
}

// WithContainer sets the initial container size the surface is fitted to.
func WithContainer(w, h int) Option {
	return func(o *options) {
		if w > 0 && h > 0 {
			o.container = image.Pt(w, h)
		}
	}
}
