// Package gesture turns pointer events into strokes on a surface.
package gesture

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/example/whiteboard/internal/tool"
)

// Kind identifies the input device that produced an event.
type Kind int

const (
	Mouse Kind = iota
	Touch
)

func (k Kind) String() string {
	switch k {
	case Mouse:
		return "mouse"
	case Touch:
		return "touch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// State is the tracker phase.
type State int

const (
	Idle State = iota
	Tracking
)

func (s State) String() string {
	if s == Tracking {
		return "tracking"
	}
	return "idle"
}

// Surface receives the strokes.
type Surface interface {
	ApplyStroke(points []image.Point, t tool.Tool)
}

// ToolSource supplies the tool for a new gesture.
type ToolSource interface {
	Active() tool.Tool
}

// OffsetFunc returns the page position of the surface origin. It is called
// on every event since layout can change at any time.
type OffsetFunc func() image.Point

// Tracker is not safe for concurrent use.
type Tracker struct {
	surface Surface
	tools   ToolSource
	offset  OffsetFunc
	onEnd   func()
	log     *slog.Logger

	state   State
	kind    Kind
	tool    tool.Tool
	last    image.Point
	hasLast bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithOffset sets the page offset source. The default offset is zero.
func WithOffset(f OffsetFunc) Option {
	return func(t *Tracker) {
		if f != nil {
			t.offset = f
		}
	}
}

// WithOnEnd sets the callback run when a gesture ends, by release or by
// cancellation.
func WithOnEnd(f func()) Option {
	return func(t *Tracker) { t.onEnd = f }
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.log = l
		}
	}
}

// New returns an idle tracker drawing onto surface with tools from src.
func New(surface Surface, src ToolSource, opts ...Option) *Tracker {
	t := &Tracker{
		surface: surface,
		tools:   src,
		offset:  func() image.Point { return image.Point{} },
		log:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// SetOffset replaces the page offset source. A nil f resets it to zero.
func (t *Tracker) SetOffset(f OffsetFunc) {
	if f == nil {
		f = func() image.Point { return image.Point{} }
	}
	t.offset = f
}

// Map converts a page position into surface coordinates.
func (t *Tracker) Map(page image.Point) image.Point {
	return page.Sub(t.offset())
}

func (t *Tracker) State() State { return t.state }

// Kind reports the device of the current or last gesture.
func (t *Tracker) Kind() Kind { return t.kind }

// Tool reports the tool latched by the current gesture. It is only
// meaningful while tracking.
func (t *Tracker) Tool() tool.Tool { return t.tool }

// Last returns the last surface position of the current gesture.
func (t *Tracker) Last() (image.Point, bool) { return t.last, t.hasLast }

// Down starts a gesture at page and marks the start point. A press while a
// gesture is already running is handled as a move. The result reports
// whether the host should suppress default handling of the event.
func (t *Tracker) Down(kind Kind, page image.Point) bool {
	if t.state == Tracking {
		return t.Move(kind, page)
	}
	p := t.Map(page)
	t.state = Tracking
	t.kind = kind
	t.tool = t.tools.Active()
	t.last, t.hasLast = p, true
	t.surface.ApplyStroke([]image.Point{p}, t.tool)
	t.log.Debug("gesture start", slog.String("kind", kind.String()),
		slog.String("tool", t.tool.String()), slog.Int("x", p.X), slog.Int("y", p.Y))
	return true
}

// Move extends the current gesture to page. Moves while idle are ignored.
func (t *Tracker) Move(kind Kind, page image.Point) bool {
	if t.state != Tracking {
		return false
	}
	p := t.Map(page)
	switch t.tool.Mode() {
	case tool.ModeErase:
		t.surface.ApplyStroke([]image.Point{p}, t.tool)
	default:
		// Without a start point the move only opens a new segment.
		if t.hasLast {
			t.surface.ApplyStroke([]image.Point{t.last, p}, t.tool)
		}
	}
	t.last, t.hasLast = p, true
	return true
}

// Break drops the last position of the current gesture, so the next move
// starts a new segment instead of joining a point that no longer matches
// the surface, for example after a resize.
func (t *Tracker) Break() {
	t.hasLast = false
}

// Up finishes the gesture. The release position adds no ink.
func (t *Tracker) Up(kind Kind, page image.Point) bool {
	return t.end("up")
}

// Cancel ends the gesture the same way a release does; the ink drawn so
// far is kept and recorded.
func (t *Tracker) Cancel() bool {
	return t.end("cancel")
}

func (t *Tracker) end(reason string) bool {
	if t.state != Tracking {
		return false
	}
	t.state = Idle
	t.hasLast = false
	t.log.Debug("gesture end", slog.String("reason", reason), slog.String("kind", t.kind.String()))
	if t.onEnd != nil {
		t.onEnd()
	}
	return true
}
