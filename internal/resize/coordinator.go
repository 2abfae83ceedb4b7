package resize

import (
	"image"
	"log/slog"
	"time"

	"github.com/example/whiteboard/internal/canvas"
)

// DefaultDebounce is the quiet period before the final resize pass.
const DefaultDebounce = 300 * time.Millisecond

// Surface is what the coordinator rescales.
type Surface interface {
	Size() (int, int)
	ResizeToQuality(w, h int, q canvas.Quality)
	RestoreQuality(snap *canvas.Snapshot, q canvas.Quality)
}

// Timer is the handle returned by an AfterFunc.
type Timer interface {
	Stop() bool
}

// Config holds the coordinator collaborators. Zero values select the
// defaults.
type Config struct {
	// Debounce is the quiet period before the final pass.
	Debounce time.Duration
	// Source returns the committed state the final pass redraws from. A
	// nil snapshot makes the final pass rescale the live pixels instead.
	Source func() *canvas.Snapshot
	// Post hands the final pass to the goroutine that owns the surface.
	// The default runs it directly on the timer goroutine.
	Post func(func())
	// AfterFunc schedules f after d. Defaults to time.AfterFunc.
	AfterFunc func(d time.Duration, f func()) Timer
	// OnResize is called after every pass with the new surface size.
	OnResize func(w, h int, final bool)
	// Container is the initial container size. Defaults to the surface
	// size.
	Container image.Point
	Logger    *slog.Logger
}

// Coordinator applies container size changes to a surface. Every change is
// applied at once with a fast scaler; once no change has arrived for the
// debounce period a single high quality pass redraws the committed state at
// the final size. Only the newest pending pass ever runs.
type Coordinator struct {
	surface Surface
	cfg     Config

	container image.Point
	timer     Timer
	gen       uint64
}

// New returns a coordinator for surface.
func New(surface Surface, cfg Config) *Coordinator {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Source == nil {
		cfg.Source = func() *canvas.Snapshot { return nil }
	}
	if cfg.Post == nil {
		cfg.Post = func(f func()) { f() }
	}
	if cfg.AfterFunc == nil {
		cfg.AfterFunc = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	container := cfg.Container
	if container.X <= 0 || container.Y <= 0 {
		w, h := surface.Size()
		container = image.Pt(w, h)
	}
	return &Coordinator{surface: surface, cfg: cfg, container: container}
}

// Debounce returns the quiet period in use.
func (c *Coordinator) Debounce() time.Duration { return c.cfg.Debounce }

// Container returns the last container size passed to Resize.
func (c *Coordinator) Container() image.Point { return c.container }

// Resize records a new container size, rescales the surface immediately and
// rearms the debounce timer. Non-positive sizes are ignored.
func (c *Coordinator) Resize(containerW, containerH int) {
	if containerW <= 0 || containerH <= 0 {
		return
	}
	c.container = image.Pt(containerW, containerH)
	w, h := Fit(containerW, containerH)
	if cw, ch := c.surface.Size(); cw != w || ch != h {
		c.surface.ResizeToQuality(w, h, canvas.QualityFast)
		c.cfg.Logger.Debug("resize pass", slog.Int("width", w), slog.Int("height", h))
		if c.cfg.OnResize != nil {
			c.cfg.OnResize(w, h, false)
		}
	}
	c.arm()
}

func (c *Coordinator) arm() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.gen++
	gen := c.gen
	post := c.cfg.Post
	c.timer = c.cfg.AfterFunc(c.cfg.Debounce, func() {
		post(func() { c.fire(gen) })
	})
}

func (c *Coordinator) fire(gen uint64) {
	if gen != c.gen || c.timer == nil {
		return
	}
	c.timer = nil
	c.final()
}

// Pending reports whether a final pass is scheduled.
func (c *Coordinator) Pending() bool { return c.timer != nil }

// Flush runs the scheduled final pass now. It does nothing when no pass is
// pending.
func (c *Coordinator) Flush() {
	if c.timer == nil {
		return
	}
	c.timer.Stop()
	c.timer = nil
	c.gen++
	c.final()
}

// Stop drops any scheduled final pass.
func (c *Coordinator) Stop() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
}

func (c *Coordinator) final() {
	w, h := Fit(c.container.X, c.container.Y)
	c.surface.ResizeToQuality(w, h, canvas.QualityHigh)
	if src := c.cfg.Source(); src != nil {
		c.surface.RestoreQuality(src, canvas.QualityHigh)
	}
	c.cfg.Logger.Debug("resize final", slog.Int("width", w), slog.Int("height", h))
	if c.cfg.OnResize != nil {
		c.cfg.OnResize(w, h, true)
	}
}
