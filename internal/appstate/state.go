// Package appstate runs the desktop window that hosts a whiteboard.
package appstate

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/whiteboard/internal/board"
	"github.com/example/whiteboard/internal/clipboard"
	"github.com/example/whiteboard/internal/gesture"
	"github.com/example/whiteboard/internal/notify"
	"github.com/example/whiteboard/internal/theme"
	"github.com/example/whiteboard/internal/tool"
)

const messageDuration = 2 * time.Second

// AppState holds the window configuration and the board it shows.
type AppState struct {
	Board      *board.Board
	Theme      *theme.Theme
	SaveDir    string
	WindowSize image.Point
	Title      string

	notifier  *notify.Notifier
	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithBoard sets the board shown in the window.
func WithBoard(b *board.Board) Option { return func(a *AppState) { a.Board = b } }

// WithTheme sets the chrome colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithSaveDir sets the directory downloads are written to.
func WithSaveDir(dir string) Option { return func(a *AppState) { a.SaveDir = dir } }

// WithWindowSize sets the initial window size.
func WithWindowSize(p image.Point) Option { return func(a *AppState) { a.WindowSize = p } }

// WithNotifier sets the notifier used after downloads and copies.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{Title: "Whiteboard"}
	for _, o := range opts {
		o(a)
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	if a.WindowSize.X <= 0 || a.WindowSize.Y <= 0 {
		a.WindowSize = WindowSize(image.Pt(board.DefaultContainerWidth, board.DefaultContainerHeight))
	}
	if a.Board == nil {
		c := ContainerSize(a.WindowSize.X, a.WindowSize.Y)
		a.Board = board.New(board.WithContainer(c.X, c.Y))
	}
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		a.Board.Close()
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// postedFunc carries deferred board work, such as the final resize pass,
// onto the event loop.
type postedFunc struct{ fn func() }

// fullscreenSupported reports whether the window system lets the host
// toggle fullscreen. shiny exposes no such control.
func fullscreenSupported() bool { return false }

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// ui is the event loop state. Only the loop goroutine touches it.
type ui struct {
	a         *AppState
	w         screen.Window
	width     int
	height    int
	buttons   []*Button
	hover     *Button
	shortcuts map[KeyShortcut]string
	pointer   image.Point
	inCanvas  bool
	touchSeq  touch.Sequence
	touching  bool

	message      string
	messageUntil time.Time
	quit         bool
}

func (a *AppState) Main(s screen.Screen) {
	width, height := a.WindowSize.X, a.WindowSize.Y
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.Title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	u := &ui{
		a:         a,
		w:         w,
		width:     width,
		height:    height,
		buttons:   toolbarButtons(),
		shortcuts: defaultShortcuts(),
	}
	layoutButtons(u.buttons)
	a.Board.SetPost(func(f func()) { w.Send(postedFunc{f}) })
	a.Board.SetOffset(u.offset)
	a.Board.OnHistoryChange(func(bool, bool) { w.Send(paint.Event{}) })
	a.Board.OnToolChange(func(tool.Tool) { w.Send(paint.Event{}) })

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	defer close(paintCh)

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if u.handleLifecycle(e) {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case postedFunc:
			e.fn()
			w.Send(paint.Event{})
		case size.Event:
			u.width, u.height = e.WidthPx, e.HeightPx
			c := ContainerSize(u.width, u.height)
			a.Board.Resize(c.X, c.Y)
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := u.paintState()
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case key.Event:
			if act := actionForKey(u.shortcuts, e); act != "" {
				u.run(act)
			}
		case mouse.Event:
			u.handleMouse(e)
		case touch.Event:
			u.handleTouch(e)
		case error:
			log.Printf("window: %v", e)
		}
		if u.quit {
			return
		}
	}
}

// offset is the window position of the surface origin. The board reads it
// on every pointer event since the surface moves when the window resizes.
func (u *ui) offset() image.Point {
	return u.canvasRect().Min
}

func (u *ui) canvasRect() image.Rectangle {
	w, h := u.a.Board.Size()
	return canvasRect(u.width, u.height, image.Pt(w, h))
}

// handleLifecycle ends a gesture in progress when the window loses focus
// or goes away, keeping what was drawn. It reports whether the window is
// gone.
func (u *ui) handleLifecycle(e lifecycle.Event) bool {
	dead := e.To == lifecycle.StageDead
	if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff || dead {
		if u.a.Board.PointerCancel() {
			log.Printf("gesture cancelled: window %v", e.To)
		}
		u.touching = false
	}
	return dead
}

func (u *ui) handleMouse(e mouse.Event) {
	p := image.Pt(int(e.X), int(e.Y))
	u.pointer = p
	u.inCanvas = p.In(u.canvasRect())
	b := u.a.Board

	if e.Direction == mouse.DirPress && u.message != "" && time.Now().Before(u.messageUntil) && !b.Tracking() {
		u.messageUntil = time.Time{}
		u.w.Send(paint.Event{})
		return
	}

	if p.Y < toolbarHeight && !b.Tracking() {
		u.hover = buttonAt(u.buttons, p)
		if u.hover != nil && e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
			u.run(u.hover.Action)
		}
		u.w.Send(paint.Event{})
		return
	}
	u.hover = nil

	if e.Button != mouse.ButtonLeft && e.Direction != mouse.DirNone {
		return
	}
	var consumed bool
	switch e.Direction {
	case mouse.DirPress:
		if u.inCanvas {
			consumed = b.PointerDown(gesture.Mouse, p)
		}
	case mouse.DirNone:
		consumed = b.PointerMove(gesture.Mouse, p)
	case mouse.DirRelease:
		consumed = b.PointerUp(gesture.Mouse, p)
	}
	// Idle hover only needs a frame for the eraser outline.
	if consumed || b.ActiveTool().Mode() == tool.ModeErase {
		u.w.Send(paint.Event{})
	}
}

// handleTouch follows the first finger of a gesture and ignores the rest.
func (u *ui) handleTouch(e touch.Event) {
	b := u.a.Board
	pos := image.Pt(int(e.X), int(e.Y))
	var consumed bool
	switch e.Type {
	case touch.TypeBegin:
		if u.touching {
			return
		}
		if !pos.In(u.canvasRect()) {
			return
		}
		u.touching = true
		u.touchSeq = e.Sequence
		consumed = b.PointerDown(gesture.Touch, pos)
	case touch.TypeMove:
		if !u.touching || e.Sequence != u.touchSeq {
			return
		}
		consumed = b.PointerMove(gesture.Touch, pos)
	case touch.TypeEnd:
		if !u.touching || e.Sequence != u.touchSeq {
			return
		}
		u.touching = false
		consumed = b.PointerUp(gesture.Touch, pos)
	}
	if consumed {
		u.w.Send(paint.Event{})
	}
}

func (u *ui) run(action string) {
	b := u.a.Board
	if pen, ok := penFromAction(action); ok {
		b.SelectDraw(pen)
		return
	}
	switch action {
	case actionEraser:
		b.SelectErase()
	case actionClear:
		b.Clear()
	case actionUndo:
		b.Undo()
	case actionRedo:
		b.Redo()
	case actionFullscreen:
		if !fullscreenSupported() {
			u.flash("fullscreen is not available")
		}
	case actionDownload:
		if path, err := u.a.download(time.Now()); err != nil {
			log.Printf("download: %v", err)
			u.flash("download failed")
		} else {
			u.flash("saved " + path)
		}
	case actionCopy:
		if err := u.a.copyImage(); err != nil {
			log.Printf("copy: %v", err)
			u.flash("copy failed")
		} else {
			u.flash("board copied to clipboard")
		}
	case actionQuit:
		u.quit = true
	}
	u.w.Send(paint.Event{})
}

func (u *ui) flash(msg string) {
	u.message = msg
	u.messageUntil = time.Now().Add(messageDuration)
	log.Print(msg)
}

// download writes the flattened board as a timestamped PNG.
func (a *AppState) download(now time.Time) (string, error) {
	if a.SaveDir != "" {
		if err := os.MkdirAll(a.SaveDir, 0o755); err != nil {
			return "", fmt.Errorf("create save dir: %w", err)
		}
	}
	path := downloadPath(a.SaveDir, now)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := a.Board.WritePNG(f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	a.notifier.Save(path)
	return path, nil
}

func (a *AppState) copyImage() error {
	img := a.Board.Export()
	if err := clipboard.WriteImage(img); err != nil {
		return err
	}
	a.notifier.Copy(img)
	return nil
}

func (u *ui) buttonState(btn *Button) ButtonState {
	b := u.a.Board
	active := b.ActiveTool()
	switch btn.Action {
	case actionUndo:
		if !b.CanUndo() {
			return StateDisabled
		}
	case actionRedo:
		if !b.CanRedo() {
			return StateDisabled
		}
	case actionFullscreen:
		if !fullscreenSupported() {
			return StateDisabled
		}
	case actionEraser:
		if active.Mode() == tool.ModeErase {
			return StateActive
		}
	default:
		if pen, ok := penFromAction(btn.Action); ok && active.Mode() == tool.ModeDraw && active.Color() == pen.Color {
			return StateActive
		}
	}
	if btn == u.hover {
		return StateHover
	}
	return StateDefault
}

func (u *ui) statusLine() string {
	b := u.a.Board
	w, h := b.Size()
	undo, redo := b.HistoryDepths()
	t := b.ActiveTool()
	line := fmt.Sprintf("%s  [%s]  %dx%d  undo %d  redo %d", t, t.Cursor(), w, h, undo, redo)
	if b.Modified() {
		line += "  modified"
	}
	return line
}

func (u *ui) paintState() paintState {
	b := u.a.Board
	views := make([]buttonView, len(u.buttons))
	for i, btn := range u.buttons {
		views[i] = buttonView{label: btn.Label, swatch: btn.Swatch, rect: btn.rect, state: u.buttonState(btn)}
	}
	cr := u.canvasRect()
	st := paintState{
		width:        u.width,
		height:       u.height,
		theme:        u.a.Theme,
		canvas:       b.Image(),
		canvasRect:   cr,
		background:   b.Background(),
		buttons:      views,
		status:       u.statusLine(),
		message:      u.message,
		messageUntil: u.messageUntil,
	}
	if t := b.ActiveTool(); t.Mode() == tool.ModeErase && u.inCanvas {
		half := t.Width() / 2
		min := u.pointer.Sub(image.Pt(half, half))
		st.eraser = image.Rectangle{Min: min, Max: min.Add(image.Pt(t.Width(), t.Width()))}
	}
	return st
}
