package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/whiteboard/internal/render"
	"github.com/example/whiteboard/internal/theme"
	"github.com/example/whiteboard/internal/tool"
)

const (
	toolbarHeight = 32
	statusHeight  = 24
	buttonGap     = 4
	checkerSize   = 12
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 32, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// ContainerSize returns the area available to the board inside a window.
func ContainerSize(winW, winH int) image.Point {
	return image.Pt(max(winW, 0), max(winH-toolbarHeight-statusHeight, 0))
}

// WindowSize is the inverse of ContainerSize.
func WindowSize(container image.Point) image.Point {
	return image.Pt(container.X, container.Y+toolbarHeight+statusHeight)
}

// containerRect is the window area between the toolbar and the status line.
func containerRect(winW, winH int) image.Rectangle {
	c := ContainerSize(winW, winH)
	return image.Rect(0, toolbarHeight, c.X, toolbarHeight+c.Y)
}

// canvasRect centres a surface of the given size in the container.
func canvasRect(winW, winH int, surface image.Point) image.Rectangle {
	c := containerRect(winW, winH)
	x0 := c.Min.X + (c.Dx()-surface.X)/2
	y0 := c.Min.Y + (c.Dy()-surface.Y)/2
	if x0 < c.Min.X {
		x0 = c.Min.X
	}
	if y0 < c.Min.Y {
		y0 = c.Min.Y
	}
	return image.Rect(x0, y0, x0+surface.X, y0+surface.Y)
}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StateActive
	StateDisabled
)

// Button is one toolbar entry. Pen buttons carry a swatch.
type Button struct {
	Label  string
	Action string
	Swatch color.Color
	rect   image.Rectangle
}

func (b *Button) Rect() image.Rectangle { return b.rect }

// buttonView is the immutable copy of a button handed to the painter.
type buttonView struct {
	label  string
	swatch color.Color
	rect   image.Rectangle
	state  ButtonState
}

func toolbarButtons() []*Button {
	var out []*Button
	for i, p := range tool.PenColors() {
		out = append(out, &Button{Label: fmt.Sprintf("%d:%s", i+1, p.Name), Action: penAction(p), Swatch: p.Color})
	}
	out = append(out,
		&Button{Label: "E:eraser", Action: actionEraser},
		&Button{Label: "Del:clear", Action: actionClear},
		&Button{Label: "^Z:undo", Action: actionUndo},
		&Button{Label: "^Y:redo", Action: actionRedo},
		&Button{Label: "F11:full", Action: actionFullscreen},
		&Button{Label: "^S:download", Action: actionDownload},
		&Button{Label: "^C:copy", Action: actionCopy},
	)
	return out
}

// layoutButtons places the buttons left to right on the toolbar.
func layoutButtons(buttons []*Button) {
	meas := &font.Drawer{Face: basicfont.Face7x13}
	x := buttonGap
	for _, b := range buttons {
		w := meas.MeasureString(b.Label).Ceil() + 12
		if b.Swatch != nil {
			w += 14
		}
		b.rect = image.Rect(x, buttonGap, x+w, toolbarHeight-buttonGap)
		x += w + buttonGap
	}
}

func buttonAt(buttons []*Button, p image.Point) *Button {
	for _, b := range buttons {
		if p.In(b.rect) {
			return b
		}
	}
	return nil
}

func drawButton(dst *image.RGBA, b buttonView, th *theme.Theme) {
	bg, fg := th.ButtonBackground, th.ButtonText
	switch b.state {
	case StateHover:
		bg = th.ButtonBackgroundHover
	case StateActive:
		bg = th.ButtonBackgroundActive
	case StateDisabled:
		bg, fg = th.ButtonBackgroundDisabled, th.ButtonTextDisabled
	}
	draw.Draw(dst, b.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawRect(dst, b.rect, th.ButtonBorder)
	x := b.rect.Min.X + 6
	if b.swatch != nil {
		sw := image.Rect(x, b.rect.Min.Y+6, x+10, b.rect.Max.Y-6)
		draw.Draw(dst, sw, &image.Uniform{b.swatch}, image.Point{}, draw.Src)
		drawRect(dst, sw, th.ButtonBorder)
		x += 14
	}
	d := &font.Drawer{Dst: dst, Src: &image.Uniform{fg}, Face: basicfont.Face7x13,
		Dot: fixed.P(x, b.rect.Min.Y+(b.rect.Dy()+10)/2)}
	d.DrawString(b.label)
}

func drawRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	if r.Empty() {
		return
	}
	u := &image.Uniform{col}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

// paintState is everything the painter goroutine needs for one frame. It
// never aliases state owned by the event loop.
type paintState struct {
	width, height int
	theme         *theme.Theme
	canvas        *image.RGBA
	canvasRect    image.Rectangle
	background    color.Color
	buttons       []buttonView
	status        string
	eraser        image.Rectangle // eraser outline in window coordinates
	message       string
	messageUntil  time.Time
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()
	th := st.theme

	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)
	render.DrawCheckerboard(dst, containerRect(st.width, st.height), checkerSize, th.CheckerLight, th.CheckerDark)
	if ctx.Err() != nil {
		return
	}

	draw.Draw(dst, st.canvasRect, &image.Uniform{st.background}, image.Point{}, draw.Src)
	if st.canvas != nil {
		draw.Draw(dst, st.canvasRect, st.canvas, st.canvas.Bounds().Min, draw.Over)
	}
	drawRect(dst, st.canvasRect.Inset(-1), th.CanvasBorder)
	if !st.eraser.Empty() {
		drawRect(dst, st.eraser.Intersect(st.canvasRect), th.Foreground)
	}
	if ctx.Err() != nil {
		return
	}

	draw.Draw(dst, image.Rect(0, 0, st.width, toolbarHeight), &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	for _, bv := range st.buttons {
		drawButton(dst, bv, th)
	}
	status := image.Rect(0, st.height-statusHeight, st.width, st.height)
	draw.Draw(dst, status, &image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: &image.Uniform{th.StatusText}, Face: basicfont.Face7x13,
		Dot: fixed.P(6, st.height-statusHeight+16)}
	d.DrawString(st.status)
	if ctx.Err() != nil {
		return
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		d := &font.Drawer{Dst: dst, Src: &image.Uniform{th.Foreground}, Face: messageFace}
		wmsg := d.MeasureString(st.message).Ceil()
		ascent := messageFace.Metrics().Ascent.Ceil()
		descent := messageFace.Metrics().Descent.Ceil()
		px := (st.width - wmsg) / 2
		py := (st.height-ascent-descent)/2 + ascent
		rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
		sb := th.StatusBackground
		bg := color.NRGBA{sb.R, sb.G, sb.B, 230}
		draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Over)
		drawRect(dst, rect, th.ButtonBorder)
		d.Dot = fixed.P(px, py)
		d.DrawString(st.message)
	}

	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
