package tool

// Selector holds the active tool. Switching tools never touches the surface
// or the history; the gesture tracker reads the active tool when a gesture
// starts.
type Selector struct {
	penWidth    int
	eraserWidth int
	pen         PenColor
	active      Tool
	listeners   []func(Tool)
}

// NewSelector returns a selector with the black pen active. Non-positive
// widths fall back to the defaults.
func NewSelector(penWidth, eraserWidth int) *Selector {
	if penWidth <= 0 {
		penWidth = DefaultPenWidth
	}
	if eraserWidth <= 0 {
		eraserWidth = DefaultEraserWidth
	}
	s := &Selector{penWidth: penWidth, eraserWidth: eraserWidth, pen: Black}
	s.active = Draw(Black.Color, penWidth)
	return s
}

// Active returns the current tool.
func (s *Selector) Active() Tool { return s.active }

// Pen returns the colour of the most recently selected pen.
func (s *Selector) Pen() PenColor { return s.pen }

// SelectDraw activates a pen of the given colour.
func (s *Selector) SelectDraw(c PenColor) Tool {
	s.pen = c
	return s.set(Draw(c.Color, s.penWidth))
}

// SelectErase activates the eraser.
func (s *Selector) SelectErase() Tool {
	return s.set(Erase(s.eraserWidth))
}

// Widths reports the configured pen and eraser widths.
func (s *Selector) Widths() (pen, eraser int) { return s.penWidth, s.eraserWidth }

// Subscribe registers fn to be called after every tool change.
func (s *Selector) Subscribe(fn func(Tool)) {
	if fn != nil {
		s.listeners = append(s.listeners, fn)
	}
}

func (s *Selector) set(t Tool) Tool {
	s.active = t
	for _, fn := range s.listeners {
		fn(t)
	}
	return t
}
