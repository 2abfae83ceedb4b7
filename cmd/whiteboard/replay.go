package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/whiteboard/internal/board"
	"github.com/example/whiteboard/internal/gesture"
	"github.com/example/whiteboard/internal/resize"
	"github.com/example/whiteboard/internal/tool"
)

var errUnknownCommand = errors.New("unknown command")

// step is one parsed script line.
type step struct {
	line int
	name string
	args []string
}

// scriptArity lists the accepted argument counts per command.
var scriptArity = map[string][]int{
	"size":   {2},
	"pen":    {1},
	"eraser": {0},
	"down":   {2},
	"move":   {2},
	"up":     {0, 2},
	"cancel": {0},
	"undo":   {0},
	"redo":   {0},
	"clear":  {0},
	"fill":   {1},
	"resize": {2},
	"flush":  {0},
	"offset": {2},
}

func parseScript(r io.Reader) ([]step, error) {
	var steps []step
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		name := strings.ToLower(fields[0])
		arity, ok := scriptArity[name]
		if !ok {
			return nil, fmt.Errorf("line %d: %w %q", n, errUnknownCommand, fields[0])
		}
		args := fields[1:]
		valid := false
		for _, a := range arity {
			if len(args) == a {
				valid = true
			}
		}
		if !valid {
			return nil, fmt.Errorf("line %d: %s takes %s arguments, got %d", n, name, arityText(arity), len(args))
		}
		if name != "pen" && name != "fill" {
			for _, a := range args {
				if _, err := strconv.Atoi(a); err != nil {
					return nil, fmt.Errorf("line %d: %s: invalid number %q", n, name, a)
				}
			}
		}
		steps = append(steps, step{line: n, name: name, args: args})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

func arityText(arity []int) string {
	parts := make([]string, len(arity))
	for i, a := range arity {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, " or ")
}

// heldTimer never fires on its own. Replays run the final resize pass
// through flush so that the result does not depend on wall time.
type heldTimer struct{ stopped bool }

func (t *heldTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func holdTimer(time.Duration, func()) resize.Timer { return &heldTimer{} }

// player applies script steps to a board.
type player struct {
	opts   func(containerW, containerH int) []board.Option
	board  *board.Board
	offset image.Point
	last   image.Point
}

func newPlayer(opts func(containerW, containerH int) []board.Option) *player {
	p := &player{opts: opts}
	p.reset(board.DefaultContainerWidth, board.DefaultContainerHeight)
	return p
}

func (p *player) reset(cw, ch int) {
	opts := append(p.opts(cw, ch),
		board.WithAfterFunc(holdTimer),
		board.WithOffset(func() image.Point { return p.offset }),
	)
	p.board = board.New(opts...)
}

func (p *player) point(s step) image.Point {
	x, _ := strconv.Atoi(s.args[0])
	y, _ := strconv.Atoi(s.args[1])
	return image.Pt(x, y)
}

func (p *player) apply(s step) error {
	b := p.board
	switch s.name {
	case "size":
		pt := p.point(s)
		p.reset(pt.X, pt.Y)
	case "pen":
		pen, err := tool.ParsePenColor(s.args[0])
		if err != nil {
			return err
		}
		b.SelectDraw(pen)
	case "eraser":
		b.SelectErase()
	case "down":
		p.last = p.point(s)
		b.PointerDown(gesture.Mouse, p.last)
	case "move":
		p.last = p.point(s)
		b.PointerMove(gesture.Mouse, p.last)
	case "up":
		if len(s.args) == 2 {
			p.last = p.point(s)
		}
		b.PointerUp(gesture.Mouse, p.last)
	case "cancel":
		b.PointerCancel()
	case "undo":
		b.Undo()
	case "redo":
		b.Redo()
	case "clear":
		b.Clear()
	case "fill":
		c, err := tool.ParsePenColor(s.args[0])
		if err != nil {
			return err
		}
		b.Fill(c.Color)
	case "resize":
		pt := p.point(s)
		b.Resize(pt.X, pt.Y)
	case "flush":
		b.FlushResize()
	case "offset":
		p.offset = p.point(s)
	}
	return nil
}

// run applies every step and settles any pending resize.
func (p *player) run(steps []step) error {
	for _, s := range steps {
		if err := p.apply(s); err != nil {
			return fmt.Errorf("line %d: %s: %w", s.line, s.name, err)
		}
	}
	p.board.FlushResize()
	return nil
}

type replayCmd struct {
	*root
	fs     *flag.FlagSet
	script string
	output string
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	c := &replayCmd{root: r, fs: fs}
	fs.StringVar(&c.script, "script", "-", "script file to replay")
	fs.StringVar(&c.output, "output", "", "PNG file to write")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 || c.output == "" {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *replayCmd) Program() string { return c.root.program + " replay" }

func (c *replayCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *replayCmd) Template() string { return "replay.txt" }

func (c *replayCmd) Run() error {
	in := io.Reader(os.Stdin)
	if c.script != "-" {
		f, err := os.Open(c.script)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
	}
	steps, err := parseScript(in)
	if err != nil {
		return err
	}
	p := newPlayer(c.boardOptions)
	if err := p.run(steps); err != nil {
		return err
	}

	if c.output == "-" {
		return p.board.WritePNG(c.stdout)
	}
	f, err := os.Create(c.output)
	if err != nil {
		return fmt.Errorf("create %s: %w", c.output, err)
	}
	if err := p.board.WritePNG(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", c.output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", c.output, err)
	}
	c.notifier.Save(c.output)
	return nil
}
