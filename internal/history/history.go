// Package history keeps the undo and redo stacks of committed surface
// states.
//
// The undo stack holds the states to return to. current is the committed
// state the surface showed after the last gesture, clear, undo or redo.
package history

import (
	"log/slog"

	"github.com/example/whiteboard/internal/canvas"
)

// Buffer is the part of the surface the history drives.
type Buffer interface {
	Snapshot() *canvas.Snapshot
	Restore(*canvas.Snapshot)
	Clear()
}

// History is not safe for concurrent use.
type History struct {
	buf     Buffer
	undo    stack[*canvas.Snapshot]
	redo    stack[*canvas.Snapshot]
	current *canvas.Snapshot
	log     *slog.Logger

	// OnChange, when set, is called after every change with the new
	// availability of undo and redo.
	OnChange func(canUndo, canRedo bool)
}

// New returns a history bound to buf. limit caps the undo stack; zero or a
// negative value means unbounded.
func New(buf Buffer, limit int, log *slog.Logger) *History {
	if limit < 0 {
		limit = 0
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &History{
		buf:  buf,
		undo: stack[*canvas.Snapshot]{max: limit},
		redo: stack[*canvas.Snapshot]{max: limit},
		log:  log,
	}
}

// Reset drops both stacks and makes initial the committed state.
func (h *History) Reset(initial *canvas.Snapshot) {
	h.undo.Clear()
	h.redo.Clear()
	h.current = initial
	h.changed()
}

// Current returns the committed state, or nil before Reset.
func (h *History) Current() *canvas.Snapshot { return h.current }

// Limit reports the undo cap, zero when unbounded.
func (h *History) Limit() int { return h.undo.max }

// Commit runs mutate against the buffer and records the result as a new
// committed state. The previous state goes on the undo stack and the redo
// stack is dropped. mutate may be nil when the buffer already holds the new
// content.
func (h *History) Commit(mutate func()) {
	if h.current != nil {
		h.undo.Push(h.current)
	}
	if mutate != nil {
		mutate()
	}
	h.current = h.buf.Snapshot()
	h.redo.Clear()
	h.log.Debug("history commit", slog.Int("undo", h.undo.Len()))
	h.changed()
}

// RecordGestureEnd commits the stroke that just finished.
func (h *History) RecordGestureEnd() { h.Commit(nil) }

// RecordClear clears the buffer as one undoable step.
func (h *History) RecordClear() { h.Commit(h.buf.Clear) }

// Undo restores the previous committed state. It reports false and changes
// nothing when there is nothing to undo.
func (h *History) Undo() bool {
	prev, ok := h.undo.Pop()
	if !ok {
		return false
	}
	if h.current != nil {
		h.redo.Push(h.current)
	}
	h.current = prev
	h.buf.Restore(prev)
	h.log.Debug("undo", slog.Int("undo", h.undo.Len()), slog.Int("redo", h.redo.Len()))
	h.changed()
	return true
}

// Redo reapplies the most recently undone state.
func (h *History) Redo() bool {
	next, ok := h.redo.Pop()
	if !ok {
		return false
	}
	if h.current != nil {
		h.undo.Push(h.current)
	}
	h.current = next
	h.buf.Restore(next)
	h.log.Debug("redo", slog.Int("undo", h.undo.Len()), slog.Int("redo", h.redo.Len()))
	h.changed()
	return true
}

func (h *History) CanUndo() bool { return h.undo.Len() > 0 }

func (h *History) CanRedo() bool { return h.redo.Len() > 0 }

// Depths returns the sizes of the undo and redo stacks.
func (h *History) Depths() (undo, redo int) { return h.undo.Len(), h.redo.Len() }

func (h *History) changed() {
	if h.OnChange != nil {
		h.OnChange(h.CanUndo(), h.CanRedo())
	}
}
