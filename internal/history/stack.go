package history

// stack is a LIFO with an optional size cap. When full, Push drops the
// oldest entry.
type stack[T any] struct {
	items []T
	max   int
}

func (s *stack[T]) Push(v T) {
	s.items = append(s.items, v)
	if s.max > 0 && len(s.items) > s.max {
		var zero T
		s.items[0] = zero
		s.items = s.items[1:]
	}
}

func (s *stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	n := len(s.items) - 1
	v := s.items[n]
	s.items[n] = zero
	s.items = s.items[:n]
	return v, true
}

func (s *stack[T]) Len() int { return len(s.items) }

func (s *stack[T]) Clear() {
	clear(s.items)
	s.items = s.items[:0]
}
