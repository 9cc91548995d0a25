package seq

import "iter"

// Elem is one slot of a Seq. Value may be modified in place; the slot keeps
// its identity.
type Elem[T any] struct {
	Value T
}

// Seq is an ordered sequence of stable slots. The zero value is empty and
// ready to use.
type Seq[T any] struct {
	elems []*Elem[T]
}

// Len returns the number of slots.
func (s *Seq[T]) Len() int {
	return len(s.elems)
}

// At returns the slot at index i, or nil if i is out of range.
func (s *Seq[T]) At(i int) *Elem[T] {
	if i < 0 || i >= len(s.elems) {
		return nil
	}
	return s.elems[i]
}

// Resize grows the sequence with empty slots or truncates trailing slots.
// It returns false when n is negative or equal to the current length.
func (s *Seq[T]) Resize(n int) bool {
	if n < 0 || n == len(s.elems) {
		return false
	}
	if n < len(s.elems) {
		clear(s.elems[n:])
		s.elems = s.elems[:n]
		return true
	}
	for len(s.elems) < n {
		s.elems = append(s.elems, &Elem[T]{})
	}
	return true
}

// Append adds a slot holding v at the end and returns it.
func (s *Seq[T]) Append(v T) *Elem[T] {
	e := &Elem[T]{Value: v}
	s.elems = append(s.elems, e)
	return e
}

// Insert places a slot holding v at index i, shifting later slots up.
// Valid indices are 0 through Len inclusive.
func (s *Seq[T]) Insert(i int, v T) (*Elem[T], bool) {
	if i < 0 || i > len(s.elems) {
		return nil, false
	}
	e := &Elem[T]{Value: v}
	s.elems = append(s.elems, nil)
	copy(s.elems[i+1:], s.elems[i:])
	s.elems[i] = e
	return e, true
}

// Remove erases the slot at index i, shifting later slots down by one.
func (s *Seq[T]) Remove(i int) bool {
	if i < 0 || i >= len(s.elems) {
		return false
	}
	copy(s.elems[i:], s.elems[i+1:])
	s.elems[len(s.elems)-1] = nil
	s.elems = s.elems[:len(s.elems)-1]
	return true
}

// RemoveElem erases the given slot if it is still part of the sequence.
func (s *Seq[T]) RemoveElem(e *Elem[T]) bool {
	return s.Remove(s.IndexOf(e, 0))
}

// Clear removes every slot.
func (s *Seq[T]) Clear() {
	clear(s.elems)
	s.elems = s.elems[:0]
}

// IndexOf returns the live index of e, or -1 if e was removed.
// The search starts at hint and widens in both directions, so a hint
// close to the real position makes the lookup cheap.
func (s *Seq[T]) IndexOf(e *Elem[T], hint int) int {
	n := len(s.elems)
	if e == nil || n == 0 {
		return -1
	}
	hint = min(max(hint, 0), n-1)
	for lo, hi := hint, hint+1; lo >= 0 || hi < n; lo, hi = lo-1, hi+1 {
		if lo >= 0 && s.elems[lo] == e {
			return lo
		}
		if hi < n && s.elems[hi] == e {
			return hi
		}
	}
	return -1
}

// IndexFunc returns the index of the first slot whose value satisfies f,
// or -1.
func (s *Seq[T]) IndexFunc(f func(T) bool) int {
	for i, e := range s.elems {
		if f(e.Value) {
			return i
		}
	}
	return -1
}

// Step returns the position that follows anchor e, last seen at pos,
// in the given direction. When e has been removed, the slot that now
// occupies pos (forward) or pos-1 (reverse) comes next. The result may
// fall outside [0, Len) which means the sequence is exhausted.
func (s *Seq[T]) Step(e *Elem[T], pos int, reverse bool) int {
	i := s.IndexOf(e, pos)
	if !reverse {
		if i >= 0 {
			return i + 1
		}
		return pos
	}
	if i >= 0 {
		return i - 1
	}
	return min(pos-1, len(s.elems)-1)
}

// All iterates over index and slot pairs in order.
func (s *Seq[T]) All() iter.Seq2[int, *Elem[T]] {
	return func(yield func(int, *Elem[T]) bool) {
		for i, e := range s.elems {
			if !yield(i, e) {
				return
			}
		}
	}
}
