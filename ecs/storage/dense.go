package storage

// Dense stores values in a slot slice addressed directly by index.
type Dense[T any] struct {
	slots []denseSlot[T]
	count int
}

type denseSlot[T any] struct {
	value    T
	occupied bool
}

// NewDense constructs an empty dense store.
func NewDense[T any]() *Dense[T] {
	return &Dense[T]{}
}

func (s *Dense[T]) Len() int {
	return s.count
}

func (s *Dense[T]) Has(index uint32) bool {
	return int(index) < len(s.slots) && s.slots[index].occupied
}

func (s *Dense[T]) Get(index uint32) (*T, bool) {
	if !s.Has(index) {
		return nil, false
	}
	return &s.slots[index].value, true
}

// Set inserts or overwrites the value at index.
func (s *Dense[T]) Set(index uint32, value T) {
	s.ensureCapacity(int(index) + 1)
	slot := &s.slots[index]
	if !slot.occupied {
		s.count++
	}
	slot.occupied = true
	slot.value = value
}

// Remove clears the slot, returning false when it was already empty.
func (s *Dense[T]) Remove(index uint32) bool {
	if !s.Has(index) {
		return false
	}
	s.slots[index] = denseSlot[T]{}
	s.count--
	return true
}

// Iterate visits occupied slots in index order.
func (s *Dense[T]) Iterate(fn func(uint32, *T) bool) {
	for idx := range s.slots {
		if !s.slots[idx].occupied {
			continue
		}
		if !fn(uint32(idx), &s.slots[idx].value) {
			return
		}
	}
}

func (s *Dense[T]) Clear() {
	clear(s.slots)
	s.count = 0
}

func (s *Dense[T]) ensureCapacity(size int) {
	if size <= len(s.slots) {
		return
	}
	if size <= cap(s.slots) {
		s.slots = s.slots[:size]
		return
	}
	newCap := max(2*cap(s.slots), size, 16)
	grown := make([]denseSlot[T], size, newCap)
	copy(grown, s.slots)
	s.slots = grown
}

var _ Store[int] = (*Dense[int])(nil)
