package storage

// Sparse stores values in a map keyed by index and keeps an insertion-ordered entry
// list so iteration is deterministic. Removal leaves a hole that is compacted once
// holes outnumber live entries, so Remove is amortized O(1).
type Sparse[T any] struct {
	positions map[uint32]int
	entries   []sparseEntry[T]
	holes     int
}

type sparseEntry[T any] struct {
	index uint32
	cell  *T
}

// NewSparse constructs an empty sparse store.
func NewSparse[T any]() *Sparse[T] {
	return &Sparse[T]{positions: make(map[uint32]int)}
}

func (s *Sparse[T]) Len() int {
	return len(s.positions)
}

func (s *Sparse[T]) Has(index uint32) bool {
	_, ok := s.positions[index]
	return ok
}

func (s *Sparse[T]) Get(index uint32) (*T, bool) {
	pos, ok := s.positions[index]
	if !ok {
		return nil, false
	}
	return s.entries[pos].cell, true
}

// Set inserts or overwrites the value at index. Overwrites keep the existing cell.
func (s *Sparse[T]) Set(index uint32, value T) {
	if pos, ok := s.positions[index]; ok {
		*s.entries[pos].cell = value
		return
	}
	cell := new(T)
	*cell = value
	s.positions[index] = len(s.entries)
	s.entries = append(s.entries, sparseEntry[T]{index: index, cell: cell})
}

func (s *Sparse[T]) Remove(index uint32) bool {
	pos, ok := s.positions[index]
	if !ok {
		return false
	}
	delete(s.positions, index)
	s.entries[pos] = sparseEntry[T]{}
	s.holes++
	if s.holes > len(s.positions) {
		s.compact()
	}
	return true
}

// compact drops holes while preserving insertion order.
func (s *Sparse[T]) compact() {
	live := s.entries[:0]
	for _, entry := range s.entries {
		if entry.cell == nil {
			continue
		}
		s.positions[entry.index] = len(live)
		live = append(live, entry)
	}
	clear(s.entries[len(live):])
	s.entries = live
	s.holes = 0
}

// Iterate visits values in insertion order.
func (s *Sparse[T]) Iterate(fn func(uint32, *T) bool) {
	for _, entry := range s.entries {
		if entry.cell == nil {
			continue
		}
		if !fn(entry.index, entry.cell) {
			return
		}
	}
}

func (s *Sparse[T]) Clear() {
	clear(s.positions)
	clear(s.entries)
	s.entries = s.entries[:0]
	s.holes = 0
}

var _ Store[int] = (*Sparse[int])(nil)
