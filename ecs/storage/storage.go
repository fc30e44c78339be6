// Package storage provides the typed backends that hold component values. Values are
// keyed by a small integer index; the ecs package uses the entity handle as the index.
package storage

import "fmt"

// Kind selects a storage backend.
type Kind uint8

const (
	// KindDense keeps one slot per index. Best for components most entities carry.
	KindDense Kind = iota
	// KindSparse keeps a map plus an insertion-ordered entry list. Remove is amortized
	// O(1). Best for rare components.
	KindSparse
)

func (k Kind) String() string {
	switch k {
	case KindDense:
		return "dense"
	case KindSparse:
		return "sparse"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Store holds values of one component type keyed by index.
//
// Pointers returned by Get and passed to Iterate stay valid only until the next
// Set, Remove, or Clear on the same store.
type Store[T any] interface {
	Set(index uint32, value T)
	Get(index uint32) (*T, bool)
	Has(index uint32) bool
	Remove(index uint32) bool
	Len() int
	Iterate(fn func(index uint32, value *T) bool)
	Clear()
}

// New constructs an empty store of the requested kind. Unknown kinds fall back to dense.
func New[T any](kind Kind) Store[T] {
	if kind == KindSparse {
		return NewSparse[T]()
	}
	return NewDense[T]()
}
