package ecs

import (
	"fmt"
	"reflect"

	"github.com/DangerosoDavo/sigecs/ecs/storage"
)

// erasedStore is the only view of a component store that does not know its value
// type. The World uses it to tear down an entity across every store.
type erasedStore interface {
	RemoveEntity(e Entity) bool
	Len() int
	Kind() storage.Kind
}

// componentStore owns every value of one component type, keyed by entity.
type componentStore[T any] struct {
	id      ComponentID
	kind    storage.Kind
	backend storage.Store[T]
}

func newComponentStore[T any](id ComponentID, kind storage.Kind) *componentStore[T] {
	return &componentStore[T]{id: id, kind: kind, backend: storage.New[T](kind)}
}

// add inserts or overwrites the value for e.
func (s *componentStore[T]) add(e Entity, value T) {
	s.backend.Set(uint32(e), value)
}

// get returns a pointer into the store, valid until the next mutation of this store.
func (s *componentStore[T]) get(e Entity) (*T, error) {
	v, ok := s.backend.Get(uint32(e))
	if !ok {
		return nil, missingComponent[T](e)
	}
	return v, nil
}

func missingComponent[T any](e Entity) error {
	return fmt.Errorf("%w: %v has no %s", ErrMissingComponent, e, reflect.TypeFor[T]())
}

func (s *componentStore[T]) has(e Entity) bool {
	return s.backend.Has(uint32(e))
}

// RemoveEntity drops e's value if present. Removing an absent entity is a no-op.
func (s *componentStore[T]) RemoveEntity(e Entity) bool {
	return s.backend.Remove(uint32(e))
}

func (s *componentStore[T]) Len() int {
	return s.backend.Len()
}

func (s *componentStore[T]) Kind() storage.Kind {
	return s.kind
}

func (s *componentStore[T]) each(fn func(Entity, *T) bool) {
	s.backend.Iterate(func(idx uint32, v *T) bool {
		return fn(Entity(idx), v)
	})
}

// storeFor returns the typed store for T, or nil when T has no store yet.
func storeFor[T any](w *World) *componentStore[T] {
	id, ok := w.types.lookup(reflect.TypeFor[T]())
	if !ok {
		return nil
	}
	return w.stores[id].(*componentStore[T])
}

var _ erasedStore = (*componentStore[int])(nil)
