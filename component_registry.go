package ecs

import (
	"fmt"
	"reflect"

	"github.com/DangerosoDavo/sigecs/ecs/storage"
)

// ComponentID is the small integer assigned to a component type on first use. It is
// also the bit position of that type in every Signature.
type ComponentID uint8

// MaxComponentTypes is the number of distinct component types a World can hold.
const MaxComponentTypes = 64

// ComponentInfo describes a registered component type.
type ComponentInfo struct {
	ID      ComponentID
	Name    string
	Storage storage.Kind
}

// typeRegistry assigns ids in first-use order. Ids are never released.
type typeRegistry struct {
	ids   map[reflect.Type]ComponentID
	types []reflect.Type
}

func newTypeRegistry() *typeRegistry {
	return &typeRegistry{ids: make(map[reflect.Type]ComponentID, MaxComponentTypes)}
}

func (r *typeRegistry) lookup(t reflect.Type) (ComponentID, bool) {
	id, ok := r.ids[t]
	return id, ok
}

// idOf returns the id for t, assigning the next one when t is new. A type beyond
// MaxComponentTypes is rejected without touching existing assignments.
func (r *typeRegistry) idOf(t reflect.Type) (ComponentID, bool, error) {
	if id, ok := r.ids[t]; ok {
		return id, false, nil
	}
	if len(r.types) >= MaxComponentTypes {
		return 0, false, fmt.Errorf("%w: cannot register %s, limit is %d", ErrTypeCapacityExceeded, t, MaxComponentTypes)
	}
	id := ComponentID(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	return id, true, nil
}

func (r *typeRegistry) len() int {
	return len(r.types)
}

func (r *typeRegistry) typeOf(id ComponentID) reflect.Type {
	return r.types[id]
}

// ComponentOption configures an explicit component registration.
type ComponentOption func(*componentConfig)

type componentConfig struct {
	kind    storage.Kind
	kindSet bool
}

// WithStorage selects the storage backend for the component type.
func WithStorage(kind storage.Kind) ComponentOption {
	return func(c *componentConfig) {
		c.kind = kind
		c.kindSet = true
	}
}

// RegisterComponent assigns an id to T ahead of first use and creates its store. A
// second explicit registration returns the existing id with ErrComponentAlreadyRegistered.
func RegisterComponent[T any](w *World, opts ...ComponentOption) (ComponentID, error) {
	cfg := componentConfig{kind: w.defaultStorage}
	for _, opt := range opts {
		opt(&cfg)
	}
	t := reflect.TypeFor[T]()
	if id, ok := w.types.lookup(t); ok {
		return id, fmt.Errorf("%w: %s", ErrComponentAlreadyRegistered, t)
	}
	id, err := registerStore[T](w, t, cfg.kind)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ComponentIDOf returns the id of T without registering it.
func ComponentIDOf[T any](w *World) (ComponentID, bool) {
	return w.types.lookup(reflect.TypeFor[T]())
}

// componentID resolves T's id, registering it with the default backend on first use.
// Overflowing the registry is a configuration error and panics.
func componentID[T any](w *World) ComponentID {
	t := reflect.TypeFor[T]()
	if id, ok := w.types.lookup(t); ok {
		return id
	}
	id, err := registerStore[T](w, t, w.defaultStorage)
	if err != nil {
		panic(err)
	}
	return id
}

func registerStore[T any](w *World, t reflect.Type, kind storage.Kind) (ComponentID, error) {
	id, created, err := w.types.idOf(t)
	if err != nil {
		w.logger.Error("component registration failed", "type", t.String(), "err", err)
		return 0, err
	}
	if created {
		w.stores = append(w.stores, newComponentStore[T](id, kind))
		w.logger.Info("component store created", "type", t.String(), "id", int(id), "storage", kind.String())
	}
	return id, nil
}
