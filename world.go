package ecs

import (
	"fmt"

	"github.com/DangerosoDavo/sigecs/ecs/storage"
)

// World owns the entity allocator, the component type registry, every component store
// and the signature table. It is not safe for concurrent use.
type World struct {
	allocator      *EntityAllocator
	types          *typeRegistry
	stores         []erasedStore
	signatures     *signatureTable
	resources      ResourceContainer
	logger         Logger
	defaultStorage storage.Kind
}

type WorldOption func(*World)

// NewWorld constructs a world with default allocator, registry and resources.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		allocator:      NewEntityAllocator(0),
		types:          newTypeRegistry(),
		stores:         make([]erasedStore, 0, MaxComponentTypes),
		signatures:     newSignatureTable(),
		resources:      newResourceContainer(),
		logger:         noopLogger{},
		defaultStorage: storage.KindDense,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WithLogger sets the logger used for store creation and teardown events.
func WithLogger(logger Logger) WorldOption {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithMaxEntities caps how many entity handles the world may ever issue.
func WithMaxEntities(limit uint32) WorldOption {
	return func(w *World) {
		w.allocator = NewEntityAllocator(limit)
	}
}

// WithDefaultStorage selects the backend for lazily created component stores.
func WithDefaultStorage(kind storage.Kind) WorldOption {
	return func(w *World) {
		w.defaultStorage = kind
	}
}

// WithResourceContainer overrides the default resource container.
func WithResourceContainer(container ResourceContainer) WorldOption {
	return func(w *World) {
		if container != nil {
			w.resources = container
		}
	}
}

// Resources exposes the resource container.
func (w *World) Resources() ResourceContainer {
	return w.resources
}

// Logger returns the world's logger.
func (w *World) Logger() Logger {
	return w.logger
}

// CreateEntity issues a new entity with an empty signature. Running out of handles is
// fatal and panics with an error wrapping ErrAllocationExhausted.
func (w *World) CreateEntity() Entity {
	e, err := w.TryCreateEntity()
	if err != nil {
		panic(err)
	}
	return e
}

// TryCreateEntity is CreateEntity returning the allocation error instead of panicking.
func (w *World) TryCreateEntity() (Entity, error) {
	e, err := w.allocator.Next()
	if err != nil {
		w.logger.Error("entity allocation failed", "err", err)
		return NilEntity, err
	}
	w.signatures.insert(e)
	return e, nil
}

// DestroyEntity removes every component of e and clears its signature. The handle is
// not recycled. Destroying a dead or unknown entity returns false.
func (w *World) DestroyEntity(e Entity) bool {
	sig, ok := w.signatures.get(e)
	if !ok {
		return false
	}
	sig.ForEach(func(id ComponentID) {
		w.stores[id].RemoveEntity(e)
	})
	w.signatures.kill(e)
	w.logger.Info("entity destroyed", "entity", uint32(e), "components", sig.Len())
	return true
}

// IsAlive reports whether e was created by this world and not destroyed since.
func (w *World) IsAlive(e Entity) bool {
	return w.signatures.isAlive(e)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.signatures.live
}

// SignatureOf returns e's current signature.
func (w *World) SignatureOf(e Entity) (Signature, bool) {
	return w.signatures.get(e)
}

// ComponentTypes lists registered component types in id order.
func (w *World) ComponentTypes() []ComponentInfo {
	out := make([]ComponentInfo, 0, w.types.len())
	for i := 0; i < w.types.len(); i++ {
		id := ComponentID(i)
		out = append(out, ComponentInfo{
			ID:      id,
			Name:    w.types.typeOf(id).String(),
			Storage: w.stores[id].Kind(),
		})
	}
	return out
}

// WorldStats is a point-in-time summary of a world's size.
type WorldStats struct {
	EntitiesIssued int
	EntitiesAlive  int
	ComponentTypes int
	StoreSizes     map[string]int
}

// Stats reports entity and store counts.
func (w *World) Stats() WorldStats {
	stats := WorldStats{
		EntitiesIssued: w.allocator.Issued(),
		EntitiesAlive:  w.signatures.live,
		ComponentTypes: w.types.len(),
		StoreSizes:     make(map[string]int, len(w.stores)),
	}
	for i, store := range w.stores {
		stats.StoreSizes[w.types.typeOf(ComponentID(i)).String()] = store.Len()
	}
	return stats
}

// ApplyCommands executes deferred commands in order, stopping at the first failure.
func (w *World) ApplyCommands(commands []Command) error {
	for i, cmd := range commands {
		if cmd == nil {
			continue
		}
		if err := cmd.Apply(w); err != nil {
			return fmt.Errorf("ecs: command %d: %w", i, err)
		}
	}
	return nil
}

func (w *World) checkEntity(e Entity) error {
	if !w.signatures.isAlive(e) {
		return fmt.Errorf("%w: %v", ErrInvalidEntity, e)
	}
	return nil
}
