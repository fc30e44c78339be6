package ecs

// AddComponent attaches value to e, replacing any previous value of the same type. The
// first use of T anywhere registers it and creates its store. The signature bit is set
// only after the store write, so the two never disagree.
func AddComponent[T any](w *World, e Entity, value T) error {
	if err := w.checkEntity(e); err != nil {
		return err
	}
	id := componentID[T](w)
	w.stores[id].(*componentStore[T]).add(e, value)
	w.signatures.set(e, id)
	return nil
}

// GetComponent returns a pointer to e's value of type T. The pointer is valid until the
// next mutation of T's store. A missing value yields ErrMissingComponent.
func GetComponent[T any](w *World, e Entity) (*T, error) {
	store := storeFor[T](w)
	if store == nil || !w.signatures.isAlive(e) {
		return nil, missingComponent[T](e)
	}
	return store.get(e)
}

// HasComponent reports whether e currently holds a T. It reads the signature only.
func HasComponent[T any](w *World, e Entity) bool {
	id, ok := ComponentIDOf[T](w)
	if !ok {
		return false
	}
	sig, alive := w.signatures.get(e)
	return alive && sig.Has(id)
}

// RemoveComponent detaches e's T, returning false when there was none.
func RemoveComponent[T any](w *World, e Entity) bool {
	store := storeFor[T](w)
	if store == nil || !w.signatures.isAlive(e) {
		return false
	}
	if !store.RemoveEntity(e) {
		return false
	}
	w.signatures.clear(e, store.id)
	return true
}

// EachComponent visits every (entity, value) pair of type T in store order.
func EachComponent[T any](w *World, fn func(Entity, *T) bool) {
	store := storeFor[T](w)
	if store == nil {
		return
	}
	store.each(fn)
}

// ComponentCount returns how many entities hold a T.
func ComponentCount[T any](w *World) int {
	store := storeFor[T](w)
	if store == nil {
		return 0
	}
	return store.Len()
}
