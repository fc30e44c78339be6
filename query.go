package ecs

// Query returns every live entity whose signature contains all of ids, in creation
// order. The result is a fresh slice; later mutations do not affect it. An id no type
// has been registered under matches nothing.
//
// Queries scan every entity ever created, so cost grows with the world, not with the
// number of matches.
func (w *World) Query(ids ...ComponentID) []Entity {
	for _, id := range ids {
		if int(id) >= w.types.len() {
			return nil
		}
	}
	return w.QueryMask(MaskOf(ids...))
}

// QueryMask is Query with a prebuilt requirement signature.
func (w *World) QueryMask(req Signature) []Entity {
	var out []Entity
	w.signatures.scan(req, func(e Entity) bool {
		out = append(out, e)
		return true
	})
	return out
}

// ForEach visits matching entities without building a result slice. fn must not
// create or destroy entities; returning false stops the scan.
func (w *World) ForEach(req Signature, fn func(Entity) bool) {
	w.signatures.scan(req, fn)
}

// Count returns how many live entities match req.
func (w *World) Count(req Signature) int {
	n := 0
	w.signatures.scan(req, func(Entity) bool {
		n++
		return true
	})
	return n
}

// requirement resolves a set of types to a mask. ok is false when any type has never
// been registered, in which case nothing can match.
func requirement(w *World, ids ...func(*World) (ComponentID, bool)) (Signature, bool) {
	var req Signature
	for _, resolve := range ids {
		id, ok := resolve(w)
		if !ok {
			return 0, false
		}
		req = req.Set(id)
	}
	return req, true
}

func queryTypes(w *World, ids ...func(*World) (ComponentID, bool)) []Entity {
	req, ok := requirement(w, ids...)
	if !ok {
		return nil
	}
	return w.QueryMask(req)
}

// Query1 returns every entity holding an A.
func Query1[A any](w *World) []Entity {
	return queryTypes(w, ComponentIDOf[A])
}

// Query2 returns every entity holding both an A and a B.
func Query2[A, B any](w *World) []Entity {
	return queryTypes(w, ComponentIDOf[A], ComponentIDOf[B])
}

// Query3 returns every entity holding an A, a B and a C.
func Query3[A, B, C any](w *World) []Entity {
	return queryTypes(w, ComponentIDOf[A], ComponentIDOf[B], ComponentIDOf[C])
}

// Query4 returns every entity holding an A, a B, a C and a D.
func Query4[A, B, C, D any](w *World) []Entity {
	return queryTypes(w, ComponentIDOf[A], ComponentIDOf[B], ComponentIDOf[C], ComponentIDOf[D])
}

// Mask1 builds the requirement signature for A. ok is false when A is unregistered.
func Mask1[A any](w *World) (Signature, bool) {
	return requirement(w, ComponentIDOf[A])
}

// Mask2 builds the requirement signature for A and B.
func Mask2[A, B any](w *World) (Signature, bool) {
	return requirement(w, ComponentIDOf[A], ComponentIDOf[B])
}
