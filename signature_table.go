package ecs

// signatureTable holds one signature per issued entity, indexed by the handle value.
// Slot 0 belongs to NilEntity and is never alive, so the scan order is creation order.
type signatureTable struct {
	sigs  []Signature
	alive []bool
	live  int
}

func newSignatureTable() *signatureTable {
	return &signatureTable{
		sigs:  make([]Signature, 1, 64),
		alive: make([]bool, 1, 64),
	}
}

// insert registers a freshly allocated entity with an empty signature.
func (t *signatureTable) insert(e Entity) {
	idx := int(e)
	for len(t.sigs) <= idx {
		t.sigs = append(t.sigs, 0)
		t.alive = append(t.alive, false)
	}
	t.sigs[idx] = 0
	t.alive[idx] = true
	t.live++
}

func (t *signatureTable) isAlive(e Entity) bool {
	idx := int(e)
	return idx < len(t.alive) && t.alive[idx]
}

func (t *signatureTable) get(e Entity) (Signature, bool) {
	if !t.isAlive(e) {
		return 0, false
	}
	return t.sigs[int(e)], true
}

func (t *signatureTable) set(e Entity, id ComponentID) {
	t.sigs[int(e)] = t.sigs[int(e)].Set(id)
}

func (t *signatureTable) clear(e Entity, id ComponentID) {
	t.sigs[int(e)] = t.sigs[int(e)].Clear(id)
}

// kill zeroes the signature and marks the slot dead. The slot is not reused.
func (t *signatureTable) kill(e Entity) {
	t.sigs[int(e)] = 0
	t.alive[int(e)] = false
	t.live--
}

// scan visits every live entity whose signature contains req, in creation order.
func (t *signatureTable) scan(req Signature, fn func(Entity) bool) {
	for idx := 1; idx < len(t.sigs); idx++ {
		if !t.alive[idx] || !t.sigs[idx].Contains(req) {
			continue
		}
		if !fn(Entity(idx)) {
			return
		}
	}
}
