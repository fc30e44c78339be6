package ecs

import (
	"fmt"
	"math"
)

// Entity is an opaque handle identifying an object in a World. Handles are issued in
// increasing order starting at 1 and are never reused.
type Entity uint32

// NilEntity is the zero value; no allocator ever issues it.
const NilEntity Entity = 0

// IsZero reports whether the handle is the nil entity.
func (e Entity) IsZero() bool {
	return e == NilEntity
}

// String renders the entity handle for debugging purposes.
func (e Entity) String() string {
	return fmt.Sprintf("Entity(%d)", uint32(e))
}

// NewEntityAllocator constructs an allocator that issues at most limit handles.
// A limit of zero allows the whole uint32 range.
func NewEntityAllocator(limit uint32) *EntityAllocator {
	if limit == 0 {
		limit = math.MaxUint32
	}
	return &EntityAllocator{limit: limit}
}

// EntityAllocator issues monotonically increasing entity handles.
type EntityAllocator struct {
	last  uint32
	limit uint32
}

// Next returns the next unused handle. Once the limit is reached every further call
// fails with ErrAllocationExhausted; the counter never wraps.
func (a *EntityAllocator) Next() (Entity, error) {
	if a.last >= a.limit {
		return NilEntity, fmt.Errorf("%w: %d entities issued", ErrAllocationExhausted, a.last)
	}
	a.last++
	return Entity(a.last), nil
}

// Issued returns how many handles have been handed out.
func (a *EntityAllocator) Issued() int {
	return int(a.last)
}

// Limit returns the highest handle the allocator may issue.
func (a *EntityAllocator) Limit() uint32 {
	return a.limit
}

// Contains reports whether e was issued by this allocator at some point.
func (a *EntityAllocator) Contains(e Entity) bool {
	return !e.IsZero() && uint32(e) <= a.last
}
