package ecs

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Signature is the per-entity component bitset. Bit i is set iff the entity holds a
// value of the component type whose id is i.
type Signature uint64

// bit returns the mask for id. An id the signature cannot represent panics with an
// error wrapping ErrTypeCapacityExceeded.
func bit(id ComponentID) Signature {
	if id >= MaxComponentTypes {
		panic(fmt.Errorf("%w: component id %d does not fit a %d-bit signature", ErrTypeCapacityExceeded, id, MaxComponentTypes))
	}
	return 1 << id
}

// Set returns the signature with the bit for id enabled.
func (s Signature) Set(id ComponentID) Signature {
	return s | bit(id)
}

// Clear returns the signature with the bit for id disabled.
func (s Signature) Clear(id ComponentID) Signature {
	return s &^ bit(id)
}

// Has reports whether the bit for id is set.
func (s Signature) Has(id ComponentID) bool {
	return s&bit(id) != 0
}

// Contains reports whether every bit of req is also set in s.
func (s Signature) Contains(req Signature) bool {
	return s&req == req
}

// Len returns the number of component types in the signature.
func (s Signature) Len() int {
	return bits.OnesCount64(uint64(s))
}

// ForEach calls fn for each set bit in ascending id order.
func (s Signature) ForEach(fn func(id ComponentID)) {
	word := uint64(s)
	for word != 0 {
		pos := bits.TrailingZeros64(word)
		fn(ComponentID(pos))
		word &^= 1 << pos
	}
}

// MaskOf builds a requirement signature from component ids.
func MaskOf(ids ...ComponentID) Signature {
	var s Signature
	for _, id := range ids {
		s = s.Set(id)
	}
	return s
}

func (s Signature) String() string {
	if s == 0 {
		return "Signature{}"
	}
	var b strings.Builder
	b.WriteString("Signature{")
	first := true
	s.ForEach(func(id ComponentID) {
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(strconv.Itoa(int(id)))
	})
	b.WriteByte('}')
	return b.String()
}
