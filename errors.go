package ecs

import "errors"

var (
	// ErrAllocationExhausted indicates the entity id space is used up. Creation halts for good.
	ErrAllocationExhausted = errors.New("ecs: entity allocation exhausted")
	// ErrTypeCapacityExceeded indicates more distinct component types than a signature can hold.
	ErrTypeCapacityExceeded = errors.New("ecs: component type capacity exceeded")
	// ErrMissingComponent signals a lookup for a component the entity does not have.
	ErrMissingComponent = errors.New("ecs: missing component")
	// ErrInvalidEntity is returned when a mutation targets a nil, unknown, or destroyed entity.
	ErrInvalidEntity = errors.New("ecs: invalid entity")
	// ErrComponentAlreadyRegistered indicates an explicit registration of a known component type.
	ErrComponentAlreadyRegistered = errors.New("ecs: component already registered")
	// ErrDuplicateSystem indicates two systems registered under the same name.
	ErrDuplicateSystem = errors.New("ecs: duplicate system name")
)
