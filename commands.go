package ecs

import "fmt"

// CommandFunc adapts a function to the Command interface.
type CommandFunc func(world *World) error

func (f CommandFunc) Apply(world *World) error {
	return f(world)
}

// NewCreateEntityCommand enqueues a new entity creation. If target is non-nil it receives the handle.
func NewCreateEntityCommand(target *Entity) Command {
	return createEntityCommand{target: target}
}

// NewDestroyEntityCommand enqueues an entity teardown.
func NewDestroyEntityCommand(e Entity) Command {
	return destroyEntityCommand{entity: e}
}

// NewAddComponentCommand enqueues a component addition.
func NewAddComponentCommand[T any](e Entity, value T) Command {
	return addComponentCommand[T]{entity: e, value: value}
}

// NewAddComponentToCommand is NewAddComponentCommand for an entity created by an
// earlier deferred command in the same buffer.
func NewAddComponentToCommand[T any](target *Entity, value T) Command {
	return addComponentCommand[T]{target: target, value: value}
}

// NewRemoveComponentCommand enqueues a component removal.
func NewRemoveComponentCommand[T any](e Entity) Command {
	return removeComponentCommand[T]{entity: e}
}

type createEntityCommand struct {
	target *Entity
}

type destroyEntityCommand struct {
	entity Entity
}

type addComponentCommand[T any] struct {
	entity Entity
	target *Entity
	value  T
}

type removeComponentCommand[T any] struct {
	entity Entity
}

func (c createEntityCommand) Apply(world *World) error {
	e, err := world.TryCreateEntity()
	if err != nil {
		return err
	}
	if c.target != nil {
		*c.target = e
	}
	return nil
}

func (c destroyEntityCommand) Apply(world *World) error {
	if !world.DestroyEntity(c.entity) {
		return fmt.Errorf("%w: destroy %v", ErrInvalidEntity, c.entity)
	}
	return nil
}

func (c addComponentCommand[T]) Apply(world *World) error {
	e := c.entity
	if c.target != nil {
		e = *c.target
	}
	return AddComponent(world, e, c.value)
}

func (c removeComponentCommand[T]) Apply(world *World) error {
	if err := world.checkEntity(c.entity); err != nil {
		return err
	}
	RemoveComponent[T](world, c.entity)
	return nil
}

var (
	_ Command = CommandFunc(nil)
	_ Command = createEntityCommand{}
	_ Command = destroyEntityCommand{}
	_ Command = addComponentCommand[int]{}
	_ Command = removeComponentCommand[int]{}
)
