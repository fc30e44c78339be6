package ecs_test

import (
	"errors"
	"testing"

	"github.com/DangerosoDavo/sigecs"
)

type health struct{ HP int }

func TestCreateEntityCommand(t *testing.T) {
	world := ecs.NewWorld()
	var id ecs.Entity
	cmd := ecs.NewCreateEntityCommand(&id)
	if err := cmd.Apply(world); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if id.IsZero() {
		t.Fatalf("expected id to be populated")
	}
	if !world.IsAlive(id) {
		t.Fatalf("expected entity to exist")
	}
}

func TestDestroyEntityCommand(t *testing.T) {
	world := ecs.NewWorld()
	id := world.CreateEntity()
	cmd := ecs.NewDestroyEntityCommand(id)
	if err := cmd.Apply(world); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if world.IsAlive(id) {
		t.Fatalf("expected entity destroyed")
	}
	if err := cmd.Apply(world); !errors.Is(err, ecs.ErrInvalidEntity) {
		t.Fatalf("expected second destroy to fail with ErrInvalidEntity, got %v", err)
	}
}

func TestAddRemoveComponentCommands(t *testing.T) {
	world := ecs.NewWorld()
	id := world.CreateEntity()

	if err := ecs.NewAddComponentCommand(id, health{HP: 99}).Apply(world); err != nil {
		t.Fatalf("apply add: %v", err)
	}
	got, err := ecs.GetComponent[health](world, id)
	if err != nil || got.HP != 99 {
		t.Fatalf("unexpected component state: value=%v, err=%v", got, err)
	}

	if err := ecs.NewRemoveComponentCommand[health](id).Apply(world); err != nil {
		t.Fatalf("apply remove: %v", err)
	}
	if ecs.HasComponent[health](world, id) {
		t.Fatalf("component should be removed")
	}
}

func TestAddComponentToDeferredEntity(t *testing.T) {
	world := ecs.NewWorld()
	var target ecs.Entity
	cmds := []ecs.Command{
		ecs.NewCreateEntityCommand(&target),
		ecs.NewAddComponentToCommand(&target, health{HP: 5}),
	}
	if err := world.ApplyCommands(cmds); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !ecs.HasComponent[health](world, target) {
		t.Fatalf("expected deferred entity to receive component")
	}
}

func TestCommandFunc(t *testing.T) {
	world := ecs.NewWorld()
	called := false
	cmd := ecs.CommandFunc(func(w *ecs.World) error {
		called = w == world
		return nil
	})
	if err := world.ApplyCommands([]ecs.Command{nil, cmd}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !called {
		t.Fatalf("expected command func to run against the world")
	}
}
