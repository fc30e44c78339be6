package ecs_test

import (
	"errors"
	"testing"

	"github.com/DangerosoDavo/sigecs"
)

func TestCommandBufferPushDrain(t *testing.T) {
	buf := ecs.NewCommandBuffer()
	if buf.Len() != 0 {
		t.Fatalf("expected empty buffer")
	}

	buf.Push(ecs.NewDestroyEntityCommand(ecs.NilEntity))
	buf.Push(nil)
	if buf.Len() != 1 {
		t.Fatalf("expected length 1, got %d", buf.Len())
	}

	drained := buf.Drain()
	if len(drained) != 1 {
		t.Fatalf("expected drained commands")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected buffer reset")
	}
}

func TestCommandBufferPoolReuses(t *testing.T) {
	pool := ecs.NewCommandBufferPool()
	buf := pool.Get()
	buf.Push(ecs.NewDestroyEntityCommand(ecs.NilEntity))
	pool.Put(buf)

	reused := pool.Get()
	if reused.Len() != 0 {
		t.Fatalf("expected buffer to be cleared when reused")
	}
}

func TestCommandBufferSnapshotRestore(t *testing.T) {
	buf := ecs.NewCommandBuffer()
	buf.Push(ecs.NewDestroyEntityCommand(ecs.NilEntity))
	snap := buf.Snapshot()
	buf.Push(ecs.NewCreateEntityCommand(nil))
	if buf.Len() != 2 {
		t.Fatalf("expected len 2")
	}
	buf.Restore(snap)
	if buf.Len() != 1 {
		t.Fatalf("expected len reset to 1, got %d", buf.Len())
	}
}

func TestCommandBufferFlushStopsAtFailure(t *testing.T) {
	world := ecs.NewWorld()
	buf := ecs.NewCommandBuffer()

	var created ecs.Entity
	buf.Push(ecs.NewCreateEntityCommand(&created))
	buf.Push(ecs.NewDestroyEntityCommand(ecs.Entity(99)))
	buf.Push(ecs.NewCreateEntityCommand(nil))

	n, err := buf.Flush(world)
	if n != 3 {
		t.Fatalf("expected 3 commands drained, got %d", n)
	}
	if !errors.Is(err, ecs.ErrInvalidEntity) {
		t.Fatalf("expected ErrInvalidEntity, got %v", err)
	}
	if created != 1 || world.EntityCount() != 1 {
		t.Fatalf("expected only the first creation to apply, created=%v count=%d", created, world.EntityCount())
	}
	if buf.Len() != 0 {
		t.Fatalf("expected buffer emptied by flush")
	}
}
