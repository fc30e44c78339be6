package ecs

import "sync"

// CommandBuffer accumulates deferred commands during a frame.
type CommandBuffer struct {
	commands []Command
}

// NewCommandBuffer creates an empty buffer.
func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{}
}

// Len reports how many commands are queued.
func (b *CommandBuffer) Len() int {
	return len(b.commands)
}

// Push appends a command to the buffer. Nil commands are dropped.
func (b *CommandBuffer) Push(cmd Command) {
	if cmd == nil {
		return
	}
	b.commands = append(b.commands, cmd)
}

// Drain returns queued commands and resets the buffer.
func (b *CommandBuffer) Drain() []Command {
	drained := b.commands
	b.commands = nil
	return drained
}

// Flush applies the queued commands to world and empties the buffer. Commands after
// a failing one are discarded.
func (b *CommandBuffer) Flush(world *World) (int, error) {
	drained := b.Drain()
	return len(drained), world.ApplyCommands(drained)
}

// Snapshot marks the current position so a failed system's commands can be discarded.
func (b *CommandBuffer) Snapshot() int {
	return len(b.commands)
}

// Restore truncates the buffer back to snapshot.
func (b *CommandBuffer) Restore(snapshot int) {
	if snapshot < 0 {
		snapshot = 0
	}
	if snapshot >= len(b.commands) {
		return
	}
	clear(b.commands[snapshot:])
	b.commands = b.commands[:snapshot]
}

// CommandBufferPool reuses buffers across frames.
type CommandBufferPool struct {
	pool sync.Pool
}

// NewCommandBufferPool constructs a pool that returns fresh buffers.
func NewCommandBufferPool() *CommandBufferPool {
	p := &CommandBufferPool{}
	p.pool.New = func() any { return NewCommandBuffer() }
	return p
}

func (p *CommandBufferPool) Get() *CommandBuffer {
	return p.pool.Get().(*CommandBuffer)
}

// Put returns a buffer to the pool after clearing it.
func (p *CommandBufferPool) Put(buf *CommandBuffer) {
	if buf == nil {
		return
	}
	buf.Drain()
	p.pool.Put(buf)
}
