package ecs

import (
	"context"
	"time"
)

// System is per-frame logic run by the Scheduler.
type System interface {
	Descriptor() SystemDescriptor
	Run(ctx context.Context, exec ExecutionContext) SystemResult
}

// SystemDescriptor names a system and controls how often it runs.
type SystemDescriptor struct {
	Name     string
	Tags     []string
	RunEvery TickInterval
}

// SystemResult indicates how a system behaved during execution.
type SystemResult struct {
	Skipped bool
	Err     error
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc struct {
	Name string
	Fn   func(ctx context.Context, exec ExecutionContext) error
}

func (s SystemFunc) Descriptor() SystemDescriptor {
	return SystemDescriptor{Name: s.Name}
}

func (s SystemFunc) Run(ctx context.Context, exec ExecutionContext) SystemResult {
	return SystemResult{Err: s.Fn(ctx, exec)}
}

// ExecutionContext supplies a system with access to the world for one frame.
type ExecutionContext interface {
	World() *World
	TimeDelta() time.Duration
	TickIndex() uint64
	Logger() Logger
	Defer(cmd Command)
}

// TickInterval controls how frequently a system runs.
type TickInterval struct {
	Every  uint32
	Offset uint32
}

// ErrorPolicy defines how the scheduler responds to system failures.
type ErrorPolicy uint8

const (
	ErrorPolicyAbort ErrorPolicy = iota
	ErrorPolicyContinue
	ErrorPolicyRetry
)

// FrameSummary captures what happened during one scheduler tick.
type FrameSummary struct {
	Tick            uint64
	Duration        time.Duration
	SystemsTotal    int
	SystemsExecuted int
	SystemsSkipped  int
	SystemsFailed   int
	CommandsApplied int
	EntitiesAlive   int
	Error           error
}

// FrameObserver receives a summary after every tick.
type FrameObserver interface {
	FrameCompleted(summary FrameSummary)
}

// Command represents a deferred mutation applied after systems finish.
type Command interface {
	Apply(world *World) error
}

// Logger captures structured log output.
type Logger interface {
	With(key string, value any) Logger
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// ResourceContainer holds shared per-world values, such as frame data handed between
// systems.
type ResourceContainer interface {
	Get(name string) (any, bool)
	Set(name string, value any)
	Delete(name string)
	Range(func(string, any) bool)
}
