package ecs

import (
	"context"
	"fmt"
	"io"
	"runtime/trace"
	"time"
)

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithErrorPolicy sets how failing systems are handled. The default is abort.
func WithErrorPolicy(policy ErrorPolicy) SchedulerOption {
	return func(s *Scheduler) {
		s.policy = policy
	}
}

// WithObserver adds an observer that receives a FrameSummary after every tick.
func WithObserver(observer FrameObserver) SchedulerOption {
	return func(s *Scheduler) {
		if observer != nil {
			s.observers = append(s.observers, observer)
		}
	}
}

// WithSchedulerLogger overrides the logger; by default the world's logger is used.
func WithSchedulerLogger(logger Logger) SchedulerOption {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Scheduler runs systems once per frame, in registration order, on the calling
// goroutine. Commands deferred by systems are applied after the last system runs.
type Scheduler struct {
	world     *World
	systems   []System
	names     map[string]struct{}
	pool      *CommandBufferPool
	logger    Logger
	policy    ErrorPolicy
	observers []FrameObserver
	tickIndex uint64
}

// NewScheduler constructs a scheduler bound to world.
func NewScheduler(world *World, opts ...SchedulerOption) *Scheduler {
	if world == nil {
		world = NewWorld()
	}
	s := &Scheduler{
		world:  world,
		names:  make(map[string]struct{}),
		pool:   NewCommandBufferPool(),
		logger: world.Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// World returns the world the scheduler drives.
func (s *Scheduler) World() *World {
	return s.world
}

// Register appends systems to the frame. Names must be unique; unnamed systems are allowed.
func (s *Scheduler) Register(systems ...System) error {
	for _, sys := range systems {
		if sys == nil {
			continue
		}
		name := sys.Descriptor().Name
		if name != "" {
			if _, exists := s.names[name]; exists {
				return fmt.Errorf("%w: %s", ErrDuplicateSystem, name)
			}
			s.names[name] = struct{}{}
		}
		s.systems = append(s.systems, sys)
	}
	return nil
}

// TickIndex returns the index of the next frame.
func (s *Scheduler) TickIndex() uint64 {
	return s.tickIndex
}

// Tick runs one frame. ctx is checked between systems.
func (s *Scheduler) Tick(ctx context.Context, dt time.Duration) error {
	buf := s.pool.Get()
	defer s.pool.Put(buf)

	summary := FrameSummary{Tick: s.tickIndex, SystemsTotal: len(s.systems)}
	start := time.Now()
	err := s.runSystems(ctx, dt, buf, &summary)
	if err == nil {
		var applied int
		applied, err = buf.Flush(s.world)
		summary.CommandsApplied = applied
	}
	summary.Duration = time.Since(start)
	summary.EntitiesAlive = s.world.EntityCount()
	summary.Error = err
	s.publish(summary)
	if err != nil {
		return err
	}
	s.tickIndex++
	return nil
}

func (s *Scheduler) runSystems(ctx context.Context, dt time.Duration, buf *CommandBuffer, summary *FrameSummary) error {
	exec := &systemExecutionContext{
		world:    s.world,
		dt:       dt,
		tick:     s.tickIndex,
		commands: buf,
	}
	for _, system := range s.systems {
		if err := ctx.Err(); err != nil {
			return err
		}
		desc := system.Descriptor()
		if !shouldRunTick(s.tickIndex, desc.RunEvery) {
			summary.SystemsSkipped++
			continue
		}
		systemLogger := s.logger.With("system", desc.Name)
		exec.logger = systemLogger

		snapshot := buf.Snapshot()
		result := system.Run(ctx, exec)
		if result.Err != nil && s.policy == ErrorPolicyRetry {
			systemLogger.Error("system failed, retrying", "err", result.Err)
			buf.Restore(snapshot)
			result = system.Run(ctx, exec)
		}
		if result.Err != nil {
			buf.Restore(snapshot)
			summary.SystemsFailed++
			err := fmt.Errorf("ecs: system %s failed: %w", desc.Name, result.Err)
			if s.policy == ErrorPolicyContinue {
				systemLogger.Error("system failed", "err", result.Err)
				continue
			}
			return err
		}
		if result.Skipped {
			summary.SystemsSkipped++
			continue
		}
		summary.SystemsExecuted++
	}
	return nil
}

// Run executes steps frames back to back.
func (s *Scheduler) Run(ctx context.Context, steps int, dt time.Duration) error {
	for i := 0; i < steps; i++ {
		if err := s.Tick(ctx, dt); err != nil {
			return err
		}
	}
	return nil
}

// RunWithTrace runs fn while recording a runtime trace to w.
func (s *Scheduler) RunWithTrace(w io.Writer, fn func() error) error {
	if w != nil {
		if err := trace.Start(w); err != nil {
			return err
		}
		defer trace.Stop()
	}
	return fn()
}

func (s *Scheduler) publish(summary FrameSummary) {
	for _, observer := range s.observers {
		observer.FrameCompleted(summary)
	}
}

func shouldRunTick(tick uint64, interval TickInterval) bool {
	every := uint64(interval.Every)
	if every == 0 {
		return true
	}
	offset := uint64(interval.Offset % interval.Every)
	return (tick+offset)%every == 0
}

type systemExecutionContext struct {
	world    *World
	dt       time.Duration
	tick     uint64
	logger   Logger
	commands *CommandBuffer
}

func (c *systemExecutionContext) World() *World { return c.world }

func (c *systemExecutionContext) TimeDelta() time.Duration { return c.dt }

func (c *systemExecutionContext) TickIndex() uint64 { return c.tick }

func (c *systemExecutionContext) Logger() Logger { return c.logger }

func (c *systemExecutionContext) Defer(cmd Command) { c.commands.Push(cmd) }
