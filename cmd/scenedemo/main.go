// scenedemo loads a world file and draws it top-down in the terminal. Build:
//
//	go build -o scenedemo ./cmd/scenedemo
//
// Usage:
//
//	./scenedemo [-scene docs/examples/scene/testdata/demo.world] [-fps 30] [-log scenedemo.log]
//
// Arrow keys turn and move the camera; q or Esc quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/DangerosoDavo/sigecs"
	"github.com/DangerosoDavo/sigecs/docs/examples/scene"
)

const (
	turnStep = 5
	moveStep = 0.5
)

func main() {
	scenePath := flag.String("scene", "docs/examples/scene/testdata/demo.world", "Path to a V0.1.0 world file")
	fps := flag.Int("fps", 30, "Frames per second")
	logPath := flag.String("log", "", "Write logs to this file instead of discarding them")
	flag.Parse()

	if err := run(*scenePath, *fps, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, "scenedemo:", err)
		os.Exit(1)
	}
}

func run(scenePath string, fps int, logPath string) error {
	var out io.Writer = io.Discard
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger := ecs.NewSlogLogger(slog.New(slog.NewTextHandler(out, nil)))

	s, err := scene.Load(scenePath)
	if err != nil {
		return err
	}
	world := ecs.NewWorld(ecs.WithLogger(logger))
	if _, err := scene.Spawn(world, s); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	sched := ecs.NewScheduler(world,
		ecs.WithErrorPolicy(ecs.ErrorPolicyContinue),
		ecs.WithObserver(ecs.NewLoggingObserver(logger, ecs.ObservationLogFormatKeyValue)),
	)
	if err := sched.Register(
		scene.CameraSystem{},
		scene.LightingSystem{},
		scene.RenderSystem{Canvas: screen},
	); err != nil {
		return err
	}

	events := make(chan tcell.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(screen, events, done)

	if fps <= 0 {
		fps = 30
	}
	frame := time.Second / time.Duration(fps)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	ctx := context.Background()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if quit := handleKey(world, ev); quit {
					return nil
				}
			}
		case <-ticker.C:
			if err := sched.Tick(ctx, frame); err != nil {
				return err
			}
			screen.Show()
		}
	}
}

// pumpEvents forwards screen events until the screen is finalized or done closes.
func pumpEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleKey steers the first camera. It reports whether the demo should exit.
func handleKey(world *ecs.World, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}

	cameras := ecs.Query1[scene.CameraComponent](world)
	if len(cameras) == 0 {
		return false
	}
	e := cameras[0]
	cam, err := ecs.GetComponent[scene.CameraComponent](world, e)
	if err != nil {
		return false
	}
	switch ev.Key() {
	case tcell.KeyLeft:
		cam.Yaw -= turnStep
	case tcell.KeyRight:
		cam.Yaw += turnStep
	case tcell.KeyUp, tcell.KeyDown:
		step := cam.Front.Scale(moveStep)
		if ev.Key() == tcell.KeyDown {
			step = step.Scale(-1)
		}
		if t, err := ecs.GetComponent[scene.Transform](world, e); err == nil {
			t.Position = t.Position.Add(step)
		} else {
			cam.Position = cam.Position.Add(step)
		}
	}
	return false
}
