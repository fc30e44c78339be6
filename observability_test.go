package ecs

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

type captureLogger struct {
	infos  []string
	args   [][]any
	errors []string
}

func (l *captureLogger) With(string, any) Logger { return l }

func (l *captureLogger) Info(msg string, args ...any) {
	l.infos = append(l.infos, msg)
	l.args = append(l.args, args)
}

func (l *captureLogger) Error(msg string, args ...any) {
	l.errors = append(l.errors, msg)
}

func TestPrometheusFrameCollectorWritesMetrics(t *testing.T) {
	collector := NewPrometheusFrameCollector(&PrometheusCollectorOptions{
		DurationBuckets: []time.Duration{time.Millisecond, 10 * time.Millisecond},
	})

	collector.FrameCompleted(FrameSummary{
		Tick:            42,
		Duration:        5 * time.Millisecond,
		SystemsTotal:    2,
		SystemsExecuted: 2,
		CommandsApplied: 3,
		EntitiesAlive:   7,
	})
	collector.FrameCompleted(FrameSummary{Duration: time.Millisecond / 2, Error: errors.New("boom")})

	var buf bytes.Buffer
	if err := collector.WriteMetrics(&buf); err != nil {
		t.Fatalf("write metrics: %v", err)
	}
	metrics := buf.String()
	for _, want := range []string{
		"ecs_frame_duration_seconds_count 2.000000",
		"ecs_systems_executed_total 2.000000",
		"ecs_commands_applied_total 3.000000",
		"ecs_frame_errors_total 1.000000",
		"ecs_entities_alive 0.000000",
		`ecs_frame_duration_seconds_bucket{le="0.010000"} 2.000000`,
		`ecs_frame_duration_seconds_bucket{le="0.001000"} 1.000000`,
	} {
		if !strings.Contains(metrics, want) {
			t.Fatalf("expected %q in %q", want, metrics)
		}
	}
}

func TestLoggingObserverJSON(t *testing.T) {
	logger := &captureLogger{}
	observer := NewLoggingObserver(logger, ObservationLogFormatJSON)
	observer.FrameCompleted(FrameSummary{Tick: 13, SystemsExecuted: 1, Error: errors.New("bad frame")})

	if len(logger.infos) != 1 {
		t.Fatalf("expected one log line, got %d", len(logger.infos))
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(logger.infos[0]), &payload); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if payload["tick"] != float64(13) {
		t.Fatalf("unexpected tick: %v", payload["tick"])
	}
	if payload["error"] != "bad frame" {
		t.Fatalf("unexpected error field: %v", payload["error"])
	}
}

func TestLoggingObserverKeyValue(t *testing.T) {
	logger := &captureLogger{}
	observer := NewLoggingObserver(logger, ObservationLogFormatKeyValue)
	observer.FrameCompleted(FrameSummary{Tick: 4})

	if len(logger.infos) != 1 || logger.infos[0] != "frame summary" {
		t.Fatalf("unexpected log output: %v", logger.infos)
	}
	if args := logger.args[0]; len(args) < 2 || args[0] != "tick" || args[1] != uint64(4) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestWorldLogsStoreCreation(t *testing.T) {
	logger := &captureLogger{}
	w := NewWorld(WithLogger(logger))
	e := w.CreateEntity()
	if err := AddComponent(w, e, 1.5); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(logger.infos) != 1 || logger.infos[0] != "component store created" {
		t.Fatalf("unexpected log output: %v", logger.infos)
	}
}
