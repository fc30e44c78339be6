package ecs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// ObservationLogFormat controls structured logging encoding.
type ObservationLogFormat uint8

const (
	ObservationLogFormatJSON ObservationLogFormat = iota
	ObservationLogFormatKeyValue
)

// NewLoggingObserver logs every frame summary through logger.
func NewLoggingObserver(logger Logger, format ObservationLogFormat) FrameObserver {
	if logger == nil {
		logger = noopLogger{}
	}
	if format != ObservationLogFormatKeyValue {
		format = ObservationLogFormatJSON
	}
	return loggingObserver{logger: logger, format: format}
}

type loggingObserver struct {
	logger Logger
	format ObservationLogFormat
}

func (o loggingObserver) FrameCompleted(summary FrameSummary) {
	switch o.format {
	case ObservationLogFormatKeyValue:
		o.logKeyValue(summary)
	default:
		o.logJSON(summary)
	}
}

func (o loggingObserver) logJSON(summary FrameSummary) {
	payload := map[string]any{
		"tick":             summary.Tick,
		"duration_ms":      float64(summary.Duration) / float64(time.Millisecond),
		"systems_total":    summary.SystemsTotal,
		"systems_executed": summary.SystemsExecuted,
		"systems_skipped":  summary.SystemsSkipped,
		"systems_failed":   summary.SystemsFailed,
		"commands_applied": summary.CommandsApplied,
		"entities_alive":   summary.EntitiesAlive,
	}
	if summary.Error != nil {
		payload["error"] = summary.Error.Error()
	}
	data, err := json.Marshal(payload)
	if err != nil {
		o.logger.Error("frame summary marshal error", "err", err)
		return
	}
	o.logger.Info(string(data))
}

func (o loggingObserver) logKeyValue(summary FrameSummary) {
	args := []any{
		"tick", summary.Tick,
		"duration", summary.Duration,
		"systems_total", summary.SystemsTotal,
		"systems_executed", summary.SystemsExecuted,
		"systems_skipped", summary.SystemsSkipped,
		"systems_failed", summary.SystemsFailed,
		"commands_applied", summary.CommandsApplied,
		"entities_alive", summary.EntitiesAlive,
	}
	if summary.Error != nil {
		args = append(args, "error", summary.Error.Error())
	}
	o.logger.Info("frame summary", args...)
}

// PrometheusCollectorOptions configures a PrometheusFrameCollector.
type PrometheusCollectorOptions struct {
	// Writer, when set, receives the full exposition after every observed frame.
	Writer          io.Writer
	DurationBuckets []time.Duration
}

// PrometheusFrameCollector aggregates frame summaries and renders them in the
// Prometheus text exposition format.
type PrometheusFrameCollector struct {
	options PrometheusCollectorOptions
	mu      sync.Mutex

	durationSum   float64
	durationCount float64
	buckets       []float64
	executed      float64
	skipped       float64
	failed        float64
	commands      float64
	errors        float64
	entitiesAlive float64
}

func NewPrometheusFrameCollector(opts *PrometheusCollectorOptions) *PrometheusFrameCollector {
	c := &PrometheusFrameCollector{}
	if opts != nil {
		c.options = *opts
	}
	if n := len(c.options.DurationBuckets); n > 0 {
		c.buckets = make([]float64, n)
	}
	return c
}

func (c *PrometheusFrameCollector) FrameCompleted(summary FrameSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	durSeconds := summary.Duration.Seconds()
	c.durationSum += durSeconds
	c.durationCount++
	for i := range c.buckets {
		if durSeconds <= c.options.DurationBuckets[i].Seconds() {
			c.buckets[i]++
		}
	}
	c.executed += float64(summary.SystemsExecuted)
	c.skipped += float64(summary.SystemsSkipped)
	c.failed += float64(summary.SystemsFailed)
	c.commands += float64(summary.CommandsApplied)
	c.entitiesAlive = float64(summary.EntitiesAlive)
	if summary.Error != nil {
		c.errors++
	}

	if writer := c.options.Writer; writer != nil {
		_ = c.writeMetricsLocked(writer)
	}
}

func (c *PrometheusFrameCollector) WriteMetrics(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeMetricsLocked(w)
}

func (c *PrometheusFrameCollector) writeMetricsLocked(w io.Writer) error {
	if w == nil {
		return nil
	}
	var buf bytes.Buffer
	buf.WriteString("# HELP ecs_frame_duration_seconds Frame execution duration.\n")
	buf.WriteString("# TYPE ecs_frame_duration_seconds summary\n")
	fmt.Fprintf(&buf, "ecs_frame_duration_seconds_sum %f\n", c.durationSum)
	fmt.Fprintf(&buf, "ecs_frame_duration_seconds_count %f\n", c.durationCount)
	for i, bucket := range c.buckets {
		fmt.Fprintf(&buf, "ecs_frame_duration_seconds_bucket{le=\"%.6f\"} %f\n", c.options.DurationBuckets[i].Seconds(), bucket)
	}

	writeCounter(&buf, "ecs_systems_executed_total", "Systems executed.", c.executed)
	writeCounter(&buf, "ecs_systems_skipped_total", "Systems skipped by interval or by choice.", c.skipped)
	writeCounter(&buf, "ecs_systems_failed_total", "Systems that returned an error.", c.failed)
	writeCounter(&buf, "ecs_commands_applied_total", "Deferred commands applied.", c.commands)
	writeCounter(&buf, "ecs_frame_errors_total", "Frames that ended in error.", c.errors)

	buf.WriteString("# HELP ecs_entities_alive Live entities after the last frame.\n")
	buf.WriteString("# TYPE ecs_entities_alive gauge\n")
	fmt.Fprintf(&buf, "ecs_entities_alive %f\n", c.entitiesAlive)

	_, err := w.Write(buf.Bytes())
	return err
}

func writeCounter(buf *bytes.Buffer, name, help string, value float64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %f\n", name, value)
}

var (
	_ FrameObserver = loggingObserver{}
	_ FrameObserver = (*PrometheusFrameCollector)(nil)
)
