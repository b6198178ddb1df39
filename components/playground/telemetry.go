package playground

import (
	"context"
	"log/slog"
)

// Telemetry records playground events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// SlogTelemetry writes telemetry events as structured log records.
type SlogTelemetry struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogTelemetry logs events at debug level through logger.
func NewSlogTelemetry(logger *slog.Logger) *SlogTelemetry {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogTelemetry{logger: logger, level: slog.LevelDebug}
}

// WithLevel returns a copy logging at level.
func (t *SlogTelemetry) WithLevel(level slog.Level) *SlogTelemetry {
	return &SlogTelemetry{logger: t.logger, level: level}
}

// Record implements Telemetry.
func (t *SlogTelemetry) Record(ctx context.Context, event string, payload map[string]any) {
	attrs := make([]slog.Attr, 0, len(payload))
	for key, value := range payload {
		attrs = append(attrs, slog.Any(key, value))
	}
	t.logger.LogAttrs(ctx, t.level, event, attrs...)
}
