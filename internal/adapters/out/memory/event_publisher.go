package memory

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/events"
)

// LogPublisher writes events to the log instead of a broker.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "event_publisher")}
}

func (p *LogPublisher) Publish(ctx context.Context, correlationID string, e events.Event) error {
	p.logger.InfoContext(ctx, "Workflow event",
		"event_type", e.EventType(),
		"key", e.Key(),
		"correlation_id", correlationID,
		"payload", e)
	return nil
}
