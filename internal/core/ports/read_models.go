package ports

import (
	"context"

	"shipping/internal/core/domain/model/box"
	"shipping/internal/core/domain/model/events"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/wizard"
)

// BoxCatalog is the known boxes list consulted by the box resolver. It is a
// read model fed from the remote inventory, not the owner of the boxes.
type BoxCatalog interface {
	All(ctx context.Context) ([]*box.Box, error)

	// Put inserts or replaces a single box after a successful remote write.
	Put(ctx context.Context, b *box.Box) error

	// Replace swaps the whole catalog after a full refresh.
	Replace(ctx context.Context, boxes []*box.Box) error
}

// RateCache keeps quotes per shipment and classification code set.
type RateCache interface {
	// Get reports a miss with ok=false and a nil error.
	Get(ctx context.Context, shipmentID string, codes []string) (rates []shipment.Rate, ok bool, err error)
	Put(ctx context.Context, shipmentID string, codes []string, rates []shipment.Rate) error
	// Invalidate drops every entry of the shipment.
	Invalidate(ctx context.Context, shipmentID string) error
}

// SessionRepository stores live wizard sessions.
type SessionRepository interface {
	Add(ctx context.Context, s *wizard.Session) error
	Get(ctx context.Context, id kernel.UUID) (*wizard.Session, error)
	Remove(ctx context.Context, id kernel.UUID) error
	All(ctx context.Context) ([]*wizard.Session, error)
}

// EventPublisher publishes workflow events. correlationID ties the event to
// the wizard session that produced it.
type EventPublisher interface {
	Publish(ctx context.Context, correlationID string, e events.Event) error
}
