// Package ports defines the outbound contracts of the wizard: the remote
// order, box, customer and shipment services, the read models and caches
// the resolvers consult, and the journal and event sinks of the saga.
//
// Remote client implementations return errs.RemoteCallError for failed calls
// and errs.ObjectNotFoundError when the remote resource does not exist.
package ports

import (
	"context"

	"shipping/internal/core/domain/model/box"
	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
)

// CustomerClient upserts customer contact profiles.
type CustomerClient interface {
	// Create stores a new contact and returns its id.
	Create(ctx context.Context, contact draft.ContactDraft, idempotencyKey string) (string, error)

	// Update overwrites the contact with the given id.
	Update(ctx context.Context, id string, contact draft.ContactDraft) error
}

// BoxClient manages inventory boxes.
type BoxClient interface {
	// Create adds a box and returns it as stored.
	Create(ctx context.Context, spec box.Spec, idempotencyKey string) (*box.Box, error)

	// Update changes only the fields set in patch and returns the stored box.
	Update(ctx context.Context, id string, patch box.Patch) (*box.Box, error)

	// List returns one page of the inventory. Pages are 0-based.
	List(ctx context.Context, page, size int) (box.Page, error)
}

// OrderClient creates and edits orders. Every call returns the full order.
type OrderClient interface {
	CreateHQ(ctx context.Context, req order.Request) (*order.Order, error)
	CreatePartner(ctx context.Context, req order.Request) (*order.Order, error)
	Update(ctx context.Context, req order.Request) (*order.Order, error)
	Get(ctx context.Context, id string) (*order.Order, error)
}

// ShipmentClient drives the shipment of an order.
type ShipmentClient interface {
	// GetByOrderID looks up the single shipment of an order.
	GetByOrderID(ctx context.Context, orderID string) (*shipment.Shipment, error)

	// SelectProvider commits the chosen rate.
	SelectProvider(ctx context.Context, sel shipment.ProviderSelection) (*shipment.Shipment, error)

	// Fulfill finalizes the shipment and returns it with label and tracking.
	Fulfill(ctx context.Context, shipmentID string) (*shipment.Shipment, error)
}

// RateClient quotes carrier rates.
type RateClient interface {
	Quote(ctx context.Context, shipmentID string, codes []string) ([]shipment.Rate, error)
}
