package commands

import (
	"context"
	"errors"
	"log/slog"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// StartSessionCommandHandler creates wizard sessions. An edit session loads
// the order and looks up its shipment; an order without a shipment yet is
// opened with an empty shipment id.
type StartSessionCommandHandler struct {
	sessions  ports.SessionRepository
	orders    ports.OrderClient
	shipments ports.ShipmentClient
	opts      []wizard.Option
	logger    *slog.Logger
}

func NewStartSessionCommandHandler(
	sessions ports.SessionRepository,
	orders ports.OrderClient,
	shipments ports.ShipmentClient,
	logger *slog.Logger,
	opts ...wizard.Option,
) StartSessionCommandHandler {
	return StartSessionCommandHandler{
		sessions:  sessions,
		orders:    orders,
		shipments: shipments,
		opts:      opts,
		logger:    logger.With("component", "wizard"),
	}
}

func (h StartSessionCommandHandler) Handle(ctx context.Context, command StartSessionCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	var (
		session *wizard.Session
		err     error
	)
	if command.IsEdit() {
		session, err = h.open(ctx, command.OrderID())
	} else {
		session, err = wizard.NewSession(command.OrderType(), h.opts...)
	}
	if err != nil {
		return kernel.UUID{}, err
	}

	if err := h.sessions.Add(ctx, session); err != nil {
		return kernel.UUID{}, err
	}

	h.logger.InfoContext(ctx, "Session started",
		"session_id", session.ID().String(),
		"order_type", string(session.OrderType()),
		"order_id", session.OrderID())
	return session.ID(), nil
}

func (h StartSessionCommandHandler) open(ctx context.Context, orderID string) (*wizard.Session, error) {
	o, err := h.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var shipmentID string
	sh, err := h.shipments.GetByOrderID(ctx, orderID)
	switch {
	case err == nil:
		shipmentID = sh.ID()
	case errors.Is(err, errs.ErrObjectNotFound):
	default:
		return nil, err
	}

	return wizard.NewSessionFromOrder(o, shipmentID, h.opts...)
}
