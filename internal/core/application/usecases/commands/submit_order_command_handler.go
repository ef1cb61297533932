package commands

import (
	"context"
	"fmt"
	"log/slog"

	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/events"
	"shipping/internal/core/domain/model/journal"
	"shipping/internal/core/domain/model/operator"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/core/ports"
)

// SubmitOrderCommandHandler is the order part of the submission saga.
//
// HQ orders:
//   - with a remembered order id: edit the order, look the shipment up again,
//     drop cached rates of that shipment and the selected rate
//   - without: require an identified user, create the order, remember its id,
//     look the shipment up
//
// Partner orders are created or edited the same way but have no shipment step.
//
// Sub-steps run strictly in sequence. The first failure is reported as a
// notification and halts the saga; nothing done before it is reverted, so a
// created order stays remembered and the next submission edits it.
type SubmitOrderCommandHandler struct {
	orders    ports.OrderClient
	shipments ports.ShipmentClient
	rateCache ports.RateCache
	publisher ports.EventPublisher
	journal   JournalRecorder
	logger    *slog.Logger
}

func NewSubmitOrderCommandHandler(
	orders ports.OrderClient,
	shipments ports.ShipmentClient,
	rateCache ports.RateCache,
	publisher ports.EventPublisher,
	journal JournalRecorder,
	logger *slog.Logger,
) SubmitOrderCommandHandler {
	return SubmitOrderCommandHandler{
		orders:    orders,
		shipments: shipments,
		rateCache: rateCache,
		publisher: publisher,
		journal:   journal,
		logger:    logger.With("component", "submit_order"),
	}
}

// Handle reports whether every sub-step succeeded.
func (h SubmitOrderCommandHandler) Handle(ctx context.Context, command SubmitOrderCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	session := command.Session()
	d := session.Draft()
	created := session.OrderID() == ""

	var ok bool
	if created {
		ok = h.create(ctx, session, d, command.User())
	} else {
		ok = h.edit(ctx, session, d)
	}
	if !ok {
		return false, nil
	}

	if d.OrderType == draft.HQ {
		if !h.resolveShipment(ctx, session) {
			return false, nil
		}
		if !created {
			h.invalidateRates(ctx, session)
		}
		session.Mutate(func(d *draft.Draft) { d.ClearRateSelection() })
		session.InvalidateQuote()
		session.SetFulfilled(nil)
	}

	h.publish(ctx, session, events.OrderSubmitted{
		OrderID:    session.OrderID(),
		OrderType:  string(d.OrderType),
		ShipmentID: session.ShipmentID(),
		Created:    created,
		SessionID:  session.ID().String(),
		At:         session.Now(),
	})
	session.Notify(wizard.LevelInfo, wizard.CodeOrderSaved, "order "+session.OrderID()+" saved")
	return true, nil
}

func (h SubmitOrderCommandHandler) create(
	ctx context.Context,
	session *wizard.Session,
	d draft.Draft,
	user operator.User,
) bool {
	key := session.OrderKey()
	req, err := order.NewCreateRequest(d, user, key)
	if err != nil {
		h.logger.WarnContext(ctx, "Order create blocked", "session_id", session.ID().String(), "error", err)
		session.NotifyError(wizard.CodeOrderSaveFailed, err)
		return false
	}

	var o *order.Order
	if d.OrderType == draft.Partner {
		o, err = h.orders.CreatePartner(ctx, req)
	} else {
		o, err = h.orders.CreateHQ(ctx, req)
	}
	if err != nil {
		h.fail(ctx, session, journal.StepOrderCreated, key, wizard.CodeOrderSaveFailed, err)
		return false
	}

	session.RememberOrder(o.ID())
	h.journal.Record(ctx, session, journal.StepOrderCreated, key, nil)
	h.logger.InfoContext(ctx, "Order created", "session_id", session.ID().String(), "order_id", o.ID())
	return true
}

func (h SubmitOrderCommandHandler) edit(ctx context.Context, session *wizard.Session, d draft.Draft) bool {
	req, err := order.NewEditRequest(session.OrderID(), d)
	if err != nil {
		h.logger.WarnContext(ctx, "Order edit blocked", "session_id", session.ID().String(), "error", err)
		session.NotifyError(wizard.CodeOrderSaveFailed, err)
		return false
	}

	if _, err := h.orders.Update(ctx, req); err != nil {
		h.fail(ctx, session, journal.StepOrderUpdated, "", wizard.CodeOrderSaveFailed, err)
		return false
	}

	h.journal.Record(ctx, session, journal.StepOrderUpdated, "", nil)
	h.logger.InfoContext(ctx, "Order updated", "session_id", session.ID().String(), "order_id", req.OrderID)
	return true
}

// resolveShipment looks the single shipment of the order up by order id.
func (h SubmitOrderCommandHandler) resolveShipment(ctx context.Context, session *wizard.Session) bool {
	sh, err := h.shipments.GetByOrderID(ctx, session.OrderID())
	if err != nil {
		h.fail(ctx, session, journal.StepShipmentResolved, "", wizard.CodeShipmentLookupFailed,
			fmt.Errorf("shipment of order %s: %w", session.OrderID(), err))
		return false
	}

	session.RememberShipment(sh.ID())
	h.journal.Record(ctx, session, journal.StepShipmentResolved, "", nil)
	return true
}

func (h SubmitOrderCommandHandler) invalidateRates(ctx context.Context, session *wizard.Session) {
	if err := h.rateCache.Invalidate(ctx, session.ShipmentID()); err != nil {
		h.logger.WarnContext(ctx, "Failed to invalidate cached rates",
			"shipment_id", session.ShipmentID(), "error", err)
	}
}

func (h SubmitOrderCommandHandler) publish(ctx context.Context, session *wizard.Session, e events.Event) {
	if err := h.publisher.Publish(ctx, session.ID().String(), e); err != nil {
		h.logger.WarnContext(ctx, "Failed to publish event", "event_type", e.EventType(), "error", err)
	}
}

func (h SubmitOrderCommandHandler) fail(
	ctx context.Context,
	session *wizard.Session,
	step journal.Step,
	key string,
	code string,
	err error,
) {
	h.logger.ErrorContext(ctx, "Order submission failed",
		"session_id", session.ID().String(), "step", string(step), "error", err)
	h.journal.Record(ctx, session, step, key, err)
	session.NotifyError(code, err)
}
