package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/box"
	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/events"
	"shipping/internal/core/domain/model/journal"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// Business rules checked before the selection is sent.
const (
	RuleShipmentUnknown = "shipment_unknown"
	RuleRateNotSelected = "rate_not_selected"
)

// SelectAndFulfillCommandHandler is the fulfillment part of the submission saga.
//
// The provider selection is sent first and fulfillment is only attempted when
// it succeeded. After a successful fulfillment a store-owned box with stock
// loses exactly one unit. That decrement is best effort: its failure is
// reported but the fulfilled shipment stays.
//
// Once the shipment is fulfilled the journal and the decrement no longer
// follow the request context, so a client that goes away cannot leave the
// stock untouched. Events are published last.
type SelectAndFulfillCommandHandler struct {
	shipments        ports.ShipmentClient
	boxes            ports.BoxClient
	catalog          ports.BoxCatalog
	publisher        ports.EventPublisher
	journal          JournalRecorder
	internalProvider string
	stockLocks       *boxLocks
	logger           *slog.Logger
}

func NewSelectAndFulfillCommandHandler(
	shipments ports.ShipmentClient,
	boxes ports.BoxClient,
	catalog ports.BoxCatalog,
	publisher ports.EventPublisher,
	journal JournalRecorder,
	internalProvider string,
	logger *slog.Logger,
) SelectAndFulfillCommandHandler {
	return SelectAndFulfillCommandHandler{
		shipments:        shipments,
		boxes:            boxes,
		catalog:          catalog,
		publisher:        publisher,
		journal:          journal,
		internalProvider: internalProvider,
		stockLocks:       newBoxLocks(),
		logger:           logger.With("component", "select_and_fulfill"),
	}
}

// Handle reports whether the shipment was fulfilled.
func (h SelectAndFulfillCommandHandler) Handle(ctx context.Context, command SelectAndFulfillCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	session := command.Session()
	d := session.Draft()

	sel, err := h.selection(session.ShipmentID(), d.ShippingService)
	if err != nil {
		h.logger.WarnContext(ctx, "Fulfillment blocked", "session_id", session.ID().String(), "error", err)
		session.NotifyError(wizard.CodeProviderFailed, err)
		return false, nil
	}

	if _, err := h.shipments.SelectProvider(ctx, sel); err != nil {
		h.fail(ctx, session, journal.StepProviderSelected, wizard.CodeProviderFailed, err)
		return false, nil
	}
	h.journal.Record(ctx, session, journal.StepProviderSelected, "", nil)

	fulfilled, err := h.shipments.Fulfill(ctx, sel.ShipmentID())
	if err != nil {
		h.fail(ctx, session, journal.StepFulfilled, wizard.CodeFulfillFailed, err)
		return false, nil
	}
	session.SetFulfilled(fulfilled)
	detached := context.WithoutCancel(ctx)
	h.journal.Record(detached, session, journal.StepFulfilled, "", nil)
	session.Notify(wizard.LevelInfo, wizard.CodeFulfilled, "shipment fulfilled, tracking "+fulfilled.Label().TrackingNumber)

	stockErr := h.decrementStock(detached, session, d.Package)

	h.publish(ctx, session, events.ShipmentFulfilled{
		OrderID:        session.OrderID(),
		ShipmentID:     fulfilled.ID(),
		Provider:       sel.Provider(),
		Carrier:        string(sel.Carrier()),
		TrackingNumber: fulfilled.Label().TrackingNumber,
		FinalPrice:     sel.FinalPrice().Amount().StringFixed(2),
		Currency:       sel.FinalPrice().Currency(),
		At:             session.Now(),
	})
	if stockErr != nil {
		h.publish(ctx, session, events.StockDecrementFailed{
			OrderID: session.OrderID(),
			BoxID:   d.Package.BoxID,
			Reason:  stockErr.Error(),
			At:      session.Now(),
		})
	}
	return true, nil
}

func (h SelectAndFulfillCommandHandler) selection(shipmentID string, s draft.ShippingDraft) (shipment.ProviderSelection, error) {
	if shipmentID == "" {
		return shipment.ProviderSelection{}, errs.NewBusinessRuleError(RuleShipmentUnknown, "the order has no shipment yet")
	}
	if s.SelectedRate == nil {
		return shipment.ProviderSelection{}, errs.NewBusinessRuleError(RuleRateNotSelected, "select a rate first")
	}
	override := shipment.Override{Price: s.OverridePrice, Currency: s.OverrideCurrency}
	return shipment.NewProviderSelection(shipmentID, *s.SelectedRate, override, h.internalProvider)
}

// decrementStock takes one unit from the bound store box. The stock is read
// from the catalog under the box lock so concurrent fulfillments of one box
// each take their own unit. A failure is journaled and notified, then
// returned so the caller can publish it.
func (h SelectAndFulfillCommandHandler) decrementStock(ctx context.Context, session *wizard.Session, pkg draft.PackageDraft) error {
	if !pkg.IsStoreOwned() || !pkg.HasBox() {
		return nil
	}

	unlock := h.stockLocks.lock(pkg.BoxID)
	defer unlock()

	bound, err := h.findBox(ctx, pkg.BoxID)
	if err != nil {
		return h.stockFailed(ctx, session, pkg.BoxID, err)
	}
	if !bound.HasStock() {
		return nil
	}

	patch, err := bound.Decremented()
	if err != nil {
		return h.stockFailed(ctx, session, pkg.BoxID, err)
	}
	updated, err := h.boxes.Update(ctx, bound.ID(), patch)
	if err != nil {
		return h.stockFailed(ctx, session, pkg.BoxID, err)
	}

	if err := h.catalog.Put(ctx, updated); err != nil {
		h.logger.WarnContext(ctx, "Failed to update box catalog", "box_id", updated.ID(), "error", err)
	}
	h.journal.Record(ctx, session, journal.StepStockDecremented, "", nil)
	return nil
}

func (h SelectAndFulfillCommandHandler) findBox(ctx context.Context, id string) (*box.Box, error) {
	known, err := h.catalog.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range known {
		if b.ID() == id {
			return b, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("boxId", id)
}

func (h SelectAndFulfillCommandHandler) stockFailed(ctx context.Context, session *wizard.Session, boxID string, err error) error {
	h.logger.ErrorContext(ctx, "Stock decrement failed",
		"session_id", session.ID().String(), "box_id", boxID, "error", err)
	h.journal.Record(ctx, session, journal.StepStockDecremented, "", err)
	session.Notify(wizard.LevelWarning, wizard.CodeStockFailed, "shipment fulfilled but box stock was not updated: "+err.Error())
	return err
}

func (h SelectAndFulfillCommandHandler) publish(ctx context.Context, session *wizard.Session, e events.Event) {
	if err := h.publisher.Publish(ctx, session.ID().String(), e); err != nil {
		h.logger.WarnContext(ctx, "Failed to publish event", "event_type", e.EventType(), "error", err)
	}
}

func (h SelectAndFulfillCommandHandler) fail(
	ctx context.Context,
	session *wizard.Session,
	step journal.Step,
	code string,
	err error,
) {
	h.logger.ErrorContext(ctx, "Fulfillment failed",
		"session_id", session.ID().String(), "step", string(step), "error", err)
	h.journal.Record(ctx, session, step, "", err)
	session.NotifyError(code, err)
}
