package commands

import (
	"context"
	"errors"
	"slices"

	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/core/ports"
)

var (
	// ErrDraftIsNotEditable is returned on steps that own no form fields.
	ErrDraftIsNotEditable = errors.New("draft cannot be edited in the current step")

	// ErrOrderTypeIsLocked is returned when the type of an existing order would change.
	ErrOrderTypeIsLocked = errors.New("order type cannot change once the order exists")
)

// UpdateDraftCommandHandler copies the section of the current step into the
// session draft:
//   - contact: order type, order data, sender and recipient
//   - package: the package
//   - pricing: the partner price and currency
//
// Rate selection goes through SelectRate; rate and done own no fields.
type UpdateDraftCommandHandler struct {
	sessions ports.SessionRepository
}

func NewUpdateDraftCommandHandler(sessions ports.SessionRepository) UpdateDraftCommandHandler {
	return UpdateDraftCommandHandler{sessions: sessions}
}

func (h UpdateDraftCommandHandler) Handle(ctx context.Context, command UpdateDraftCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	session, err := h.sessions.Get(ctx, command.SessionID())
	if err != nil {
		return err
	}
	if err := session.TryAcquire(); err != nil {
		return err
	}
	defer session.Release()

	in := command.Draft()

	switch session.Step() {
	case wizard.StepContact:
		if err := in.OrderType.Validate(); err != nil {
			return err
		}
		if session.OrderID() != "" && in.OrderType != session.OrderType() {
			return ErrOrderTypeIsLocked
		}
		session.Mutate(func(d *draft.Draft) {
			d.OrderType = in.OrderType
			d.OrderData = in.OrderData
			d.Sender = in.Sender
			d.Recipient = in.Recipient
		})

	case wizard.StepPackage:
		session.Mutate(func(d *draft.Draft) {
			d.Package = in.Package
			d.Package.ClassificationCodes = slices.Clone(in.Package.ClassificationCodes)
		})

	case wizard.StepPricing:
		session.Mutate(func(d *draft.Draft) {
			d.ShippingService.PartnerPrice = in.ShippingService.PartnerPrice
			d.ShippingService.PartnerCurrency = in.ShippingService.PartnerCurrency
		})

	default:
		return ErrDraftIsNotEditable
	}

	return nil
}
