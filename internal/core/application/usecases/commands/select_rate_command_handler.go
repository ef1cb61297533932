package commands

import (
	"context"

	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// SelectRateCommandHandler assigns the selected rate locally. Nothing is sent
// to the shipment service until the session is completed.
type SelectRateCommandHandler struct {
	sessions         ports.SessionRepository
	internalProvider string
}

func NewSelectRateCommandHandler(sessions ports.SessionRepository, internalProvider string) SelectRateCommandHandler {
	return SelectRateCommandHandler{
		sessions:         sessions,
		internalProvider: internalProvider,
	}
}

func (h SelectRateCommandHandler) Handle(ctx context.Context, command SelectRateCommand) error {
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

	quote := session.Quote()
	if session.Step() != wizard.StepRate || quote.IsZero() || quote.IsLoading() {
		return ErrRatesUnavailable
	}

	rate, ok := shipment.FindRate(quote.Rates, command.RateID())
	if !ok {
		return errs.NewObjectNotFoundError("rateId", command.RateID())
	}

	override := command.Override()
	if !shipment.IsInternalProvider(rate.Provider, h.internalProvider) {
		override = shipment.Override{}
	}

	session.Mutate(func(d *draft.Draft) {
		d.ShippingService.SelectedRate = &rate
		d.ShippingService.OverridePrice = override.Price
		d.ShippingService.OverrideCurrency = override.Currency
	})
	return nil
}
