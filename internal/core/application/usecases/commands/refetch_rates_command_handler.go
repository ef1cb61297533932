package commands

import (
	"context"
	"errors"
	"log/slog"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/core/ports"
)

// ErrRatesUnavailable is returned when rates are requested outside the rate
// step or before the shipment of the order is known.
var ErrRatesUnavailable = errors.New("rates are not available in the current step")

// Runner executes a rate fetch. Production code runs it on its own goroutine;
// tests pass a synchronous runner.
type Runner func(task func())

// GoRunner runs task on a new goroutine.
func GoRunner(task func()) {
	go task()
}

// RefetchRatesCommandHandler is the rate quoter. Every start replaces the
// session quote with a new loading one and resolves it in the background.
// A result that arrives after a newer fetch started, or after the operator
// left the rate step, is dropped by the session.
//
// Quotes are read through the rate cache; a cache failure falls back to the
// rate service.
type RefetchRatesCommandHandler struct {
	sessions ports.SessionRepository
	rates    ports.RateClient
	cache    ports.RateCache
	run      Runner
	logger   *slog.Logger
}

func NewRefetchRatesCommandHandler(
	sessions ports.SessionRepository,
	rates ports.RateClient,
	cache ports.RateCache,
	run Runner,
	logger *slog.Logger,
) RefetchRatesCommandHandler {
	return RefetchRatesCommandHandler{
		sessions: sessions,
		rates:    rates,
		cache:    cache,
		run:      run,
		logger:   logger.With("component", "rate_quoter"),
	}
}

func (h RefetchRatesCommandHandler) Handle(ctx context.Context, command RefetchRatesCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	session, err := h.sessions.Get(ctx, command.SessionID())
	if err != nil {
		return err
	}
	return h.Start(ctx, session)
}

// Start begins a new fetch for session. It does not wait for the result.
func (h RefetchRatesCommandHandler) Start(ctx context.Context, session *wizard.Session) error {
	if session.Step() != wizard.StepRate || session.ShipmentID() == "" {
		return ErrRatesUnavailable
	}

	quote := session.BeginQuote(session.Draft().Package.NonBlankCodes())
	detached := context.WithoutCancel(ctx)
	h.run(func() {
		h.fetch(detached, session, quote)
	})
	return nil
}

func (h RefetchRatesCommandHandler) fetch(ctx context.Context, session *wizard.Session, quote shipment.Quote) {
	rates, err := h.quote(ctx, quote.ShipmentID, quote.Codes)

	if !session.CompleteQuote(quote.Generation, rates, err) {
		h.logger.DebugContext(ctx, "Discarded stale rate quote",
			"session_id", session.ID().String(), "generation", quote.Generation)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "Rate quote failed",
			"session_id", session.ID().String(), "shipment_id", quote.ShipmentID, "error", err)
		session.NotifyError(wizard.CodeRatesFailed, err)
	}
}

func (h RefetchRatesCommandHandler) quote(ctx context.Context, shipmentID string, codes []string) ([]shipment.Rate, error) {
	cached, ok, err := h.cache.Get(ctx, shipmentID, codes)
	if err != nil {
		h.logger.WarnContext(ctx, "Rate cache read failed", "shipment_id", shipmentID, "error", err)
	}
	if ok {
		return cached, nil
	}

	rates, err := h.rates.Quote(ctx, shipmentID, codes)
	if err != nil {
		return nil, err
	}
	if err := h.cache.Put(ctx, shipmentID, codes, rates); err != nil {
		h.logger.WarnContext(ctx, "Rate cache write failed", "shipment_id", shipmentID, "error", err)
	}
	return rates, nil
}
