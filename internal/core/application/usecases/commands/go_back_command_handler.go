package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/core/ports"
)

// GoBackCommandHandler takes the Back transition of the current step.
// Leaving rate or pricing drops the selected rate, the fulfilled shipment and
// the current quote; an in-flight fetch is ignored when it lands.
type GoBackCommandHandler struct {
	sessions ports.SessionRepository
	logger   *slog.Logger
}

func NewGoBackCommandHandler(sessions ports.SessionRepository, logger *slog.Logger) GoBackCommandHandler {
	return GoBackCommandHandler{
		sessions: sessions,
		logger:   logger.With("component", "wizard"),
	}
}

// Handle returns the step the session is on afterwards.
func (h GoBackCommandHandler) Handle(ctx context.Context, command GoBackCommand) (wizard.Step, error) {
	if err := command.Validate(); err != nil {
		return "", err
	}

	session, err := h.sessions.Get(ctx, command.SessionID())
	if err != nil {
		return "", err
	}
	if err := session.TryAcquire(); err != nil {
		return "", err
	}
	defer session.Release()

	transition, err := session.Fire(wizard.EventBack)
	if err != nil {
		return session.Step(), err
	}
	if err := session.Apply(transition); err != nil {
		return session.Step(), err
	}

	h.logger.InfoContext(ctx, "Transition taken",
		"session_id", session.ID().String(), "from", string(transition.From), "to", string(transition.To))
	return transition.To, nil
}
