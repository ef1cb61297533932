package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/ports"
)

type AbandonSessionCommandHandler struct {
	sessions ports.SessionRepository
	logger   *slog.Logger
}

func NewAbandonSessionCommandHandler(sessions ports.SessionRepository, logger *slog.Logger) AbandonSessionCommandHandler {
	return AbandonSessionCommandHandler{
		sessions: sessions,
		logger:   logger.With("component", "wizard"),
	}
}

// Handle refuses to drop a session with an operation in flight.
func (h AbandonSessionCommandHandler) Handle(ctx context.Context, command AbandonSessionCommand) error {
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

	if err := h.sessions.Remove(ctx, session.ID()); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Session abandoned",
		"session_id", session.ID().String(),
		"step", string(session.Step()),
		"order_id", session.OrderID())
	return nil
}
