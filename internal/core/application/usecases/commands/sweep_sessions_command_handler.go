package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/core/ports"
)

type SweepSessionsCommandHandler struct {
	sessions ports.SessionRepository
	logger   *slog.Logger
}

func NewSweepSessionsCommandHandler(sessions ports.SessionRepository, logger *slog.Logger) SweepSessionsCommandHandler {
	return SweepSessionsCommandHandler{
		sessions: sessions,
		logger:   logger.With("component", "session_sweeper"),
	}
}

// Handle returns the number of removed sessions. Busy sessions are skipped.
func (h SweepSessionsCommandHandler) Handle(ctx context.Context, command SweepSessionsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	all, err := h.sessions.All(ctx)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, session := range all {
		if !h.expired(session, command) {
			continue
		}
		if err := session.TryAcquire(); err != nil {
			continue
		}
		err := h.sessions.Remove(ctx, session.ID())
		session.Release()
		if err != nil {
			h.logger.WarnContext(ctx, "Failed to remove session",
				"session_id", session.ID().String(), "error", err)
			continue
		}
		removed++
	}

	if removed > 0 {
		h.logger.InfoContext(ctx, "Sessions swept", "removed", removed, "remaining", len(all)-removed)
	}
	return removed, nil
}

func (h SweepSessionsCommandHandler) expired(session *wizard.Session, command SweepSessionsCommand) bool {
	return session.Step().IsTerminal() || session.IsIdle(command.TTL())
}
