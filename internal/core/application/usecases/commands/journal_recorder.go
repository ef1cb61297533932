package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/journal"
	"shipping/internal/core/domain/model/wizard"
)

// JournalRecorder appends saga outcomes to the submission journal. A failed
// write is logged and swallowed: the journal never blocks the saga.
type JournalRecorder struct {
	uowFactory JournalUoWFactory
	logger     *slog.Logger
}

func NewJournalRecorder(uowFactory JournalUoWFactory, logger *slog.Logger) JournalRecorder {
	return JournalRecorder{
		uowFactory: uowFactory,
		logger:     logger.With("component", "journal_recorder"),
	}
}

// Record writes one entry for session. cause marks the step failed.
func (r JournalRecorder) Record(
	ctx context.Context,
	session *wizard.Session,
	step journal.Step,
	idempotencyKey string,
	cause error,
) {
	entry := journal.NewEntry(session.ID(), step, cause, session.Now())
	entry.IdempotencyKey = idempotencyKey
	entry.OrderID = session.OrderID()
	entry.ShipmentID = session.ShipmentID()

	if err := r.write(ctx, entry); err != nil {
		r.logger.ErrorContext(ctx, "Failed to write journal entry",
			"session_id", entry.SessionID.String(), "step", string(entry.Step), "error", err)
	}
}

func (r JournalRecorder) write(ctx context.Context, entry journal.Entry) error {
	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.JournalRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
