package memory

import (
	"context"

	"shipping/internal/core/domain/model/journal"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
)

// NopUnitOfWorkFactory stands in for the journal database when none is
// configured. Entries are dropped.
type NopUnitOfWorkFactory struct{}

func (NopUnitOfWorkFactory) Create() ports.UnitOfWork {
	return nopUnitOfWork{}
}

type nopUnitOfWork struct{}

func (nopUnitOfWork) Begin(context.Context) error    { return nil }
func (nopUnitOfWork) Commit(context.Context) error   { return nil }
func (nopUnitOfWork) Rollback(context.Context) error { return nil }

func (nopUnitOfWork) JournalRepository() ports.JournalRepository {
	return nopJournalRepository{}
}

type nopJournalRepository struct{}

func (nopJournalRepository) Add(context.Context, journal.Entry) error { return nil }

func (nopJournalRepository) ListBySession(context.Context, kernel.UUID) ([]journal.Entry, error) {
	return []journal.Entry{}, nil
}
