package ports

import (
	"context"

	"shipping/internal/core/domain/model/journal"
	"shipping/internal/core/domain/model/kernel"
)

// JournalRepository persists submission journal entries.
type JournalRepository interface {
	// Add appends an entry. Entries are never updated.
	Add(ctx context.Context, entry journal.Entry) error

	// ListBySession returns the entries of a session, oldest first.
	ListBySession(ctx context.Context, sessionID kernel.UUID) ([]journal.Entry, error)
}
