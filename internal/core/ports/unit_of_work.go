package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per journal write so concurrent
// sessions never share a transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of the submission journal. Callers
// drive Begin, Commit and Rollback themselves.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when no transaction is active.
	Commit(ctx context.Context) error

	// Rollback fails when no transaction is active.
	Rollback(ctx context.Context) error

	// JournalRepository writes through the transaction opened by Begin.
	JournalRepository() JournalRepository
}
