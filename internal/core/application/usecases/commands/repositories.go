// Package commands contains the wizard operations that change session state
// or call the remote services.
//
// Top level commands (start, update draft, advance, go back, select rate,
// abandon) address a session by id and take its busy flag for their whole
// duration. Component commands (resolve contacts, resolve box, submit order,
// select and fulfill, refetch rates) receive the session handle from the
// advance handler, which already holds the flag.
package commands

import (
	"context"

	"shipping/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for the submission journal.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// JournalRepoFactory provides access to the journal repository within a transaction.
	JournalRepoFactory interface {
		JournalRepository() ports.JournalRepository
	}

	// JournalUoW manages transactions for journal writes.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.JournalRepository().Add(ctx, entry)
	//   err = uow.Commit(ctx)
	JournalUoW interface {
		TxManager
		JournalRepoFactory
	}

	// JournalUoWFactory creates new journal unit of work instances.
	JournalUoWFactory interface {
		Create() JournalUoW
	}
)
