package commands

import (
	"errors"

	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/pkg/guard"
)

var ErrResolveContactsCommandIsNotConstructed = errors.New(
	"ResolveContactsCommand must be created via NewResolveContactsCommand constructor",
)

// ErrSessionIsRequired is returned when a component command gets no session handle.
var ErrSessionIsRequired = errors.New("session is required")

// ResolveContactsCommand persists the sender and recipient marked for saving.
type ResolveContactsCommand struct {
	session *wizard.Session

	guard guard.ConstructorGuard
}

func NewResolveContactsCommand(session *wizard.Session) (ResolveContactsCommand, error) {
	if session == nil {
		return ResolveContactsCommand{}, ErrSessionIsRequired
	}
	return ResolveContactsCommand{
		session: session,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ResolveContactsCommand) Validate() error {
	return c.guard.Validate(ErrResolveContactsCommandIsNotConstructed)
}

func (c ResolveContactsCommand) Session() *wizard.Session {
	return c.session
}
