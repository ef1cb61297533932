package commands

import (
	"errors"

	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/pkg/guard"
)

var ErrResolveBoxCommandIsNotConstructed = errors.New(
	"ResolveBoxCommand must be created via NewResolveBoxCommand constructor",
)

// ResolveBoxCommand reconciles the package of the session draft with inventory.
type ResolveBoxCommand struct {
	session *wizard.Session

	guard guard.ConstructorGuard
}

func NewResolveBoxCommand(session *wizard.Session) (ResolveBoxCommand, error) {
	if session == nil {
		return ResolveBoxCommand{}, ErrSessionIsRequired
	}
	return ResolveBoxCommand{
		session: session,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ResolveBoxCommand) Validate() error {
	return c.guard.Validate(ErrResolveBoxCommandIsNotConstructed)
}

func (c ResolveBoxCommand) Session() *wizard.Session {
	return c.session
}
