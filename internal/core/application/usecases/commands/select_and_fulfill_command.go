package commands

import (
	"errors"

	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/pkg/guard"
)

var ErrSelectAndFulfillCommandIsNotConstructed = errors.New(
	"SelectAndFulfillCommand must be created via NewSelectAndFulfillCommand constructor",
)

// SelectAndFulfillCommand commits the selected rate of the session and fulfills its shipment.
type SelectAndFulfillCommand struct {
	session *wizard.Session

	guard guard.ConstructorGuard
}

func NewSelectAndFulfillCommand(session *wizard.Session) (SelectAndFulfillCommand, error) {
	if session == nil {
		return SelectAndFulfillCommand{}, ErrSessionIsRequired
	}
	return SelectAndFulfillCommand{
		session: session,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SelectAndFulfillCommand) Validate() error {
	return c.guard.Validate(ErrSelectAndFulfillCommandIsNotConstructed)
}

func (c SelectAndFulfillCommand) Session() *wizard.Session {
	return c.session
}
