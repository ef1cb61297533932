package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGoBackCommandIsNotConstructed = errors.New(
	"GoBackCommand must be created via NewGoBackCommand constructor",
)

// GoBackCommand moves a session one step back.
type GoBackCommand struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGoBackCommand(sessionID kernel.UUID) (GoBackCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return GoBackCommand{}, err
	}
	return GoBackCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c GoBackCommand) Validate() error {
	return c.guard.Validate(ErrGoBackCommandIsNotConstructed)
}

func (c GoBackCommand) SessionID() kernel.UUID {
	return c.sessionID
}
