package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrAbandonSessionCommandIsNotConstructed = errors.New(
	"AbandonSessionCommand must be created via NewAbandonSessionCommand constructor",
)

// AbandonSessionCommand discards a session. Remote writes already made stay
// in place.
type AbandonSessionCommand struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAbandonSessionCommand(sessionID kernel.UUID) (AbandonSessionCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return AbandonSessionCommand{}, err
	}
	return AbandonSessionCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AbandonSessionCommand) Validate() error {
	return c.guard.Validate(ErrAbandonSessionCommandIsNotConstructed)
}

func (c AbandonSessionCommand) SessionID() kernel.UUID {
	return c.sessionID
}
