package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrRefetchRatesCommandIsNotConstructed = errors.New(
	"RefetchRatesCommand must be created via NewRefetchRatesCommand constructor",
)

// RefetchRatesCommand discards the current quote of a session and fetches a new one.
type RefetchRatesCommand struct {
	sessionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewRefetchRatesCommand(sessionID kernel.UUID) (RefetchRatesCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return RefetchRatesCommand{}, err
	}
	return RefetchRatesCommand{
		sessionID: sessionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RefetchRatesCommand) Validate() error {
	return c.guard.Validate(ErrRefetchRatesCommandIsNotConstructed)
}

func (c RefetchRatesCommand) SessionID() kernel.UUID {
	return c.sessionID
}
