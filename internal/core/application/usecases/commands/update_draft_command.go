package commands

import (
	"errors"

	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrUpdateDraftCommandIsNotConstructed = errors.New(
	"UpdateDraftCommand must be created via NewUpdateDraftCommand constructor",
)

// UpdateDraftCommand carries the form as the UI currently shows it. Only the
// part owned by the current step is taken over.
type UpdateDraftCommand struct {
	sessionID kernel.UUID
	draft     draft.Draft

	guard guard.ConstructorGuard
}

func NewUpdateDraftCommand(sessionID kernel.UUID, d draft.Draft) (UpdateDraftCommand, error) {
	if err := sessionID.Validate(); err != nil {
		return UpdateDraftCommand{}, err
	}
	return UpdateDraftCommand{
		sessionID: sessionID,
		draft:     d.Clone(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDraftCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDraftCommandIsNotConstructed)
}

func (c UpdateDraftCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c UpdateDraftCommand) Draft() draft.Draft {
	return c.draft.Clone()
}
