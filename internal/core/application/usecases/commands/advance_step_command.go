package commands

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/operator"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/pkg/guard"
)

var ErrAdvanceStepCommandIsNotConstructed = errors.New(
	"AdvanceStepCommand must be created via NewAdvanceStepCommand constructor",
)

// AdvanceStepCommand moves a session forward (contact to package, package to
// rate or pricing) or completes it (rate or pricing to done).
//
// Example:
//
//	cmd, err := NewAdvanceStepCommand(sessionID, wizard.EventForward, user)
//	if err != nil {
//	    return err
//	}
//	res, err := handler.Handle(ctx, cmd)
//	if err == nil && !res.Advanced {
//	    // show res.FieldErrors and the session notifications
//	}
type AdvanceStepCommand struct {
	sessionID kernel.UUID
	event     wizard.Event
	from      wizard.Step
	user      operator.User

	guard guard.ConstructorGuard
}

func NewAdvanceStepCommand(sessionID kernel.UUID, event wizard.Event, user operator.User) (AdvanceStepCommand, error) {
	var errEvent error
	if event != wizard.EventForward && event != wizard.EventComplete {
		errEvent = fmt.Errorf("%w: event %q cannot advance a session", wizard.ErrTransitionNotAllowed, event)
	}
	if err := errors.Join(sessionID.Validate(), errEvent); err != nil {
		return AdvanceStepCommand{}, err
	}

	return AdvanceStepCommand{
		sessionID: sessionID,
		event:     event,
		user:      user,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewCompleteStepCommand completes a session that must currently be on
// step from. The transition is refused when the session is elsewhere.
func NewCompleteStepCommand(sessionID kernel.UUID, from wizard.Step, user operator.User) (AdvanceStepCommand, error) {
	c, err := NewAdvanceStepCommand(sessionID, wizard.EventComplete, user)
	if err != nil {
		return AdvanceStepCommand{}, err
	}
	c.from = from
	return c, nil
}

func (c AdvanceStepCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStepCommandIsNotConstructed)
}

func (c AdvanceStepCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c AdvanceStepCommand) Event() wizard.Event {
	return c.event
}

// From is the required source step, empty when any step is accepted.
func (c AdvanceStepCommand) From() wizard.Step {
	return c.from
}

func (c AdvanceStepCommand) User() operator.User {
	return c.user
}
