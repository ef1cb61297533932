package commands

import (
	"errors"

	"shipping/internal/core/domain/model/operator"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand creates or edits the order of the session on behalf of user.
//
// Example:
//
//	cmd, err := NewSubmitOrderCommand(session, operator.User{ID: "u-1", StoreID: "s-1"})
//	if err != nil {
//	    return err
//	}
//	ok, err := handler.Handle(ctx, cmd)
//	if !ok {
//	    // see session notifications
//	}
type SubmitOrderCommand struct {
	session *wizard.Session
	user    operator.User

	guard guard.ConstructorGuard
}

// NewSubmitOrderCommand does not check the user: an unknown user is reported
// by the handler as an identity error, and only when an order must be created.
func NewSubmitOrderCommand(session *wizard.Session, user operator.User) (SubmitOrderCommand, error) {
	if session == nil {
		return SubmitOrderCommand{}, ErrSessionIsRequired
	}
	return SubmitOrderCommand{
		session: session,
		user:    user,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) Session() *wizard.Session {
	return c.session
}

func (c SubmitOrderCommand) User() operator.User {
	return c.user
}
