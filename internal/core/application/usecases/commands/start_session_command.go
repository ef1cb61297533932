package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/draft"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrStartSessionCommandIsNotConstructed = errors.New(
	"StartSessionCommand must be created via NewStartSessionCommand or NewEditSessionCommand constructor",
)

// StartSessionCommand opens a wizard session, either empty for a new order
// or preloaded with an existing order for editing.
//
// Example:
//
//	cmd, err := NewStartSessionCommand(draft.HQ)
//	if err != nil {
//	    return err
//	}
//	sessionID, err := handler.Handle(ctx, cmd)
type StartSessionCommand struct {
	orderType draft.OrderType
	orderID   string

	guard guard.ConstructorGuard
}

// NewStartSessionCommand creates a command for a new order of orderType.
func NewStartSessionCommand(orderType draft.OrderType) (StartSessionCommand, error) {
	if err := orderType.Validate(); err != nil {
		return StartSessionCommand{}, err
	}
	return StartSessionCommand{
		orderType: orderType,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewEditSessionCommand creates a command that loads orderID for editing.
func NewEditSessionCommand(orderID string) (StartSessionCommand, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return StartSessionCommand{}, errs.NewValueIsRequiredError("orderId")
	}
	return StartSessionCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c StartSessionCommand) Validate() error {
	return c.guard.Validate(ErrStartSessionCommandIsNotConstructed)
}

func (c StartSessionCommand) OrderType() draft.OrderType {
	return c.orderType
}

// OrderID is empty for a new order.
func (c StartSessionCommand) OrderID() string {
	return c.orderID
}

func (c StartSessionCommand) IsEdit() bool {
	return c.orderID != ""
}
