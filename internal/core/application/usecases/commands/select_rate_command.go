package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrSelectRateCommandIsNotConstructed = errors.New(
	"SelectRateCommand must be created via NewSelectRateCommand constructor",
)

// SelectRateCommand picks one of the quoted rates. The override is kept only
// when the rate belongs to the internal provider.
type SelectRateCommand struct {
	sessionID kernel.UUID
	rateID    string
	override  shipment.Override

	guard guard.ConstructorGuard
}

func NewSelectRateCommand(sessionID kernel.UUID, rateID string, override shipment.Override) (SelectRateCommand, error) {
	var errRate error
	if strings.TrimSpace(rateID) == "" {
		errRate = errs.NewValueIsRequiredError("rateId")
	}
	if err := errors.Join(sessionID.Validate(), errRate); err != nil {
		return SelectRateCommand{}, err
	}

	return SelectRateCommand{
		sessionID: sessionID,
		rateID:    rateID,
		override:  override,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SelectRateCommand) Validate() error {
	return c.guard.Validate(ErrSelectRateCommandIsNotConstructed)
}

func (c SelectRateCommand) SessionID() kernel.UUID {
	return c.sessionID
}

func (c SelectRateCommand) RateID() string {
	return c.rateID
}

func (c SelectRateCommand) Override() shipment.Override {
	return c.override
}
