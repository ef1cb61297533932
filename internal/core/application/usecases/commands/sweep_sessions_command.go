package commands

import (
	"errors"
	"time"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrSweepSessionsCommandIsNotConstructed = errors.New(
	"SweepSessionsCommand must be created via NewSweepSessionsCommand constructor",
)

// SweepSessionsCommand drops finished sessions and sessions idle for longer
// than the ttl. It is run periodically by the session sweep job.
type SweepSessionsCommand struct {
	ttl time.Duration

	guard guard.ConstructorGuard
}

func NewSweepSessionsCommand(ttl time.Duration) (SweepSessionsCommand, error) {
	if ttl <= 0 {
		return SweepSessionsCommand{}, errs.NewValueIsOutOfRangeError("ttl", ttl, time.Nanosecond, "unbounded")
	}
	return SweepSessionsCommand{
		ttl:   ttl,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c SweepSessionsCommand) Validate() error {
	return c.guard.Validate(ErrSweepSessionsCommandIsNotConstructed)
}

func (c SweepSessionsCommand) TTL() time.Duration {
	return c.ttl
}
