package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/journal"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrGetOrphanedOrdersQueryIsNotConstructed = errors.New(
	"GetOrphanedOrdersQuery must be created via NewGetOrphanedOrdersQuery constructor",
)

const maxOrphanedLimit = 500

// GetOrphanedOrdersQuery lists HQ orders that were created by the wizard but
// never fulfilled. Orders with activity more recent than minAge are left
// out, since their session may still be in progress.
//
// Example:
//
//	query, err := NewGetOrphanedOrdersQuery(30*time.Minute, 100)
//	if err != nil {
//	    return err
//	}
//	orphans, err := handler.Handle(ctx, query)
//	for _, o := range orphans {
//	    fmt.Printf("order %s stuck after %s (%s)\n", o.OrderID, o.LastStep, o.LastOutcome)
//	}
type GetOrphanedOrdersQuery struct {
	minAge time.Duration
	limit  int

	guard guard.ConstructorGuard
}

func NewGetOrphanedOrdersQuery(minAge time.Duration, limit int) (GetOrphanedOrdersQuery, error) {
	var errList []error
	if minAge < 0 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("minAge", minAge, time.Duration(0), "unbounded"))
	}
	if limit < 1 || limit > maxOrphanedLimit {
		errList = append(errList, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxOrphanedLimit))
	}
	if err := errors.Join(errList...); err != nil {
		return GetOrphanedOrdersQuery{}, err
	}

	return GetOrphanedOrdersQuery{
		minAge: minAge,
		limit:  limit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrphanedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrphanedOrdersQueryIsNotConstructed)
}

func (q GetOrphanedOrdersQuery) MinAge() time.Duration {
	return q.minAge
}

func (q GetOrphanedOrdersQuery) Limit() int {
	return q.limit
}

// GetOrphanedOrdersQueryResponse is one orphaned order.
type GetOrphanedOrdersQueryResponse = journal.OrphanedOrder
