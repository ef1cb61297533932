package commands

import (
	"errors"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrRefreshBoxCatalogCommandIsNotConstructed = errors.New(
	"RefreshBoxCatalogCommand must be created via NewRefreshBoxCatalogCommand constructor",
)

const maxPageSize = 500

// RefreshBoxCatalogCommand reloads the known boxes from the inventory
// service, pageSize boxes per call.
type RefreshBoxCatalogCommand struct {
	pageSize int

	guard guard.ConstructorGuard
}

func NewRefreshBoxCatalogCommand(pageSize int) (RefreshBoxCatalogCommand, error) {
	if pageSize < 1 || pageSize > maxPageSize {
		return RefreshBoxCatalogCommand{}, errs.NewValueIsOutOfRangeError("pageSize", pageSize, 1, maxPageSize)
	}
	return RefreshBoxCatalogCommand{
		pageSize: pageSize,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RefreshBoxCatalogCommand) Validate() error {
	return c.guard.Validate(ErrRefreshBoxCatalogCommandIsNotConstructed)
}

func (c RefreshBoxCatalogCommand) PageSize() int {
	return c.pageSize
}
