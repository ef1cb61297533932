package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrListBoxesQueryIsNotConstructed = errors.New(
	"ListBoxesQuery must be created via NewListBoxesQuery constructor",
)

// ListBoxesQuery lists the known boxes, optionally only those in stock.
type ListBoxesQuery struct {
	inStockOnly bool

	guard guard.ConstructorGuard
}

func NewListBoxesQuery(inStockOnly bool) ListBoxesQuery {
	return ListBoxesQuery{
		inStockOnly: inStockOnly,
		guard:       guard.NewConstructorGuard(),
	}
}

func (q ListBoxesQuery) Validate() error {
	return q.guard.Validate(ErrListBoxesQueryIsNotConstructed)
}

func (q ListBoxesQuery) InStockOnly() bool {
	return q.inStockOnly
}

// ListBoxesQueryResponse is one box of the catalog.
type ListBoxesQueryResponse struct {
	ID         string
	Name       string
	Dimensions kernel.Dimensions
	Stock      int
}
