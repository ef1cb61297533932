package queries

import (
	"cmp"
	"context"
	"slices"

	"shipping/internal/core/ports"
)

// ListBoxesQueryHandler reads the box catalog read model. It never calls the
// inventory service.
type ListBoxesQueryHandler struct {
	catalog ports.BoxCatalog
}

func NewListBoxesQueryHandler(catalog ports.BoxCatalog) ListBoxesQueryHandler {
	return ListBoxesQueryHandler{catalog: catalog}
}

// Handle returns the boxes sorted by name.
func (h ListBoxesQueryHandler) Handle(ctx context.Context, query ListBoxesQuery) ([]ListBoxesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	known, err := h.catalog.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ListBoxesQueryResponse, 0, len(known))
	for _, b := range known {
		if query.InStockOnly() && !b.HasStock() {
			continue
		}
		out = append(out, ListBoxesQueryResponse{
			ID:         b.ID(),
			Name:       b.Name(),
			Dimensions: b.Dimensions(),
			Stock:      b.Stock(),
		})
	}

	slices.SortFunc(out, func(a, b ListBoxesQueryResponse) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}
