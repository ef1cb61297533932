package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/box"
	"shipping/internal/core/ports"
)

// RefreshBoxCatalogCommandHandler pages through the inventory and replaces
// the catalog in one go. A failed page leaves the previous catalog intact.
type RefreshBoxCatalogCommandHandler struct {
	boxes   ports.BoxClient
	catalog ports.BoxCatalog
	logger  *slog.Logger
}

func NewRefreshBoxCatalogCommandHandler(
	boxes ports.BoxClient,
	catalog ports.BoxCatalog,
	logger *slog.Logger,
) RefreshBoxCatalogCommandHandler {
	return RefreshBoxCatalogCommandHandler{
		boxes:   boxes,
		catalog: catalog,
		logger:  logger.With("component", "box_catalog"),
	}
}

// Handle returns the number of boxes now in the catalog.
func (h RefreshBoxCatalogCommandHandler) Handle(ctx context.Context, command RefreshBoxCatalogCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	var all []*box.Box
	for page := 0; ; page++ {
		p, err := h.boxes.List(ctx, page, command.PageSize())
		if err != nil {
			return 0, err
		}
		all = append(all, p.Boxes...)
		if !p.HasNextAfter(page) {
			break
		}
	}

	if err := h.catalog.Replace(ctx, all); err != nil {
		return 0, err
	}

	h.logger.DebugContext(ctx, "Box catalog refreshed", "boxes", len(all))
	return len(all), nil
}
