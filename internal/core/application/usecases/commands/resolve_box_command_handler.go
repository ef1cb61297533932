package commands

import (
	"context"
	"fmt"
	"log/slog"

	"shipping/internal/core/domain/model/box"
	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
)

const boxCreateScope = "box"

// ResolveBoxCommandHandler carries out the BoxReconciler plan.
//
// Business rule violations (zero stock, unknown box) are reported before any
// network call. On a failed create or update the draft keeps its previous
// boxId and the caller must not proceed. Successful writes are put into the
// catalog so resolving the same input again is a no-op.
type ResolveBoxCommandHandler struct {
	boxes      ports.BoxClient
	catalog    ports.BoxCatalog
	reconciler services.BoxReconciler
	logger     *slog.Logger
}

func NewResolveBoxCommandHandler(
	boxes ports.BoxClient,
	catalog ports.BoxCatalog,
	logger *slog.Logger,
) ResolveBoxCommandHandler {
	return ResolveBoxCommandHandler{
		boxes:      boxes,
		catalog:    catalog,
		reconciler: services.NewBoxReconciler(),
		logger:     logger.With("component", "resolve_box"),
	}
}

// Handle reports whether the package may proceed.
func (h ResolveBoxCommandHandler) Handle(ctx context.Context, command ResolveBoxCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	session := command.Session()
	pkg := session.Draft().Package

	known, err := h.catalog.All(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Box catalog unavailable", "session_id", session.ID().String(), "error", err)
		session.NotifyError(wizard.CodeBoxSaveFailed, err)
		return false, nil
	}

	plan, err := h.reconciler.Reconcile(pkg, known)
	if err != nil {
		h.logger.WarnContext(ctx, "Box resolution blocked", "session_id", session.ID().String(), "error", err)
		session.NotifyError(wizard.CodeBoxSaveFailed, err)
		return false, nil
	}

	switch plan.Action {
	case services.BoxActionLink:
		h.bind(session, plan.BoxID)
		return true, nil

	case services.BoxActionUpdate:
		updated, err := h.boxes.Update(ctx, plan.BoxID, plan.Patch)
		if err != nil {
			h.fail(ctx, session, "update", err)
			return false, nil
		}
		h.remember(ctx, updated)
		session.Notify(wizard.LevelInfo, wizard.CodeBoxSaved, "box "+updated.Name()+" updated")
		return true, nil

	case services.BoxActionCreate:
		created, err := h.boxes.Create(ctx, plan.Spec, session.CreateKey(boxCreateScope, fmt.Sprintf("%+v", plan.Spec)))
		if err != nil {
			h.fail(ctx, session, "create", err)
			return false, nil
		}
		session.RetireCreateKey(boxCreateScope)
		h.remember(ctx, created)
		h.bind(session, created.ID())
		session.Notify(wizard.LevelInfo, wizard.CodeBoxSaved, "box "+created.Name()+" created")
		return true, nil

	default:
		return true, nil
	}
}

func (h ResolveBoxCommandHandler) bind(session *wizard.Session, boxID string) {
	session.Mutate(func(d *draft.Draft) {
		d.Package.BoxID = boxID
	})
}

// remember puts a successfully written box into the catalog. Catalog errors are logged only.
func (h ResolveBoxCommandHandler) remember(ctx context.Context, b *box.Box) {
	if err := h.catalog.Put(ctx, b); err != nil {
		h.logger.WarnContext(ctx, "Failed to update box catalog", "box_id", b.ID(), "error", err)
	}
}

func (h ResolveBoxCommandHandler) fail(ctx context.Context, session *wizard.Session, op string, err error) {
	h.logger.ErrorContext(ctx, "Box "+op+" failed", "session_id", session.ID().String(), "error", err)
	session.NotifyError(wizard.CodeBoxSaveFailed, err)
}
