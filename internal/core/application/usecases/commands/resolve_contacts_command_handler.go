package commands

import (
	"context"
	"fmt"
	"log/slog"

	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

// contactSide selects the sender or the recipient of a draft.
type contactSide struct {
	name string
	get  func(d draft.Draft) draft.ContactDraft
	set  func(d *draft.Draft) *draft.ContactDraft
}

var contactSides = []contactSide{
	{
		name: "sender",
		get:  func(d draft.Draft) draft.ContactDraft { return d.Sender },
		set:  func(d *draft.Draft) *draft.ContactDraft { return &d.Sender },
	},
	{
		name: "recipient",
		get:  func(d draft.Draft) draft.ContactDraft { return d.Recipient },
		set:  func(d *draft.Draft) *draft.ContactDraft { return &d.Recipient },
	},
}

// ResolveContactsCommandHandler upserts the sender and recipient concurrently.
//
// Each side runs on its own: a failure on one side is reported as a
// notification and neither blocks nor reverts the other. A successful create
// writes the returned id into the draft and clears Save straight away, so the
// change survives a failure of the other side.
type ResolveContactsCommandHandler struct {
	customers ports.CustomerClient
	planner   services.ContactPlanner
	logger    *slog.Logger
}

func NewResolveContactsCommandHandler(customers ports.CustomerClient, logger *slog.Logger) ResolveContactsCommandHandler {
	return ResolveContactsCommandHandler{
		customers: customers,
		planner:   services.NewContactPlanner(),
		logger:    logger.With("component", "resolve_contacts"),
	}
}

// Handle reports true iff every attempted operation succeeded.
func (h ResolveContactsCommandHandler) Handle(ctx context.Context, command ResolveContactsCommand) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	session := command.Session()
	snapshot := session.Draft()
	results := make([]bool, len(contactSides))

	// Sides never return an error to the group so one failure cannot cancel the other.
	var g errgroup.Group
	for i, side := range contactSides {
		g.Go(func() error {
			results[i] = h.resolve(ctx, session, side, side.get(snapshot))
			return nil
		})
	}
	_ = g.Wait()

	for _, ok := range results {
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (h ResolveContactsCommandHandler) resolve(
	ctx context.Context,
	session *wizard.Session,
	side contactSide,
	contact draft.ContactDraft,
) bool {
	switch h.planner.Plan(contact) {
	case services.ContactCreate:
		scope := "contact:" + side.name
		id, err := h.customers.Create(ctx, contact, session.CreateKey(scope, fmt.Sprintf("%+v", contact)))
		if err != nil {
			h.fail(ctx, session, side, err)
			return false
		}
		session.RetireCreateKey(scope)
		session.Mutate(func(d *draft.Draft) {
			c := side.set(d)
			c.ID = id
			c.Save = false
		})
		session.Notify(wizard.LevelInfo, wizard.CodeContactSaved, side.name+" contact created")
		return true

	case services.ContactUpdate:
		if err := h.customers.Update(ctx, contact.ID, contact); err != nil {
			h.fail(ctx, session, side, err)
			return false
		}
		session.Mutate(func(d *draft.Draft) {
			side.set(d).Save = false
		})
		session.Notify(wizard.LevelInfo, wizard.CodeContactSaved, side.name+" contact updated")
		return true

	default:
		return true
	}
}

func (h ResolveContactsCommandHandler) fail(ctx context.Context, session *wizard.Session, side contactSide, err error) {
	h.logger.ErrorContext(ctx, "Contact upsert failed",
		"session_id", session.ID().String(), "side", side.name, "error", err)
	session.NotifyError(wizard.CodeContactSaveFailed, fmt.Errorf("save %s contact: %w", side.name, err))
}
