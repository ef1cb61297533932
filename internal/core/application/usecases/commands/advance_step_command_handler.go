package commands

import (
	"context"
	"fmt"
	"log/slog"

	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/operator"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// Collaborators of the state machine. Each is one resolver or saga step.
type (
	ContactResolver interface {
		Handle(ctx context.Context, command ResolveContactsCommand) (bool, error)
	}

	BoxResolver interface {
		Handle(ctx context.Context, command ResolveBoxCommand) (bool, error)
	}

	OrderSubmitter interface {
		Handle(ctx context.Context, command SubmitOrderCommand) (bool, error)
	}

	ShipmentFulfiller interface {
		Handle(ctx context.Context, command SelectAndFulfillCommand) (bool, error)
	}

	RateFetcher interface {
		Start(ctx context.Context, session *wizard.Session) error
	}
)

// AdvanceStepResult tells whether the session moved. A blocked transition is
// not an error: FieldErrors and the session notifications explain it.
type AdvanceStepResult struct {
	Advanced    bool
	Step        wizard.Step
	FieldErrors errs.FieldErrors
}

// AdvanceStepCommandHandler is the wizard state machine driver.
//
// It looks the transition up in the table, then evaluates its guards in
// order and stops at the first one that fails. The session is held busy for
// the whole run so no second transition can start while a resolver or saga
// step is in flight. Entering the rate step starts the first quote.
type AdvanceStepCommandHandler struct {
	sessions  ports.SessionRepository
	contacts  ContactResolver
	boxes     BoxResolver
	submitter OrderSubmitter
	fulfiller ShipmentFulfiller
	rates     RateFetcher
	logger    *slog.Logger
}

func NewAdvanceStepCommandHandler(
	sessions ports.SessionRepository,
	contacts ContactResolver,
	boxes BoxResolver,
	submitter OrderSubmitter,
	fulfiller ShipmentFulfiller,
	rates RateFetcher,
	logger *slog.Logger,
) AdvanceStepCommandHandler {
	return AdvanceStepCommandHandler{
		sessions:  sessions,
		contacts:  contacts,
		boxes:     boxes,
		submitter: submitter,
		fulfiller: fulfiller,
		rates:     rates,
		logger:    logger.With("component", "wizard"),
	}
}

// Handle returns an error only for an invalid command, an unknown or busy
// session and a transition that is not in the table.
func (h AdvanceStepCommandHandler) Handle(ctx context.Context, command AdvanceStepCommand) (AdvanceStepResult, error) {
	if err := command.Validate(); err != nil {
		return AdvanceStepResult{}, err
	}

	session, err := h.sessions.Get(ctx, command.SessionID())
	if err != nil {
		return AdvanceStepResult{}, err
	}
	if err := session.TryAcquire(); err != nil {
		return AdvanceStepResult{}, err
	}
	defer session.Release()
	session.Touch()

	transition, err := session.Fire(command.Event())
	if err != nil {
		return AdvanceStepResult{}, err
	}
	if from := command.From(); from != "" && transition.From != from {
		return AdvanceStepResult{}, fmt.Errorf("%w: session is on %s, not %s", wizard.ErrTransitionNotAllowed, transition.From, from)
	}

	for _, g := range transition.Guards {
		passed, fieldErrors, err := h.check(ctx, session, g, command.User())
		if err != nil {
			return AdvanceStepResult{}, err
		}
		if !passed {
			h.logger.InfoContext(ctx, "Transition blocked",
				"session_id", session.ID().String(), "from", string(transition.From), "guard", string(g))
			return AdvanceStepResult{Step: session.Step(), FieldErrors: fieldErrors}, nil
		}
	}

	if err := session.Apply(transition); err != nil {
		return AdvanceStepResult{}, err
	}
	h.logger.InfoContext(ctx, "Transition taken",
		"session_id", session.ID().String(), "from", string(transition.From), "to", string(transition.To))

	if transition.To == wizard.StepRate {
		if err := h.rates.Start(ctx, session); err != nil {
			h.logger.WarnContext(ctx, "Rate quote not started", "session_id", session.ID().String(), "error", err)
		}
	}

	return AdvanceStepResult{Advanced: true, Step: transition.To}, nil
}

func (h AdvanceStepCommandHandler) check(
	ctx context.Context,
	session *wizard.Session,
	g wizard.Guard,
	user operator.User,
) (bool, errs.FieldErrors, error) {
	switch g {
	case wizard.GuardContactStepValid:
		fe := draft.ValidateContactStep(session.Draft())
		return len(fe) == 0, fe, nil

	case wizard.GuardContactsResolved:
		cmd, err := NewResolveContactsCommand(session)
		if err != nil {
			return false, nil, err
		}
		ok, err := h.contacts.Handle(ctx, cmd)
		return ok, nil, err

	case wizard.GuardPackageStepValid:
		fe := draft.ValidatePackageStep(session.Draft())
		return len(fe) == 0, fe, nil

	case wizard.GuardBoxResolved:
		cmd, err := NewResolveBoxCommand(session)
		if err != nil {
			return false, nil, err
		}
		ok, err := h.boxes.Handle(ctx, cmd)
		return ok, nil, err

	case wizard.GuardOrderSubmitted:
		cmd, err := NewSubmitOrderCommand(session, user)
		if err != nil {
			return false, nil, err
		}
		ok, err := h.submitter.Handle(ctx, cmd)
		return ok, nil, err

	case wizard.GuardPricingStepValid:
		if err := draft.ValidatePricingStep(session.Draft()); err != nil {
			session.NotifyError(wizard.CodeOrderSaveFailed, err)
			return false, nil, nil
		}
		return true, nil, nil

	case wizard.GuardShipmentFulfilled:
		cmd, err := NewSelectAndFulfillCommand(session)
		if err != nil {
			return false, nil, err
		}
		ok, err := h.fulfiller.Handle(ctx, cmd)
		return ok, nil, err

	default:
		return false, nil, fmt.Errorf("unknown guard %q", g)
	}
}
