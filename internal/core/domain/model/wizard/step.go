package wizard

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/draft"
)

// ErrTransitionNotAllowed is returned for a (step, event, order type) triple
// that is not in the transition table.
var ErrTransitionNotAllowed = errors.New("transition not allowed")

// Step is a wizard state.
type Step string

const (
	StepContact Step = "contact"
	StepPackage Step = "package"
	StepRate    Step = "rate"
	StepPricing Step = "pricing"
	StepDone    Step = "done"
)

// Event drives a transition.
type Event string

const (
	EventForward  Event = "forward"
	EventBack     Event = "back"
	EventComplete Event = "complete"
)

// Guard names a check that must pass before a transition is taken. Guards are
// evaluated in the order they are listed.
type Guard string

const (
	GuardContactStepValid  Guard = "contact_step_valid"
	GuardContactsResolved  Guard = "contacts_resolved"
	GuardPackageStepValid  Guard = "package_step_valid"
	GuardBoxResolved       Guard = "box_resolved"
	GuardOrderSubmitted    Guard = "order_submitted"
	GuardPricingStepValid  Guard = "pricing_step_valid"
	GuardShipmentFulfilled Guard = "shipment_fulfilled"
)

// Transition is one row of the table.
type Transition struct {
	From   Step
	Event  Event
	To     Step
	Guards []Guard
}

type transitionKey struct {
	from      Step
	event     Event
	orderType draft.OrderType
}

// anyType marks rows valid for both order types.
const anyType draft.OrderType = ""

var transitions = buildTable([]struct {
	orderType draft.OrderType
	t         Transition
}{
	{anyType, Transition{StepContact, EventForward, StepPackage, []Guard{GuardContactStepValid, GuardContactsResolved}}},
	{draft.HQ, Transition{StepPackage, EventForward, StepRate, []Guard{GuardPackageStepValid, GuardBoxResolved, GuardOrderSubmitted}}},
	{draft.Partner, Transition{StepPackage, EventForward, StepPricing, []Guard{GuardPackageStepValid, GuardBoxResolved}}},
	{draft.HQ, Transition{StepRate, EventComplete, StepDone, []Guard{GuardShipmentFulfilled}}},
	{draft.Partner, Transition{StepPricing, EventComplete, StepDone, []Guard{GuardPricingStepValid, GuardOrderSubmitted}}},
	{anyType, Transition{StepPackage, EventBack, StepContact, nil}},
	{draft.HQ, Transition{StepRate, EventBack, StepPackage, nil}},
	{draft.Partner, Transition{StepPricing, EventBack, StepPackage, nil}},
})

func buildTable(rows []struct {
	orderType draft.OrderType
	t         Transition
}) map[transitionKey]Transition {
	table := make(map[transitionKey]Transition, len(rows))
	for _, r := range rows {
		k := transitionKey{r.t.From, r.t.Event, r.orderType}
		if _, dup := table[k]; dup {
			panic(fmt.Sprintf("wizard: duplicate transition %s/%s/%s", k.from, k.event, k.orderType))
		}
		table[k] = r.t
	}
	return table
}

// Lookup returns the transition for the triple, preferring a row specific to
// the order type over a shared one.
func Lookup(from Step, event Event, orderType draft.OrderType) (Transition, error) {
	if t, ok := transitions[transitionKey{from, event, orderType}]; ok {
		return t, nil
	}
	if t, ok := transitions[transitionKey{from, event, anyType}]; ok {
		return t, nil
	}
	return Transition{}, fmt.Errorf("%w: %s on %s (%s)", ErrTransitionNotAllowed, event, from, orderType)
}

// IsTerminal reports whether the session ended.
func (s Step) IsTerminal() bool {
	return s == StepDone
}

// IsQuoting reports whether the step shows carrier quotes or partner pricing.
func (s Step) IsQuoting() bool {
	return s == StepRate || s == StepPricing
}
