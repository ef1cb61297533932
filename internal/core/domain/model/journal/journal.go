// Package journal records the outcome of every submission sub-step so orders
// left behind by a failed saga can be found later. The journal is an audit
// trail only: nothing reads it back to drive the wizard.
package journal

import (
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
)

// Step names a saga sub-step.
type Step string

const (
	StepOrderCreated     Step = "order_created"
	StepOrderUpdated     Step = "order_updated"
	StepShipmentResolved Step = "shipment_resolved"
	StepProviderSelected Step = "provider_selected"
	StepFulfilled        Step = "fulfilled"
	StepStockDecremented Step = "stock_decremented"
)

// Failed returns the failure variant of the step, e.g. "order_created_failed".
func (s Step) Failed() Step {
	if strings.HasSuffix(string(s), "_failed") {
		return s
	}
	return s + "_failed"
}

// Outcome of a recorded step.
type Outcome string

const (
	Succeeded Outcome = "succeeded"
	Failed    Outcome = "failed"
)

// Entry is one journal line.
type Entry struct {
	ID             kernel.UUID
	SessionID      kernel.UUID
	IdempotencyKey string
	Step           Step
	Outcome        Outcome
	OrderID        string
	ShipmentID     string
	Detail         string
	CreatedAt      time.Time
}

// NewEntry builds an entry for step. A non-nil cause marks it failed and
// keeps the error text as detail.
func NewEntry(sessionID kernel.UUID, step Step, cause error, at time.Time) Entry {
	e := Entry{
		ID:        kernel.NewUUID(),
		SessionID: sessionID,
		Step:      step,
		Outcome:   Succeeded,
		CreatedAt: at.UTC(),
	}
	if cause != nil {
		e.Step = step.Failed()
		e.Outcome = Failed
		e.Detail = cause.Error()
	}
	return e
}

// OrphanedOrder is an order that was created but whose session never
// recorded a fulfillment (HQ) or a final submission (partner).
type OrphanedOrder struct {
	OrderID      string
	SessionID    string
	ShipmentID   string
	LastStep     Step
	LastOutcome  Outcome
	CreatedAt    time.Time
	LastActivity time.Time
}
