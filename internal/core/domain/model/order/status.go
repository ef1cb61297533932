package order

import (
	"fmt"
	"strings"

	"shipping/internal/pkg/errs"
)

// Status represents the lifecycle state of a remote order.
//
// State transitions (driven by the remote service):
//
//	Pending ──> Confirmed ──> Fulfilled
//	   │            │
//	   └────────────┴──> Cancelled
//
// The wizard only reads the status: it decides whether an existing order can
// still be edited.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the status of a freshly created order.
	Pending

	// Confirmed indicates the order has a shipment awaiting a provider.
	Confirmed

	// Fulfilled indicates the shipment was fulfilled and labelled.
	// This is a final state.
	Fulfilled

	// Cancelled indicates the order was withdrawn.
	// This is a final state.
	Cancelled
)

// getStatusStrings returns a map of Status values to their wire names.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Confirmed: "CONFIRMED",
		Fulfilled: "FULFILLED",
		Cancelled: "CANCELLED",
	}
}

// ParseStatus converts a wire name into a Status.
//
// Parameters:
//   - s: the status name, case-insensitive
//
// Returns:
//   - the matching Status, or Unknown with a validation error
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for st, str := range getStatusStrings() {
		if st != Unknown && str == name {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Unknown (0) and any value outside the declared constants are invalid.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ValidateEdit checks whether an order in this status accepts edits.
//
// Valid statuses for editing:
//   - Pending
//   - Confirmed
//
// Returns:
//   - nil if the order may be edited
//   - error if the order is final or the status is invalid
func (s Status) ValidateEdit() error {
	if s != Pending && s != Confirmed {
		return errs.NewBusinessRuleError("order_not_editable", fmt.Sprintf("order in status %s cannot be edited", s))
	}
	return nil
}

// IsFinal reports whether no further transitions are possible.
func (s Status) IsFinal() bool {
	return s == Fulfilled || s == Cancelled
}
