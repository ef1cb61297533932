package shipment

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Status is the lifecycle state of a shipment.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Draft is the state right after the order is created.
	Draft

	// ProviderSelected means a carrier rate has been committed.
	ProviderSelected

	// Fulfilled is final: the label and tracking number exist.
	Fulfilled
)

var statusNames = map[Status]string{
	Draft:            "DRAFT",
	ProviderSelected: "PROVIDER_SELECTED",
	Fulfilled:        "FULFILLED",
}

// ParseStatus maps the wire representation onto Status.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a shipment status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// SelectProvider returns the state after a provider selection. Re-selecting
// while still ProviderSelected is allowed (the operator changed the rate).
func (s Status) SelectProvider() (Status, error) {
	switch s {
	case Draft, ProviderSelected:
		return ProviderSelected, nil
	default:
		return s, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot select a provider for a shipment in %s status", s))
	}
}

// Fulfill returns the state after fulfillment. Only ProviderSelected can be fulfilled.
func (s Status) Fulfill() (Status, error) {
	if s != ProviderSelected {
		return s, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot fulfill a shipment in %s status", s))
	}
	return Fulfilled, nil
}

// IsFinal reports whether no further transitions exist.
func (s Status) IsFinal() bool {
	return s == Fulfilled
}
