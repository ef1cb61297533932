package shipment

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// ErrShipmentIsNotConstructed is returned when a Shipment bypassed RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via RestoreShipment constructor")

// Label is what fulfillment produces.
type Label struct {
	TrackingNumber string
	LabelURL       string
}

// CostBreakdown explains FinalPrice.
type CostBreakdown struct {
	Base      kernel.Money
	Insurance kernel.Money
	Total     kernel.Money
}

// Shipment mirrors the remote shipment record. Exactly one exists per order
// and it is always looked up by order id, never assumed.
type Shipment struct {
	id            string
	orderID       string
	status        Status
	provider      string
	rate          *Rate
	finalPrice    *kernel.Money
	costBreakdown *CostBreakdown
	label         Label

	guard guard.ConstructorGuard
}

// Details carries the optional attributes of a restored shipment.
type Details struct {
	Provider      string
	Rate          *Rate
	FinalPrice    *kernel.Money
	CostBreakdown *CostBreakdown
	Label         Label
}

// RestoreShipment rebuilds a shipment from the remote representation.
func RestoreShipment(id, orderID string, status Status, details Details) (*Shipment, error) {
	var errList []error
	if strings.TrimSpace(id) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("shipment id"))
	}
	if strings.TrimSpace(orderID) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("order id"))
	}
	errList = append(errList, status.Validate())
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Shipment{
		id:            id,
		orderID:       orderID,
		status:        status,
		provider:      details.Provider,
		rate:          details.Rate,
		finalPrice:    details.FinalPrice,
		costBreakdown: details.CostBreakdown,
		label:         details.Label,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) ID() string { return s.id }

func (s *Shipment) OrderID() string { return s.orderID }

func (s *Shipment) Status() Status { return s.status }

func (s *Shipment) Provider() string { return s.provider }

func (s *Shipment) Rate() *Rate { return s.rate }

func (s *Shipment) FinalPrice() *kernel.Money { return s.finalPrice }

func (s *Shipment) CostBreakdown() *CostBreakdown { return s.costBreakdown }

func (s *Shipment) Label() Label { return s.label }

// CanSelectProvider reports whether a provider selection is still accepted.
func (s *Shipment) CanSelectProvider() bool {
	_, err := s.status.SelectProvider()
	return err == nil
}
