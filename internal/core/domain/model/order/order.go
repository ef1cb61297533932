package order

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the RestoreOrder factory method.
	ErrOrderIsNotConstructed = errors.New("Order must be created via RestoreOrder constructor")
)

// References are the operator supplied order numbers.
type References struct {
	OrderNumber        string
	PartnerOrderNumber string
}

// Party is the origin or destination of an order. ContactID points at the
// customer profile the party was copied from, when there is one.
type Party struct {
	ContactID string
	Name      string
	Company   string
	Email     string
	Phone     string
	Address   draft.Address
}

// Package is the parsed package of an order.
type Package struct {
	BoxID               string
	Ownership           draft.Ownership
	Name                string
	Dimensions          kernel.Dimensions
	Weight              float64
	Quantity            int
	ClassificationCodes []string
}

// Details carries the attributes of a restored order besides its identity.
type Details struct {
	References  References
	Package     Package
	Origin      Party
	Destination Party
	Pricing     *kernel.Money
	CreatedBy   string
}

// Order is the persisted order as returned by the remote order service.
//
// Order follows these invariants:
//   - Must have a non-empty identifier
//   - Must have a valid type (HQ or PARTNER) and status
//   - Can only be created through RestoreOrder
type Order struct {
	id        string
	orderType draft.OrderType
	status    Status
	details   Details

	guard guard.ConstructorGuard
}

// RestoreOrder rebuilds an order from its remote representation.
//
// Parameters:
//   - id: the remote order id
//   - orderType: HQ or PARTNER
//   - status: the remote lifecycle status
//   - details: references, package and parties
//
// Returns:
//   - *Order: the restored order if all validations pass
//   - error: every validation failure joined together
func RestoreOrder(id string, orderType draft.OrderType, status Status, details Details) (*Order, error) {
	o := &Order{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setType(orderType),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	o.details.Package.ClassificationCodes = slices.Clone(details.Package.ClassificationCodes)
	return o, nil
}

// Validate ensures the Order instance was properly constructed through RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the remote order id.
func (o *Order) ID() string {
	return o.id
}

// Type returns the order type.
func (o *Order) Type() draft.OrderType {
	return o.orderType
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// References returns the order numbers.
func (o *Order) References() References {
	return o.details.References
}

// Package returns the parsed package.
func (o *Order) Package() Package {
	p := o.details.Package
	p.ClassificationCodes = slices.Clone(p.ClassificationCodes)
	return p
}

// Origin returns the sender side.
func (o *Order) Origin() Party {
	return o.details.Origin
}

// Destination returns the recipient side.
func (o *Order) Destination() Party {
	return o.details.Destination
}

// Pricing returns the partner price, nil for HQ orders.
func (o *Order) Pricing() *kernel.Money {
	return o.details.Pricing
}

// CreatedBy returns the id of the user that created the order.
func (o *Order) CreatedBy() string {
	return o.details.CreatedBy
}

// ToDraft rebuilds the wizard form from an existing order so the operator
// can edit it. Contacts come back bound to their profiles with Save cleared.
func (o *Order) ToDraft() draft.Draft {
	d := draft.New(o.orderType)
	d.OrderData = draft.OrderData{
		OrderNumber:        o.details.References.OrderNumber,
		PartnerOrderNumber: o.details.References.PartnerOrderNumber,
	}
	d.Sender = partyToContact(o.details.Origin)
	d.Recipient = partyToContact(o.details.Destination)

	p := o.details.Package
	dims := p.Dimensions
	d.Package = draft.PackageDraft{
		BoxID:               p.BoxID,
		Ownership:           p.Ownership.Normalize(),
		PackageType:         p.Name,
		Length:              formatNumber(dims.Length()),
		Width:               formatNumber(dims.Width()),
		Height:              formatNumber(dims.Height()),
		DimensionUnit:       string(dims.Unit()),
		Weight:              formatNumber(p.Weight),
		Quantity:            p.Quantity,
		ClassificationCodes: slices.Clone(p.ClassificationCodes),
	}
	if pr := o.details.Pricing; pr != nil {
		d.ShippingService.PartnerPrice = pr.Amount().String()
		d.ShippingService.PartnerCurrency = pr.Currency()
	}
	if d.Package.DimensionUnit == "" {
		d.Package.DimensionUnit = string(kernel.Centimeters)
	}
	if d.Package.Quantity < 1 {
		d.Package.Quantity = 1
	}
	return d
}

func partyToContact(p Party) draft.ContactDraft {
	return draft.ContactDraft{
		ID:      p.ContactID,
		Name:    p.Name,
		Company: p.Company,
		Email:   p.Email,
		Phone:   p.Phone,
		Address: p.Address,
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// setID validates and sets the order's identifier.
func (o *Order) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	o.id = id
	return nil
}

// setType validates and sets the order type.
func (o *Order) setType(t draft.OrderType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	o.orderType = t
	return nil
}

// setStatus validates and sets the order status.
func (o *Order) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.status = s
	return nil
}
