package draft

import (
	"fmt"
	"slices"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
)

// OrderType selects the wizard flow.
type OrderType string

const (
	// HQ orders go through carrier rate shopping and fulfillment.
	HQ OrderType = "HQ"
	// Partner orders carry manually entered pricing and skip rate shopping.
	Partner OrderType = "PARTNER"
)

func (t OrderType) Validate() error {
	switch t {
	case HQ, Partner:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("orderType", fmt.Errorf("%q is not HQ or PARTNER", string(t)))
	}
}

// OrderData holds the operator supplied references of the order.
type OrderData struct {
	OrderNumber        string `json:"orderNumber"`
	PartnerOrderNumber string `json:"partnerOrderNumber"`
}

// ShippingDraft is the rate/pricing step state.
//
// SelectedRate is assigned locally when the operator picks a quote. The
// override fields are honoured only when the selected rate belongs to the
// internal provider. PartnerPrice is the manually entered tariff of a partner order.
type ShippingDraft struct {
	SelectedRate     *shipment.Rate `json:"-"`
	OverridePrice    string         `json:"overridePrice,omitempty"`
	OverrideCurrency string         `json:"overrideCurrency,omitempty"`
	PartnerPrice     string         `json:"partnerPrice,omitempty"`
	PartnerCurrency  string         `json:"partnerCurrency,omitempty"`
}

// Draft is the whole form of one wizard session.
type Draft struct {
	OrderType       OrderType     `json:"orderType"`
	OrderData       OrderData     `json:"orderData"`
	Sender          ContactDraft  `json:"sender"`
	Recipient       ContactDraft  `json:"recipient"`
	Package         PackageDraft  `json:"package"`
	ShippingService ShippingDraft `json:"shippingService"`
}

// New returns an empty draft of the given type with package defaults applied.
func New(orderType OrderType) Draft {
	return Draft{
		OrderType: orderType,
		Package: PackageDraft{
			Ownership:     OwnershipOwn,
			DimensionUnit: "cm",
			Quantity:      1,
		},
	}
}

// Clone returns a deep copy so snapshots never alias session state.
func (d Draft) Clone() Draft {
	out := d
	out.Package.ClassificationCodes = slices.Clone(d.Package.ClassificationCodes)
	if d.ShippingService.SelectedRate != nil {
		r := *d.ShippingService.SelectedRate
		out.ShippingService.SelectedRate = &r
	}
	return out
}

// ClearRateSelection drops everything tied to the previously quoted rates.
func (d *Draft) ClearRateSelection() {
	d.ShippingService.SelectedRate = nil
	d.ShippingService.OverridePrice = ""
	d.ShippingService.OverrideCurrency = ""
}
