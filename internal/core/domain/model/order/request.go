package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/operator"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrRequestIsNotConstructed is returned for a Request that bypassed its constructors.
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewCreateRequest or NewEditRequest")
)

// Request is the body of an order create or edit call.
//
// OrderID is empty for a create. IdempotencyKey is sent with creates only so
// a retried create is recognised by the order service. Pricing is set for
// partner orders only.
type Request struct {
	OrderID        string
	Type           draft.OrderType
	References     References
	Package        Package
	Origin         Party
	Destination    Party
	Pricing        *kernel.Money
	CreatedBy      string
	StoreID        string
	IdempotencyKey string

	guard guard.ConstructorGuard
}

// NewCreateRequest builds the create body from the draft.
//
// Parameters:
//   - d: the wizard draft, already validated by the wizard
//   - user: the acting user; must be identified
//   - idempotencyKey: client generated token reused across retries of the same create
//
// Returns:
//   - Request: the create body
//   - error: errs.ErrIdentityUnknown when the user is not identified, or a
//     validation error for partner pricing
func NewCreateRequest(d draft.Draft, user operator.User, idempotencyKey string) (Request, error) {
	if !user.IsIdentified() {
		return Request{}, fmt.Errorf("create order: %w", errs.ErrIdentityUnknown)
	}
	if strings.TrimSpace(idempotencyKey) == "" {
		return Request{}, errs.NewValueIsRequiredError("idempotency key")
	}

	r, err := fromDraft(d)
	if err != nil {
		return Request{}, err
	}
	r.CreatedBy = user.ID
	r.StoreID = user.StoreID
	r.IdempotencyKey = idempotencyKey
	return r, nil
}

// NewEditRequest builds the edit body of an existing order from the draft.
//
// Returns:
//   - Request: the edit body
//   - error: when orderID is empty or the partner pricing is invalid
func NewEditRequest(orderID string, d draft.Draft) (Request, error) {
	if strings.TrimSpace(orderID) == "" {
		return Request{}, errs.NewValueIsRequiredError("order id")
	}

	r, err := fromDraft(d)
	if err != nil {
		return Request{}, err
	}
	r.OrderID = orderID
	return r, nil
}

func fromDraft(d draft.Draft) (Request, error) {
	if err := d.OrderType.Validate(); err != nil {
		return Request{}, err
	}

	parsed := d.Package.Parse()
	r := Request{
		Type: d.OrderType,
		References: References{
			OrderNumber:        strings.TrimSpace(d.OrderData.OrderNumber),
			PartnerOrderNumber: strings.TrimSpace(d.OrderData.PartnerOrderNumber),
		},
		Package: Package{
			BoxID:               strings.TrimSpace(d.Package.BoxID),
			Ownership:           d.Package.Ownership.Normalize(),
			Name:                parsed.Name,
			Dimensions:          parsed.Dimensions,
			Weight:              parsed.Weight,
			Quantity:            parsed.Quantity,
			ClassificationCodes: slices.Clone(d.Package.NonBlankCodes()),
		},
		Origin:      contactToParty(d.Sender),
		Destination: contactToParty(d.Recipient),
		guard:       guard.NewConstructorGuard(),
	}

	if d.OrderType == draft.Partner {
		price, err := partnerPricing(d.ShippingService)
		if err != nil {
			return Request{}, err
		}
		r.Pricing = &price
	}
	return r, nil
}

func partnerPricing(s draft.ShippingDraft) (kernel.Money, error) {
	amount, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s.PartnerPrice), ",", "."))
	if err != nil {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("shippingService.partnerPrice", err)
	}
	currency := strings.TrimSpace(s.PartnerCurrency)
	if currency == "" {
		currency = kernel.DefaultCurrency
	}
	return kernel.NewMoney(amount, currency)
}

func contactToParty(c draft.ContactDraft) Party {
	return Party{
		ContactID: strings.TrimSpace(c.ID),
		Name:      strings.TrimSpace(c.Name),
		Company:   strings.TrimSpace(c.Company),
		Email:     strings.TrimSpace(c.Email),
		Phone:     strings.TrimSpace(c.Phone),
		Address:   c.Address,
	}
}

// Validate ensures the request was built by one of the constructors.
func (r Request) Validate() error {
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

// IsCreate reports whether the request creates a new order.
func (r Request) IsCreate() bool {
	return r.OrderID == ""
}
