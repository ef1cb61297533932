package shipment

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrProviderSelectionIsNotConstructed is returned for a zero-value ProviderSelection.
var ErrProviderSelectionIsNotConstructed = errors.New(
	"ProviderSelection must be created via NewProviderSelection constructor",
)

// Override is the operator supplied price for the internal provider. Either
// field may be empty; empty fields fall back to the rate's own values.
type Override struct {
	Price    string
	Currency string
}

// ProviderSelection is the body of the select-provider call.
type ProviderSelection struct {
	shipmentID    string
	provider      string
	carrier       Carrier
	rate          Rate
	finalPrice    kernel.Money
	costBreakdown CostBreakdown

	guard guard.ConstructorGuard
}

// NewProviderSelection builds the selection for rate.
//
// For the internal provider (compared case-insensitively with internalProvider)
// the operator override replaces the base price and/or the currency. Every
// other provider is charged at its quoted price and currency. The final price
// is base plus insurance.
func NewProviderSelection(shipmentID string, rate Rate, override Override, internalProvider string) (ProviderSelection, error) {
	if strings.TrimSpace(shipmentID) == "" {
		return ProviderSelection{}, errs.NewValueIsRequiredError("shipmentId")
	}
	if strings.TrimSpace(rate.ID) == "" {
		return ProviderSelection{}, errs.NewValueIsRequiredError("selectedRate")
	}

	base := rate.Price
	insurance := rate.InsuranceFee
	if IsInternalProvider(rate.Provider, internalProvider) {
		var err error
		base, insurance, err = applyOverride(rate, override)
		if err != nil {
			return ProviderSelection{}, err
		}
	}

	total, err := base.Add(insurance)
	if err != nil {
		return ProviderSelection{}, err
	}

	return ProviderSelection{
		shipmentID: shipmentID,
		provider:   rate.Provider,
		carrier:    DeriveCarrier(rate),
		rate:       rate,
		finalPrice: total,
		costBreakdown: CostBreakdown{
			Base:      base,
			Insurance: insurance,
			Total:     total,
		},
		guard: guard.NewConstructorGuard(),
	}, nil
}

// IsInternalProvider reports whether provider is the designated in-house
// provider whose price may be overridden.
func IsInternalProvider(provider, internalProvider string) bool {
	return internalProvider != "" && strings.EqualFold(strings.TrimSpace(provider), internalProvider)
}

func applyOverride(rate Rate, o Override) (kernel.Money, kernel.Money, error) {
	currency := rate.Currency()
	if c := strings.TrimSpace(o.Currency); c != "" {
		currency = c
	}

	amount := rate.Price.Amount()
	if p := strings.TrimSpace(o.Price); p != "" {
		parsed, err := decimal.NewFromString(p)
		if err != nil {
			return kernel.Money{}, kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("overridePrice", err)
		}
		amount = parsed
	}

	base, err := kernel.NewMoney(amount, currency)
	if err != nil {
		return kernel.Money{}, kernel.Money{}, err
	}
	insurance, err := kernel.NewMoney(rate.InsuranceFee.Amount(), currency)
	if err != nil {
		return kernel.Money{}, kernel.Money{}, err
	}
	return base, insurance, nil
}

func (p ProviderSelection) Validate() error {
	return p.guard.Validate(ErrProviderSelectionIsNotConstructed)
}

func (p ProviderSelection) ShipmentID() string { return p.shipmentID }

func (p ProviderSelection) Provider() string { return p.provider }

func (p ProviderSelection) Carrier() Carrier { return p.carrier }

func (p ProviderSelection) Rate() Rate { return p.rate }

func (p ProviderSelection) FinalPrice() kernel.Money { return p.finalPrice }

func (p ProviderSelection) CostBreakdown() CostBreakdown { return p.costBreakdown }
