package draft

import (
	"net/mail"
	"strings"

	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const msgRequired = "is required"

// ValidateContactStep checks the fields the contact step owns. It never
// touches the network.
func ValidateContactStep(d Draft) errs.FieldErrors {
	var fe errs.FieldErrors

	if err := d.OrderType.Validate(); err != nil {
		fe.Add("orderType", "must be HQ or PARTNER")
	}
	if d.OrderType == Partner && blank(d.OrderData.PartnerOrderNumber) {
		fe.Add("orderData.partnerOrderNumber", msgRequired)
	}

	validateContact(&fe, "sender", d.Sender)
	validateContact(&fe, "recipient", d.Recipient)
	return fe
}

func validateContact(fe *errs.FieldErrors, prefix string, c ContactDraft) {
	if blank(c.Name) {
		fe.Add(prefix+".name", msgRequired)
	}
	if blank(c.Phone) {
		fe.Add(prefix+".phone", msgRequired)
	}
	if !blank(c.Email) {
		if _, err := mail.ParseAddress(strings.TrimSpace(c.Email)); err != nil {
			fe.Add(prefix+".email", "is not a valid address")
		}
	}
	if blank(c.Address.Street) {
		fe.Add(prefix+".address.street", msgRequired)
	}
	if blank(c.Address.City) {
		fe.Add(prefix+".address.city", msgRequired)
	}
	if blank(c.Address.PostalCode) {
		fe.Add(prefix+".address.postalCode", msgRequired)
	}
}

// ValidatePackageStep checks the package form. Numbers must be strictly
// positive here even though Parse tolerates garbage.
func ValidatePackageStep(d Draft) errs.FieldErrors {
	var fe errs.FieldErrors
	p := d.Package

	if p.Name() == "" {
		fe.Add("package.packageType", msgRequired)
	}
	for _, f := range []struct{ field, raw string }{
		{"package.length", p.Length},
		{"package.width", p.Width},
		{"package.height", p.Height},
		{"package.weight", p.Weight},
	} {
		if v, ok := ParseNumber(f.raw); !ok || v == 0 {
			fe.Add(f.field, "must be a positive number")
		}
	}
	switch strings.ToLower(strings.TrimSpace(p.DimensionUnit)) {
	case "cm", "in":
	default:
		fe.Add("package.dimensionUnit", "must be cm or in")
	}
	if p.Quantity < 1 {
		fe.Add("package.quantity", "must be at least 1")
	}
	if o := p.Ownership.Normalize(); o != OwnershipOwn && o != OwnershipStore {
		fe.Add("package.ownership", "must be OWN or STORE")
	}
	if d.OrderType == HQ && len(nonBlank(p.ClassificationCodes)) == 0 {
		fe.Add("package.classificationCodes", "at least one code is required")
	}
	return fe
}

// ValidatePricingStep enforces the partner tariff rule. A missing or
// non-positive price is a business rule violation, not a field error, so the
// UI shows it as a blocking message.
func ValidatePricingStep(d Draft) error {
	price, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(d.ShippingService.PartnerPrice), ",", "."))
	if err != nil || !price.IsPositive() {
		return errs.NewBusinessRuleError("missing_tariff", "no tariff was entered for this partner lane")
	}
	return nil
}

// NonBlankCodes returns the classification codes with blanks removed.
func (p PackageDraft) NonBlankCodes() []string {
	return nonBlank(p.ClassificationCodes)
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
