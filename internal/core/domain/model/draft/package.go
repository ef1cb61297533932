package draft

import (
	"strconv"
	"strings"

	"shipping/internal/core/domain/model/kernel"
)

// Ownership tells who owns the shipping box.
type Ownership string

const (
	// OwnershipOwn is a box brought by the customer; it is not tracked.
	OwnershipOwn Ownership = "OWN"
	// OwnershipStore is a box taken from store inventory; its stock is
	// decremented when the shipment is fulfilled.
	OwnershipStore Ownership = "STORE"
	// ownershipCustomer is the legacy spelling of OwnershipOwn.
	ownershipCustomer Ownership = "CUSTOMER"
)

// Normalize maps legacy values onto the two supported ones.
func (o Ownership) Normalize() Ownership {
	switch strings.ToUpper(string(o)) {
	case string(OwnershipStore):
		return OwnershipStore
	case string(OwnershipOwn), string(ownershipCustomer), "":
		return OwnershipOwn
	default:
		return o
	}
}

// PackageDraft is the package step form. Numbers stay strings until Parse.
type PackageDraft struct {
	BoxID               string    `json:"boxId"`
	Ownership           Ownership `json:"ownership"`
	PackageType         string    `json:"packageType"`
	Length              string    `json:"length"`
	Width               string    `json:"width"`
	Height              string    `json:"height"`
	DimensionUnit       string    `json:"dimensionUnit"`
	Weight              string    `json:"weight"`
	Quantity            int       `json:"quantity"`
	ClassificationCodes []string  `json:"classificationCodes"`
}

// IsStoreOwned reports whether the box comes from store inventory.
func (p PackageDraft) IsStoreOwned() bool {
	return p.Ownership.Normalize() == OwnershipStore
}

// HasBox reports whether the draft is bound to a known box.
func (p PackageDraft) HasBox() bool {
	return strings.TrimSpace(p.BoxID) != ""
}

// Name is the trimmed package type, used as the box natural key.
func (p PackageDraft) Name() string {
	return strings.TrimSpace(p.PackageType)
}

// ParsedPackage is the numeric view of a PackageDraft.
type ParsedPackage struct {
	Name       string
	Dimensions kernel.Dimensions
	Weight     float64
	Quantity   int
	// Defaulted lists the draft fields that could not be parsed and were set
	// to their default (0 for numbers, cm for the unit, 1 for the quantity).
	Defaulted []string
}

// Parse normalizes the string fields. It never fails: a field that does not
// parse as a non-negative number is taken as 0.
func (p PackageDraft) Parse() ParsedPackage {
	out := ParsedPackage{Name: p.Name(), Quantity: p.Quantity}

	num := func(field, raw string) float64 {
		v, ok := ParseNumber(raw)
		if !ok {
			out.Defaulted = append(out.Defaulted, field)
		}
		return v
	}
	length := num("length", p.Length)
	width := num("width", p.Width)
	height := num("height", p.Height)
	out.Weight = num("weight", p.Weight)

	unit := kernel.DimensionUnit(strings.ToLower(strings.TrimSpace(p.DimensionUnit)))
	if unit.Validate() != nil {
		unit = kernel.Centimeters
		out.Defaulted = append(out.Defaulted, "dimensionUnit")
	}
	if out.Quantity < 1 {
		out.Quantity = 1
		out.Defaulted = append(out.Defaulted, "quantity")
	}

	// Sides are non-negative by construction, so this cannot fail.
	out.Dimensions, _ = kernel.NewDimensions(length, width, height, unit)
	return out
}

// ParseNumber parses a decimal typed by the operator. A comma is accepted as
// the decimal separator. Empty, malformed, negative or non-finite input yields
// (0, false).
func ParseNumber(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v != v || v > 1e12 {
		return 0, false
	}
	return v, true
}
