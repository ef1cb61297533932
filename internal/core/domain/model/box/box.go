package box

import (
	"errors"
	"fmt"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	// ErrBoxIsNotConstructed is returned when a Box bypassed NewBox/RestoreBox.
	ErrBoxIsNotConstructed = errors.New("Box must be created via RestoreBox constructor")

	// ErrOutOfStock is returned when decrementing a box with no stock left.
	ErrOutOfStock = errors.New("box is out of stock")
)

// InitialStock is the stock a box gets when the wizard creates it.
const InitialStock = 1

// Box is an inventory box as known to this service.
//
// Key business rules:
//   - id and name are never empty
//   - stock is never negative
//   - a decrement on an empty box fails with ErrOutOfStock
type Box struct {
	id         string
	name       string
	dimensions kernel.Dimensions
	stock      int

	guard guard.ConstructorGuard
}

// RestoreBox rebuilds a box from the remote inventory representation.
func RestoreBox(id, name string, dimensions kernel.Dimensions, stock int) (*Box, error) {
	b := &Box{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		b.setID(id),
		b.setName(name),
		b.setDimensions(dimensions),
		b.setStock(stock),
	); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *Box) Validate() error {
	if b == nil {
		return ErrBoxIsNotConstructed
	}
	return b.guard.Validate(ErrBoxIsNotConstructed)
}

func (b *Box) ID() string { return b.id }

func (b *Box) Name() string { return b.name }

func (b *Box) Dimensions() kernel.Dimensions { return b.dimensions }

func (b *Box) Stock() int { return b.stock }

// HasStock reports whether at least one unit is available.
func (b *Box) HasStock() bool { return b.stock > 0 }

// NameDiffers compares names exactly; "Caja M" and "caja m" are different boxes.
func (b *Box) NameDiffers(name string) bool {
	return b.name != name
}

// DimensionsDiffer reports a change in any side or in the unit.
func (b *Box) DimensionsDiffer(d kernel.Dimensions) bool {
	return !b.dimensions.IsEqual(d)
}

// Spec returns the mutable attributes of the box.
func (b *Box) Spec() Spec {
	return Spec{Name: b.name, Dimensions: b.dimensions, Stock: b.stock}
}

// Decremented returns the patch that takes exactly one unit out of stock.
func (b *Box) Decremented() (Patch, error) {
	if !b.HasStock() {
		return Patch{}, fmt.Errorf("%w: %s", ErrOutOfStock, b.id)
	}
	stock := b.stock - 1
	return Patch{Stock: &stock}, nil
}

// Patched returns a copy of the box with p applied.
func (b *Box) Patched(p Patch) (*Box, error) {
	name, dims, stock := b.name, b.dimensions, b.stock
	if p.Name != nil {
		name = *p.Name
	}
	if p.Dimensions != nil {
		dims = *p.Dimensions
	}
	if p.Stock != nil {
		stock = *p.Stock
	}
	return RestoreBox(b.id, name, dims, stock)
}

func (b *Box) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("box id")
	}
	b.id = id
	return nil
}

func (b *Box) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("box name")
	}
	b.name = name
	return nil
}

func (b *Box) setDimensions(d kernel.Dimensions) error {
	if err := d.Validate(); err != nil {
		return err
	}
	b.dimensions = d
	return nil
}

func (b *Box) setStock(stock int) error {
	if stock < 0 {
		return errs.NewValueIsOutOfRangeError("stock", stock, 0, "+Inf")
	}
	b.stock = stock
	return nil
}

// Spec is the writable part of a box: what a create call sends.
type Spec struct {
	Name       string
	Dimensions kernel.Dimensions
	Stock      int
}

// Patch is the body of an update call. Only the non-nil fields change.
type Patch struct {
	Name       *string
	Dimensions *kernel.Dimensions
	Stock      *int
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Dimensions == nil && p.Stock == nil
}

// Page is one page of the paged box listing.
type Page struct {
	Boxes      []*Box
	Page       int
	TotalPages int
}

// HasNextAfter reports whether another page follows the requested one. The
// page number echoed by the server is ignored and an empty page ends the
// listing.
func (p Page) HasNextAfter(requested int) bool {
	return len(p.Boxes) > 0 && requested+1 < p.TotalPages
}
