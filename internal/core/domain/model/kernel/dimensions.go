package kernel

import (
	"errors"
	"fmt"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// DimensionUnit is the unit a package or box is measured in.
type DimensionUnit string

const (
	Centimeters DimensionUnit = "cm"
	Inches      DimensionUnit = "in"
)

// Validate accepts cm and in.
func (u DimensionUnit) Validate() error {
	switch u {
	case Centimeters, Inches:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("dimensionUnit", fmt.Errorf("%q is not cm or in", string(u)))
	}
}

// ErrDimensionsIsNotConstructed is returned for a zero-value Dimensions.
var ErrDimensionsIsNotConstructed = errs.NewValueIsRequiredError("dimensions must be created via NewDimensions")

// Dimensions is the immutable length/width/height of a package or box.
// Zero sides are allowed: they are what an unparsable draft field normalizes to.
type Dimensions struct { //nolint:recvcheck //using for validation
	length float64
	width  float64
	height float64
	unit   DimensionUnit
	guard  guard.ConstructorGuard
}

// NewDimensions rejects negative sides and unknown units.
func NewDimensions(length, width, height float64, unit DimensionUnit) (Dimensions, error) {
	d := Dimensions{guard: guard.NewConstructorGuard()}
	if err := errors.Join(
		d.setSide("length", length, &d.length),
		d.setSide("width", width, &d.width),
		d.setSide("height", height, &d.height),
		unit.Validate(),
	); err != nil {
		return Dimensions{}, err
	}
	d.unit = unit
	return d, nil
}

func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsIsNotConstructed)
}

func (d Dimensions) Length() float64 { return d.length }

func (d Dimensions) Width() float64 { return d.width }

func (d Dimensions) Height() float64 { return d.height }

func (d Dimensions) Unit() DimensionUnit { return d.unit }

// IsEqual compares every side and the unit. No unit conversion is done:
// 10cm and 3.937in are different dimensions for reconciliation purposes.
func (d Dimensions) IsEqual(other Dimensions) bool {
	return d.length == other.length &&
		d.width == other.width &&
		d.height == other.height &&
		d.unit == other.unit
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%gx%gx%g%s", d.length, d.width, d.height, d.unit)
}

func (d *Dimensions) setSide(name string, v float64, dst *float64) error {
	if v < 0 {
		return errs.NewValueIsOutOfRangeError(name, v, 0, "+Inf")
	}
	*dst = v
	return nil
}
