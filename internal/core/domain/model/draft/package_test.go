package draft_test

import (
	"testing"

	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestPackageDraft_Parse(t *testing.T) {
	t.Run("should parse well formed fields", func(t *testing.T) {
		p := draft.PackageDraft{
			PackageType:   " Caja M ",
			Length:        "10",
			Width:         "20.5",
			Height:        "2,5",
			DimensionUnit: "IN",
			Weight:        "1.2",
			Quantity:      3,
		}

		got := p.Parse()

		assert.Equal(t, "Caja M", got.Name)
		assert.InDelta(t, 10, got.Dimensions.Length(), 0)
		assert.InDelta(t, 20.5, got.Dimensions.Width(), 0)
		assert.InDelta(t, 2.5, got.Dimensions.Height(), 0)
		assert.Equal(t, kernel.Inches, got.Dimensions.Unit())
		assert.InDelta(t, 1.2, got.Weight, 1e-9)
		assert.Equal(t, 3, got.Quantity)
		assert.Empty(t, got.Defaulted)
	})

	t.Run("should default unparsable fields instead of failing", func(t *testing.T) {
		p := draft.PackageDraft{
			Length:        "10",
			Width:         "abc",
			Height:        "-4",
			DimensionUnit: "yards",
			Weight:        "",
			Quantity:      0,
		}

		got := p.Parse()

		assert.InDelta(t, 10, got.Dimensions.Length(), 0)
		assert.InDelta(t, 0, got.Dimensions.Width(), 0)
		assert.InDelta(t, 0, got.Dimensions.Height(), 0)
		assert.Equal(t, kernel.Centimeters, got.Dimensions.Unit())
		assert.InDelta(t, 0, got.Weight, 0)
		assert.Equal(t, 1, got.Quantity)
		assert.Equal(t, []string{"width", "height", "weight", "dimensionUnit", "quantity"}, got.Defaulted)
	})
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12", 12, true},
		{" 0.5 ", 0.5, true},
		{"3,75", 3.75, true},
		{"", 0, false},
		{"1e400", 0, false},
		{"NaN", 0, false},
		{"-1", 0, false},
		{"diez", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := draft.ParseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestOwnership_Normalize(t *testing.T) {
	assert.Equal(t, draft.OwnershipOwn, draft.Ownership("CUSTOMER").Normalize())
	assert.Equal(t, draft.OwnershipOwn, draft.Ownership("").Normalize())
	assert.Equal(t, draft.OwnershipStore, draft.Ownership("store").Normalize())
	assert.True(t, draft.PackageDraft{Ownership: "STORE"}.IsStoreOwned())
	assert.False(t, draft.PackageDraft{Ownership: "CUSTOMER"}.IsStoreOwned())
}

func TestDraft_CloneAndClearRateSelection(t *testing.T) {
	d := draft.New(draft.HQ)
	d.Package.ClassificationCodes = []string{"A"}
	d.ShippingService.OverridePrice = "100"

	c := d.Clone()
	c.Package.ClassificationCodes[0] = "B"
	assert.Equal(t, "A", d.Package.ClassificationCodes[0])

	d.ClearRateSelection()
	assert.Nil(t, d.ShippingService.SelectedRate)
	assert.Empty(t, d.ShippingService.OverridePrice)
}
