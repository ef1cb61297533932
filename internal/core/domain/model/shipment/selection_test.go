package shipment_test

import (
	"testing"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const internalProvider = "tienda"

func rate(t *testing.T, provider, price, insurance, currency string) shipment.Rate {
	t.Helper()
	return shipment.Rate{
		ID:           "rate-1",
		Provider:     provider,
		ServiceName:  "FedEx Express Saver",
		Price:        money(t, price, currency),
		InsuranceFee: money(t, insurance, currency),
	}
}

func TestNewProviderSelection(t *testing.T) {
	t.Run("external provider is charged at its quote", func(t *testing.T) {
		r := rate(t, "skydropx", "180.00", "20.00", "MXN")

		sel, err := shipment.NewProviderSelection("sh-1", r, shipment.Override{Price: "1", Currency: "USD"}, internalProvider)

		require.NoError(t, err)
		require.NoError(t, sel.Validate())
		assert.Equal(t, "sh-1", sel.ShipmentID())
		assert.Equal(t, "skydropx", sel.Provider())
		assert.Equal(t, shipment.CarrierFedex, sel.Carrier())
		assert.True(t, sel.FinalPrice().Amount().Equal(decimal.NewFromInt(200)))
		assert.Equal(t, "MXN", sel.FinalPrice().Currency())
		assert.True(t, sel.CostBreakdown().Base.Amount().Equal(decimal.NewFromInt(180)))
		assert.True(t, sel.CostBreakdown().Insurance.Amount().Equal(decimal.NewFromInt(20)))
	})

	t.Run("internal provider takes the override price and currency", func(t *testing.T) {
		r := rate(t, "Tienda", "180.00", "20.00", "MXN")

		sel, err := shipment.NewProviderSelection("sh-1", r, shipment.Override{Price: "50", Currency: "usd"}, internalProvider)

		require.NoError(t, err)
		assert.True(t, sel.FinalPrice().Amount().Equal(decimal.NewFromInt(70)))
		assert.Equal(t, "USD", sel.FinalPrice().Currency())
		assert.Equal(t, "USD", sel.CostBreakdown().Insurance.Currency())
	})

	t.Run("internal provider without override falls back to the rate", func(t *testing.T) {
		r := rate(t, internalProvider, "99.90", "0", "MXN")

		sel, err := shipment.NewProviderSelection("sh-1", r, shipment.Override{}, internalProvider)

		require.NoError(t, err)
		assert.True(t, sel.FinalPrice().IsEqual(r.Price))
	})

	t.Run("invalid override price is rejected", func(t *testing.T) {
		r := rate(t, internalProvider, "99.90", "0", "MXN")

		_, err := shipment.NewProviderSelection("sh-1", r, shipment.Override{Price: "mucho"}, internalProvider)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("shipment and rate are required", func(t *testing.T) {
		_, err := shipment.NewProviderSelection("", rate(t, "x", "1", "0", "MXN"), shipment.Override{}, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = shipment.NewProviderSelection("sh-1", shipment.Rate{}, shipment.Override{}, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var sel shipment.ProviderSelection

		require.ErrorIs(t, sel.Validate(), shipment.ErrProviderSelectionIsNotConstructed)
	})
}

func TestIsInternalProvider(t *testing.T) {
	assert.True(t, shipment.IsInternalProvider(" TIENDA ", internalProvider))
	assert.False(t, shipment.IsInternalProvider("skydropx", internalProvider))
	assert.False(t, shipment.IsInternalProvider("", ""))
}
