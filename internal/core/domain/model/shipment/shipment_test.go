package shipment_test

import (
	"testing"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, amount, currency string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString(amount), currency)
	require.NoError(t, err)
	return m
}

func TestStatus_Lifecycle(t *testing.T) {
	next, err := shipment.Draft.SelectProvider()
	require.NoError(t, err)
	assert.Equal(t, shipment.ProviderSelected, next)

	next, err = next.SelectProvider()
	require.NoError(t, err, "re-selection is allowed")

	next, err = next.Fulfill()
	require.NoError(t, err)
	assert.Equal(t, shipment.Fulfilled, next)
	assert.True(t, next.IsFinal())

	_, err = shipment.Fulfilled.SelectProvider()
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = shipment.Draft.Fulfill()
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParseStatus(t *testing.T) {
	for _, s := range []shipment.Status{shipment.Draft, shipment.ProviderSelected, shipment.Fulfilled} {
		got, err := shipment.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := shipment.ParseStatus("SHIPPED")
	require.Error(t, err)
	require.Error(t, shipment.Unknown.Validate())
}

func TestRestoreShipment(t *testing.T) {
	t.Run("should restore with details", func(t *testing.T) {
		sh, err := shipment.RestoreShipment("sh-1", "ord-1", shipment.Draft, shipment.Details{Provider: "skydropx"})

		require.NoError(t, err)
		require.NoError(t, sh.Validate())
		assert.Equal(t, "sh-1", sh.ID())
		assert.Equal(t, "ord-1", sh.OrderID())
		assert.True(t, sh.CanSelectProvider())
	})

	t.Run("should reject missing ids and unknown status", func(t *testing.T) {
		_, err := shipment.RestoreShipment("", "", shipment.Unknown, shipment.Details{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("fulfilled shipment refuses a new provider", func(t *testing.T) {
		sh, err := shipment.RestoreShipment("sh-1", "ord-1", shipment.Fulfilled, shipment.Details{})

		require.NoError(t, err)
		assert.False(t, sh.CanSelectProvider())
	})
}

func TestDeriveCarrier(t *testing.T) {
	tests := []struct {
		service  string
		provider string
		want     shipment.Carrier
	}{
		{"FedEx Standard Overnight", "skydropx", shipment.CarrierFedex},
		{"dhl express", "skydropx", shipment.CarrierDHL},
		{"Estafeta Día Siguiente", "skydropx", shipment.CarrierEstafeta},
		{"Paquetexpress Terrestre", "skydropx", shipment.CarrierPaquetexpress},
		{"Red Pack Ecoexpress", "skydropx", shipment.CarrierRedpack},
		{"Envío local", " mensajeria ", shipment.Carrier("MENSAJERIA")},
	}
	for _, tt := range tests {
		t.Run(tt.service, func(t *testing.T) {
			got := shipment.DeriveCarrier(shipment.Rate{ServiceName: tt.service, Provider: tt.provider})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindRate(t *testing.T) {
	rates := []shipment.Rate{{ID: "a"}, {ID: "b"}}

	r, ok := shipment.FindRate(rates, "b")
	assert.True(t, ok)
	assert.Equal(t, "b", r.ID)

	_, ok = shipment.FindRate(rates, "c")
	assert.False(t, ok)
}
