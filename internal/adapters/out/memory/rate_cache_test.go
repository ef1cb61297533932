package memory_test

import (
	"testing"
	"time"

	"shipping/internal/adapters/out/memory"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(t *testing.T, id string) shipment.Rate {
	t.Helper()
	price, err := kernel.NewMoney(decimal.NewFromInt(100), "MXN")
	require.NoError(t, err)
	return shipment.Rate{ID: id, Provider: "fedex", ServiceName: "FedEx", Price: price, InsuranceFee: kernel.ZeroMoney("MXN")}
}

func TestRateCache_HitMissAndCodeOrder(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	cache := memory.NewRateCache(time.Minute, func() time.Time { return now })

	_, ok, err := cache.Get(t.Context(), "s-1", []string{"a"})
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put(t.Context(), "s-1", []string{"b", "a"}, []shipment.Rate{rate(t, "r-1")}))

	rates, ok, err := cache.Get(t.Context(), "s-1", []string{"a", "b"})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "r-1", rates[0].ID)

	_, ok, err = cache.Get(t.Context(), "s-1", []string{"a"})
	require.NoError(t, err)
	assert.False(t, ok, "a different code set is a different entry")
}

func TestRateCache_Expiry(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	cache := memory.NewRateCache(time.Minute, func() time.Time { return now })
	require.NoError(t, cache.Put(t.Context(), "s-1", nil, []shipment.Rate{rate(t, "r-1")}))

	now = now.Add(59 * time.Second)
	_, ok, _ := cache.Get(t.Context(), "s-1", nil)
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = cache.Get(t.Context(), "s-1", nil)
	assert.False(t, ok)
}

func TestRateCache_InvalidateDropsAllCodeSets(t *testing.T) {
	cache := memory.NewRateCache(time.Hour, nil)
	require.NoError(t, cache.Put(t.Context(), "s-1", []string{"a"}, []shipment.Rate{rate(t, "r-1")}))
	require.NoError(t, cache.Put(t.Context(), "s-1", []string{"b"}, []shipment.Rate{rate(t, "r-2")}))
	require.NoError(t, cache.Put(t.Context(), "s-2", []string{"a"}, []shipment.Rate{rate(t, "r-3")}))

	require.NoError(t, cache.Invalidate(t.Context(), "s-1"))

	_, ok, _ := cache.Get(t.Context(), "s-1", []string{"a"})
	assert.False(t, ok)
	_, ok, _ = cache.Get(t.Context(), "s-1", []string{"b"})
	assert.False(t, ok)
	_, ok, _ = cache.Get(t.Context(), "s-2", []string{"a"})
	assert.True(t, ok)
}

func TestRateCache_ReturnsCopies(t *testing.T) {
	cache := memory.NewRateCache(time.Hour, nil)
	in := []shipment.Rate{rate(t, "r-1")}
	require.NoError(t, cache.Put(t.Context(), "s-1", nil, in))
	in[0].ID = "mutated"

	out, ok, _ := cache.Get(t.Context(), "s-1", nil)
	require.True(t, ok)
	assert.Equal(t, "r-1", out[0].ID)
}
