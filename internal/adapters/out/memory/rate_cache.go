package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"shipping/internal/core/domain/model/shipment"
)

type rateEntry struct {
	rates     []shipment.Rate
	expiresAt time.Time
}

// RateCache keeps quotes per shipment and code set until the TTL runs out.
// Expired entries are dropped lazily on read.
type RateCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]map[string]rateEntry
}

func NewRateCache(ttl time.Duration, now func() time.Time) *RateCache {
	if now == nil {
		now = time.Now
	}
	return &RateCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]map[string]rateEntry),
	}
}

func (c *RateCache) Get(_ context.Context, shipmentID string, codes []string) ([]shipment.Rate, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byCodes, ok := c.entries[shipmentID]
	if !ok {
		return nil, false, nil
	}
	key := shipment.CodeSetKey(codes)
	e, ok := byCodes[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		delete(byCodes, key)
		return nil, false, nil
	}
	return slices.Clone(e.rates), true, nil
}

func (c *RateCache) Put(_ context.Context, shipmentID string, codes []string, rates []shipment.Rate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	byCodes, ok := c.entries[shipmentID]
	if !ok {
		byCodes = make(map[string]rateEntry)
		c.entries[shipmentID] = byCodes
	}
	byCodes[shipment.CodeSetKey(codes)] = rateEntry{
		rates:     slices.Clone(rates),
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

func (c *RateCache) Invalidate(_ context.Context, shipmentID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, shipmentID)
	return nil
}
