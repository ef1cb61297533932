package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"shipping/internal/core/domain/model/box"
)

// BoxCatalog is the known boxes read model. It is filled by the catalog
// refresh and kept current by the box resolver after each remote write.
type BoxCatalog struct {
	mu    sync.RWMutex
	boxes map[string]*box.Box
}

func NewBoxCatalog() *BoxCatalog {
	return &BoxCatalog{boxes: make(map[string]*box.Box)}
}

// All returns the boxes ordered by id.
func (c *BoxCatalog) All(_ context.Context) ([]*box.Box, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*box.Box, 0, len(c.boxes))
	for _, b := range c.boxes {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b *box.Box) int { return cmp.Compare(a.ID(), b.ID()) })
	return out, nil
}

func (c *BoxCatalog) Put(_ context.Context, b *box.Box) error {
	if err := b.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.boxes[b.ID()] = b
	return nil
}

// Replace swaps the whole catalog. Nothing changes if any box is invalid.
func (c *BoxCatalog) Replace(_ context.Context, boxes []*box.Box) error {
	next := make(map[string]*box.Box, len(boxes))
	for _, b := range boxes {
		if err := b.Validate(); err != nil {
			return err
		}
		next[b.ID()] = b
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.boxes = next
	return nil
}
