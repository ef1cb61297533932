package queries_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"shipping/internal/core/domain/model/box"
	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*wizard.Session
}

func newFakeSessions(sessions ...*wizard.Session) *fakeSessions {
	f := &fakeSessions{sessions: make(map[string]*wizard.Session)}
	for _, s := range sessions {
		f.sessions[s.ID().String()] = s
	}
	return f
}

func (f *fakeSessions) Add(_ context.Context, s *wizard.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.ID().String()] = s
	return nil
}

func (f *fakeSessions) Get(_ context.Context, id kernel.UUID) (*wizard.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("session", id.String())
	}
	return s, nil
}

func (f *fakeSessions) Remove(_ context.Context, id kernel.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id.String())
	return nil
}

func (f *fakeSessions) All(_ context.Context) ([]*wizard.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*wizard.Session, 0, len(f.sessions))
	for _, s := range f.sessions {
		out = append(out, s)
	}
	return out, nil
}

type fakeCatalog struct {
	boxes []*box.Box
	err   error
}

func (f *fakeCatalog) All(context.Context) ([]*box.Box, error) {
	return f.boxes, f.err
}

func (f *fakeCatalog) Put(_ context.Context, b *box.Box) error {
	f.boxes = append(f.boxes, b)
	return nil
}

func (f *fakeCatalog) Replace(_ context.Context, boxes []*box.Box) error {
	f.boxes = boxes
	return nil
}

// clock is a settable time source for sessions.
type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *clock {
	return &clock{now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func newTestSession(t *testing.T, c *clock) *wizard.Session {
	t.Helper()
	s, err := wizard.NewSession(draft.HQ, wizard.WithClock(c.Now))
	require.NoError(t, err)
	return s
}

func mustBox(t *testing.T, id, name string, side float64, stock int) *box.Box {
	t.Helper()
	d, err := kernel.NewDimensions(side, side, side, kernel.Centimeters)
	require.NoError(t, err)
	b, err := box.RestoreBox(id, name, d, stock)
	require.NoError(t, err)
	return b
}
