package wizard_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newSession(t *testing.T, orderType draft.OrderType) (*wizard.Session, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)}
	s, err := wizard.NewSession(orderType, wizard.WithClock(clock.Now))
	require.NoError(t, err)
	return s, clock
}

func moveTo(t *testing.T, s *wizard.Session, events ...wizard.Event) {
	t.Helper()
	for _, e := range events {
		tr, err := s.Fire(e)
		require.NoError(t, err)
		require.NoError(t, s.Apply(tr))
	}
}

func TestNewSession(t *testing.T) {
	s, clock := newSession(t, draft.Partner)

	assert.False(t, s.ID().IsZero())
	assert.Equal(t, wizard.StepContact, s.Step())
	assert.Equal(t, draft.Partner, s.OrderType())
	assert.Equal(t, clock.Now(), s.TouchedAt())

	_, err := wizard.NewSession("EXPRESS")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	id := kernel.NewUUID()
	s, err = wizard.NewSession(draft.HQ, wizard.WithID(id))
	require.NoError(t, err)
	assert.True(t, s.ID().IsEqual(id))
}

func TestNewSessionFromOrder(t *testing.T) {
	dims, err := kernel.NewDimensions(1, 1, 1, kernel.Centimeters)
	require.NoError(t, err)
	details := order.Details{Package: order.Package{Name: "Caja", Dimensions: dims, Quantity: 1}}

	t.Run("editable order opens on contact with saga state", func(t *testing.T) {
		o, err := order.RestoreOrder("ord-1", draft.HQ, order.Pending, details)
		require.NoError(t, err)

		s, err := wizard.NewSessionFromOrder(o, "sh-1")

		require.NoError(t, err)
		assert.Equal(t, wizard.StepContact, s.Step())
		assert.Equal(t, "ord-1", s.OrderID())
		assert.Equal(t, "sh-1", s.ShipmentID())
		assert.Equal(t, "Caja", s.Draft().Package.PackageType)
	})

	t.Run("final order cannot be edited", func(t *testing.T) {
		o, err := order.RestoreOrder("ord-1", draft.HQ, order.Fulfilled, details)
		require.NoError(t, err)

		_, err = wizard.NewSessionFromOrder(o, "sh-1")

		require.ErrorIs(t, err, errs.ErrBusinessRule)
	})
}

func TestSession_BusyFlag(t *testing.T) {
	s, _ := newSession(t, draft.HQ)

	require.NoError(t, s.TryAcquire())
	assert.True(t, s.IsBusy())
	require.ErrorIs(t, s.TryAcquire(), wizard.ErrSessionBusy)

	s.Release()
	assert.False(t, s.IsBusy())
	require.NoError(t, s.TryAcquire())
}

func TestSession_ConcurrentAcquireHasOneWinner(t *testing.T) {
	s, _ := newSession(t, draft.HQ)

	var wg sync.WaitGroup
	results := make(chan error, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.TryAcquire()
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, wizard.ErrSessionBusy)
		}
	}
	assert.Equal(t, 1, wins)
}

func TestSession_BackFromRateClearsQuotingState(t *testing.T) {
	for _, orderType := range []draft.OrderType{draft.HQ, draft.Partner} {
		t.Run(string(orderType), func(t *testing.T) {
			s, _ := newSession(t, orderType)
			moveTo(t, s, wizard.EventForward, wizard.EventForward)
			require.True(t, s.Step().IsQuoting())

			s.Mutate(func(d *draft.Draft) {
				d.ShippingService.SelectedRate = &shipment.Rate{ID: "r-1"}
				d.ShippingService.OverridePrice = "10"
			})
			sh, err := shipment.RestoreShipment("sh-1", "ord-1", shipment.Fulfilled, shipment.Details{})
			require.NoError(t, err)
			s.SetFulfilled(sh)
			s.RememberShipment("sh-1")
			q := s.BeginQuote([]string{"DOCS"})

			moveTo(t, s, wizard.EventBack)

			assert.Equal(t, wizard.StepPackage, s.Step())
			assert.Nil(t, s.Draft().ShippingService.SelectedRate)
			assert.Empty(t, s.Draft().ShippingService.OverridePrice)
			assert.Nil(t, s.FulfilledShipment())
			assert.True(t, s.Quote().IsZero())
			assert.False(t, s.CompleteQuote(q.Generation, []shipment.Rate{{ID: "late"}}, nil),
				"a fetch started before going back is discarded")
			assert.Equal(t, "sh-1", s.ShipmentID(), "the shipment itself is kept")
		})
	}
}

func TestSession_ApplyRejectsStaleTransition(t *testing.T) {
	s, _ := newSession(t, draft.HQ)
	tr, err := s.Fire(wizard.EventForward)
	require.NoError(t, err)
	require.NoError(t, s.Apply(tr))

	require.ErrorIs(t, s.Apply(tr), wizard.ErrTransitionNotAllowed)
	assert.Equal(t, wizard.StepPackage, s.Step())
}

func TestSession_OrderKey(t *testing.T) {
	s, _ := newSession(t, draft.HQ)

	key := s.OrderKey()
	require.NotEmpty(t, key)
	assert.Equal(t, key, s.OrderKey(), "reused until an order is remembered")

	s.RememberOrder("ord-1")
	assert.Equal(t, "ord-1", s.OrderID())
	assert.NotEqual(t, key, s.OrderKey())
}

func TestSession_CreateKey(t *testing.T) {
	s, _ := newSession(t, draft.HQ)

	key := s.CreateKey("box", "Caja M 10x10x10")
	require.NotEmpty(t, key)
	assert.Equal(t, key, s.CreateKey("box", "Caja M 10x10x10"), "reused for the same payload")
	assert.NotEqual(t, key, s.CreateKey("contact:sender", "Caja M 10x10x10"), "scopes are independent")

	changed := s.CreateKey("box", "Caja M 12x10x10")
	assert.NotEqual(t, key, changed)

	s.RetireCreateKey("box")
	assert.NotEqual(t, changed, s.CreateKey("box", "Caja M 12x10x10"))
}

func TestSession_Quote(t *testing.T) {
	s, clock := newSession(t, draft.HQ)
	s.RememberShipment("sh-1")

	first := s.BeginQuote([]string{"A"})
	assert.True(t, s.Quote().IsLoading())
	assert.Equal(t, "sh-1", first.ShipmentID)

	second := s.BeginQuote([]string{"A", "B"})
	assert.Greater(t, second.Generation, first.Generation)

	assert.False(t, s.CompleteQuote(first.Generation, []shipment.Rate{{ID: "old"}}, nil))
	assert.True(t, s.Quote().IsLoading())

	clock.Advance(time.Second)
	assert.True(t, s.CompleteQuote(second.Generation, []shipment.Rate{{ID: "new"}}, nil))
	q := s.Quote()
	assert.False(t, q.IsLoading())
	require.Len(t, q.Rates, 1)
	assert.Equal(t, "new", q.Rates[0].ID)
	assert.InDelta(t, 100, q.Progress(clock.Now()), 0)

	assert.False(t, s.CompleteQuote(second.Generation, nil, errors.New("twice")), "a quote resolves once")

	s.InvalidateQuote()
	assert.True(t, s.Quote().IsZero())
}

func TestSession_Notifications(t *testing.T) {
	s, _ := newSession(t, draft.HQ)

	s.Notify(wizard.LevelInfo, wizard.CodeContactSaved, "sender saved")
	s.NotifyError(wizard.CodeBoxSaveFailed, errs.NewBusinessRuleError("box_out_of_stock", "no stock"))
	s.NotifyError(wizard.CodeOrderSaveFailed, errs.ErrIdentityUnknown)
	s.NotifyError(wizard.CodeContactSaveFailed, errs.NewRemoteCallError("create customer", 500))

	notes := s.Notifications()
	require.Len(t, notes, 4)
	assert.Equal(t, wizard.LevelInfo, notes[0].Level)
	assert.Equal(t, "box_out_of_stock", notes[1].Code)
	assert.Equal(t, "no stock", notes[1].Message)
	assert.Equal(t, wizard.CodeIdentityUnknown, notes[2].Code)
	assert.Equal(t, wizard.CodeContactSaveFailed, notes[3].Code)
	assert.Equal(t, wizard.LevelError, notes[3].Level)

	assert.Len(t, s.DrainNotifications(), 4)
	assert.Empty(t, s.Notifications())
}

func TestSession_Idle(t *testing.T) {
	s, clock := newSession(t, draft.HQ)

	clock.Advance(10 * time.Minute)
	assert.True(t, s.IsIdle(5*time.Minute))

	s.Touch()
	assert.False(t, s.IsIdle(5*time.Minute))

	snap := s.Snapshot()
	assert.Equal(t, clock.Now(), snap.TouchedAt)
	assert.Equal(t, wizard.StepContact, snap.Step)
}
