package commands_test

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/box"
	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/events"
	"shipping/internal/core/domain/model/journal"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const internalProvider = "tienda"

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// syncRunner runs rate fetches inline so tests observe the result at once.
func syncRunner(task func()) {
	task()
}

// --- remote client mocks ---

type MockCustomerClient struct{ mock.Mock }

func (m *MockCustomerClient) Create(ctx context.Context, c draft.ContactDraft, key string) (string, error) {
	args := m.Called(ctx, c, key)
	return args.String(0), args.Error(1)
}

func (m *MockCustomerClient) Update(ctx context.Context, id string, c draft.ContactDraft) error {
	args := m.Called(ctx, id, c)
	return args.Error(0)
}

type MockBoxClient struct{ mock.Mock }

func (m *MockBoxClient) Create(ctx context.Context, spec box.Spec, key string) (*box.Box, error) {
	args := m.Called(ctx, spec, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*box.Box), args.Error(1)
}

func (m *MockBoxClient) Update(ctx context.Context, id string, patch box.Patch) (*box.Box, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*box.Box), args.Error(1)
}

func (m *MockBoxClient) List(ctx context.Context, page, size int) (box.Page, error) {
	args := m.Called(ctx, page, size)
	return args.Get(0).(box.Page), args.Error(1)
}

type MockOrderClient struct{ mock.Mock }

func (m *MockOrderClient) CreateHQ(ctx context.Context, req order.Request) (*order.Order, error) {
	return m.result(m.Called(ctx, req))
}

func (m *MockOrderClient) CreatePartner(ctx context.Context, req order.Request) (*order.Order, error) {
	return m.result(m.Called(ctx, req))
}

func (m *MockOrderClient) Update(ctx context.Context, req order.Request) (*order.Order, error) {
	return m.result(m.Called(ctx, req))
}

func (m *MockOrderClient) Get(ctx context.Context, id string) (*order.Order, error) {
	return m.result(m.Called(ctx, id))
}

func (m *MockOrderClient) result(args mock.Arguments) (*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockShipmentClient struct{ mock.Mock }

func (m *MockShipmentClient) GetByOrderID(ctx context.Context, orderID string) (*shipment.Shipment, error) {
	return m.result(m.Called(ctx, orderID))
}

func (m *MockShipmentClient) SelectProvider(ctx context.Context, sel shipment.ProviderSelection) (*shipment.Shipment, error) {
	return m.result(m.Called(ctx, sel))
}

func (m *MockShipmentClient) Fulfill(ctx context.Context, shipmentID string) (*shipment.Shipment, error) {
	return m.result(m.Called(ctx, shipmentID))
}

func (m *MockShipmentClient) result(args mock.Arguments) (*shipment.Shipment, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

type MockRateClient struct{ mock.Mock }

func (m *MockRateClient) Quote(ctx context.Context, shipmentID string, codes []string) ([]shipment.Rate, error) {
	args := m.Called(ctx, shipmentID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipment.Rate), args.Error(1)
}

type MockRateCache struct{ mock.Mock }

func (m *MockRateCache) Get(ctx context.Context, shipmentID string, codes []string) ([]shipment.Rate, bool, error) {
	args := m.Called(ctx, shipmentID, codes)
	rates, _ := args.Get(0).([]shipment.Rate)
	return rates, args.Bool(1), args.Error(2)
}

func (m *MockRateCache) Put(ctx context.Context, shipmentID string, codes []string, rates []shipment.Rate) error {
	args := m.Called(ctx, shipmentID, codes, rates)
	return args.Error(0)
}

func (m *MockRateCache) Invalidate(ctx context.Context, shipmentID string) error {
	args := m.Called(ctx, shipmentID)
	return args.Error(0)
}

// --- in-memory fakes for the stateful ports ---

type fakeSessions struct {
	mu    sync.Mutex
	items map[kernel.UUID]*wizard.Session
}

func newFakeSessions(sessions ...*wizard.Session) *fakeSessions {
	f := &fakeSessions{items: make(map[kernel.UUID]*wizard.Session)}
	for _, s := range sessions {
		f.items[s.ID()] = s
	}
	return f
}

func (f *fakeSessions) Add(_ context.Context, s *wizard.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[s.ID()] = s
	return nil
}

func (f *fakeSessions) Get(_ context.Context, id kernel.UUID) (*wizard.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.items[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("sessionId", id)
	}
	return s, nil
}

func (f *fakeSessions) Remove(_ context.Context, id kernel.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

func (f *fakeSessions) All(_ context.Context) ([]*wizard.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*wizard.Session, 0, len(f.items))
	for _, s := range f.items {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSessions) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

type fakeCatalog struct {
	mu    sync.Mutex
	boxes []*box.Box
	err   error
}

func newFakeCatalog(boxes ...*box.Box) *fakeCatalog {
	return &fakeCatalog{boxes: boxes}
}

func (f *fakeCatalog) All(_ context.Context) ([]*box.Box, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return slices.Clone(f.boxes), nil
}

func (f *fakeCatalog) Put(_ context.Context, b *box.Box) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, known := range f.boxes {
		if known.ID() == b.ID() {
			f.boxes[i] = b
			return nil
		}
	}
	f.boxes = append(f.boxes, b)
	return nil
}

func (f *fakeCatalog) Replace(_ context.Context, boxes []*box.Box) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boxes = slices.Clone(boxes)
	return nil
}

func (f *fakeCatalog) Find(id string) *box.Box {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.boxes {
		if b.ID() == id {
			return b
		}
	}
	return nil
}

// fakePublisher records events. With block set it behaves like a hung broker
// and only returns once ctx is done.
type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	block  bool
}

func (f *fakePublisher) Publish(ctx context.Context, _ string, e events.Event) error {
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
	return nil
}

func (f *fakePublisher) Types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.EventType())
	}
	return out
}

// fakeJournal is a JournalUoWFactory whose repository keeps committed entries.
type fakeJournal struct {
	mu      sync.Mutex
	entries []journal.Entry
}

func (f *fakeJournal) Create() commands.JournalUoW {
	return &fakeJournalUoW{journal: f}
}

func (f *fakeJournal) Steps() []journal.Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]journal.Step, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Step)
	}
	return out
}

type fakeJournalUoW struct {
	journal *fakeJournal
	pending []journal.Entry
}

func (u *fakeJournalUoW) Begin(context.Context) error { return nil }

func (u *fakeJournalUoW) Commit(context.Context) error {
	u.journal.mu.Lock()
	defer u.journal.mu.Unlock()
	u.journal.entries = append(u.journal.entries, u.pending...)
	u.pending = nil
	return nil
}

func (u *fakeJournalUoW) Rollback(context.Context) error {
	u.pending = nil
	return nil
}

func (u *fakeJournalUoW) JournalRepository() ports.JournalRepository {
	return u
}

func (u *fakeJournalUoW) Add(_ context.Context, e journal.Entry) error {
	u.pending = append(u.pending, e)
	return nil
}

func (u *fakeJournalUoW) ListBySession(_ context.Context, id kernel.UUID) ([]journal.Entry, error) {
	u.journal.mu.Lock()
	defer u.journal.mu.Unlock()
	var out []journal.Entry
	for _, e := range u.journal.entries {
		if e.SessionID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

// --- builders ---

func newTestSession(t *testing.T, orderType draft.OrderType) *wizard.Session {
	t.Helper()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s, err := wizard.NewSession(orderType, wizard.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	return s
}

func validContact(name string) draft.ContactDraft {
	return draft.ContactDraft{
		Name:  name,
		Email: strings.ToLower(name) + "@example.com",
		Phone: "5512345678",
		Address: draft.Address{
			Street:     "Av. Reforma",
			Number:     "10",
			City:       "CDMX",
			PostalCode: "06600",
			Country:    "MX",
		},
	}
}

func validDraft(orderType draft.OrderType) draft.Draft {
	d := draft.New(orderType)
	d.OrderData.OrderNumber = "SO-100"
	if orderType == draft.Partner {
		d.OrderData.PartnerOrderNumber = "P-77"
	}
	d.Sender = validContact("Ana")
	d.Recipient = validContact("Luis")
	d.Package = draft.PackageDraft{
		Ownership:           draft.OwnershipOwn,
		PackageType:         "Caja M",
		Length:              "30",
		Width:               "20",
		Height:              "10",
		DimensionUnit:       "cm",
		Weight:              "1.5",
		Quantity:            1,
		ClassificationCodes: []string{"53131600"},
	}
	return d
}

func setDraft(s *wizard.Session, d draft.Draft) {
	s.Mutate(func(dst *draft.Draft) {
		*dst = d.Clone()
	})
}

func mustDimensions(t *testing.T, l, w, h float64) kernel.Dimensions {
	t.Helper()
	d, err := kernel.NewDimensions(l, w, h, kernel.Centimeters)
	require.NoError(t, err)
	return d
}

func mustBox(t *testing.T, id, name string, l, w, h float64, stock int) *box.Box {
	t.Helper()
	b, err := box.RestoreBox(id, name, mustDimensions(t, l, w, h), stock)
	require.NoError(t, err)
	return b
}

func mustOrder(t *testing.T, id string, orderType draft.OrderType) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(id, orderType, order.Pending, order.Details{})
	require.NoError(t, err)
	return o
}

func mustShipment(t *testing.T, id, orderID string, status shipment.Status, label shipment.Label) *shipment.Shipment {
	t.Helper()
	s, err := shipment.RestoreShipment(id, orderID, status, shipment.Details{Label: label})
	require.NoError(t, err)
	return s
}

func mustMoney(t *testing.T, amount, currency string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(decimal.RequireFromString(amount), currency)
	require.NoError(t, err)
	return m
}

func testRate(t *testing.T, id, provider, service, price string) shipment.Rate {
	t.Helper()
	return shipment.Rate{
		ID:            id,
		Provider:      provider,
		ServiceName:   service,
		Price:         mustMoney(t, price, "MXN"),
		InsuranceFee:  kernel.ZeroMoney("MXN"),
		EstimatedDays: 2,
	}
}

func anyRequest() any {
	return mock.AnythingOfType("order.Request")
}

func notificationCodes(s *wizard.Session) []string {
	var out []string
	for _, n := range s.Notifications() {
		out = append(out, n.Code)
	}
	return out
}

// moveTo applies the transitions for events without evaluating their guards.
func moveTo(t *testing.T, s *wizard.Session, evs ...wizard.Event) {
	t.Helper()
	for _, ev := range evs {
		tr, err := s.Fire(ev)
		require.NoError(t, err)
		require.NoError(t, s.Apply(tr))
	}
}
