package wizard

import (
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
)

// ErrSessionBusy is returned when a resolver or saga step is already running
// for the session.
var ErrSessionBusy = errors.New("session is busy")

// Option configures a new Session.
type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithID fixes the session id.
func WithID(id kernel.UUID) Option {
	return func(s *Session) { s.id = id }
}

// Session is one wizard run. It owns the draft and every piece of saga state
// and is handed to each handler by pointer.
//
// The busy flag is the reentrancy guard: a mutating operation takes it with
// TryAcquire for its whole duration. The mutex only protects field access.
type Session struct {
	busy atomic.Bool

	mu         sync.Mutex
	id         kernel.UUID
	step       Step
	draft      draft.Draft
	orderID    string
	shipmentID string
	fulfilled  *shipment.Shipment
	quote      shipment.Quote
	generation int
	orderKey   string
	createKeys map[string]createKey
	notes      []Notification
	touchedAt  time.Time
	now        func() time.Time
}

// NewSession starts an empty wizard of the given type on the contact step.
func NewSession(orderType draft.OrderType, opts ...Option) (*Session, error) {
	if err := orderType.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		id:    kernel.NewUUID(),
		step:  StepContact,
		draft: draft.New(orderType),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.touchedAt = s.now()
	return s, nil
}

// NewSessionFromOrder opens an existing order for editing. The session
// remembers the order and its shipment, so the next submission is an edit.
func NewSessionFromOrder(o *order.Order, shipmentID string, opts ...Option) (*Session, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := o.Status().ValidateEdit(); err != nil {
		return nil, err
	}
	s, err := NewSession(o.Type(), opts...)
	if err != nil {
		return nil, err
	}
	s.draft = o.ToDraft()
	s.orderID = o.ID()
	s.shipmentID = shipmentID
	return s, nil
}

// TryAcquire marks the session busy. It fails with ErrSessionBusy when
// another operation holds it.
func (s *Session) TryAcquire() error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrSessionBusy
	}
	return nil
}

// Release clears the busy flag.
func (s *Session) Release() {
	s.busy.Store(false)
}

// IsBusy reports whether an operation is in flight.
func (s *Session) IsBusy() bool {
	return s.busy.Load()
}

func (s *Session) ID() kernel.UUID {
	return s.id
}

func (s *Session) Now() time.Time {
	return s.now()
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Session) OrderType() draft.OrderType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.OrderType
}

// Draft returns a deep copy of the draft.
func (s *Session) Draft() draft.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// Mutate applies fn to the draft under the lock. Changes made by fn are
// visible to every later reader, even if the caller fails afterwards.
func (s *Session) Mutate(fn func(d *draft.Draft)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.draft)
	s.touchedAt = s.now()
}

// Fire looks up the transition for event from the current step. It does not
// move the session; call Apply once every guard passed.
func (s *Session) Fire(event Event) (Transition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Lookup(s.step, event, s.draft.OrderType)
}

// Apply moves the session along t. Leaving a quoting step backwards drops
// the selected rate, the fulfilled shipment and the current quote.
func (s *Session) Apply(t Transition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.step != t.From {
		return ErrTransitionNotAllowed
	}
	if t.Event == EventBack && t.From.IsQuoting() {
		s.draft.ClearRateSelection()
		s.fulfilled = nil
		s.resetQuote()
	}
	s.step = t.To
	s.touchedAt = s.now()
	return nil
}

func (s *Session) OrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderID
}

func (s *Session) ShipmentID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shipmentID
}

// OrderKey returns the idempotency key of the pending order create,
// generating one on first use. It is reused until RememberOrder is called.
func (s *Session) OrderKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.orderKey == "" {
		s.orderKey = kernel.NewUUID().String()
	}
	return s.orderKey
}

type createKey struct {
	fingerprint string
	key         string
}

// CreateKey returns the idempotency key of a pending create in scope. The
// key is reused while fingerprint stays the same, so a retry of the same
// payload cannot create a duplicate. A changed payload gets a new key.
func (s *Session) CreateKey(scope, fingerprint string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if k, ok := s.createKeys[scope]; ok && k.fingerprint == fingerprint {
		return k.key
	}
	if s.createKeys == nil {
		s.createKeys = make(map[string]createKey)
	}
	k := createKey{fingerprint: fingerprint, key: kernel.NewUUID().String()}
	s.createKeys[scope] = k
	return k.key
}

// RetireCreateKey forgets the key of scope once its create succeeded.
func (s *Session) RetireCreateKey(scope string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.createKeys, scope)
}

// RememberOrder stores the created order id and retires the create key.
func (s *Session) RememberOrder(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderID = orderID
	s.orderKey = ""
}

// RememberShipment stores the shipment resolved for the order.
func (s *Session) RememberShipment(shipmentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shipmentID = shipmentID
}

func (s *Session) FulfilledShipment() *shipment.Shipment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fulfilled
}

func (s *Session) SetFulfilled(sh *shipment.Shipment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fulfilled = sh
}

// BeginQuote replaces the current quote with a new loading one for the
// remembered shipment and returns it. Results of earlier fetches are
// discarded from now on.
func (s *Session) BeginQuote(codes []string) shipment.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.quote = shipment.Quote{
		Generation: s.generation,
		ShipmentID: s.shipmentID,
		Codes:      slices.Clone(codes),
		StartedAt:  s.now(),
	}
	return s.quote.Clone()
}

// CompleteQuote resolves the quote of the given generation. It reports false
// and changes nothing when a newer fetch started or the quote was dropped
// meanwhile.
func (s *Session) CompleteQuote(generation int, rates []shipment.Rate, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation || !s.quote.IsLoading() {
		return false
	}
	s.quote.Rates = slices.Clone(rates)
	s.quote.Err = err
	s.quote.FinishedAt = s.now()
	return true
}

// Quote returns a copy of the current quote.
func (s *Session) Quote() shipment.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quote.Clone()
}

// InvalidateQuote drops the current quote; an in-flight fetch is ignored
// when it completes.
func (s *Session) InvalidateQuote() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetQuote()
}

func (s *Session) resetQuote() {
	s.generation++
	s.quote = shipment.Quote{}
}

// Notify appends a notification.
func (s *Session) Notify(level Level, code, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, Notification{Level: level, Code: code, Message: message, At: s.now()})
}

// NotifyError appends an error notification built from err.
func (s *Session) NotifyError(code string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, notificationFor(code, err, s.now()))
}

// Notifications returns the pending notifications without removing them.
func (s *Session) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.notes)
}

// DrainNotifications returns and removes the pending notifications.
func (s *Session) DrainNotifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.notes
	s.notes = nil
	return out
}

// Touch records activity.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = s.now()
}

func (s *Session) TouchedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

// IsIdle reports whether the session saw no activity for longer than ttl.
func (s *Session) IsIdle(ttl time.Duration) bool {
	return s.now().Sub(s.TouchedAt()) > ttl
}

// Snapshot is a consistent read-only copy of the session.
type Snapshot struct {
	ID                kernel.UUID
	Step              Step
	Draft             draft.Draft
	OrderID           string
	ShipmentID        string
	FulfilledShipment *shipment.Shipment
	Quote             shipment.Quote
	Busy              bool
	Notifications     []Notification
	TouchedAt         time.Time
}

// Snapshot copies the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:                s.id,
		Step:              s.step,
		Draft:             s.draft.Clone(),
		OrderID:           s.orderID,
		ShipmentID:        s.shipmentID,
		FulfilledShipment: s.fulfilled,
		Quote:             s.quote.Clone(),
		Busy:              s.busy.Load(),
		Notifications:     slices.Clone(s.notes),
		TouchedAt:         s.touchedAt,
	}
}
