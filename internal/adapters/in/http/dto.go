package http

import (
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/draft"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/wizard"
	"shipping/internal/pkg/errs"
)

// Error is the body of every failed request.
type Error struct {
	Code        int              `json:"code"`
	Message     string           `json:"message"`
	FieldErrors errs.FieldErrors `json:"fieldErrors,omitempty"`
}

type StartSessionRequest struct {
	OrderType string `json:"orderType"`
	OrderID   string `json:"orderId"`
}

type StartSessionResponse struct {
	SessionID string `json:"sessionId"`
}

type SelectRateRequest struct {
	RateID           string `json:"rateId"`
	OverridePrice    string `json:"overridePrice"`
	OverrideCurrency string `json:"overrideCurrency"`
}

// TransitionResponse answers next, fulfill and submit. A blocked transition
// is a 200 with Advanced false.
type TransitionResponse struct {
	Advanced      bool                  `json:"advanced"`
	Step          string                `json:"step"`
	FieldErrors   errs.FieldErrors      `json:"fieldErrors"`
	Notifications []wizard.Notification `json:"notifications"`
	Session       *SessionResponse      `json:"session,omitempty"`
}

type StepResponse struct {
	Step string `json:"step"`
}

type Rate struct {
	ID            string `json:"id"`
	Provider      string `json:"provider"`
	ServiceName   string `json:"serviceName"`
	Price         string `json:"price"`
	InsuranceFee  string `json:"insuranceFee"`
	Currency      string `json:"currency"`
	IsOcurre      bool   `json:"isOcurre"`
	EstimatedDays int    `json:"estimatedDays"`
	Carrier       string `json:"carrierType"`
}

type Shipment struct {
	ID             string `json:"id"`
	OrderID        string `json:"orderId"`
	Status         string `json:"status"`
	Provider       string `json:"provider,omitempty"`
	FinalPrice     string `json:"finalPrice,omitempty"`
	Currency       string `json:"currency,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	LabelURL       string `json:"labelUrl,omitempty"`
}

type SessionResponse struct {
	ID                string                `json:"id"`
	Step              string                `json:"step"`
	Draft             draft.Draft           `json:"draft"`
	SelectedRate      *Rate                 `json:"selectedRate,omitempty"`
	OrderID           string                `json:"orderId,omitempty"`
	ShipmentID        string                `json:"shipmentId,omitempty"`
	FulfilledShipment *Shipment             `json:"fulfilledShipment,omitempty"`
	Busy              bool                  `json:"busy"`
	Notifications     []wizard.Notification `json:"notifications"`
	TouchedAt         time.Time             `json:"touchedAt"`
}

type RatesResponse struct {
	IsLoading  bool    `json:"isLoading"`
	Progress   float64 `json:"progress"`
	Error      string  `json:"error,omitempty"`
	ShipmentID string  `json:"shipmentId,omitempty"`
	Rates      []Rate  `json:"rates"`
}

type Box struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Length        float64 `json:"length"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	DimensionUnit string  `json:"dimensionUnit"`
	Stock         int     `json:"stock"`
}

type OrphanedOrder struct {
	OrderID      string    `json:"orderId"`
	SessionID    string    `json:"sessionId"`
	ShipmentID   string    `json:"shipmentId,omitempty"`
	LastStep     string    `json:"lastStep"`
	LastOutcome  string    `json:"lastOutcome"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}

func toRate(r shipment.Rate) Rate {
	return Rate{
		ID:            r.ID,
		Provider:      r.Provider,
		ServiceName:   r.ServiceName,
		Price:         r.Price.Amount().StringFixed(2),
		InsuranceFee:  r.InsuranceFee.Amount().StringFixed(2),
		Currency:      r.Currency(),
		IsOcurre:      r.IsOcurre,
		EstimatedDays: r.EstimatedDays,
		Carrier:       string(shipment.DeriveCarrier(r)),
	}
}

func toRates(in []shipment.Rate) []Rate {
	out := make([]Rate, 0, len(in))
	for _, r := range in {
		out = append(out, toRate(r))
	}
	return out
}

func toShipment(s *shipment.Shipment) *Shipment {
	if s == nil {
		return nil
	}
	out := &Shipment{
		ID:             s.ID(),
		OrderID:        s.OrderID(),
		Status:         s.Status().String(),
		Provider:       s.Provider(),
		TrackingNumber: s.Label().TrackingNumber,
		LabelURL:       s.Label().LabelURL,
	}
	if p := s.FinalPrice(); p != nil {
		out.FinalPrice = p.Amount().StringFixed(2)
		out.Currency = p.Currency()
	}
	return out
}

func toSession(s queries.GetSessionQueryResponse) SessionResponse {
	out := SessionResponse{
		ID:                s.ID.String(),
		Step:              string(s.Step),
		Draft:             s.Draft,
		OrderID:           s.OrderID,
		ShipmentID:        s.ShipmentID,
		FulfilledShipment: toShipment(s.FulfilledShipment),
		Busy:              s.Busy,
		Notifications:     nonNil(s.Notifications),
		TouchedAt:         s.TouchedAt,
	}
	if r := s.Draft.ShippingService.SelectedRate; r != nil {
		rate := toRate(*r)
		out.SelectedRate = &rate
	}
	return out
}

func toTransition(res commands.AdvanceStepResult, s queries.GetSessionQueryResponse) TransitionResponse {
	session := toSession(s)
	fieldErrors := res.FieldErrors
	if fieldErrors == nil {
		fieldErrors = errs.FieldErrors{}
	}
	return TransitionResponse{
		Advanced:      res.Advanced,
		Step:          string(s.Step),
		FieldErrors:   fieldErrors,
		Notifications: session.Notifications,
		Session:       &session,
	}
}

func toBox(b queries.ListBoxesQueryResponse) Box {
	return Box{
		ID:            b.ID,
		Name:          b.Name,
		Length:        b.Dimensions.Length(),
		Width:         b.Dimensions.Width(),
		Height:        b.Dimensions.Height(),
		DimensionUnit: string(b.Dimensions.Unit()),
		Stock:         b.Stock,
	}
}

func toOrphanedOrder(o queries.GetOrphanedOrdersQueryResponse) OrphanedOrder {
	return OrphanedOrder{
		OrderID:      o.OrderID,
		SessionID:    o.SessionID,
		ShipmentID:   o.ShipmentID,
		LastStep:     string(o.LastStep),
		LastOutcome:  string(o.LastOutcome),
		CreatedAt:    o.CreatedAt,
		LastActivity: o.LastActivity,
	}
}

func nonNil(n []wizard.Notification) []wizard.Notification {
	if n == nil {
		return []wizard.Notification{}
	}
	return n
}
