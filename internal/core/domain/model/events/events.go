// Package events defines the workflow events published after saga steps.
// Every event is keyed by order id so all events of one order stay ordered
// on the same partition.
package events

import "time"

const (
	TypeOrderSubmitted       = "OrderSubmitted"
	TypeShipmentFulfilled    = "ShipmentFulfilled"
	TypeStockDecrementFailed = "StockDecrementFailed"
)

// Event is a publishable payload.
type Event interface {
	EventType() string
	// Key is the partition key.
	Key() string
}

type OrderSubmitted struct {
	OrderID    string    `json:"order_id"`
	OrderType  string    `json:"order_type"`
	ShipmentID string    `json:"shipment_id,omitempty"`
	Created    bool      `json:"created"`
	SessionID  string    `json:"session_id"`
	At         time.Time `json:"at"`
}

func (OrderSubmitted) EventType() string { return TypeOrderSubmitted }

func (e OrderSubmitted) Key() string { return e.OrderID }

type ShipmentFulfilled struct {
	OrderID        string    `json:"order_id"`
	ShipmentID     string    `json:"shipment_id"`
	Provider       string    `json:"provider"`
	Carrier        string    `json:"carrier"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	FinalPrice     string    `json:"final_price"`
	Currency       string    `json:"currency"`
	At             time.Time `json:"at"`
}

func (ShipmentFulfilled) EventType() string { return TypeShipmentFulfilled }

func (e ShipmentFulfilled) Key() string { return e.OrderID }

type StockDecrementFailed struct {
	OrderID string    `json:"order_id"`
	BoxID   string    `json:"box_id"`
	Reason  string    `json:"reason"`
	At      time.Time `json:"at"`
}

func (StockDecrementFailed) EventType() string { return TypeStockDecrementFailed }

func (e StockDecrementFailed) Key() string { return e.OrderID }
