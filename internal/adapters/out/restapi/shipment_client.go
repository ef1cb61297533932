package restapi

import (
	"context"
	"net/http"
	"net/url"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
)

// ShipmentClient implements ports.ShipmentClient.
type ShipmentClient struct {
	client *Client
}

func NewShipmentClient(client *Client) *ShipmentClient {
	return &ShipmentClient{client: client}
}

// GetByOrderID looks up the shipment of an order. A missing shipment is
// errs.ObjectNotFoundError.
func (c *ShipmentClient) GetByOrderID(ctx context.Context, orderID string) (*shipment.Shipment, error) {
	var dto shipmentDTO
	err := c.client.do(ctx, call{
		operation: "get shipment",
		method:    http.MethodGet,
		path:      "/shipment",
		query:     url.Values{"orderId": []string{orderID}},
	}, &dto)
	if isNotFound(err) {
		return nil, errs.NewObjectNotFoundErrorWithCause("orderId", orderID, err)
	}
	if err != nil {
		return nil, err
	}
	return dto.toDomain()
}

func (c *ShipmentClient) SelectProvider(ctx context.Context, sel shipment.ProviderSelection) (*shipment.Shipment, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	var dto shipmentDTO
	err := c.client.do(ctx, call{
		operation: "select provider",
		method:    http.MethodPost,
		path:      "/shipment/select-provider",
		body:      providerSelectionFromDomain(sel),
	}, &dto)
	if err != nil {
		return nil, err
	}
	return dto.toDomain()
}

func (c *ShipmentClient) Fulfill(ctx context.Context, shipmentID string) (*shipment.Shipment, error) {
	var dto shipmentDTO
	err := c.client.do(ctx, call{
		operation: "fulfill shipment",
		method:    http.MethodPost,
		path:      "/shipment/" + shipmentID + "/fulfill",
	}, &dto)
	if err != nil {
		return nil, err
	}
	return dto.toDomain()
}
