package restapi

import (
	"context"
	"net/http"

	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"
)

// OrderClient implements ports.OrderClient. Every call returns the full order.
type OrderClient struct {
	client *Client
}

func NewOrderClient(client *Client) *OrderClient {
	return &OrderClient{client: client}
}

func (c *OrderClient) CreateHQ(ctx context.Context, req order.Request) (*order.Order, error) {
	return c.create(ctx, "create hq order", "/order/hq", req)
}

func (c *OrderClient) CreatePartner(ctx context.Context, req order.Request) (*order.Order, error) {
	return c.create(ctx, "create partner order", "/order/partner", req)
}

func (c *OrderClient) create(ctx context.Context, operation, path string, req order.Request) (*order.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !req.IsCreate() {
		return nil, errs.NewValueIsInvalidError("order request is an edit")
	}

	var dto orderDTO
	err := c.client.do(ctx, call{
		operation:      operation,
		method:         http.MethodPost,
		path:           path,
		idempotencyKey: req.IdempotencyKey,
		body:           orderRequestFromDomain(req),
	}, &dto)
	if err != nil {
		return nil, err
	}
	return dto.toDomain()
}

func (c *OrderClient) Update(ctx context.Context, req order.Request) (*order.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.IsCreate() {
		return nil, errs.NewValueIsRequiredError("order id")
	}

	var dto orderDTO
	err := c.client.do(ctx, call{
		operation: "update order",
		method:    http.MethodPut,
		path:      "/order/" + req.OrderID,
		body:      orderRequestFromDomain(req),
	}, &dto)
	if err != nil {
		return nil, err
	}
	return dto.toDomain()
}

// Get loads an order. A missing order is errs.ObjectNotFoundError.
func (c *OrderClient) Get(ctx context.Context, id string) (*order.Order, error) {
	var dto orderDTO
	err := c.client.do(ctx, call{
		operation: "get order",
		method:    http.MethodGet,
		path:      "/order/" + id,
	}, &dto)
	if isNotFound(err) {
		return nil, errs.NewObjectNotFoundErrorWithCause("order", id, err)
	}
	if err != nil {
		return nil, err
	}
	return dto.toDomain()
}
