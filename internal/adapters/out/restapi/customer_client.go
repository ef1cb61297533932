package restapi

import (
	"context"
	"errors"
	"net/http"

	"shipping/internal/core/domain/model/draft"
	"shipping/internal/pkg/errs"
)

// CustomerClient implements ports.CustomerClient.
type CustomerClient struct {
	client *Client
}

func NewCustomerClient(client *Client) *CustomerClient {
	return &CustomerClient{client: client}
}

// Create posts a new customer and returns the id the service assigned.
func (c *CustomerClient) Create(ctx context.Context, contact draft.ContactDraft, idempotencyKey string) (string, error) {
	var created customerDTO
	err := c.client.do(ctx, call{
		operation:      "create customer",
		method:         http.MethodPost,
		path:           "/customer",
		idempotencyKey: idempotencyKey,
		body:           customerFromDomain(contact),
	}, &created)
	if err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", errs.NewRemoteCallErrorWithCause("create customer", http.StatusOK, errors.New("response has no id"))
	}
	return created.ID, nil
}

// Update overwrites the customer with the given id.
func (c *CustomerClient) Update(ctx context.Context, id string, contact draft.ContactDraft) error {
	return c.client.do(ctx, call{
		operation: "update customer",
		method:    http.MethodPut,
		path:      "/customer/" + id,
		body:      customerFromDomain(contact),
	}, nil)
}
