package restapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"shipping/internal/core/domain/model/box"
)

// BoxClient implements ports.BoxClient.
type BoxClient struct {
	client *Client
}

func NewBoxClient(client *Client) *BoxClient {
	return &BoxClient{client: client}
}

func (c *BoxClient) Create(ctx context.Context, spec box.Spec, idempotencyKey string) (*box.Box, error) {
	var created boxDTO
	err := c.client.do(ctx, call{
		operation:      "create box",
		method:         http.MethodPost,
		path:           "/box",
		idempotencyKey: idempotencyKey,
		body: boxCreateDTO{
			Name:       spec.Name,
			Dimensions: dimensionsFromDomain(spec.Dimensions),
			Stock:      spec.Stock,
		},
	}, &created)
	if err != nil {
		return nil, err
	}
	return created.toDomain()
}

// Update sends only the fields set in patch.
func (c *BoxClient) Update(ctx context.Context, id string, patch box.Patch) (*box.Box, error) {
	var updated boxDTO
	err := c.client.do(ctx, call{
		operation: "update box",
		method:    http.MethodPut,
		path:      "/box/" + id,
		body:      boxPatchFromDomain(patch),
	}, &updated)
	if err != nil {
		return nil, err
	}
	return updated.toDomain()
}

// List returns one 0-based page of the inventory.
func (c *BoxClient) List(ctx context.Context, page, size int) (box.Page, error) {
	var dto boxPageDTO
	err := c.client.do(ctx, call{
		operation: "list boxes",
		method:    http.MethodGet,
		path:      "/box",
		query: url.Values{
			"page": []string{strconv.Itoa(page)},
			"size": []string{strconv.Itoa(size)},
		},
	}, &dto)
	if err != nil {
		return box.Page{}, err
	}

	boxes := make([]*box.Box, 0, len(dto.Items))
	for _, item := range dto.Items {
		b, err := item.toDomain()
		if err != nil {
			return box.Page{}, err
		}
		boxes = append(boxes, b)
	}
	return box.Page{Boxes: boxes, Page: dto.Page, TotalPages: dto.TotalPages}, nil
}
