package restapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"shipping/internal/core/domain/model/shipment"
)

// RateClient implements ports.RateClient.
type RateClient struct {
	client *Client
}

func NewRateClient(client *Client) *RateClient {
	return &RateClient{client: client}
}

// Quote fetches the rates of a shipment for the given classification codes,
// sent comma separated.
func (c *RateClient) Quote(ctx context.Context, shipmentID string, codes []string) ([]shipment.Rate, error) {
	query := url.Values{}
	if len(codes) > 0 {
		query.Set("codes", strings.Join(codes, ","))
	}

	var dtos []rateDTO
	err := c.client.do(ctx, call{
		operation: "quote rates",
		method:    http.MethodGet,
		path:      "/shipment/" + shipmentID + "/rates",
		query:     query,
	}, &dtos)
	if err != nil {
		return nil, err
	}

	rates := make([]shipment.Rate, 0, len(dtos))
	for _, dto := range dtos {
		r, err := dto.toDomain()
		if err != nil {
			return nil, err
		}
		rates = append(rates, r)
	}
	return rates, nil
}
