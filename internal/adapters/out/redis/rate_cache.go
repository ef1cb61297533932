// Package redis implements the rate cache on Redis. Each shipment owns one
// hash, rates:{shipmentID}, with one field per classification code set.
// The TTL applies to the whole hash and is refreshed on every write.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const keyPrefix = "rates:"

// RateCache implements ports.RateCache.
type RateCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewClient connects to addr with the timeouts used by the service.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

func NewRateCache(rdb *redis.Client, ttl time.Duration) *RateCache {
	return &RateCache{rdb: rdb, ttl: ttl}
}

func key(shipmentID string) string {
	return keyPrefix + shipmentID
}

// field never is empty: Redis accepts empty fields but they read badly in redis-cli.
func field(codes []string) string {
	if k := shipment.CodeSetKey(codes); k != "" {
		return k
	}
	return "-"
}

func (c *RateCache) Get(ctx context.Context, shipmentID string, codes []string) ([]shipment.Rate, bool, error) {
	raw, err := c.rdb.HGet(ctx, key(shipmentID), field(codes)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached rates: %w", err)
	}

	var cached []cachedRate
	if err = json.Unmarshal(raw, &cached); err != nil {
		return nil, false, fmt.Errorf("decode cached rates: %w", err)
	}

	rates := make([]shipment.Rate, 0, len(cached))
	for _, r := range cached {
		rate, err := r.toDomain()
		if err != nil {
			return nil, false, err
		}
		rates = append(rates, rate)
	}
	return rates, true, nil
}

func (c *RateCache) Put(ctx context.Context, shipmentID string, codes []string, rates []shipment.Rate) error {
	cached := make([]cachedRate, 0, len(rates))
	for _, r := range rates {
		cached = append(cached, fromDomain(r))
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("encode rates: %w", err)
	}

	k := key(shipmentID)
	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, k, field(codes), raw)
		pipe.Expire(ctx, k, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("write cached rates: %w", err)
	}
	return nil
}

func (c *RateCache) Invalidate(ctx context.Context, shipmentID string) error {
	if err := c.rdb.Del(ctx, key(shipmentID)).Err(); err != nil {
		return fmt.Errorf("invalidate cached rates: %w", err)
	}
	return nil
}

type cachedRate struct {
	ID            string          `json:"id"`
	Provider      string          `json:"provider"`
	ServiceName   string          `json:"service_name"`
	Price         decimal.Decimal `json:"price"`
	InsuranceFee  decimal.Decimal `json:"insurance_fee"`
	Currency      string          `json:"currency"`
	IsOcurre      bool            `json:"is_ocurre"`
	EstimatedDays int             `json:"estimated_days"`
}

func fromDomain(r shipment.Rate) cachedRate {
	return cachedRate{
		ID:            r.ID,
		Provider:      r.Provider,
		ServiceName:   r.ServiceName,
		Price:         r.Price.Amount(),
		InsuranceFee:  r.InsuranceFee.Amount(),
		Currency:      r.Currency(),
		IsOcurre:      r.IsOcurre,
		EstimatedDays: r.EstimatedDays,
	}
}

func (r cachedRate) toDomain() (shipment.Rate, error) {
	price, err := kernel.NewMoney(r.Price, r.Currency)
	if err != nil {
		return shipment.Rate{}, err
	}
	insurance, err := kernel.NewMoney(r.InsuranceFee, r.Currency)
	if err != nil {
		return shipment.Rate{}, err
	}
	return shipment.Rate{
		ID:            r.ID,
		Provider:      r.Provider,
		ServiceName:   r.ServiceName,
		Price:         price,
		InsuranceFee:  insurance,
		IsOcurre:      r.IsOcurre,
		EstimatedDays: r.EstimatedDays,
	}, nil
}
