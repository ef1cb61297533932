package redis_test

import (
	"context"
	"testing"
	"time"

	redis_adapter "shipping/internal/adapters/out/redis"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RateCacheIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	rdb       *redis.Client
	cache     *redis_adapter.RateCache
}

func (suite *RateCacheIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	addr, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.rdb = redis_adapter.NewClient(addr)
	suite.Require().NoError(suite.rdb.Ping(ctx).Err())
}

func (suite *RateCacheIntegrationTestSuite) TearDownSuite() {
	if suite.rdb != nil {
		suite.Require().NoError(suite.rdb.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RateCacheIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.rdb.FlushDB(context.Background()).Err())
	suite.cache = redis_adapter.NewRateCache(suite.rdb, time.Minute)
}

func (suite *RateCacheIntegrationTestSuite) TestGet_Miss() {
	rates, ok, err := suite.cache.Get(context.Background(), "s-1", []string{"a"})

	suite.Require().NoError(err)
	suite.False(ok)
	suite.Nil(rates)
}

func (suite *RateCacheIntegrationTestSuite) TestPutGet_RoundTripsRates() {
	ctx := context.Background()
	in := []shipment.Rate{suite.rate("r-1", "120.50", "10"), suite.rate("r-2", "99", "0")}
	in[1].IsOcurre = true

	suite.Require().NoError(suite.cache.Put(ctx, "s-1", []string{"b", "a"}, in))

	out, ok, err := suite.cache.Get(ctx, "s-1", []string{"a", "b"})
	suite.Require().NoError(err)
	suite.Require().True(ok)
	suite.Require().Len(out, 2)
	suite.Equal("r-1", out[0].ID)
	suite.True(in[0].Price.IsEqual(out[0].Price))
	suite.True(in[0].InsuranceFee.IsEqual(out[0].InsuranceFee))
	suite.True(out[1].IsOcurre)

	ttl, err := suite.rdb.TTL(ctx, "rates:s-1").Result()
	suite.Require().NoError(err)
	suite.Greater(ttl, time.Duration(0))
	suite.LessOrEqual(ttl, time.Minute)
}

func (suite *RateCacheIntegrationTestSuite) TestPut_EmptyCodeSet() {
	ctx := context.Background()
	suite.Require().NoError(suite.cache.Put(ctx, "s-1", nil, []shipment.Rate{suite.rate("r-1", "1", "0")}))

	_, ok, err := suite.cache.Get(ctx, "s-1", []string{})
	suite.Require().NoError(err)
	suite.True(ok)
}

func (suite *RateCacheIntegrationTestSuite) TestInvalidate_DropsEveryCodeSet() {
	ctx := context.Background()
	suite.Require().NoError(suite.cache.Put(ctx, "s-1", []string{"a"}, []shipment.Rate{suite.rate("r-1", "1", "0")}))
	suite.Require().NoError(suite.cache.Put(ctx, "s-1", []string{"b"}, []shipment.Rate{suite.rate("r-2", "2", "0")}))
	suite.Require().NoError(suite.cache.Put(ctx, "s-2", []string{"a"}, []shipment.Rate{suite.rate("r-3", "3", "0")}))

	suite.Require().NoError(suite.cache.Invalidate(ctx, "s-1"))

	_, ok, err := suite.cache.Get(ctx, "s-1", []string{"a"})
	suite.Require().NoError(err)
	suite.False(ok)
	_, ok, err = suite.cache.Get(ctx, "s-2", []string{"a"})
	suite.Require().NoError(err)
	suite.True(ok)
}

func (suite *RateCacheIntegrationTestSuite) TestGet_Expired() {
	ctx := context.Background()
	short := redis_adapter.NewRateCache(suite.rdb, 100*time.Millisecond)
	suite.Require().NoError(short.Put(ctx, "s-9", nil, []shipment.Rate{suite.rate("r-1", "1", "0")}))

	suite.Eventually(func() bool {
		_, ok, err := short.Get(ctx, "s-9", nil)
		return err == nil && !ok
	}, 3*time.Second, 50*time.Millisecond)
}

func (suite *RateCacheIntegrationTestSuite) rate(id, price, fee string) shipment.Rate {
	p, err := kernel.NewMoney(decimal.RequireFromString(price), "MXN")
	suite.Require().NoError(err)
	f, err := kernel.NewMoney(decimal.RequireFromString(fee), "MXN")
	suite.Require().NoError(err)
	return shipment.Rate{ID: id, Provider: "fedex", ServiceName: "FedEx Express", Price: p, InsuranceFee: f, EstimatedDays: 1}
}

func TestRateCacheIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RateCacheIntegrationTestSuite))
}
