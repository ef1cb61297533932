package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpadapter "shipping/internal/adapters/in/http"
	kafkaadapter "shipping/internal/adapters/out/kafka"
	"shipping/internal/adapters/out/memory"
	"shipping/internal/adapters/out/postgres"
	redisadapter "shipping/internal/adapters/out/redis"
	"shipping/internal/adapters/out/restapi"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/ports"
	"shipping/internal/jobs"

	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	pingTimeout       = 3 * time.Second
	boxRefreshTimeout = 30 * time.Second
)

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory

	sessions  *memory.SessionStore
	catalog   *memory.BoxCatalog
	rateCache ports.RateCache
	publisher ports.EventPublisher

	customers *restapi.CustomerClient
	boxes     *restapi.BoxClient
	orders    *restapi.OrderClient
	shipments *restapi.ShipmentClient
	rates     *restapi.RateClient

	closers []func() error
}

// NewCompositionRoot connects the configured backends. Backends left
// unconfigured are replaced by their in-process fallbacks.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	api, err := restapi.NewClient(cfg.APIBaseURL, cfg.APIToken, cfg.APITimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}

	c := &CompositionRoot{
		cfg:       cfg,
		logger:    logger,
		sessions:  memory.NewSessionStore(),
		catalog:   memory.NewBoxCatalog(),
		customers: restapi.NewCustomerClient(api),
		boxes:     restapi.NewBoxClient(api),
		orders:    restapi.NewOrderClient(api),
		shipments: restapi.NewShipmentClient(api),
		rates:     restapi.NewRateClient(api),
	}

	if err := c.connectJournal(); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	if err := c.connectRateCache(ctx); err != nil {
		return nil, errors.Join(err, c.Close())
	}
	c.connectPublisher()
	return c, nil
}

func (c *CompositionRoot) connectJournal() error {
	if !c.cfg.HasDatabase() {
		c.logger.Warn("No database configured, submission journal disabled")
		c.uowFactory = memory.NopUnitOfWorkFactory{}
		return nil
	}

	db, err := gorm.Open(gorm_postgres.Open(c.cfg.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	c.closers = append(c.closers, sqlDB.Close)

	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate journal: %w", err)
	}
	c.gormDB = db
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
	return nil
}

func (c *CompositionRoot) connectRateCache(ctx context.Context) error {
	if !c.cfg.HasRedis() {
		c.rateCache = memory.NewRateCache(c.cfg.RateCacheTTL, nil)
		return nil
	}

	rdb := redisadapter.NewClient(c.cfg.RedisAddr)
	c.closers = append(c.closers, rdb.Close)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	c.rateCache = redisadapter.NewRateCache(rdb, c.cfg.RateCacheTTL)
	return nil
}

func (c *CompositionRoot) connectPublisher() {
	if !c.cfg.HasKafka() {
		c.publisher = memory.NewLogPublisher(c.logger)
		return
	}
	p := kafkaadapter.NewEventPublisher(c.cfg.KafkaBrokers, c.cfg.KafkaTopic)
	c.closers = append(c.closers, p.Close)
	c.publisher = p
}

// Close releases the backend connections in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) journalRecorder() commands.JournalRecorder {
	var f commands.JournalUoWFactory = FuncJournalUoWFactory(func() commands.JournalUoW {
		return c.uowFactory.Create()
	})
	return commands.NewJournalRecorder(f, c.logger)
}

func (c *CompositionRoot) CreateStartSessionCommandHandler() commands.StartSessionCommandHandler {
	return commands.NewStartSessionCommandHandler(c.sessions, c.orders, c.shipments, c.logger)
}

func (c *CompositionRoot) CreateRefetchRatesCommandHandler() commands.RefetchRatesCommandHandler {
	return commands.NewRefetchRatesCommandHandler(c.sessions, c.rates, c.rateCache, commands.GoRunner, c.logger)
}

func (c *CompositionRoot) CreateAdvanceStepCommandHandler() commands.AdvanceStepCommandHandler {
	recorder := c.journalRecorder()
	return commands.NewAdvanceStepCommandHandler(
		c.sessions,
		commands.NewResolveContactsCommandHandler(c.customers, c.logger),
		commands.NewResolveBoxCommandHandler(c.boxes, c.catalog, c.logger),
		commands.NewSubmitOrderCommandHandler(c.orders, c.shipments, c.rateCache, c.publisher, recorder, c.logger),
		commands.NewSelectAndFulfillCommandHandler(
			c.shipments, c.boxes, c.catalog, c.publisher, recorder, c.cfg.InternalProvider, c.logger,
		),
		c.CreateRefetchRatesCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateSweepSessionsCommandHandler() commands.SweepSessionsCommandHandler {
	return commands.NewSweepSessionsCommandHandler(c.sessions, c.logger)
}

func (c *CompositionRoot) CreateRefreshBoxCatalogCommandHandler() commands.RefreshBoxCatalogCommandHandler {
	return commands.NewRefreshBoxCatalogCommandHandler(c.boxes, c.catalog, c.logger)
}

func (c *CompositionRoot) CreateGetOrphanedOrdersQueryHandler() queries.GetOrphanedOrdersQueryHandler {
	return queries.NewGetOrphanedOrdersQueryHandler(c.gormDB, time.Now)
}

func (c *CompositionRoot) CreateHTTPServer() (*httpadapter.Server, error) {
	return httpadapter.NewServer(httpadapter.Handlers{
		StartSession:      c.CreateStartSessionCommandHandler(),
		UpdateDraft:       commands.NewUpdateDraftCommandHandler(c.sessions),
		AdvanceStep:       c.CreateAdvanceStepCommandHandler(),
		GoBack:            commands.NewGoBackCommandHandler(c.sessions, c.logger),
		RefetchRates:      c.CreateRefetchRatesCommandHandler(),
		SelectRate:        commands.NewSelectRateCommandHandler(c.sessions, c.cfg.InternalProvider),
		AbandonSession:    commands.NewAbandonSessionCommandHandler(c.sessions, c.logger),
		GetSession:        queries.NewGetSessionQueryHandler(c.sessions),
		GetRates:          queries.NewGetRatesQueryHandler(c.sessions),
		ListBoxes:         queries.NewListBoxesQueryHandler(c.catalog),
		GetOrphanedOrders: c.CreateGetOrphanedOrdersQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateSweepSessionsCommandHandler(),
		c.CreateRefreshBoxCatalogCommandHandler(),
		jobs.Schedules{
			SessionSweep:       c.cfg.SessionSweepSchedule,
			SessionIdleTTL:     c.cfg.SessionIdleTTL,
			BoxCatalogRefresh:  c.cfg.BoxRefreshSchedule,
			BoxCatalogPageSize: c.cfg.BoxPageSize,
			BoxCatalogTimeout:  boxRefreshTimeout,
		},
		c.logger,
	)
}

type FuncJournalUoWFactory func() commands.JournalUoW

func (f FuncJournalUoWFactory) Create() commands.JournalUoW {
	return f()
}
