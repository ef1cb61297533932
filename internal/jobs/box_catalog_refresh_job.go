package jobs

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// BoxCatalogRefresher reloads the known boxes from the inventory service.
type BoxCatalogRefresher interface {
	Handle(ctx context.Context, command commands.RefreshBoxCatalogCommand) (int, error)
}

// BoxCatalogRefreshJob keeps the box catalog in line with the inventory
// service, picking up boxes created or restocked outside the wizard.
type BoxCatalogRefreshJob struct {
	handler  BoxCatalogRefresher
	pageSize int
	timeout  time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewBoxCatalogRefreshJob(
	handler BoxCatalogRefresher,
	pageSize int,
	timeout time.Duration,
	schedule string,
	logger *slog.Logger,
) *BoxCatalogRefreshJob {
	return &BoxCatalogRefreshJob{
		handler:  handler,
		pageSize: pageSize,
		timeout:  timeout,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "box_catalog_refresh_job"),
	}
}

func (j *BoxCatalogRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Box catalog refresh job started", "schedule", j.schedule)
	return nil
}

// Run performs one refresh. It reports whether the catalog was replaced;
// on failure the previous catalog stays in place.
func (j *BoxCatalogRefreshJob) Run(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	cmd, err := commands.NewRefreshBoxCatalogCommand(j.pageSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Box catalog refresh job misconfigured", "error", err)
		return false
	}

	n, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Box catalog refresh failed", "error", err)
		return false
	}
	j.logger.InfoContext(ctx, "Box catalog refreshed", "boxes", n)
	return true
}

func (j *BoxCatalogRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Box catalog refresh job stopped")
}
