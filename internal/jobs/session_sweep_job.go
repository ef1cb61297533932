package jobs

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SessionSweeper drops finished and idle wizard sessions.
type SessionSweeper interface {
	Handle(ctx context.Context, command commands.SweepSessionsCommand) (int, error)
}

// SessionSweepJob removes sessions that completed or saw no activity for
// longer than the idle ttl.
type SessionSweepJob struct {
	handler  SessionSweeper
	ttl      time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSessionSweepJob creates the job. schedule is a cron expression with a
// seconds field, e.g. "0 * * * * *" for every minute.
func NewSessionSweepJob(handler SessionSweeper, ttl time.Duration, schedule string, logger *slog.Logger) *SessionSweepJob {
	return &SessionSweepJob{
		handler:  handler,
		ttl:      ttl,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "session_sweep_job"),
	}
}

func (j *SessionSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session sweep job started", "schedule", j.schedule, "ttl", j.ttl.String())
	return nil
}

// Run performs one sweep.
func (j *SessionSweepJob) Run(ctx context.Context) {
	cmd, err := commands.NewSweepSessionsCommand(j.ttl)
	if err != nil {
		j.logger.ErrorContext(ctx, "Session sweep job misconfigured", "error", err)
		return
	}

	if _, err := j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Session sweep job failed", "error", err)
	}
}

// Stop waits for a running sweep to finish.
func (j *SessionSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Session sweep job stopped")
}
