package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MKhiriev/go-shelf-sync/internal/logger"
)

// defaultSyncInterval is used when the configured interval is not positive.
const defaultSyncInterval = 5 * time.Minute

// syncRequester is the part of SyncCoordinator the job drives.
type syncRequester interface {
	RequestScheduledSync()
}

type clientSyncJob struct {
	requester syncRequester
	interval  time.Duration

	logger *logger.Logger
}

// NewClientSyncJob creates a job that requests a sync from requester every
// interval. The job is idle until Run is called.
func NewClientSyncJob(requester syncRequester, interval time.Duration, logger *logger.Logger) SyncJob {
	if interval <= 0 {
		interval = defaultSyncInterval
	}
	return &clientSyncJob{
		requester: requester,
		interval:  interval,
		logger:    logger.WithComponent("sync-job"),
	}
}

// Run implements SyncJob. It blocks until ctx is cancelled and waits for a
// running tick to return before exiting.
func (j *clientSyncJob) Run(ctx context.Context) error {
	c := cron.New(cron.WithLogger(cronLogger{logger: j.logger}))

	if _, err := c.AddFunc(j.schedule(), j.tick); err != nil {
		return fmt.Errorf("schedule sync job: %w", err)
	}

	j.logger.Info().Str("schedule", j.schedule()).Msg("sync job started")
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()

	j.logger.Info().Msg("sync job stopped")
	return nil
}

func (j *clientSyncJob) schedule() string {
	return "@every " + j.interval.String()
}

func (j *clientSyncJob) tick() {
	j.logger.Debug().Msg("periodic sync requested")
	j.requester.RequestScheduledSync()
}

// cronLogger routes cron's own messages to zerolog.
type cronLogger struct {
	logger *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Err(err).Fields(keysAndValues).Msg(msg)
}
