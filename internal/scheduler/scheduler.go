// Package scheduler triggers the periodic maintenance jobs.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Food-Rescue-Backend/domain"
	"Food-Rescue-Backend/pkg/maintenance"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = 10 * time.Minute

type (
	Config struct {
		ExpireSpec    string
		PurgeSpec     string
		ClearLogsSpec string
		Location      *time.Location
	}

	Scheduler struct {
		cron   *cron.Cron
		logger *zap.Logger
	}
)

func New(service maintenance.MaintenanceService, cfg Config, logger *zap.Logger) (*Scheduler, error) {
	location := cfg.Location
	if location == nil {
		location = time.UTC
	}
	cronLogger := zapLogger{logger: logger.Sugar()}

	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: logger,
	}

	jobs := []struct {
		name string
		spec string
		run  func(ctx context.Context) (int64, error)
	}{
		{maintenance.JobExpireStaleFood, cfg.ExpireSpec, service.ExpireStaleFood},
		{maintenance.JobPurgeExpiredFood, cfg.PurgeSpec, service.PurgeExpiredFood},
		{maintenance.JobClearLogs, cfg.ClearLogsSpec, service.ClearLogs},
	}
	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.spec, s.wrap(job.name, job.run)); err != nil {
			return nil, fmt.Errorf("schedule %s (%q): %w", job.name, job.spec, err)
		}
	}

	return s, nil
}

func (s *Scheduler) wrap(name string, run func(ctx context.Context) (int64, error)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if _, err := run(ctx); err != nil && !errors.Is(err, domain.ErrJobAlreadyRunning) {
			s.logger.Error("scheduled job failed", zap.String("job", name), zap.Error(err))
		}
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stopped before running jobs finished")
	}
}

// zapLogger adapts zap to cron.Logger.
type zapLogger struct {
	logger *zap.SugaredLogger
}

func (l zapLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l zapLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
