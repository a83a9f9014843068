// Package scheduler runs the export/clear job on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"quiz-admin-service/internal/domain"
)

// Exporter is the export/clear use case (app.ResultService).
type Exporter interface {
	ExportAndClear(ctx context.Context, format string) (domain.ExportFile, error)
}

// Scheduler manages the scheduled export job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	exporter  Exporter
	format    string
	timeout   time.Duration
	logger    *slog.Logger
}

func New(exporter Exporter, format string, logger *slog.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		exporter:  exporter,
		format:    format,
		timeout:   5 * time.Minute,
		logger:    logger,
	}
}

// Start schedules the export with a cron expression and runs the scheduler in the background.
func (s *Scheduler) Start(cronSpec string) error {
	if _, err := s.scheduler.Cron(cronSpec).Do(s.runExport); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.logger.Info("export job scheduled", "cron", cronSpec, "format", s.format)
	return nil
}

// Stop terminates the scheduler.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunOnce performs a single export. An empty store is not an error.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	file, err := s.exporter.ExportAndClear(ctx, s.format)
	if errors.Is(err, domain.ErrNothingToExport) {
		s.logger.Debug("scheduled export skipped, no results")
		return nil
	}
	if err != nil {
		return err
	}
	s.logger.Info("scheduled export completed", "file", file.Name, "rows", file.Rows)
	return nil
}

func (s *Scheduler) runExport() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("scheduled export failed", "error", err)
	}
}
