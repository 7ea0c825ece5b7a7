package notifier

import (
	"context"
	"log/slog"
	"time"

	"hotel-booking/internal/pkg/config"
	"hotel-booking/internal/pkg/errs"

	"github.com/go-co-op/gocron/v2"
)

const idempotencyCleanupInterval = time.Hour

// Scheduler runs the notification dispatcher and idempotency key cleanup on gocron.
type Scheduler struct {
	cron       gocron.Scheduler
	dispatcher *Dispatcher
	cleaner    IdempotencyCleaner
	cfg        config.NotificationConfig

	ctx    context.Context
	cancel context.CancelFunc
}

func NewScheduler(dispatcher *Dispatcher, cleaner IdempotencyCleaner, cfg config.NotificationConfig) (*Scheduler, error) {
	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, errs.Wrap(err, "create scheduler")
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:       cron,
		dispatcher: dispatcher,
		cleaner:    cleaner,
		cfg:        cfg,
		ctx:        ctx,
		cancel:     cancel,
	}

	if cfg.Enabled {
		_, err = cron.NewJob(
			gocron.DurationJob(cfg.PollInterval),
			gocron.NewTask(s.dispatch),
			gocron.WithName("notification-dispatch"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			cancel()
			return nil, errs.Wrap(err, "register notification job")
		}
	}

	_, err = cron.NewJob(
		gocron.DurationJob(idempotencyCleanupInterval),
		gocron.NewTask(s.cleanup),
		gocron.WithName("idempotency-cleanup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		cancel()
		return nil, errs.Wrap(err, "register cleanup job")
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started", "jobs", len(s.cron.Jobs()), "notifications", s.cfg.Enabled)
}

// Shutdown cancels in-flight tasks and waits for them to return.
func (s *Scheduler) Shutdown() error {
	s.cancel()
	if err := s.cron.Shutdown(); err != nil {
		return errs.Wrap(err, "shutdown scheduler")
	}
	return nil
}

func (s *Scheduler) dispatch() {
	sent, err := s.dispatcher.DispatchDue(s.ctx)
	if err != nil {
		slog.Error("notification dispatch failed", "error", err.Error())
		return
	}
	if sent > 0 {
		slog.Info("notifications sent", "count", sent)
	}
}

func (s *Scheduler) cleanup() {
	deleted, err := s.cleaner.DeleteExpired(s.ctx)
	if err != nil {
		slog.Error("idempotency cleanup failed", "error", err.Error())
		return
	}
	if deleted > 0 {
		slog.Info("expired idempotency keys deleted", "count", deleted)
	}
}
