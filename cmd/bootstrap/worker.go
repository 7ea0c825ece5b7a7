package bootstrap

import (
	"context"

	"hotel-booking/internal/infra/mailer"
	"hotel-booking/internal/infra/notifier"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		fx.Annotate(
			NewMailer,
			fx.As(new(notifier.Mailer)),
		),
		NewDispatcher,
		NewScheduler,
	),
	fx.Invoke(func(*notifier.Scheduler) {}),
)

func NewMailer(cfg config.Config) (*mailer.SMTPMailer, error) {
	return mailer.NewSMTPMailer(cfg.SMTP)
}

func NewDispatcher(
	store notifier.JobStore,
	bookings notifier.BookingLookup,
	m notifier.Mailer,
	clk clock.Clock,
	cfg config.Config,
) *notifier.Dispatcher {
	return notifier.NewDispatcher(store, bookings, m, clk, cfg.Notification)
}

func NewScheduler(lc fx.Lifecycle, dispatcher *notifier.Dispatcher, cleaner notifier.IdempotencyCleaner, cfg config.Config) (*notifier.Scheduler, error) {
	scheduler, err := notifier.NewScheduler(dispatcher, cleaner, cfg.Notification)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			return scheduler.Shutdown()
		},
	})
	return scheduler, nil
}
