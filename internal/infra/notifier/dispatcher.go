package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/config"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/shared"
)

// errPermanent marks failures a retry cannot fix.
var errPermanent = errs.New("permanent notification failure")

type Dispatcher struct {
	store    JobStore
	bookings BookingLookup
	mailer   Mailer
	clock    clock.Clock
	cfg      config.NotificationConfig
}

func NewDispatcher(store JobStore, bookings BookingLookup, mailer Mailer, clock clock.Clock, cfg config.NotificationConfig) *Dispatcher {
	return &Dispatcher{
		store:    store,
		bookings: bookings,
		mailer:   mailer,
		clock:    clock,
		cfg:      cfg,
	}
}

// DispatchDue sends one batch of due jobs and returns how many were sent.
func (d *Dispatcher) DispatchDue(ctx context.Context) (int, error) {
	jobs, err := d.store.ClaimDue(ctx, d.clock.Now(), d.cfg.BatchSize)
	if err != nil {
		return 0, errs.Wrap(err, "claim notification jobs")
	}

	sent := 0
	for _, job := range jobs {
		if err := d.deliver(ctx, job); err != nil {
			d.recordFailure(ctx, job, err)
			continue
		}
		if err := d.store.MarkSent(ctx, job.ID); err != nil {
			slog.Error("failed to mark notification sent", "job_id", job.ID, "error", err.Error())
			continue
		}
		sent++
	}
	return sent, nil
}

func (d *Dispatcher) deliver(ctx context.Context, job Job) error {
	if job.Kind != shared.NotificationKindEmail {
		return errs.Wrapf(errPermanent, "unsupported notification kind %q", job.Kind)
	}

	var payload shared.BookingNotificationPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return errs.Mark(errs.Wrap(err, "decode payload"), errPermanent)
	}

	view, err := d.bookings.GetByIDSystem(ctx, payload.BookingID)
	if err != nil {
		if errors.Is(err, errs.ErrBookingNotFound) {
			return errs.Mark(err, errPermanent)
		}
		return err
	}

	msg, err := render(job.Topic, view)
	if err != nil {
		return errs.Mark(err, errPermanent)
	}
	return d.mailer.Send(ctx, msg)
}

func (d *Dispatcher) recordFailure(ctx context.Context, job Job, cause error) {
	logger := slog.With("job_id", job.ID, "topic", job.Topic, "attempts", job.Attempts)

	if errors.Is(cause, errPermanent) || job.Attempts >= d.cfg.MaxAttempts {
		logger.Error("notification failed", "error", cause.Error())
		if err := d.store.MarkFailed(ctx, job.ID, cause.Error()); err != nil {
			logger.Error("failed to mark notification failed", "error", err.Error())
		}
		return
	}

	runAt := d.clock.Now().Add(d.backoff(job.Attempts))
	logger.Warn("notification will be retried", "run_at", runAt, "error", cause.Error())
	if err := d.store.MarkRetry(ctx, job.ID, runAt, cause.Error()); err != nil {
		logger.Error("failed to reschedule notification", "error", err.Error())
	}
}

// backoff doubles per attempt, capped at one hour.
func (d *Dispatcher) backoff(attempts int) time.Duration {
	delay := d.cfg.RetryBackoff
	for i := 1; i < attempts; i++ {
		delay *= 2
		if delay >= time.Hour {
			return time.Hour
		}
	}
	return delay
}
