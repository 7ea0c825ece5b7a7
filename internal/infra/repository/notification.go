package repository

import (
	"context"
	"time"

	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/infra/notifier"
	"hotel-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const runningLease = 10 * time.Minute

const (
	jobStatusQueued  = "queued"
	jobStatusRunning = "running"
	jobStatusSent    = "sent"
	jobStatusFailed  = "failed"
)

const createNotificationJobSQL = `
INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
VALUES ($1, $2, $3, $4, $5)
`

// SKIP LOCKED lets several dispatchers poll the same table without taking the same job.
// Jobs left running past the lease by a crashed dispatcher are claimed again.
const claimDueNotificationJobsSQL = `
UPDATE notification_jobs
SET status = $3, attempts = attempts + 1, updated_at = now()
WHERE id IN (
    SELECT id FROM notification_jobs
    WHERE (status = $4 AND run_at <= $1)
       OR (status = $3 AND updated_at < $5)
    ORDER BY run_at
    LIMIT $2
    FOR UPDATE SKIP LOCKED
)
RETURNING id, kind, topic, payload, attempts
`

const updateNotificationJobSQL = `
UPDATE notification_jobs
SET status = $2, run_at = COALESCE($3, run_at), last_error = $4, updated_at = now()
WHERE id = $1
`

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(db db.DBTX) *NotificationRepository {
	return &NotificationRepository{
		db: db,
	}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	if _, err := r.db.Exec(ctx, createNotificationJobSQL, kind, topic, payload, runAt, jobStatusQueued); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}

func (r *NotificationRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]notifier.Job, error) {
	rows, err := r.db.Query(ctx, claimDueNotificationJobsSQL, now, limit, jobStatusRunning, jobStatusQueued, now.Add(-runningLease))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim notification jobs", err)
	}

	jobs, err := pgx.CollectRows(rows, pgx.RowToStructByPos[notifier.Job])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	return r.update(ctx, id, jobStatusSent, nil, nil)
}

func (r *NotificationRepository) MarkRetry(ctx context.Context, id uuid.UUID, runAt time.Time, lastErr string) error {
	return r.update(ctx, id, jobStatusQueued, &runAt, &lastErr)
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, lastErr string) error {
	return r.update(ctx, id, jobStatusFailed, nil, &lastErr)
}

func (r *NotificationRepository) update(ctx context.Context, id uuid.UUID, status string, runAt *time.Time, lastErr *string) error {
	nextRun := pgtype.Timestamptz{}
	if runAt != nil {
		nextRun = pgconv.TimeToPgtype(*runAt)
	}

	tag, err := r.db.Exec(ctx, updateNotificationJobSQL, id, status, nextRun, pgconv.StringPtrToPgtype(lastErr))
	if err != nil {
		return infra.WrapRepoErr("failed to update notification job status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("notification job not found", nil, infra.KindNotFound)
	}
	return nil
}
