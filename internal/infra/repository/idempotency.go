package repository

import (
	"context"
	"time"

	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const tryInsertIdempotencyKeySQL = `
INSERT INTO idempotency_keys (key, user_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (key, user_id) DO NOTHING
`

const completeIdempotencyKeySQL = `
UPDATE idempotency_keys
SET status = $3, response_body_hash = $4, result_booking_id = $5, updated_at = now()
WHERE key = $1 AND user_id = $2
`

// Only an expired, still-processing record with the same request may be taken over.
const claimExpiredIdempotencyKeySQL = `
UPDATE idempotency_keys
SET expires_at = $4, updated_at = now()
WHERE key = $1 AND user_id = $2 AND request_hash = $3
  AND status = $5 AND expires_at <= now()
`

const releaseIdempotencyKeySQL = `
DELETE FROM idempotency_keys WHERE key = $1 AND user_id = $2 AND status = $3
`

const deleteExpiredIdempotencyKeysSQL = `
DELETE FROM idempotency_keys WHERE expires_at <= now()
`

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(db db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{
		db: db,
	}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, tryInsertIdempotencyKeySQL,
		key, userID, endpoint, requestHash, shared.IdempotencyStatusProcessing, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, key, userID uuid.UUID, resultHash string, bookingID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, completeIdempotencyKeySQL,
		key, userID, shared.IdempotencyStatusCompleted, resultHash, bookingID)
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *IdempotencyRepository) ClaimExpired(ctx context.Context, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, claimExpiredIdempotencyKeySQL,
		key, userID, requestHash, expiresAt, shared.IdempotencyStatusProcessing)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to claim expired idempotency key", err)
	}
	return tag.RowsAffected(), nil
}

// Release drops an unfinished key so the client can retry with the same key.
func (r *IdempotencyRepository) Release(ctx context.Context, key, userID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, releaseIdempotencyKeySQL, key, userID, shared.IdempotencyStatusProcessing); err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteExpiredIdempotencyKeysSQL)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}
