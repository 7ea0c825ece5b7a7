package readstore

import (
	"context"

	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/pkg/pgconv"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Expired records are returned as-is; the caller decides whether to reclaim them.
const getIdempotencyKeySQL = `
SELECT key, user_id, status, request_hash, result_booking_id, expires_at
FROM idempotency_keys
WHERE key = $1 AND user_id = $2
`

type IdempotencyReadStore struct {
	db db.DBTX
}

func NewIdempotencyReadStore(db db.DBTX) *IdempotencyReadStore {
	return &IdempotencyReadStore{
		db: db,
	}
}

func (r *IdempotencyReadStore) Get(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		record   shared.IdempotencyRecord
		resultID pgtype.UUID
	)
	err := r.db.QueryRow(ctx, getIdempotencyKeySQL, key, userID).Scan(
		&record.Key,
		&record.UserID,
		&record.Status,
		&record.RequestHash,
		&resultID,
		&record.ExpiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err)
	}

	record.ResultBookingID = pgconv.UUIDPtrFromPgtype(resultID)
	return &record, nil
}
