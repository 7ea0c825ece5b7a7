package readstore

import (
	"context"

	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"
	"hotel-booking/internal/pkg/pgconv"
	"hotel-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const discountColumns = `
SELECT id, code, description, discount_type, discount_value, min_order_amount, max_discount_amount,
       valid_from, valid_until, usage_limit, used_count, is_active
FROM discount_codes
`

const findDiscountByCodeSQL = discountColumns + `WHERE code = $1`

// Usage limits and validity are re-checked by the domain; this only trims the obvious misses.
const listActiveDiscountsSQL = discountColumns + `
WHERE is_active
  AND (valid_until IS NULL OR valid_until > now())
  AND (usage_limit IS NULL OR used_count < usage_limit)
ORDER BY min_order_amount, code
`

type discountRow struct {
	ID                uuid.UUID          `db:"id"`
	Code              string             `db:"code"`
	Description       string             `db:"description"`
	DiscountType      string             `db:"discount_type"`
	DiscountValue     int64              `db:"discount_value"`
	MinOrderAmount    int64              `db:"min_order_amount"`
	MaxDiscountAmount pgtype.Int8        `db:"max_discount_amount"`
	ValidFrom         pgtype.Timestamptz `db:"valid_from"`
	ValidUntil        pgtype.Timestamptz `db:"valid_until"`
	UsageLimit        pgtype.Int4        `db:"usage_limit"`
	UsedCount         int                `db:"used_count"`
	IsActive          bool               `db:"is_active"`
}

type DiscountReadStore struct {
	db db.DBTX
}

func NewDiscountReadStore(db db.DBTX) *DiscountReadStore {
	return &DiscountReadStore{db: db}
}

func (r *DiscountReadStore) FindByCode(ctx context.Context, code string) (*shared.DiscountSnapshot, error) {
	rows, err := r.db.Query(ctx, findDiscountByCodeSQL, code)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find discount code", err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[discountRow])
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("discount code not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan discount code", err)
	}
	return toDiscountSnapshot(row), nil
}

func (r *DiscountReadStore) ListActive(ctx context.Context) ([]*shared.DiscountSnapshot, error) {
	rows, err := r.db.Query(ctx, listActiveDiscountsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active discount codes", err)
	}

	discountRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[discountRow])
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan discount codes", err)
	}

	snaps := make([]*shared.DiscountSnapshot, len(discountRows))
	for i, row := range discountRows {
		snaps[i] = toDiscountSnapshot(row)
	}
	return snaps, nil
}

func toDiscountSnapshot(row discountRow) *shared.DiscountSnapshot {
	return &shared.DiscountSnapshot{
		ID:                row.ID,
		Code:              row.Code,
		Description:       row.Description,
		Type:              row.DiscountType,
		Value:             row.DiscountValue,
		MinOrderAmount:    row.MinOrderAmount,
		MaxDiscountAmount: pgconv.Int64PtrFromPgtype(row.MaxDiscountAmount),
		ValidFrom:         pgconv.TimePtrFromPgtype(row.ValidFrom),
		ValidUntil:        pgconv.TimePtrFromPgtype(row.ValidUntil),
		UsageLimit:        pgconv.IntPtrFromPgtype(row.UsageLimit),
		UsedCount:         row.UsedCount,
		IsActive:          row.IsActive,
	}
}
