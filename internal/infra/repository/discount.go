package repository

import (
	"context"

	"hotel-booking/internal/infra"
	"hotel-booking/internal/infra/db"

	"github.com/google/uuid"
)

// The limit check and the increment happen in one statement, so concurrent
// bookings cannot push used_count past usage_limit.
const consumeDiscountUsageSQL = `
UPDATE discount_codes
SET used_count = used_count + 1, updated_at = now()
WHERE id = $1
  AND is_active
  AND (usage_limit IS NULL OR used_count < usage_limit)
`

type DiscountRepository struct {
	db db.DBTX
}

func NewDiscountRepository(db db.DBTX) *DiscountRepository {
	return &DiscountRepository{
		db: db,
	}
}

func (r *DiscountRepository) ConsumeUsage(ctx context.Context, discountID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, consumeDiscountUsageSQL, discountID)
	if err != nil {
		return infra.WrapRepoErr("failed to consume discount usage", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("discount usage limit reached", nil, infra.KindConflict)
	}
	return nil
}
