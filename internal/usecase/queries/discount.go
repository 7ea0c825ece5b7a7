package queries

import (
	"context"

	"hotel-booking/internal/domain/pricing"
	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/shared"
)

type DiscountQueries interface {
	// Hints lists codes usable right now, flagging those whose minimum order the amount meets.
	Hints(ctx context.Context, orderAmount int64) ([]*DiscountHintView, error)
}

type DiscountReadStore interface {
	ListActive(ctx context.Context) ([]*shared.DiscountSnapshot, error)
}

type discountQueriesImpl struct {
	store DiscountReadStore
	clock clock.Clock
}

func NewDiscountQueries(store DiscountReadStore, clock clock.Clock) DiscountQueries {
	return &discountQueriesImpl{
		store: store,
		clock: clock,
	}
}

func (q *discountQueriesImpl) Hints(ctx context.Context, orderAmount int64) ([]*DiscountHintView, error) {
	amount, err := pricing.NewVND(orderAmount)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	snaps, err := q.store.ListActive(ctx)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	now := q.clock.Now()
	hints := make([]*DiscountHintView, 0, len(snaps))
	for _, snap := range snaps {
		d, err := shared.DiscountFromSnapshot(snap)
		if err != nil {
			// A malformed row is skipped rather than failing the whole list.
			continue
		}
		if d.ValidateUsage(now) != nil {
			continue
		}

		hint := &DiscountHintView{
			Code:           d.Code().String(),
			Description:    d.Description(),
			Type:           d.Type().String(),
			Value:          d.Value(),
			MinOrderAmount: d.MinOrderAmount().Int64(),
			ValidUntil:     d.ValidUntil(),
			Eligible:       d.MeetsMinOrder(amount),
		}
		if !hint.Eligible {
			hint.Shortfall = d.MinOrderAmount().Int64() - amount.Int64()
		}
		hints = append(hints, hint)
	}
	return hints, nil
}
