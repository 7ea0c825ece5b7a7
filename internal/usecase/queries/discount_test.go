//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"hotel-booking/internal/pkg/clock"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/internal/usecase/shared"
	queriesmock "hotel-booking/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDiscountQueries_Hints(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	expired := now.Add(-time.Hour)
	limit := 5

	snaps := []*shared.DiscountSnapshot{
		{ID: uuid.New(), Code: "SMALL", Description: "5% off", Type: "percentage", Value: 5, MinOrderAmount: 0, IsActive: true},
		{ID: uuid.New(), Code: "BIG", Description: "1M off", Type: "fixed", Value: 1_000_000, MinOrderAmount: 5_000_000, IsActive: true},
		{ID: uuid.New(), Code: "OLD", Type: "fixed", Value: 100_000, ValidUntil: &expired, IsActive: true},
		{ID: uuid.New(), Code: "USEDUP", Type: "fixed", Value: 100_000, UsageLimit: &limit, UsedCount: 5, IsActive: true},
		{ID: uuid.New(), Code: "BROKEN", Type: "bogus", Value: 1, IsActive: true},
	}

	t.Run("利用可能なコードのみ返し不足額を計算する", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockDiscountReadStore(ctrl)
		store.EXPECT().ListActive(gomock.Any()).Return(snaps, nil)

		hints, err := queries.NewDiscountQueries(store, clock.NewMockClock(now)).Hints(context.Background(), 2_000_000)

		require.NoError(t, err)
		want := []*queries.DiscountHintView{
			{Code: "SMALL", Description: "5% off", Type: "percentage", Value: 5, MinOrderAmount: 0, Eligible: true},
			{Code: "BIG", Description: "1M off", Type: "fixed", Value: 1_000_000, MinOrderAmount: 5_000_000, Eligible: false, Shortfall: 3_000_000},
		}
		if diff := cmp.Diff(want, hints); diff != "" {
			t.Errorf("hints mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("負の金額は検証エラー", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockDiscountReadStore(ctrl)

		_, err := queries.NewDiscountQueries(store, clock.NewMockClock(now)).Hints(context.Background(), -1)

		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})

	t.Run("ストア障害", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockDiscountReadStore(ctrl)
		store.EXPECT().ListActive(gomock.Any()).Return(nil, assert.AnError)

		_, err := queries.NewDiscountQueries(store, clock.NewMockClock(now)).Hints(context.Background(), 0)

		assert.ErrorIs(t, err, errs.ErrDatabaseOperationFailed)
	})
}
