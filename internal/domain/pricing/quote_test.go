//go:build unit

package pricing_test

import (
	"testing"

	"hotel-booking/internal/domain/pricing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotal(t *testing.T) {
	deluxe, err := pricing.NewRoomLine(uuid.New(), uuid.New(), 900_000, 2)
	require.NoError(t, err)
	standard, err := pricing.NewRoomLine(uuid.New(), uuid.New(), 500_000, 2)
	require.NoError(t, err)
	breakfast, err := pricing.NewServiceLine(uuid.New(), 2, 100_000)
	require.NoError(t, err)

	t.Run("割引なし", func(t *testing.T) {
		got := pricing.ComputeTotal([]pricing.RoomLine{deluxe}, []pricing.ServiceLine{breakfast}, nil)

		want := pricing.Quote{
			RoomSubtotal:    1_800_000,
			ServiceSubtotal: 200_000,
			Subtotal:        2_000_000,
			Total:           2_000_000,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Quote mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("複数客室の合計", func(t *testing.T) {
		got := pricing.ComputeTotal([]pricing.RoomLine{deluxe, standard}, nil, nil)
		assert.Equal(t, pricing.VND(2_800_000), got.RoomSubtotal)
		assert.Equal(t, pricing.VND(0), got.ServiceSubtotal)
		assert.Equal(t, pricing.VND(2_800_000), got.Total)
	})

	t.Run("割引ありはFinalAmountが合計になる", func(t *testing.T) {
		discount := &pricing.DiscountResult{Code: "SUMMER10", DiscountAmount: 200_000, FinalAmount: 1_800_000}
		got := pricing.ComputeTotal([]pricing.RoomLine{deluxe}, []pricing.ServiceLine{breakfast}, discount)

		assert.Equal(t, pricing.VND(2_000_000), got.Subtotal)
		assert.Equal(t, pricing.VND(1_800_000), got.Total)
		assert.Equal(t, pricing.VND(200_000), got.DiscountAmount())

		discount.FinalAmount = 0
		assert.Equal(t, pricing.VND(1_800_000), got.Discount.FinalAmount, "quote keeps its own copy")
	})

	t.Run("同じ入力なら何度計算しても同じ結果で入力も変えない", func(t *testing.T) {
		rooms := []pricing.RoomLine{deluxe, standard}
		services := []pricing.ServiceLine{breakfast}
		discount := &pricing.DiscountResult{Code: "SUMMER10", DiscountAmount: 200_000, FinalAmount: 3_000_000}
		roomsBefore := append([]pricing.RoomLine(nil), rooms...)

		first := pricing.ComputeTotal(rooms, services, discount)
		second := pricing.ComputeTotal(rooms, services, discount)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Quote mismatch (-first +second):\n%s", diff)
		}
		if diff := cmp.Diff(roomsBefore, rooms); diff != "" {
			t.Errorf("rooms mutated (-before +after):\n%s", diff)
		}
	})

	t.Run("明細なしは0", func(t *testing.T) {
		got := pricing.ComputeTotal(nil, nil, nil)
		assert.Equal(t, pricing.VND(0), got.Total)
		assert.Nil(t, got.Discount)
	})
}

func TestLineValidation(t *testing.T) {
	_, err := pricing.NewRoomLine(uuid.New(), uuid.New(), 500_000, 0)
	assert.ErrorIs(t, err, pricing.ErrInvalidNights)

	_, err = pricing.NewRoomLine(uuid.New(), uuid.New(), -1, 1)
	assert.ErrorIs(t, err, pricing.ErrNegativeAmount)

	_, err = pricing.NewServiceLine(uuid.New(), 0, 100_000)
	assert.ErrorIs(t, err, pricing.ErrInvalidQuantity)

	_, err = pricing.NewVND(-5)
	assert.ErrorIs(t, err, pricing.ErrNegativeAmount)
}

func TestVND_String(t *testing.T) {
	assert.Equal(t, "0 VND", pricing.VND(0).String())
	assert.Equal(t, "999 VND", pricing.VND(999).String())
	assert.Equal(t, "1,800,000 VND", pricing.VND(1_800_000).String())
	assert.Equal(t, "-12,500 VND", pricing.VND(-12_500).String())
}
