//go:build unit

package booking_test

import (
	"testing"
	"time"

	"hotel-booking/internal/domain/booking"
	"hotel-booking/internal/domain/discount"
	"hotel-booking/internal/domain/guest"
	"hotel-booking/internal/domain/pricing"
	"hotel-booking/internal/domain/room"
	"hotel-booking/internal/domain/stay"
	"hotel-booking/internal/pkg/clock"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ict = time.FixedZone("ICT", 7*60*60)

type fixture struct {
	deluxeType *room.RoomType
	doubleType *room.RoomType
	room101    *room.Room
	room102    *room.Room
	room201    *room.Room
	breakfast  *room.Service
	pickup     *room.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	floor := uuid.New()

	deluxe, err := room.NewRoomType(uuid.New(), "Deluxe", 900_000, 4, 4, 2)
	require.NoError(t, err)
	double, err := room.NewRoomType(uuid.New(), "Double", 500_000, 2, 2, 1)
	require.NoError(t, err)

	r101, err := room.NewRoom(uuid.New(), "101", floor, deluxe.ID(), "available")
	require.NoError(t, err)
	r102, err := room.NewRoom(uuid.New(), "102", floor, double.ID(), "available")
	require.NoError(t, err)
	r201, err := room.NewRoom(uuid.New(), "201", floor, deluxe.ID(), "maintenance")
	require.NoError(t, err)

	breakfast, err := room.NewService(uuid.New(), "Breakfast", 100_000, true)
	require.NoError(t, err)
	pickup, err := room.NewService(uuid.New(), "Airport pickup", 350_000, false)
	require.NoError(t, err)

	return fixture{deluxeType: deluxe, doubleType: double, room101: r101, room102: r102, room201: r201, breakfast: breakfast, pickup: pickup}
}

func newFactory(now time.Time) *booking.Factory {
	return booking.NewFactory(clock.NewMockClock(now), stay.DefaultHouseRules(ict))
}

func date(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, ict)
}

func TestFactory_CreateBooking(t *testing.T) {
	fx := newFixture(t)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, ict)
	userID := uuid.New()

	t.Run("基本成功ケース", func(t *testing.T) {
		note, err := booking.NewNote("late arrival")
		require.NoError(t, err)

		b, err := newFactory(now).CreateBooking(
			userID, date(10), date(12),
			[]booking.RoomSelection{
				{Room: fx.room101, Type: fx.deluxeType, Guests: guest.Count{Adults: 2, Children: 1}},
				{Room: fx.room102, Type: fx.doubleType, Guests: guest.Count{Adults: 2, Babies: 1}},
			},
			[]booking.ServiceSelection{{Service: fx.breakfast, Quantity: 4}},
			nil, note,
		)
		require.NoError(t, err)

		want := pricing.Quote{
			RoomSubtotal:    2_800_000,
			ServiceSubtotal: 400_000,
			Subtotal:        3_200_000,
			Total:           3_200_000,
		}
		if diff := cmp.Diff(want, b.Quote()); diff != "" {
			t.Errorf("Quote mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, userID, b.UserID())
		assert.Len(t, b.Rooms(), 2)
		assert.Equal(t, 2, b.Rooms()[0].Line.Nights)
		assert.Nil(t, b.DiscountID())
		assert.Equal(t, "late arrival", b.Note().String())
		assert.Equal(t, now, b.CreatedAt())
	})

	t.Run("割引コード適用", func(t *testing.T) {
		d, err := discount.NewDiscount(discount.Attrs{
			ID: uuid.New(), Code: "SUMMER10", Type: "percentage", Value: 10, MinOrderAmount: 1_000_000, IsActive: true,
		})
		require.NoError(t, err)

		b, err := newFactory(now).CreateBooking(
			userID, date(10), date(12),
			[]booking.RoomSelection{{Room: fx.room101, Type: fx.deluxeType, Guests: guest.Count{Adults: 2}}},
			nil, d, booking.Note{},
		)
		require.NoError(t, err)

		assert.Equal(t, pricing.VND(1_800_000), b.Quote().Subtotal)
		assert.Equal(t, pricing.VND(180_000), b.Quote().DiscountAmount())
		assert.Equal(t, pricing.VND(1_620_000), b.Quote().Total)
		require.NotNil(t, b.DiscountID())
		assert.Equal(t, d.ID(), *b.DiscountID())
		require.NotNil(t, b.DiscountCode())
		assert.Equal(t, "SUMMER10", *b.DiscountCode())
	})

	t.Run("最低注文額未満の割引コードNG", func(t *testing.T) {
		d, err := discount.NewDiscount(discount.Attrs{
			ID: uuid.New(), Code: "BIGSPENDER", Type: "fixed", Value: 500_000, MinOrderAmount: 5_000_000, IsActive: true,
		})
		require.NoError(t, err)

		_, err = newFactory(now).CreateBooking(
			userID, date(10), date(12),
			[]booking.RoomSelection{{Room: fx.room101, Type: fx.deluxeType, Guests: guest.Count{Adults: 2}}},
			nil, d, booking.Note{},
		)
		assert.ErrorIs(t, err, discount.ErrBelowMinOrder)
	})

	errCases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		rooms    []booking.RoomSelection
		services []booking.ServiceSelection
		wantErr  error
	}{
		{
			name:     "客室なしNG",
			checkIn:  date(10),
			checkOut: date(12),
			wantErr:  booking.ErrNoRooms,
		},
		{
			name:     "チェックアウト日が不正NG",
			checkIn:  date(12),
			checkOut: date(12),
			rooms:    []booking.RoomSelection{{Room: fx.room101, Type: fx.deluxeType, Guests: guest.Count{Adults: 1}}},
			wantErr:  stay.ErrCheckOutNotAfterCheckIn,
		},
		{
			name:     "定員超過NG",
			checkIn:  date(10),
			checkOut: date(12),
			rooms:    []booking.RoomSelection{{Room: fx.room102, Type: fx.doubleType, Guests: guest.Count{Adults: 2, Children: 1}}},
			wantErr:  guest.ErrExceedsRoomCapacity,
		},
		{
			name:     "5名NG",
			checkIn:  date(10),
			checkOut: date(12),
			rooms:    []booking.RoomSelection{{Room: fx.room101, Type: fx.deluxeType, Guests: guest.Count{Adults: 4, Children: 1}}},
			wantErr:  guest.ErrExceedsHardCap,
		},
		{
			name:     "同じ客室を重複選択NG",
			checkIn:  date(10),
			checkOut: date(12),
			rooms: []booking.RoomSelection{
				{Room: fx.room101, Type: fx.deluxeType, Guests: guest.Count{Adults: 1}},
				{Room: fx.room101, Type: fx.deluxeType, Guests: guest.Count{Adults: 1}},
			},
			wantErr: booking.ErrDuplicateRoom,
		},
		{
			name:     "メンテナンス中の客室NG",
			checkIn:  date(10),
			checkOut: date(12),
			rooms:    []booking.RoomSelection{{Room: fx.room201, Type: fx.deluxeType, Guests: guest.Count{Adults: 1}}},
			wantErr:  room.ErrNotBookable,
		},
		{
			name:     "客室タイプ不一致NG",
			checkIn:  date(10),
			checkOut: date(12),
			rooms:    []booking.RoomSelection{{Room: fx.room101, Type: fx.doubleType, Guests: guest.Count{Adults: 1}}},
			wantErr:  booking.ErrRoomTypeMismatch,
		},
		{
			name:     "提供停止中のサービスNG",
			checkIn:  date(10),
			checkOut: date(12),
			rooms:    []booking.RoomSelection{{Room: fx.room101, Type: fx.deluxeType, Guests: guest.Count{Adults: 1}}},
			services: []booking.ServiceSelection{{Service: fx.pickup, Quantity: 1}},
			wantErr:  room.ErrServiceInactive,
		},
		{
			name:     "サービス数量0NG",
			checkIn:  date(10),
			checkOut: date(12),
			rooms:    []booking.RoomSelection{{Room: fx.room101, Type: fx.deluxeType, Guests: guest.Count{Adults: 1}}},
			services: []booking.ServiceSelection{{Service: fx.breakfast, Quantity: 0}},
			wantErr:  pricing.ErrInvalidQuantity,
		},
	}

	for _, tt := range errCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newFactory(now).CreateBooking(userID, tt.checkIn, tt.checkOut, tt.rooms, tt.services, nil, booking.Note{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDraft_Discount(t *testing.T) {
	fx := newFixture(t)
	window, err := stay.NewWindow(date(10), date(12))
	require.NoError(t, err)

	draft := booking.NewDraft(window)
	require.NoError(t, draft.AddRoom(fx.room101, fx.deluxeType, guest.Count{Adults: 2}))
	require.Equal(t, pricing.VND(1_800_000), draft.Subtotal())

	t.Run("適用と解除で小計に戻る", func(t *testing.T) {
		require.NoError(t, draft.ApplyDiscount(pricing.DiscountResult{Code: "A", DiscountAmount: 300_000, FinalAmount: 1_500_000}))
		assert.Equal(t, pricing.VND(1_500_000), draft.Quote().Total)

		draft.ClearDiscount()
		assert.Equal(t, pricing.VND(1_800_000), draft.Quote().Total)
		assert.Nil(t, draft.Quote().Discount)
	})

	t.Run("再適用は置き換え", func(t *testing.T) {
		require.NoError(t, draft.ApplyDiscount(pricing.DiscountResult{Code: "A", DiscountAmount: 300_000, FinalAmount: 1_500_000}))
		require.NoError(t, draft.ApplyDiscount(pricing.DiscountResult{Code: "B", DiscountAmount: 100_000, FinalAmount: 1_700_000}))
		assert.Equal(t, "B", draft.Quote().Discount.Code)
		assert.Equal(t, pricing.VND(1_700_000), draft.Quote().Total)
	})

	t.Run("小計と一致しない割引結果NG", func(t *testing.T) {
		err := draft.ApplyDiscount(pricing.DiscountResult{Code: "C", DiscountAmount: 100_000, FinalAmount: 100_000})
		assert.ErrorIs(t, err, booking.ErrStaleDiscount)
	})

	t.Run("明細変更で割引は外れる", func(t *testing.T) {
		require.NoError(t, draft.ApplyDiscount(pricing.DiscountResult{Code: "A", DiscountAmount: 300_000, FinalAmount: 1_500_000}))
		require.NoError(t, draft.AddService(fx.breakfast, 2))
		assert.Nil(t, draft.Discount())
		assert.Equal(t, pricing.VND(2_000_000), draft.Quote().Total)

		draft.RemoveRoom(fx.room101.ID())
		assert.ErrorIs(t, draft.Validate(), booking.ErrNoRooms)
	})
}

func TestBooking_Status(t *testing.T) {
	window, err := stay.NewWindow(date(10), date(12))
	require.NoError(t, err)
	created := date(1)

	t.Run("正常な遷移", func(t *testing.T) {
		b := booking.ReconstructBooking(uuid.New(), uuid.New(), window, booking.StatusPending, created, created)
		for _, next := range []booking.Status{booking.StatusConfirmed, booking.StatusCheckedIn, booking.StatusCheckedOut} {
			require.NoError(t, b.ChangeStatus(next, date(10)))
			assert.Equal(t, next, b.Status())
		}
	})

	t.Run("不正な遷移NG", func(t *testing.T) {
		tests := []struct {
			from booking.Status
			to   booking.Status
		}{
			{booking.StatusPending, booking.StatusCheckedIn},
			{booking.StatusCheckedIn, booking.StatusCancelled},
			{booking.StatusCheckedOut, booking.StatusPending},
			{booking.StatusCancelled, booking.StatusConfirmed},
		}
		for _, tt := range tests {
			b := booking.ReconstructBooking(uuid.New(), uuid.New(), window, tt.from, created, created)
			assert.ErrorIs(t, b.ChangeStatus(tt.to, date(5)), booking.ErrInvalidStatusTransition, "%s -> %s", tt.from, tt.to)
			assert.Equal(t, tt.from, b.Status())
		}
	})

	t.Run("ゲストはチェックイン日以降キャンセル不可", func(t *testing.T) {
		b := booking.ReconstructBooking(uuid.New(), uuid.New(), window, booking.StatusConfirmed, created, created)
		assert.ErrorIs(t, b.Cancel(time.Date(2025, 6, 10, 8, 0, 0, 0, ict), false), booking.ErrCancellationClosed)

		require.NoError(t, b.Cancel(time.Date(2025, 6, 10, 8, 0, 0, 0, ict), true))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("前日までならゲストもキャンセル可", func(t *testing.T) {
		b := booking.ReconstructBooking(uuid.New(), uuid.New(), window, booking.StatusPending, created, created)
		require.NoError(t, b.Cancel(time.Date(2025, 6, 9, 23, 0, 0, 0, ict), false))
		assert.False(t, b.Status().HoldsRoom())
	})

	t.Run("不明なステータスNG", func(t *testing.T) {
		_, err := booking.NewStatus("archived")
		assert.ErrorIs(t, err, booking.ErrInvalidStatus)
	})
}
