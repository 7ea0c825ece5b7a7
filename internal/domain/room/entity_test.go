//go:build unit

package room_test

import (
	"strings"
	"testing"

	"hotel-booking/internal/domain/guest"
	"hotel-booking/internal/domain/pricing"
	"hotel-booking/internal/domain/room"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoomType(t *testing.T) {
	tests := []struct {
		name        string
		roomName    string
		price       int64
		capacity    int
		maxAdults   int
		maxChildren int
		wantErr     error
	}{
		{name: "正常", roomName: "  Deluxe  ", price: 900_000, capacity: 4, maxAdults: 3, maxChildren: 2},
		{name: "無料も可", roomName: "Staff", price: 0, capacity: 1, maxAdults: 1},
		{name: "名前が空", roomName: "   ", price: 900_000, capacity: 2, maxAdults: 2, wantErr: room.ErrEmptyName},
		{name: "名前が長すぎる", roomName: strings.Repeat("a", room.MaxNameLength+1), price: 1, capacity: 2, maxAdults: 2, wantErr: room.ErrNameTooLong},
		{name: "負の価格", roomName: "Standard", price: -1, capacity: 2, maxAdults: 2, wantErr: pricing.ErrNegativeAmount},
		{name: "定員0", roomName: "Standard", price: 1, capacity: 0, maxAdults: 1, wantErr: guest.ErrInvalidLimits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := room.NewRoomType(uuid.New(), tt.roomName, tt.price, tt.capacity, tt.maxAdults, tt.maxChildren)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.roomName), rt.Name())
			assert.Equal(t, pricing.VND(tt.price), rt.NightlyPrice())
			assert.Equal(t, tt.capacity, rt.Limits().Capacity)
		})
	}
}

func TestRoom_EnsureBookable(t *testing.T) {
	open, err := room.NewRoom(uuid.New(), "201", uuid.New(), uuid.New(), "available")
	require.NoError(t, err)
	assert.NoError(t, open.EnsureBookable())

	closed, err := room.NewRoom(uuid.New(), "202", uuid.New(), uuid.New(), "maintenance")
	require.NoError(t, err)
	assert.ErrorIs(t, closed.EnsureBookable(), room.ErrNotBookable)

	_, err = room.NewRoom(uuid.New(), "203", uuid.New(), uuid.New(), "demolished")
	assert.ErrorIs(t, err, room.ErrInvalidStatus)

	_, err = room.NewRoom(uuid.New(), " ", uuid.New(), uuid.New(), "available")
	assert.ErrorIs(t, err, room.ErrEmptyRoomNumber)
}

func TestNewService(t *testing.T) {
	s, err := room.NewService(uuid.New(), "Breakfast", 150_000, false)
	require.NoError(t, err)
	assert.False(t, s.IsActive())
	assert.Equal(t, pricing.VND(150_000), s.UnitPrice())

	_, err = room.NewService(uuid.New(), "Pickup", -5, true)
	assert.ErrorIs(t, err, pricing.ErrNegativeAmount)
}
