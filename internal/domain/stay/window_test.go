//go:build unit

package stay_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"hotel-booking/internal/domain/stay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hcm = time.FixedZone("ICT", 7*60*60)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, hcm)
}

func at(y int, m time.Month, d, h, mi, s int) time.Time {
	return time.Date(y, m, d, h, mi, s, 0, hcm)
}

func TestHouseRules_Validate(t *testing.T) {
	rules := stay.DefaultHouseRules(hcm)

	tests := []struct {
		name       string
		checkIn    time.Time
		checkOut   time.Time
		now        time.Time
		wantErr    error
		wantNights int
	}{
		{
			name:       "翌日以降の通常予約OK",
			checkIn:    day(2025, 6, 10),
			checkOut:   day(2025, 6, 12),
			now:        at(2025, 6, 1, 9, 0, 0),
			wantNights: 2,
		},
		{
			name:     "チェックアウトがチェックインと同日NG",
			checkIn:  day(2025, 6, 10),
			checkOut: day(2025, 6, 10),
			now:      at(2025, 6, 1, 9, 0, 0),
			wantErr:  stay.ErrCheckOutNotAfterCheckIn,
		},
		{
			name:     "チェックアウトがチェックインより前NG",
			checkIn:  day(2025, 6, 10),
			checkOut: day(2025, 6, 9),
			now:      at(2025, 6, 1, 9, 0, 0),
			wantErr:  stay.ErrCheckOutNotAfterCheckIn,
		},
		{
			name:     "当日チェックインで14時前NG",
			checkIn:  day(2025, 6, 10),
			checkOut: day(2025, 6, 11),
			now:      at(2025, 6, 10, 13, 59, 59),
			wantErr:  stay.ErrCheckInTooEarly,
		},
		{
			name:       "当日チェックインで14時ちょうどOK",
			checkIn:    day(2025, 6, 10),
			checkOut:   day(2025, 6, 11),
			now:        at(2025, 6, 10, 14, 0, 0),
			wantNights: 1,
		},
		{
			name:     "当日チェックアウトで12時ちょうどNG",
			checkIn:  day(2025, 6, 8),
			checkOut: day(2025, 6, 10),
			now:      at(2025, 6, 10, 12, 0, 0),
			wantErr:  stay.ErrCheckOutTooLate,
		},
		{
			name:       "当日チェックアウトで12時前OK",
			checkIn:    day(2025, 6, 8),
			checkOut:   day(2025, 6, 10),
			now:        at(2025, 6, 10, 11, 59, 59),
			wantNights: 2,
		},
		{
			name:     "日付の前後関係が最優先で判定される",
			checkIn:  day(2025, 6, 10),
			checkOut: day(2025, 6, 10),
			now:      at(2025, 6, 10, 8, 0, 0),
			wantErr:  stay.ErrCheckOutNotAfterCheckIn,
		},
		{
			name:     "UTCのnowもホテルのタイムゾーンで判定される",
			checkIn:  day(2025, 6, 10),
			checkOut: day(2025, 6, 11),
			// 2025-06-10 06:30 UTC == 13:30 ICT
			now:     time.Date(2025, 6, 10, 6, 30, 0, 0, time.UTC),
			wantErr: stay.ErrCheckInTooEarly,
		},
		{
			name:       "端数のある時間は切り上げで泊数計算",
			checkIn:    at(2025, 6, 10, 14, 0, 0),
			checkOut:   at(2025, 6, 11, 15, 0, 0),
			now:        at(2025, 6, 1, 9, 0, 0),
			wantNights: 2,
		},
		{
			name:       "24時間未満でも最低1泊",
			checkIn:    at(2025, 6, 10, 14, 0, 0),
			checkOut:   at(2025, 6, 11, 12, 0, 0),
			now:        at(2025, 6, 1, 9, 0, 0),
			wantNights: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := rules.Validate(tt.checkIn, tt.checkOut, tt.now)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, w.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNights, w.Nights())
			assert.Equal(t, tt.checkIn, w.CheckIn())
			assert.Equal(t, tt.checkOut, w.CheckOut())
		})
	}
}

func TestHouseRules_ValidateNew(t *testing.T) {
	rules := stay.DefaultHouseRules(hcm)

	t.Run("過去日のチェックインNG", func(t *testing.T) {
		_, err := rules.ValidateNew(day(2025, 6, 9), day(2025, 6, 12), at(2025, 6, 10, 15, 0, 0))
		assert.ErrorIs(t, err, stay.ErrCheckInInPast)
	})

	t.Run("既存予約の更新では過去日のチェックインも許可", func(t *testing.T) {
		w, err := rules.Validate(day(2025, 6, 9), day(2025, 6, 12), at(2025, 6, 10, 15, 0, 0))
		require.NoError(t, err)
		assert.Equal(t, 3, w.Nights())
	})

	t.Run("当日14時以降の新規予約OK", func(t *testing.T) {
		w, err := rules.ValidateNew(day(2025, 6, 10), day(2025, 6, 11), at(2025, 6, 10, 18, 0, 0))
		require.NoError(t, err)
		assert.Equal(t, 1, w.Nights())
	})
}

func TestWindow_NightsAcrossDST(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	rules := stay.DefaultHouseRules(berlin)

	tests := []struct {
		name       string
		checkIn    string
		checkOut   string
		wantNights int
	}{
		{name: "夏時間終了の25時間の夜は1泊", checkIn: "2025-10-26", checkOut: "2025-10-27", wantNights: 1},
		{name: "夏時間開始の23時間の夜も1泊", checkIn: "2025-03-30", checkOut: "2025-03-31", wantNights: 1},
		{name: "切り替えをまたぐ3泊", checkIn: "2025-10-25", checkOut: "2025-10-28", wantNights: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkIn, err := rules.ParseDate(tt.checkIn)
			require.NoError(t, err)
			checkOut, err := rules.ParseDate(tt.checkOut)
			require.NoError(t, err)

			w, err := rules.Validate(checkIn, checkOut, time.Date(2025, 1, 1, 9, 0, 0, 0, berlin))
			require.NoError(t, err)
			assert.Equal(t, tt.wantNights, w.Nights())
		})
	}
}

func TestHouseRules_ParseDate(t *testing.T) {
	rules := stay.DefaultHouseRules(hcm)

	got, err := rules.ParseDate("2025-06-10")
	require.NoError(t, err)
	assert.True(t, got.Equal(day(2025, 6, 10)))

	_, err = rules.ParseDate("10/06/2025")
	assert.Error(t, err)
}

func TestNewHouseRules(t *testing.T) {
	_, err := stay.NewHouseRules(24, 12, hcm)
	assert.ErrorIs(t, err, stay.ErrInvalidHouseRules)

	_, err = stay.NewHouseRules(14, 12, nil)
	assert.ErrorIs(t, err, stay.ErrInvalidHouseRules)

	r, err := stay.NewHouseRules(15, 11, hcm)
	require.NoError(t, err)
	assert.Equal(t, 15, r.CheckInHour)
}
