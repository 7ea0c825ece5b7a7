//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"hotel-booking/internal/infra"
	"hotel-booking/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTryInsert(t *testing.T) {
	key, userID := uuid.New(), uuid.New()
	expiresAt := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		tag          string
		dbErr        error
		wantInserted bool
		wantErr      bool
	}{
		{name: "新規キーは挿入される", tag: "INSERT 0 1", wantInserted: true},
		{name: "既存キーは挿入されない", tag: "INSERT 0 0", wantInserted: false},
		{name: "DB障害", dbErr: assert.AnError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := new(dbtest.MockDBTX)
			db.On("Exec", mock.Anything, tryInsertIdempotencyKeySQL, mock.Anything).Return(dbtest.Tag(tt.tag), tt.dbErr)

			inserted, err := NewIdempotencyRepository(db).TryInsert(context.Background(), key, userID, "POST /api/bookings", "hash", expiresAt)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, infra.KindDBFailure))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantInserted, inserted)
		})
	}
}

func TestUpdateStatusCompleted_MissingKey(t *testing.T) {
	db := new(dbtest.MockDBTX)
	db.On("Exec", mock.Anything, completeIdempotencyKeySQL, mock.Anything).Return(dbtest.Tag("UPDATE 0"), nil)

	err := NewIdempotencyRepository(db).UpdateStatusCompleted(context.Background(), uuid.New(), uuid.New(), "hash", uuid.New())

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}
