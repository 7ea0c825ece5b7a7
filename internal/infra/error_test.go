//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"hotel-booking/internal/infra"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyPgError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want infra.RepositoryErrorKind
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: infra.KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: infra.KindForeignKeyViolated},
		{name: "exclusion violation", err: &pgconn.PgError{Code: "23P01"}, want: infra.KindConflict},
		{name: "check violation is not a room conflict", err: &pgconn.PgError{Code: "23514"}, want: infra.KindDBFailure},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, want: infra.KindDBFailure},
		{name: "plain error", err: errors.New("boom"), want: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, infra.ClassifyPgError(tt.err))
		})
	}
}

func TestWrapRepoErr(t *testing.T) {
	t.Run("明示したKindが優先される", func(t *testing.T) {
		err := infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.Equal(t, "NOT_FOUND: booking not found", err.Error())
	})

	t.Run("PgErrorはコードから分類され元エラーを保持する", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23P01"}
		err := infra.WrapRepoErr("failed to create booking lines", pgErr)

		assert.True(t, infra.IsKind(err, infra.KindConflict))

		var target *pgconn.PgError
		assert.True(t, errors.As(err, &target))
	})

	t.Run("RepositoryError以外はどのKindにも該当しない", func(t *testing.T) {
		assert.False(t, infra.IsKind(errors.New("boom"), infra.KindDBFailure))
	})
}
