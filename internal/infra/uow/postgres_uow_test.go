//go:build unit

package uow

import (
	"errors"
	"testing"
	"time"

	"hotel-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: pgErrCodeSerializationFailure}, want: true},
		{name: "deadlock", err: &pgconn.PgError{Code: pgErrCodeDeadlockDetected}, want: true},
		{name: "wrapped deadlock", err: errs.Wrap(&pgconn.PgError{Code: pgErrCodeDeadlockDetected}, "commit"), want: true},
		{name: "exclusion violation", err: &pgconn.PgError{Code: "23P01"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestShouldRetry(t *testing.T) {
	retryable := &pgconn.PgError{Code: pgErrCodeSerializationFailure}

	assert.True(t, shouldRetry(retryable, 0, maxRetries))
	assert.True(t, shouldRetry(retryable, maxRetries-1, maxRetries))
	assert.False(t, shouldRetry(retryable, maxRetries, maxRetries))
	assert.False(t, shouldRetry(errors.New("boom"), 0, maxRetries))
}

func TestCalculateBackoff(t *testing.T) {
	base := 100 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		want := time.Duration(1<<attempt) * base
		got := calculateBackoff(attempt, base)

		// jitter adds at most a fifth of the exponential wait
		assert.GreaterOrEqual(t, got, want)
		assert.Less(t, got, want+want/5+1)
	}
}
