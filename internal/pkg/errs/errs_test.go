//go:build unit

package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"hotel-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestMark(t *testing.T) {
	sentinel := errors.New("room is not available")
	cause := errs.New("exclusion constraint violated")

	t.Run("標準ライブラリの errors.Is でマークを判定できる", func(t *testing.T) {
		err := errs.Mark(cause, sentinel)

		assert.True(t, errors.Is(err, sentinel))
		assert.True(t, errors.Is(err, cause))
		assert.True(t, errs.Is(err, sentinel))
		assert.Equal(t, cause.Error(), err.Error())
	})

	t.Run("ラップ後もマークが残る", func(t *testing.T) {
		err := errs.Wrap(errs.Mark(cause, sentinel), "create booking")

		assert.ErrorIs(t, err, sentinel)
		assert.ErrorIs(t, fmt.Errorf("handler: %w", err), sentinel)
	})

	t.Run("二重マーク", func(t *testing.T) {
		other := errors.New("database operation failed")
		err := errs.Mark(errs.Mark(cause, sentinel), other)

		assert.ErrorIs(t, err, sentinel)
		assert.ErrorIs(t, err, other)
	})

	t.Run("nil はマーク自体を返す", func(t *testing.T) {
		assert.Same(t, sentinel, errs.Mark(nil, sentinel))
	})

	t.Run("無関係なエラーには一致しない", func(t *testing.T) {
		assert.False(t, errors.Is(errs.Mark(cause, sentinel), errors.New("other")))
	})
}

func TestExtractStackLines(t *testing.T) {
	lines := errs.ExtractStackLines(errs.Wrap(errs.New("boom"), "context"), 3)

	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "context")
}
