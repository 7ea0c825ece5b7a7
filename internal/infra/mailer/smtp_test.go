//go:build unit

package mailer

import (
	"testing"

	"hotel-booking/internal/infra/notifier"
	"hotel-booking/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	t.Run("送信者と宛先を設定する", func(t *testing.T) {
		msg, err := buildMessage("Hotel Reservations <no-reply@hotel.local>", notifier.Message{
			To:      "guest@example.com",
			ToName:  "Nguyen Van A",
			Subject: "Your booking has been received",
			Body:    "Hello",
		})

		require.NoError(t, err)
		require.Len(t, msg.GetFromString(), 1)
		assert.Contains(t, msg.GetFromString()[0], "no-reply@hotel.local")
		require.Len(t, msg.GetToString(), 1)
		assert.Contains(t, msg.GetToString()[0], "guest@example.com")
	})

	t.Run("不正な宛先", func(t *testing.T) {
		_, err := buildMessage("no-reply@hotel.local", notifier.Message{To: "not an address"})

		assert.Error(t, err)
	})
}

func TestNewSMTPMailer(t *testing.T) {
	m, err := NewSMTPMailer(config.SMTPConfig{Host: "localhost", Port: 1025, From: "no-reply@hotel.local"})

	require.NoError(t, err)
	assert.Equal(t, "no-reply@hotel.local", m.from)
}
