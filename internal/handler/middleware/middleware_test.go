//go:build unit

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-booking/internal/domain/auth"
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/pkg/config"
	usecasemock "hotel-booking/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testLogConfig() config.LogConfig {
	return config.LogConfig{
		Level:          "debug",
		Format:         "json",
		TimeFormat:     "2006-01-02 15:04:05",
		TimeZone:       "Asia/Ho_Chi_Minh",
		TimeZoneOffset: 7 * 60 * 60,
	}
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	session := auth.NewSession(uuid.New(), user.RoleStaff)

	ctrl := gomock.NewController(t)
	validator := usecasemock.NewMockTokenValidator(ctrl)
	validator.EXPECT().ValidateToken("good").Return(session, nil).AnyTimes()
	validator.EXPECT().ValidateToken("bad").Return(auth.Session{}, errors.New("expired")).AnyTimes()
	m := NewAuthMiddleware(validator)

	r := gin.New()
	r.GET("/me", m.RequireAuth(), func(c *gin.Context) {
		fromCtx, ok := auth.SessionFromContext(c.Request.Context())
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		userID, _ := GetUserID(c)
		role, _ := GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"ctx_user": fromCtx.UserID(), "user_id": userID, "role": role})
	})

	tests := []struct {
		name   string
		header string
		cookie string
		status int
	}{
		{name: "bearer header", header: "Bearer good", status: http.StatusOK},
		{name: "access cookie", cookie: "good", status: http.StatusOK},
		{name: "cookie wins over header", header: "Bearer bad", cookie: "good", status: http.StatusOK},
		{name: "no token", status: http.StatusUnauthorized},
		{name: "not a bearer scheme", header: "Basic good", status: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer bad", status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusOK {
				return
			}
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, session.UserID().String(), body["ctx_user"])
			assert.Equal(t, session.UserID().String(), body["user_id"])
			assert.Equal(t, "staff", body["role"])
		})
	}
}

func TestRequireRoleAtLeast(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(nil)

	tests := []struct {
		name    string
		session *auth.Session
		status  int
	}{
		{name: "admin passes a staff gate", session: ptr(auth.NewSession(uuid.New(), user.RoleAdmin)), status: http.StatusOK},
		{name: "staff passes a staff gate", session: ptr(auth.NewSession(uuid.New(), user.RoleStaff)), status: http.StatusOK},
		{name: "customer is forbidden", session: ptr(auth.NewSession(uuid.New(), user.RoleCustomer)), status: http.StatusForbidden},
		{name: "missing session is a wiring bug", status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/ops", func(c *gin.Context) {
				if tt.session != nil {
					SetSession(c, *tt.session)
				}
			}, m.RequireRoleAtLeast(user.RoleStaff), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ops", nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("echoes the caller's request id and logs the session", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(testLogConfig(), &buf)
		session := auth.NewSession(uuid.New(), user.RoleCustomer)

		r := gin.New()
		r.Use(logger.LoggingMiddleware())
		r.GET("/x", func(c *gin.Context) {
			SetSession(c, session)
			c.Status(http.StatusNotFound)
		})

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Request-ID", "req-123")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
		lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
		require.Len(t, lines, 2)

		var completed map[string]any
		require.NoError(t, json.Unmarshal(lines[1], &completed))
		assert.Equal(t, "Request completed", completed["msg"])
		assert.Equal(t, "WARN", completed["level"])
		assert.Equal(t, "req-123", completed["request_id"])
		assert.Equal(t, session.UserID().String(), completed["user_id"])
		assert.Equal(t, "customer", completed["role"])
	})

	t.Run("generates an id when none is sent", func(t *testing.T) {
		logger := newLogger(testLogConfig(), &bytes.Buffer{})

		r := gin.New()
		r.Use(logger.LoggingMiddleware())
		r.GET("/x", func(c *gin.Context) {
			c.String(http.StatusOK, GetRequestID(c))
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

		id := rec.Header().Get("X-Request-ID")
		assert.Regexp(t, `^\d{14}-[0-9a-f]{8}$`, id)
		assert.Equal(t, id, rec.Body.String())
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("Debug").String())
	assert.Equal(t, "WARN", parseLevel("warn").String())
	assert.Equal(t, "INFO", parseLevel("verbose").String())
}

func TestLoadTimezone_FallsBackToFixedOffset(t *testing.T) {
	cfg := testLogConfig()
	cfg.TimeZone = "Nowhere/Imaginary"

	loc := loadTimezone(cfg)
	_, offset := time.Date(2025, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 7*60*60, offset)
}

func ptr[T any](v T) *T { return &v }
