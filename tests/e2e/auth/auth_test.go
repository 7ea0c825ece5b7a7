//go:build e2e

package auth_test

import (
	"net/http"
	"sync"
	"testing"

	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/handler/dto/request"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/tests/common/authtest"
	"hotel-booking/tests/common/dbtest"
	"hotel-booking/tests/common/httptest"
	"hotel-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL    = "/api/auth/login"
	registerURL = "/api/auth/register"
	logoutURL   = "/api/auth/logout"
	refreshURL  = "/api/auth/refresh"
	meURL       = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "guest@example.com", string(user.RoleCustomer))
	dbtest.CreateTestUser(s.T(), s.DB, "frontdesk@example.com", string(user.RoleStaff))
	dbtest.CreateTestUser(s.T(), s.DB, "manager@example.com", string(user.RoleAdmin))
	dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", string(user.RoleCustomer))
	dbtest.DeactivateUser(s.T(), s.DB, "inactive@example.com")
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
		expectedRole   string
	}{
		{name: "顧客のログイン", email: "guest@example.com", password: dbtest.TestPassword, expectedStatus: http.StatusOK, expectedRole: "customer"},
		{name: "スタッフのログイン", email: "frontdesk@example.com", password: dbtest.TestPassword, expectedStatus: http.StatusOK, expectedRole: "staff"},
		{name: "メールアドレスの大文字小文字を区別しない", email: "Guest@Example.com", password: dbtest.TestPassword, expectedStatus: http.StatusOK, expectedRole: "customer"},
		{name: "存在しないユーザー", email: "nobody@example.com", password: dbtest.TestPassword, expectedStatus: http.StatusUnauthorized},
		{name: "間違ったパスワード", email: "guest@example.com", password: "wrongpassword", expectedStatus: http.StatusUnauthorized},
		{name: "非アクティブユーザー", email: "inactive@example.com", password: dbtest.TestPassword, expectedStatus: http.StatusUnauthorized},
		{name: "空のメールアドレス", email: "", password: dbtest.TestPassword, expectedStatus: http.StatusBadRequest},
		{name: "空のパスワード", email: "guest@example.com", password: "", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
				request.LoginRequest{Email: tt.email, Password: tt.password}, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var res resdto.LoginResponse
			require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
			require.NotEmpty(t, res.AccessToken)
			require.Equal(t, tt.expectedRole, res.User.Role)
			require.NotNil(t, httptest.ExtractCookie(w, "access_token"))
			require.NotNil(t, httptest.ExtractCookie(w, "refresh_token"))
		})
	}
}

func (s *authSuite) TestRegister() {
	s.Run("新規登録すると顧客としてログイン状態になる", func() {
		t := s.T()
		body := request.RegisterRequest{
			Email:    "new.guest@example.com",
			Password: "password123",
			FullName: "Tran Thi B",
			Phone:    "0912345678",
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, body, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var res resdto.LoginResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, "customer", res.User.Role)
		require.Equal(t, "Tran Thi B", res.User.FullName)

		me := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, res.AccessToken)
		require.Equal(t, http.StatusOK, me.Code)

		// the new credentials work for a fresh login
		authtest.LoginUser(t, s.Router, "new.guest@example.com", "password123")
	})

	s.Run("登録済みのメールアドレスは409", func() {
		t := s.T()
		body := request.RegisterRequest{Email: "guest@example.com", Password: "password123", FullName: "Someone Else"}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, body, "")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Email already registered")
	})
}

func (s *authSuite) TestRefresh() {
	s.Run("リフレッシュトークンで新しいアクセストークンを取得", func() {
		t := s.T()
		login := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "guest@example.com", Password: dbtest.TestPassword}, "")
		require.Equal(t, http.StatusOK, login.Code)

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, refreshURL, nil,
			[]*http.Cookie{httptest.ExtractCookie(login, "refresh_token")}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res resdto.RefreshResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.NotEmpty(t, res.AccessToken)
	})

	s.Run("アクセストークンはリフレッシュに使えない", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleCustomer))
		access := s.jwt.GenerateToken(t, userID, user.RoleCustomer)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL,
			request.RefreshRequest{RefreshToken: access}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("無効化されたユーザーはリフレッシュできない", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleCustomer))
		refresh := s.jwt.GenerateRefreshToken(t, userID, user.RoleCustomer)
		dbtest.DeactivateUser(t, s.DB, "guest@example.com")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL,
			request.RefreshRequest{RefreshToken: refresh}, "")
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}

func (s *authSuite) TestLogoutAndMe() {
	s.Run("ログアウトでクッキーが失効する", func() {
		t := s.T()
		login := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "manager@example.com", Password: dbtest.TestPassword}, "")
		require.Equal(t, http.StatusOK, login.Code)

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, logoutURL, nil, httptest.ExtractCookies(login), "")
		require.Equal(t, http.StatusNoContent, w.Code)
		cleared := httptest.ExtractCookie(w, "access_token")
		require.NotNil(t, cleared)
		require.Empty(t, cleared.Value)
	})

	s.Run("Meはロールを返す", func() {
		t := s.T()
		token := authtest.LoginUser(t, s.Router, "frontdesk@example.com", dbtest.TestPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var res resdto.UserResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, "frontdesk@example.com", res.Email)
		require.Equal(t, "staff", res.Role)
	})

	s.Run("存在しないユーザーのトークンは404", func() {
		t := s.T()
		token := s.jwt.GenerateToken(t, uuid.New(), user.RoleCustomer)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("期限切れトークンは401", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleCustomer))
		token := s.jwt.CreateExpiredToken(t, userID, user.RoleCustomer)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("認証なしは401", func() {
		t := s.T()
		for _, ep := range []struct{ method, path string }{
			{http.MethodPost, logoutURL},
			{http.MethodGet, meURL},
		} {
			w := httptest.PerformRequest(t, s.Router, ep.method, ep.path, nil, "")
			require.Equal(t, http.StatusUnauthorized, w.Code, ep.path)
		}
	})
}

func (s *authSuite) TestConcurrentLogin() {
	s.Run("同時ログインでもそれぞれのトークンが有効", func() {
		t := s.T()

		var wg sync.WaitGroup
		tokens := make([]string, 4)
		for i := range tokens {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
					request.LoginRequest{Email: "guest@example.com", Password: dbtest.TestPassword}, "")
				if w.Code == http.StatusOK {
					tokens[i] = httptest.ExtractCookie(w, "access_token").Value
				}
			}()
		}
		wg.Wait()

		for _, token := range tokens {
			require.NotEmpty(t, token)
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
			require.Equal(t, http.StatusOK, w.Code)
		}
	})
}
