package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/practice-labs/loginsvc/internal/config"
	"github.com/practice-labs/loginsvc/internal/domain"
	"github.com/practice-labs/loginsvc/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	LoginFunc       func(creds *domain.Credentials) domain.LoginResult
	LogoutFunc      func(token string) domain.LoginResult
	VerifyTokenFunc func(token string) domain.VerifyResult
}

func (m *MockAuthService) Login(creds *domain.Credentials) domain.LoginResult {
	if m.LoginFunc != nil {
		return m.LoginFunc(creds)
	}
	return domain.LoginResult{Success: true, Message: service.MsgLoginSuccess}
}

func (m *MockAuthService) Logout(token string) domain.LoginResult {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(token)
	}
	return domain.LoginResult{Success: true, Message: service.MsgLogoutSuccess}
}

func (m *MockAuthService) VerifyToken(token string) domain.VerifyResult {
	if m.VerifyTokenFunc != nil {
		return m.VerifyTokenFunc(token)
	}
	return domain.VerifyResult{Valid: false, Message: "Invalid token"}
}

func newTestRouter(auth service.AuthService) http.Handler {
	h := New(auth, &config.Config{})
	r := chi.NewRouter()
	r.Post("/v1/auth/login", h.Login)
	r.Post("/v1/auth/logout", h.Logout)
	r.Get("/v1/auth/verify", h.Verify)
	return r
}

func successResult() domain.LoginResult {
	return domain.LoginResult{
		Success: true,
		Message: service.MsgLoginSuccess,
		Data: &domain.LoginData{
			User:      domain.PublicUser{Id: "user_001", Email: "user@example.com", Role: domain.RoleMember},
			Token:     "h.p.s",
			ExpiresIn: 86400,
		},
	}
}

func TestLoginHandler(t *testing.T) {
	body := []byte(`{"email": "user@example.com", "password": "SecurePass123!"}`)

	t.Run("success sets cookie and returns result", func(t *testing.T) {
		var got *domain.Credentials
		mock := &MockAuthService{LoginFunc: func(creds *domain.Credentials) domain.LoginResult {
			got = creds
			return successResult()
		}}
		router := newTestRouter(mock)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, got)
		assert.Equal(t, "user@example.com", got.Email)

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "accessToken", cookies[0].Name)
		assert.Equal(t, "h.p.s", cookies[0].Value)
		assert.Equal(t, 86400, cookies[0].MaxAge)
		assert.True(t, cookies[0].HttpOnly)

		var result domain.LoginResult
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
		assert.True(t, result.Success)
		assert.Equal(t, "h.p.s", result.Data.Token)
	})

	t.Run("status codes mirror result codes", func(t *testing.T) {
		cases := []struct {
			code   domain.ResultCode
			status int
		}{
			{domain.CodeInvalidInput, http.StatusBadRequest},
			{domain.CodeAuthFailed, http.StatusUnauthorized},
			{domain.CodeAccountLocked, http.StatusLocked},
			{domain.CodeSystemError, http.StatusInternalServerError},
		}
		for _, tc := range cases {
			mock := &MockAuthService{LoginFunc: func(creds *domain.Credentials) domain.LoginResult {
				return domain.LoginResult{Success: false, Code: tc.code}
			}}
			router := newTestRouter(mock)

			req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.status, rr.Code, string(tc.code))
			assert.Empty(t, rr.Result().Cookies(), string(tc.code))
		}
	})

	t.Run("invalid json becomes nil credentials", func(t *testing.T) {
		mock := &MockAuthService{LoginFunc: func(creds *domain.Credentials) domain.LoginResult {
			assert.Nil(t, creds)
			return domain.LoginResult{Success: false, Code: domain.CodeInvalidInput, Message: service.MsgInvalidInput}
		}}
		router := newTestRouter(mock)

		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader([]byte(`{invalid::`)))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLogoutHandler(t *testing.T) {
	router := newTestRouter(&MockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "abc"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "accessToken", cookies[0].Name)
	assert.Equal(t, "", cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)

	var result domain.LoginResult
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
	assert.True(t, result.Success)
	assert.Equal(t, service.MsgLogoutSuccess, result.Message)
}

func TestVerifyHandler(t *testing.T) {
	t.Run("valid bearer token", func(t *testing.T) {
		mock := &MockAuthService{VerifyTokenFunc: func(token string) domain.VerifyResult {
			assert.Equal(t, "h.p.s", token)
			return domain.VerifyResult{Valid: true, Data: &domain.TokenData{UserId: "user_001", Email: "user@example.com", Role: domain.RoleMember}}
		}}
		router := newTestRouter(mock)

		req := httptest.NewRequest(http.MethodGet, "/v1/auth/verify", nil)
		req.Header.Set("Authorization", "Bearer h.p.s")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var result domain.VerifyResult
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
		assert.True(t, result.Valid)
		assert.Equal(t, "user_001", result.Data.UserId)
	})

	t.Run("token from cookie", func(t *testing.T) {
		called := false
		mock := &MockAuthService{VerifyTokenFunc: func(token string) domain.VerifyResult {
			called = true
			assert.Equal(t, "cookie-token", token)
			return domain.VerifyResult{Valid: true, Data: &domain.TokenData{}}
		}}
		router := newTestRouter(mock)

		req := httptest.NewRequest(http.MethodGet, "/v1/auth/verify", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: "cookie-token"})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		router := newTestRouter(&MockAuthService{})

		req := httptest.NewRequest(http.MethodGet, "/v1/auth/verify", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		mock := &MockAuthService{VerifyTokenFunc: func(token string) domain.VerifyResult {
			return domain.VerifyResult{Valid: false, Message: "Token expired"}
		}}
		router := newTestRouter(mock)

		req := httptest.NewRequest(http.MethodGet, "/v1/auth/verify", nil)
		req.Header.Set("Authorization", "Bearer old.token.x")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		var result domain.VerifyResult
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&result))
		assert.False(t, result.Valid)
		assert.Equal(t, "Token expired", result.Message)
	})
}

func TestHealthHandler(t *testing.T) {
	h := New(&MockAuthService{}, &config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}
