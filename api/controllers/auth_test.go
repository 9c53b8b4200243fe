package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neokart/neokart-backend/internal/auth"
	"github.com/neokart/neokart-backend/pkg/enums"
	pkgerrors "github.com/neokart/neokart-backend/pkg/errors"
	"github.com/neokart/neokart-backend/pkg/logger"
)

type stubAuthService struct {
	payload *auth.PayloadDTO
	tokens  *auth.TokenPairDTO
	err     error

	registered *auth.RegisterInput
	loggedIn   *auth.LoginInput
	loggedOut  bool
}

func (s *stubAuthService) Register(ctx context.Context, input auth.RegisterInput) (*auth.PayloadDTO, error) {
	s.registered = &input
	return s.payload, s.err
}

func (s *stubAuthService) Login(ctx context.Context, input auth.LoginInput) (*auth.PayloadDTO, error) {
	s.loggedIn = &input
	return s.payload, s.err
}

func (s *stubAuthService) Refresh(ctx context.Context, accessToken, refreshToken string) (*auth.TokenPairDTO, error) {
	return s.tokens, s.err
}

func (s *stubAuthService) Logout(ctx context.Context, accessToken string) error {
	s.loggedOut = true
	return s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test"})
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func TestRegisterReturnsCreatedPayload(t *testing.T) {
	svc := &stubAuthService{payload: &auth.PayloadDTO{
		User: auth.UserDTO{
			ID:       uuid.New(),
			Email:    "shopper@example.com",
			FullName: "First Shopper",
			Role:     enums.RoleCustomer,
		},
		Tokens: auth.TokenPairDTO{AccessToken: "access", RefreshToken: "refresh"},
	}}

	resp := postJSON(t, Register(svc, testLogger()), "/api/v1/auth/register",
		`{"full_name":"First Shopper","email":"shopper@example.com","password":"hunter2hunter2"}`)

	require.Equal(t, http.StatusCreated, resp.Code)
	require.NotNil(t, svc.registered)
	assert.Equal(t, "shopper@example.com", svc.registered.Email)

	var envelope struct {
		Data auth.PayloadDTO `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "shopper@example.com", envelope.Data.User.Email)
	assert.Equal(t, "access", envelope.Data.Tokens.AccessToken)
}

func TestRegisterRejectsInvalidBody(t *testing.T) {
	svc := &stubAuthService{}

	resp := postJSON(t, Register(svc, testLogger()), "/api/v1/auth/register",
		`{"email":"not-an-email","password":"short"}`)

	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Nil(t, svc.registered, "service must not be called on invalid input")

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestLoginMapsUnauthorized(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")}

	resp := postJSON(t, Login(svc, testLogger()), "/api/v1/auth/login",
		`{"email":"shopper@example.com","password":"wrong-password"}`)

	require.Equal(t, http.StatusUnauthorized, resp.Code)

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "UNAUTHORIZED", envelope.Error.Code)
	assert.Equal(t, "invalid email or password", envelope.Error.Message)
}

func TestRefreshRequiresToken(t *testing.T) {
	svc := &stubAuthService{tokens: &auth.TokenPairDTO{AccessToken: "next", RefreshToken: "next-refresh"}}

	noAuth := postJSON(t, Refresh(svc, testLogger()), "/api/v1/auth/refresh", `{"refresh_token":"refresh"}`)
	require.Equal(t, http.StatusUnauthorized, noAuth.Code)

	bad := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader([]byte(`{}`)))
	bad.Header.Set("Authorization", "Bearer stale-access")
	missing := httptest.NewRecorder()
	Refresh(svc, testLogger()).ServeHTTP(missing, bad)
	require.Equal(t, http.StatusBadRequest, missing.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh",
		bytes.NewReader([]byte(`{"refresh_token":"refresh"}`)))
	req.Header.Set("Authorization", "Bearer stale-access")
	ok := httptest.NewRecorder()
	Refresh(svc, testLogger()).ServeHTTP(ok, req)
	require.Equal(t, http.StatusOK, ok.Code)
}

func TestLogoutAlwaysCallsService(t *testing.T) {
	svc := &stubAuthService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer some-access")
	resp := httptest.NewRecorder()
	Logout(svc, testLogger()).ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, svc.loggedOut)
}
