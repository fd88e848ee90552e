package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/permahub/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Authenticate(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func (m *mockAuthService) ReAuthenticate(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func TestAuthenticate_Created(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Authenticate", mock.Anything, "alice@example.com", "s3cret-pass").
		Return(&domain.TokenPair{
			AccessToken:  "access.jwt",
			RefreshToken: "refresh.jwt",
			ExpiredAt:    "2024-06-01T14:00:00Z",
		}, nil)
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/public/api/users/authenticate",
		strings.NewReader(`{"email":"alice@example.com","password":"s3cret-pass"}`))
	rec := httptest.NewRecorder()
	h.Authenticate(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Success domain.TokenPair `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "access.jwt", body.Success.AccessToken)
	assert.Equal(t, "refresh.jwt", body.Success.RefreshToken)
	assert.Equal(t, "2024-06-01T14:00:00Z", body.Success.ExpiredAt)
}

func TestAuthenticate_BadCredentials(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Authenticate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.E(domain.KindAuthenticationFailed, "Invalid email or password"))
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/public/api/users/authenticate",
		strings.NewReader(`{"email":"alice@example.com","password":"wrong-pass"}`))
	rec := httptest.NewRecorder()
	h.Authenticate(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	errData := decodeError(t, rec)
	assert.Equal(t, "AuthenticationFailed", errData.Type)
	assert.Equal(t, "Invalid email or password", errData.Message)
}

func TestAuthenticate_Unverified(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Authenticate", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, domain.E(domain.KindUnverified, "Please verify your email"))
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/public/api/users/authenticate",
		strings.NewReader(`{"email":"alice@example.com","password":"s3cret-pass"}`))
	rec := httptest.NewRecorder()
	h.Authenticate(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	errData := decodeError(t, rec)
	assert.Equal(t, "Unverified", errData.Type)
	assert.Equal(t, "Please verify your email", errData.Message)
}

func TestAuthenticate_MissingFields(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/public/api/users/authenticate",
		strings.NewReader(`{"email":"alice@example.com"}`))
	rec := httptest.NewRecorder()
	h.Authenticate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything, mock.Anything)
}

func TestReAuthenticate_Created(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("ReAuthenticate", mock.Anything, "refresh.jwt").
		Return(&domain.TokenPair{
			AccessToken:  "new-access.jwt",
			RefreshToken: "new-refresh.jwt",
			ExpiredAt:    "2024-06-01T15:00:00Z",
		}, nil)
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/public/api/users/re-authenticate",
		strings.NewReader(`{"refreshToken":"refresh.jwt"}`))
	rec := httptest.NewRecorder()
	h.ReAuthenticate(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Success domain.TokenPair `json:"success"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "new-access.jwt", body.Success.AccessToken)
	assert.Equal(t, "new-refresh.jwt", body.Success.RefreshToken)
}

func TestReAuthenticate_TokenFailuresReadUniformly(t *testing.T) {
	// Whatever the precise token failure, the client reads the same message.
	for _, kind := range []domain.Kind{
		domain.KindMalformedToken,
		domain.KindTokenExpired,
		domain.KindBadSignature,
	} {
		svc := new(mockAuthService)
		svc.On("ReAuthenticate", mock.Anything, mock.Anything).
			Return(nil, domain.Wrap(kind, "Invalid token", assert.AnError))
		h := NewAuthHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/public/api/users/re-authenticate",
			strings.NewReader(`{"refreshToken":"whatever"}`))
		rec := httptest.NewRecorder()
		h.ReAuthenticate(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "kind %s", kind)
		errData := decodeError(t, rec)
		assert.Equal(t, string(kind), errData.Type)
		assert.Equal(t, "Invalid token", errData.Message)
	}
}

func TestReAuthenticate_IdentityGoneReadsLikeBadCredentials(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("ReAuthenticate", mock.Anything, mock.Anything).
		Return(nil, domain.E(domain.KindIdentityNotFound, "Invalid email or password"))
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/public/api/users/re-authenticate",
		strings.NewReader(`{"refreshToken":"refresh.jwt"}`))
	rec := httptest.NewRecorder()
	h.ReAuthenticate(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	errData := decodeError(t, rec)
	assert.Equal(t, "IdentityNotFound", errData.Type)
	assert.Equal(t, "Invalid email or password", errData.Message)
}

func TestReAuthenticate_MissingToken(t *testing.T) {
	svc := new(mockAuthService)
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/public/api/users/re-authenticate",
		strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.ReAuthenticate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ReAuthenticate", mock.Anything, mock.Anything)
}
