package jwtinfra

import (
	"testing"
	"time"

	"github.com/permahub/api/internal/config"
	"github.com/permahub/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssuer(now *time.Time) *Issuer {
	cfg := &config.Config{
		JWTAccessSecret:  "access-secret",
		JWTRefreshSecret: "refresh-secret",
		AccessTokenTTL:   2 * time.Hour,
		RefreshTokenTTL:  24 * time.Hour,
	}
	return NewIssuer(cfg, func() time.Time { return *now })
}

func TestIssuer_Issue_PairShareOneInstant(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := testIssuer(&now)

	pair, err := issuer.Issue("alice@example.com")
	require.NoError(t, err)

	access, err := issuer.DecodeAccess(pair.AccessToken)
	require.NoError(t, err)
	refresh, err := issuer.DecodeRefresh(pair.RefreshToken)
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", access.Subject)
	assert.Equal(t, "alice@example.com", refresh.Subject)
	assert.True(t, access.IssuedAt.Equal(refresh.IssuedAt))
	assert.True(t, access.ExpiresAt.Equal(now.Add(2*time.Hour)))
	assert.True(t, refresh.ExpiresAt.Equal(now.Add(24*time.Hour)))
}

func TestIssuer_Issue_ExpiredAtFormat(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 30, 45, 0, time.UTC)
	issuer := testIssuer(&now)

	pair, err := issuer.Issue("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01T14:30:45Z", pair.ExpiredAt)
}

func TestIssuer_CrossClassDecodeFails(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := testIssuer(&now)

	pair, err := issuer.Issue("alice@example.com")
	require.NoError(t, err)

	// A refresh token must never validate as an access token, nor the
	// reverse: different secret, different signing method.
	_, err = issuer.DecodeAccess(pair.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, domain.KindBadSignature, domain.KindOf(err))

	_, err = issuer.DecodeRefresh(pair.AccessToken)
	require.Error(t, err)
	assert.Equal(t, domain.KindBadSignature, domain.KindOf(err))
}

func TestIssuer_AccessExpiresBeforeRefresh(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := testIssuer(&now)

	pair, err := issuer.Issue("alice@example.com")
	require.NoError(t, err)

	now = now.Add(2*time.Hour + time.Second)

	_, err = issuer.DecodeAccess(pair.AccessToken)
	require.Error(t, err)
	assert.Equal(t, domain.KindTokenExpired, domain.KindOf(err))

	// Refresh token still has 22 hours left.
	claims, err := issuer.DecodeRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
}

func TestIssuer_RefreshExpires(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := testIssuer(&now)

	pair, err := issuer.Issue("alice@example.com")
	require.NoError(t, err)

	now = now.Add(24*time.Hour + time.Second)

	_, err = issuer.DecodeRefresh(pair.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, domain.KindTokenExpired, domain.KindOf(err))
}
