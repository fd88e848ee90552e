package jwtinfra

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/permahub/api/internal/config"
	"github.com/permahub/api/internal/domain"
)

// Issuer mints access/refresh token pairs. The access codec signs HS512 under
// the access secret, the refresh codec HS384 under the refresh secret; both
// tokens of a pair are stamped from a single clock sample.
type Issuer struct {
	access     *Codec
	refresh    *Codec
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        Clock
}

// NewIssuer builds an issuer from the configured secrets and TTLs. A nil
// clock means wall-clock time.
func NewIssuer(cfg *config.Config, now Clock) *Issuer {
	if now == nil {
		now = time.Now
	}
	return &Issuer{
		access:     NewCodec(cfg.JWTAccessSecret, jwt.SigningMethodHS512, now),
		refresh:    NewCodec(cfg.JWTRefreshSecret, jwt.SigningMethodHS384, now),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		now:        now,
	}
}

// Issue returns a fresh token pair for the subject. ExpiredAt reports the
// access token's expiry as an RFC 3339 UTC instant.
func (i *Issuer) Issue(subject string) (*domain.TokenPair, error) {
	issuedAt := i.now().UTC()
	accessExpiry := issuedAt.Add(i.accessTTL)
	refreshExpiry := issuedAt.Add(i.refreshTTL)

	access, err := i.access.Encode(subject, issuedAt, accessExpiry)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := i.refresh.Encode(subject, issuedAt, refreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiredAt:    accessExpiry.Format(time.RFC3339),
	}, nil
}

// DecodeAccess validates a token against the access-class secret.
func (i *Issuer) DecodeAccess(token string) (*Claims, error) {
	return i.access.Decode(token)
}

// DecodeRefresh validates a token against the refresh-class secret.
func (i *Issuer) DecodeRefresh(token string) (*Claims, error) {
	return i.refresh.Decode(token)
}
