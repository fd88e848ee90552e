package jwtinfra

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/permahub/api/internal/domain"
)

// Clock supplies the current time. It is injected into codecs and the issuer
// so expiry behaviour is deterministic under test.
type Clock func() time.Time

// Claims is the decoded view of a token: the subject (user email) and the
// time window it is valid for.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec signs and parses compact HMAC tokens under a single secret and
// signing method. Access and refresh tokens each get their own Codec with a
// distinct secret, so a token encoded for one class can never validate under
// the other.
type Codec struct {
	secret []byte
	method jwt.SigningMethod
	now    Clock
}

func NewCodec(secret string, method jwt.SigningMethod, now Clock) *Codec {
	if now == nil {
		now = time.Now
	}
	return &Codec{secret: []byte(secret), method: method, now: now}
}

// Encode produces a signed token binding subject to the given validity
// window. Deterministic for identical inputs.
func (c *Codec) Encode(subject string, issuedAt, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	return jwt.NewWithClaims(c.method, claims).SignedString(c.secret)
}

// Decode parses and validates a token. Failures map onto the closed token
// error kinds: structural problems → MalformedToken, signature or
// signing-method mismatch → BadSignature, past expiry → TokenExpired. An
// expired token still returns its claims alongside the error so callers can
// log the subject; everything else fails closed with nil claims.
func (c *Codec) Decode(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, domain.Wrap(domain.KindBadSignature, "Invalid token", err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return claimsOf(parsed), domain.Wrap(domain.KindTokenExpired, "Invalid token", err)
		default:
			return nil, domain.Wrap(domain.KindMalformedToken, "Invalid token", err)
		}
	}
	claims := claimsOf(parsed)
	if claims == nil || claims.Subject == "" {
		return nil, domain.E(domain.KindMalformedToken, "Invalid token")
	}
	return claims, nil
}

func claimsOf(t *jwt.Token) *Claims {
	if t == nil {
		return nil
	}
	rc, ok := t.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil
	}
	c := &Claims{Subject: rc.Subject}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c
}
