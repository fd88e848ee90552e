package auth

import (
	"context"
	"log/slog"

	"github.com/permahub/api/internal/domain"
	jwtinfra "github.com/permahub/api/internal/infrastructure/jwt"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	// Authenticate validates email+password and mints a fresh token pair.
	// An unknown email and a wrong password both come back as
	// AuthenticationFailed so callers can't probe which accounts exist;
	// only the unverified case is distinguished.
	Authenticate(ctx context.Context, email, password string) (*domain.TokenPair, error)
	// ReAuthenticate exchanges a valid refresh token for a brand-new pair.
	// Both tokens rotate; the old refresh token is not blacklisted (there
	// is no revocation store).
	ReAuthenticate(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type tokenIssuer interface {
	Issue(subject string) (*domain.TokenPair, error)
	DecodeRefresh(token string) (*jwtinfra.Claims, error)
}

type service struct {
	repo   userStore
	issuer tokenIssuer
}

type ServiceDeps struct {
	UserRepo userStore
	Issuer   tokenIssuer
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.UserRepo, issuer: deps.Issuer}
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.E(domain.KindAuthenticationFailed, "Invalid email or password")
		}
		return nil, err
	}
	if !u.Verified {
		return nil, domain.E(domain.KindUnverified, "Please verify your email")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, domain.E(domain.KindAuthenticationFailed, "Invalid email or password")
	}
	return s.issuer.Issue(u.Email)
}

func (s *service) ReAuthenticate(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.issuer.DecodeRefresh(refreshToken)
	if err != nil {
		slog.Info("refresh token rejected", "reason", err)
		return nil, err
	}
	u, err := s.repo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.E(domain.KindIdentityNotFound, "Invalid email or password")
		}
		return nil, err
	}
	if !u.Verified {
		return nil, domain.E(domain.KindUnverified, "Please verify your email")
	}
	return s.issuer.Issue(u.Email)
}
