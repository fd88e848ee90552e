package http

import (
	"context"

	"github.com/permahub/api/internal/domain"
	jwtinfra "github.com/permahub/api/internal/infrastructure/jwt"
	"github.com/permahub/api/internal/infrastructure/mail"
)

// UserRepository is the credential-store surface the router's services
// require: unique-key lookups plus upsert-style writes.
type UserRepository interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByVerificationCode(ctx context.Context, code string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}, removes ...string) error
}

// TokenIssuer mints token pairs and validates tokens per audience class.
type TokenIssuer interface {
	Issue(subject string) (*domain.TokenPair, error)
	DecodeAccess(token string) (*jwtinfra.Claims, error)
	DecodeRefresh(token string) (*jwtinfra.Claims, error)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo UserRepository
	Mailer   mail.Mailer
	Issuer   TokenIssuer
}
