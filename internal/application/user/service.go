package user

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/permahub/api/internal/domain"
	"github.com/permahub/api/internal/infrastructure/mail"
	"github.com/permahub/api/internal/pkg/geo"
	"github.com/permahub/api/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldVerified         = "verified"
	fieldVerificationCode = "verification_code"
	fieldName             = "name"
	fieldHeadline         = "headline"
	fieldAbout            = "about"
	fieldType             = "type"
	fieldArea             = "area"
	fieldContact          = "contact"
)

const (
	passwordMinLength         = 8
	verificationEmailSubject  = "PermaHub sign up verification"
	verificationEmailTemplate = "Thank you for joining PermaHub!<br>" +
		"Please click this <a href='%s/users/verify?code=%s' target='_blank'>link</a>" +
		" to verify your email."
)

// emailPattern is deliberately permissive: a bounded local part, then a
// domain with at least one dot segment.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+._%-]{1,256}@[A-Za-z0-9][A-Za-z0-9-]{0,64}(\.[A-Za-z0-9][A-Za-z0-9-]{0,25})+$`)

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Verify(ctx context.Context, code string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByVerificationCode(ctx context.Context, code string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}, removes ...string) error
}

type service struct {
	repo        userStore
	mailer      mail.Mailer
	frontendURL string
}

type ServiceDeps struct {
	UserRepo    userStore
	Mailer      mail.Mailer
	FrontendURL string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:        deps.UserRepo,
		mailer:      deps.Mailer,
		frontendURL: deps.FrontendURL,
	}
}

// Register persists a new unverified identity and kicks off the verification
// email. The email is fire-and-forget: the response never waits on delivery,
// and a delivery failure is logged, not surfaced.
func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, domain.Ef(domain.KindDuplicateAccount, "user with email `%s` already exist", req.Email)
	} else if domain.KindOf(err) != domain.KindNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:           id.New(),
		Email:            req.Email,
		PasswordHash:     string(hash),
		VerificationCode: uuid.NewString(),
		Verified:         false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.Put(ctx, u); err != nil {
		return nil, err
	}

	go s.sendVerificationEmail(u.Email, u.VerificationCode)

	return u, nil
}

// Verify consumes a verification code: the matching identity flips to
// verified and the code is removed, so it can only ever be used once.
func (s *service) Verify(ctx context.Context, code string) (*domain.User, error) {
	if _, err := uuid.Parse(code); err != nil {
		return nil, domain.E(domain.KindBadInput, "Code should be UUID")
	}
	u, err := s.repo.GetByVerificationCode(ctx, code)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.E(domain.KindNotFound, "User has not found")
		}
		return nil, err
	}
	updates := map[string]interface{}{fieldVerified: true}
	if err := s.repo.Update(ctx, u.UserID, updates, fieldVerificationCode); err != nil {
		return nil, err
	}
	u.Verified = true
	u.VerificationCode = ""
	u.UpdatedAt = time.Now().UTC()
	return u, nil
}

// UpdateProfile applies a PATCH-style merge: only fields present in the
// request are written, and area/contact replace wholesale. Validation runs
// before any store write, so an invalid country or region rejects the whole
// update with the stored profile untouched.
func (s *service) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*domain.User, error) {
	if req.Area != nil {
		if err := geo.ValidateArea(req.Area); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Headline != nil {
		updates[fieldHeadline] = *req.Headline
	}
	if req.About != nil {
		updates[fieldAbout] = *req.About
	}
	if req.Type != nil {
		updates[fieldType] = *req.Type
	}
	if req.Area != nil {
		updates[fieldArea] = *req.Area
	}
	if req.Contact != nil {
		updates[fieldContact] = *req.Contact
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, userID)
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) sendVerificationEmail(email, code string) {
	body := fmt.Sprintf(verificationEmailTemplate, s.frontendURL, code)
	if err := s.mailer.Send(email, verificationEmailSubject, body); err != nil {
		slog.Error("failed to send verification email", "email", email, "err", err)
	}
}

func validateRegistration(req domain.RegisterRequest) error {
	if !emailPattern.MatchString(req.Email) {
		return domain.E(domain.KindBadInput, "Email should be _@_._")
	}
	if len(req.Password) < passwordMinLength {
		return domain.Ef(domain.KindBadInput, "Password should be %d characters at least", passwordMinLength)
	}
	return nil
}
