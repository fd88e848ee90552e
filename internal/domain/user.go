package domain

import "time"

// User is the credential-store document. The internal id, password hash and
// verification code never leave the server; everything else is the public
// profile.
type User struct {
	UserID           string    `json:"-" dynamodbav:"user_id"`
	Email            string    `json:"email" dynamodbav:"email"`
	PasswordHash     string    `json:"-" dynamodbav:"password_hash"`
	VerificationCode string    `json:"-" dynamodbav:"verification_code,omitempty"`
	Verified         bool      `json:"verified" dynamodbav:"verified"`
	Name             *string   `json:"name,omitempty" dynamodbav:"name"`
	Headline         *string   `json:"headline,omitempty" dynamodbav:"headline"`
	About            *string   `json:"about,omitempty" dynamodbav:"about"`
	Type             *string   `json:"type,omitempty" dynamodbav:"type"`
	Area             *Area     `json:"area,omitempty" dynamodbav:"area"`
	Contact          *Contact  `json:"contact,omitempty" dynamodbav:"contact"`
	CreatedAt        time.Time `json:"createdDate" dynamodbav:"created_at"`
	UpdatedAt        time.Time `json:"lastModifiedDate" dynamodbav:"updated_at"`
}

// Area locates a user: an ISO 3166-1 country code plus an optional
// ISO 3166-2 region code within that country.
type Area struct {
	Country string `json:"country" dynamodbav:"country"`
	Region  string `json:"region,omitempty" dynamodbav:"region"`
}

// Contact holds a private (account) and a public (displayed) contact address.
type Contact struct {
	Private string `json:"private" dynamodbav:"private"`
	Public  string `json:"public" dynamodbav:"public"`
}

// TokenPair is the response to a successful authentication: a short-lived
// access token, a long-lived refresh token, and the access token's expiry
// instant. Tokens are self-contained and never stored server side.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiredAt    string `json:"expiredAt"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthenticateRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ReAuthenticateRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type VerifyRequest struct {
	Code string `json:"code" validate:"required"`
}

// UpdateProfileRequest is a PATCH-style partial update: nil fields are left
// untouched, non-nil fields overwrite. Area and Contact replace wholesale.
type UpdateProfileRequest struct {
	Name     *string  `json:"name"`
	Headline *string  `json:"headline"`
	About    *string  `json:"about"`
	Type     *string  `json:"type"`
	Area     *Area    `json:"area"`
	Contact  *Contact `json:"contact"`
}
