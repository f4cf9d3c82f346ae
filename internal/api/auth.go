package api

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/HamdySalah/carelink/internal/model"
)

// RegisterInput is the signup form. Nurse fields are required only when
// Role is RoleNurse.
type RegisterInput struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Phone    string     `json:"phone,omitempty"`
	Role     model.Role `json:"role"`

	// nurse-only
	LicenceNumber   string          `json:"licenceNumber,omitempty"`
	YearsExperience int             `json:"yearsExperience,omitempty"`
	Specialties     []string        `json:"specialties,omitempty"`
	HourlyRate      float64         `json:"hourlyRate,omitempty"`
	Location        *model.Location `json:"location,omitempty"`
}

// Register creates an account. Nurse accounts start in pending status
// until approved by an admin.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	var u model.User
	if err := c.post(ctx, "/auth/register", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// LoginResult is the authenticated session returned by Login.
type LoginResult struct {
	Tokens model.Tokens
	User   model.User
}

// Login authenticates with email and password. The backend has shipped the
// token under both "token" and "access_token"; accept either. Expiry is read
// from the JWT's exp claim when present.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	in := map[string]string{"email": email, "password": password}
	var raw struct {
		Token       string     `json:"token"`
		AccessToken string     `json:"access_token"`
		User        model.User `json:"user"`
	}
	if err := c.post(ctx, "/auth/login", in, &raw); err != nil {
		return nil, err
	}
	tok := raw.Token
	if tok == "" {
		tok = raw.AccessToken
	}
	return &LoginResult{Tokens: model.Tokens{AccessToken: tok, ExpiresAt: tokenExpiry(tok)}, User: raw.User}, nil
}

// tokenExpiry reads the exp claim unverified; the server is the one
// enforcing it. Zero when absent or unparseable.
func tokenExpiry(tok string) time.Time {
	var claims jwt.RegisteredClaims
	_, _ = jwt.ParseWithClaims(tok, &claims, func(*jwt.Token) (any, error) { return nil, nil },
		jwt.WithoutClaimsValidation(),
	)
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// Profile returns the authenticated user's account.
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var u model.User
	if err := c.get(ctx, "/users/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfileInput carries the editable profile fields; zero values are
// omitted and left unchanged.
type UpdateProfileInput struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// UpdateProfile patches the authenticated user's account.
func (c *Client) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*model.User, error) {
	var u model.User
	if err := c.patch(ctx, "/users/me", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
