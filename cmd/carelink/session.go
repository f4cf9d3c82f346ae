package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/HamdySalah/carelink/internal/model"
)

// ---- session store ----

type sessionFile struct {
	AccessToken string     `json:"access_token"`
	UserID      string     `json:"user_id"`
	Role        model.Role `json:"role"`
	ExpiresAt   time.Time  `json:"expires_at"`
}

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "carelink")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "carelink")
}

func sessionPath() string { return filepath.Join(cfgDir(), "session.json") }

// roleClaims carries the custom role claim the backend embeds in tokens.
type roleClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// saveSession persists the tokens with the role parsed from the JWT when the
// user payload lacks one. Claims are read unverified; the server is the one
// enforcing them.
func saveSession(tokens model.Tokens, user model.User) error {
	_ = os.MkdirAll(cfgDir(), 0o700)

	var claims roleClaims
	_, _ = jwt.ParseWithClaims(tokens.AccessToken, &claims, func(*jwt.Token) (any, error) { return nil, nil },
		jwt.WithoutClaimsValidation(),
	)
	exp := tokens.ExpiresAt
	if exp.IsZero() {
		exp = time.Now().Add(15 * time.Minute)
	}
	role := user.Role
	if role == "" && claims.Role != "" {
		role = model.Role(claims.Role)
	}

	f, err := os.Create(sessionPath())
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(sessionFile{
		AccessToken: tokens.AccessToken,
		UserID:      user.ID.String(),
		Role:        role,
		ExpiresAt:   exp,
	})
}

func loadSession() (*sessionFile, error) {
	b, err := os.ReadFile(sessionPath())
	if err != nil {
		return nil, errors.New("no session (login required)")
	}
	var sf sessionFile
	if err := json.Unmarshal(b, &sf); err != nil {
		return nil, err
	}
	if sf.AccessToken == "" || time.Now().After(sf.ExpiresAt) {
		return nil, errors.New("session expired (login required)")
	}
	return &sf, nil
}

func clearSession() { _ = os.Remove(sessionPath()) }

// loadToken returns the stored bearer token, or "" when not logged in so
// that anonymous calls still go through.
func loadToken() (string, error) {
	sf, err := loadSession()
	if err != nil {
		return "", nil
	}
	return sf.AccessToken, nil
}

// ---- role guard ----

// requireRole fails unless the stored session carries one of the roles.
func requireRole(roles ...model.Role) error {
	sf, err := loadSession()
	if err != nil {
		return err
	}
	for _, r := range roles {
		if sf.Role == r {
			return nil
		}
	}
	return fmt.Errorf("command requires role %v (you are %q)", roles, sf.Role)
}
