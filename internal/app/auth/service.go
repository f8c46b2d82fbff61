// Package auth implements the login boundary: a fixed allow-list of shared
// credentials mapped to whatever display name the player picks, with an HS256
// session token issued on success.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// Service validates login attempts and signs session tokens.
type Service struct {
	passwords []string
	secret    string
	tokenTTL  time.Duration
}

// NewService constructs an auth service. Passwords are matched case-insensitively.
func NewService(passwords []string, secret string, tokenTTL time.Duration) *Service {
	return &Service{
		passwords: passwords,
		secret:    secret,
		tokenTTL:  tokenTTL,
	}
}

// Authenticate checks the shared credential and returns a signed session token for
// the username.
func (s *Service) Authenticate(username, password string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("auth service is nil")
	}
	if username == "" {
		return "", fmt.Errorf("username is required")
	}
	if s.secret == "" {
		return "", fmt.Errorf("auth config is incomplete")
	}

	if !s.allowed(password) {
		return "", fmt.Errorf("invalid player credential")
	}

	claims := jwt.MapClaims{
		"sub": username,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

func (s *Service) allowed(password string) bool {
	for _, p := range s.passwords {
		if strings.EqualFold(p, password) {
			return true
		}
	}
	return false
}
