// Package auth guards the admin endpoints. There is one shared secret, read
// from configuration at request time; the login endpoint exchanges it for a
// short-lived HS256 token, and Authorize accepts either that token or the
// raw secret as the bearer value.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mannyandcelesti/rsvp-api/internal/config"
)

const TokenDuration = 24 * time.Hour

var (
	// ErrNotConfigured means the admin password is absent from the
	// environment; handlers surface it as a server configuration error.
	ErrNotConfigured = errors.New("admin password not configured")
	ErrUnauthorized  = errors.New("unauthorized")
)

type Service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// CheckCredentials validates an admin login. Usernames are compared after
// trimming and lower-casing; the password compare is constant-time.
func (s *Service) CheckCredentials(username, password string) error {
	if s.cfg.AdminPassword == "" {
		return ErrNotConfigured
	}

	normalized := strings.ToLower(strings.TrimSpace(username))
	known := false
	for _, u := range s.cfg.AdminUsernames {
		if normalized == u {
			known = true
			break
		}
	}

	match := subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.AdminPassword)) == 1
	if !known || !match {
		return ErrUnauthorized
	}
	return nil
}

// GenerateToken mints the session token returned by the login endpoint.
func (s *Service) GenerateToken(username string) (string, error) {
	if s.cfg.AdminPassword == "" {
		return "", ErrNotConfigured
	}
	claims := jwt.MapClaims{
		"sub": strings.ToLower(strings.TrimSpace(username)),
		"exp": time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.AdminPassword))
}

// Authorize checks an Authorization header value. It accepts a valid session
// token or the raw shared secret as the bearer value.
func (s *Service) Authorize(header string) error {
	if s.cfg.AdminPassword == "" {
		return ErrNotConfigured
	}

	bearer, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ErrUnauthorized
	}

	if subtle.ConstantTimeCompare([]byte(bearer), []byte(s.cfg.AdminPassword)) == 1 {
		return nil
	}

	token, err := jwt.Parse(bearer, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.AdminPassword), nil
	})
	if err != nil || !token.Valid {
		return ErrUnauthorized
	}
	return nil
}
