package dashboard

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rpupo63/catalog-admin/errs"
)

// Fallback credentials used when no admin password is configured.
const (
	fallbackUsername = "admin"
	fallbackPassword = "root"
)

// Authenticator decides whether a login attempt may open a session. It
// returns errs.ErrInvalidCredentials on a mismatch.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) error
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, username, password string) error

func (f AuthenticatorFunc) Authenticate(ctx context.Context, username, password string) error {
	return f(ctx, username, password)
}

// StaticCredentials accepts one configured username and bcrypt hash.
type StaticCredentials struct {
	username string
	hash     []byte
}

// NewStaticCredentials builds the check from a precomputed hash, or else from
// a plaintext password. With neither it falls back to admin/root and warns.
func NewStaticCredentials(username, password, passwordHash string, logger zerolog.Logger) (*StaticCredentials, error) {
	if passwordHash != "" {
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, fmt.Errorf("invalid admin password hash: %w", err)
		}
		return &StaticCredentials{username: username, hash: []byte(passwordHash)}, nil
	}

	if password == "" {
		logger.Warn().Msg("no admin password configured, accepting the default admin credentials")
		username, password = fallbackUsername, fallbackPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing admin password: %w", err)
	}
	return &StaticCredentials{username: username, hash: hash}, nil
}

func (s *StaticCredentials) Authenticate(_ context.Context, username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.hash, []byte(password))
	if !userOK || passErr != nil {
		return errs.ErrInvalidCredentials
	}
	return nil
}
