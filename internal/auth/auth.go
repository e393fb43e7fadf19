package auth

// Package auth validates bearer tokens against the external identity service
// and maps them to local user profiles.

import (
	"context"
	"errors"
)

var (
	// ErrInvalidToken is returned when the identity service rejects the token.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUnavailable is returned when the identity service cannot be reached.
	ErrUnavailable = errors.New("identity service unavailable")
)

// Identity is the principal returned by the identity service for a token.
type Identity struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// Verifier validates a bearer token and returns the identity behind it.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// TokenCache stores serialized verification results keyed by token hash.
// Implementations are expected to enforce the TTL themselves.
type TokenCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// ErrCacheMiss is returned by TokenCache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")
