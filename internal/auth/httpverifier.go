package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"caterapi/internal/config"
)

// HTTPVerifier validates tokens by calling the identity service's userinfo
// endpoint with the caller's bearer token.
type HTTPVerifier struct {
	baseURL string
	client  *http.Client
}

// NewHTTPVerifier creates a verifier against the configured identity service.
func NewHTTPVerifier(cfg config.AuthConfig) (*HTTPVerifier, error) {
	if cfg.ServiceURL == "" {
		return nil, fmt.Errorf("auth service URL is required")
	}
	return &HTTPVerifier{
		baseURL: cfg.ServiceURL,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
	}, nil
}

var _ Verifier = (*HTTPVerifier)(nil)

// Verify calls GET {base}/v1/userinfo and decodes the identity claims.
func (v *HTTPVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/v1/userinfo", nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrInvalidToken
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, fmt.Errorf("decode userinfo response: %w", err)
	}
	if id.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &id, nil
}
