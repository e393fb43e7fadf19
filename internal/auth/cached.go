package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

const cacheKeyPrefix = "authcache:"

// CachedVerifier wraps a Verifier with a token cache so repeated requests with
// the same bearer token skip the identity service round trip. Cache failures
// are treated as misses; the inner verifier remains the source of truth.
type CachedVerifier struct {
	inner Verifier
	cache TokenCache
}

// NewCachedVerifier creates a caching wrapper around the given verifier.
func NewCachedVerifier(inner Verifier, cache TokenCache) *CachedVerifier {
	return &CachedVerifier{inner: inner, cache: cache}
}

var _ Verifier = (*CachedVerifier)(nil)

// Verify returns the cached identity for the token if present, otherwise
// verifies through the inner verifier and caches the result.
func (v *CachedVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	key := cacheKey(token)

	// Any cache failure is treated the same as a miss.
	if data, err := v.cache.Get(ctx, key); err == nil {
		var id Identity
		if unmarshalErr := json.Unmarshal([]byte(data), &id); unmarshalErr == nil && id.Subject != "" {
			return &id, nil
		}
	}

	id, err := v.inner.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	if data, marshalErr := json.Marshal(id); marshalErr == nil {
		// Best effort; a failed write only costs the next request a round trip.
		_ = v.cache.Set(ctx, key, string(data))
	}
	return id, nil
}

// cacheKey hashes the raw token so bearer credentials never land in Redis.
func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
