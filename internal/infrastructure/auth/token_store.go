package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/roomie-hub/roomie-hub/internal/domain/shared"
	"github.com/roomie-hub/roomie-hub/internal/infrastructure/persistence/redis"
)

// ══════════════════════════════════════════════════════════════════════════════
// REDIS TOKEN STORE
// ══════════════════════════════════════════════════════════════════════════════

const (
	// tokenKeyPrefix namespaces token keys in Redis.
	tokenKeyPrefix = "token:"

	// DefaultTokenTTL is how long an issued token stays valid. Every
	// successful resolve refreshes the TTL (sliding expiration).
	DefaultTokenTTL = 24 * time.Hour
)

// RedisTokenStore issues opaque bearer tokens and resolves them back to
// profile ids. Tokens are random UUIDs stored in Redis with a TTL, so a
// restart of the API process does not invalidate sessions.
type RedisTokenStore struct {
	cache *redis.Cache
	ttl   time.Duration
}

// NewRedisTokenStore creates a token store on top of the shared Redis cache.
// A non-positive ttl falls back to DefaultTokenTTL.
func NewRedisTokenStore(cache *redis.Cache, ttl time.Duration) *RedisTokenStore {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &RedisTokenStore{cache: cache, ttl: ttl}
}

// IssueToken mints a fresh token for the given profile id.
func (s *RedisTokenStore) IssueToken(ctx context.Context, profileID string) (string, error) {
	if strings.TrimSpace(profileID) == "" {
		return "", shared.NewDomainError("auth", "IssueToken", shared.ErrInvalidInput, "profile id is required")
	}

	token := uuid.NewString()
	if err := s.cache.Set(ctx, tokenKeyPrefix+token, profileID, s.ttl); err != nil {
		return "", shared.WrapError("auth", "IssueToken", shared.ErrExternalService, "failed to store token", err)
	}
	return token, nil
}

// ResolveToken maps a bearer token back to its profile id. Unknown and
// expired tokens both report ErrUnauthorized.
func (s *RedisTokenStore) ResolveToken(ctx context.Context, token string) (string, error) {
	if strings.TrimSpace(token) == "" {
		return "", shared.NewDomainError("auth", "ResolveToken", shared.ErrUnauthorized, "token is required")
	}

	var profileID string
	err := s.cache.Get(ctx, tokenKeyPrefix+token, &profileID)
	if errors.Is(err, redis.ErrCacheMiss) {
		return "", shared.NewDomainError("auth", "ResolveToken", shared.ErrUnauthorized, "unknown or expired token")
	}
	if err != nil {
		return "", shared.WrapError("auth", "ResolveToken", shared.ErrExternalService, "failed to read token", err)
	}

	// Sliding expiration: active sessions stay alive. Failure to refresh
	// is not fatal, the token simply expires on its original schedule.
	_ = s.cache.Expire(ctx, tokenKeyPrefix+token, s.ttl)

	return profileID, nil
}

// RevokeToken deletes a token, ending the session immediately.
func (s *RedisTokenStore) RevokeToken(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	if err := s.cache.Delete(ctx, tokenKeyPrefix+token); err != nil {
		return shared.WrapError("auth", "RevokeToken", shared.ErrExternalService, "failed to delete token", err)
	}
	return nil
}
