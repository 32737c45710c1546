// Package session tracks the refresh sessions behind issued access tokens.
// Each access token carries a jti; a Redis entry under that jti holds a
// digest of the refresh token that can renew it. Deleting the entry ends
// the session: the refresh token stops working immediately and the access
// token is rejected by the auth middleware on its next use.
package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/storefront-labs/storefront-backend/pkg/config"
	redisclient "github.com/storefront-labs/storefront-backend/pkg/redis"
	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

// ErrInvalidRefreshToken covers every refresh failure the caller should
// treat as "log in again": unknown jti, expired entry, token mismatch.
var ErrInvalidRefreshToken = errors.New("invalid refresh token")

const rawTokenBytes = 32

// sessionBackend is the slice of the Redis client the manager needs.
type sessionBackend interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	AccessSessionKey(accessID string) string
}

// AccessSessionChecker is the read-only view the auth middleware uses to
// confirm a bearer token's jti still maps to a live session.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

// Manager issues, rotates, and revokes refresh sessions. Only a digest of
// each refresh token is stored, so a dump of Redis cannot be replayed
// against the refresh endpoint.
type Manager struct {
	backend sessionBackend
	ttl     time.Duration
}

// NewManager wires the manager to Redis. The refresh TTL comes from the JWT
// config and must outlive the access token, otherwise refresh would always
// race session expiry.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("session manager needs a redis client")
	}
	refreshTTL := cfg.RefreshTokenTTL()
	accessTTL := time.Duration(cfg.ExpirationMinutes) * time.Minute
	switch {
	case refreshTTL <= 0:
		return nil, fmt.Errorf("refresh token ttl must be positive")
	case refreshTTL <= accessTTL:
		return nil, fmt.Errorf("refresh token ttl %s does not outlive access token ttl %s", refreshTTL, accessTTL)
	}
	return &Manager{backend: client, ttl: refreshTTL}, nil
}

// NewAccessID mints the identifier shared by a JWT's jti claim and its
// session key in Redis.
func NewAccessID() string {
	return uuid.NewString()
}

// Generate opens a session for accessID and returns the refresh token the
// client must present to renew it. The raw token is returned exactly once;
// Redis keeps only its digest.
func (m *Manager) Generate(ctx context.Context, accessID string) (string, error) {
	if strings.TrimSpace(accessID) == "" {
		return "", fmt.Errorf("access id is required")
	}
	raw, err := mintRefreshToken()
	if err != nil {
		return "", err
	}
	if err := m.backend.Set(ctx, m.backend.AccessSessionKey(accessID), digest(raw), m.ttl); err != nil {
		return "", fmt.Errorf("storing refresh session: %w", err)
	}
	return raw, nil
}

// Rotate exchanges a valid refresh token for a fresh access ID and refresh
// token, retiring the old session. Presenting a stale or wrong token yields
// ErrInvalidRefreshToken without disturbing the stored session.
func (m *Manager) Rotate(ctx context.Context, oldAccessID, presented string) (string, string, error) {
	if strings.TrimSpace(oldAccessID) == "" || strings.TrimSpace(presented) == "" {
		return "", "", ErrInvalidRefreshToken
	}

	oldKey := m.backend.AccessSessionKey(oldAccessID)
	storedDigest, err := m.backend.Get(ctx, oldKey)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", err
	}
	if subtle.ConstantTimeCompare([]byte(storedDigest), []byte(digest(presented))) != 1 {
		return "", "", ErrInvalidRefreshToken
	}

	nextID := NewAccessID()
	nextToken, err := mintRefreshToken()
	if err != nil {
		return "", "", err
	}
	if err := m.backend.Set(ctx, m.backend.AccessSessionKey(nextID), digest(nextToken), m.ttl); err != nil {
		return "", "", fmt.Errorf("storing rotated session: %w", err)
	}
	if err := m.backend.Del(ctx, oldKey); err != nil {
		return "", "", fmt.Errorf("retiring session: %w", err)
	}
	return nextID, nextToken, nil
}

// Revoke ends the session for accessID. Logout calls this; revoking an
// already-absent session is not an error.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if strings.TrimSpace(accessID) == "" {
		return fmt.Errorf("access id is required")
	}
	return m.backend.Del(ctx, m.backend.AccessSessionKey(accessID))
}

// HasSession reports whether accessID still has a live refresh session.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if strings.TrimSpace(accessID) == "" {
		return false, fmt.Errorf("access id is required")
	}
	_, err := m.backend.Get(ctx, m.backend.AccessSessionKey(accessID))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redislib.Nil):
		return false, nil
	default:
		return false, err
	}
}

func mintRefreshToken() (string, error) {
	buf := make([]byte, rawTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("minting refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
