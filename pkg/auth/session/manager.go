package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/gocart/storefront/pkg/config"
	redisclient "github.com/gocart/storefront/pkg/redis"
)

var ErrSessionNotFound = errors.New("admin session not found")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	AdminSessionKey(jti string) string
}

// Manager tracks live admin tokens by jti so logout can revoke a cookie
// before its JWT expires.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// Checker is the read-only surface used by the admin guard.
type Checker interface {
	HasSession(ctx context.Context, jti string) (bool, error)
}

// NewManager builds a Redis-backed manager whose TTL matches the admin token.
func NewManager(client *redisclient.Client, cfg config.AdminJWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("admin session ttl must be positive")
	}
	return &Manager{store: client, keyer: client, ttl: cfg.TTL}, nil
}

// Register records jti as live for the session TTL. The stored value is the admin id.
func (m *Manager) Register(ctx context.Context, jti, adminID string) error {
	if strings.TrimSpace(jti) == "" {
		return fmt.Errorf("jti is required")
	}
	return m.store.Set(ctx, m.keyer.AdminSessionKey(jti), adminID, m.ttl)
}

// Owner returns the admin id a live session belongs to.
func (m *Manager) Owner(ctx context.Context, jti string) (string, error) {
	if strings.TrimSpace(jti) == "" {
		return "", ErrSessionNotFound
	}
	owner, err := m.store.Get(ctx, m.keyer.AdminSessionKey(jti))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return owner, nil
}

// HasSession reports whether jti is still live.
func (m *Manager) HasSession(ctx context.Context, jti string) (bool, error) {
	if _, err := m.Owner(ctx, jti); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Revoke drops the session; revoking an unknown jti is not an error.
func (m *Manager) Revoke(ctx context.Context, jti string) error {
	if strings.TrimSpace(jti) == "" {
		return fmt.Errorf("jti is required")
	}
	return m.store.Del(ctx, m.keyer.AdminSessionKey(jti))
}
