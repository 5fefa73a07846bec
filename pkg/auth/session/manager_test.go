package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/gocart/storefront/pkg/config"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) AdminSessionKey(jti string) string {
	return "admin:" + jti
}

func newTestManager(store *mockStore) *Manager {
	return &Manager{store: store, keyer: store, ttl: 24 * time.Hour}
}

func TestRegisterAndRevoke(t *testing.T) {
	store := newMockStore()
	manager := newTestManager(store)
	ctx := context.Background()

	if err := manager.Register(ctx, "jti-1", "admin-1"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if store.ttls["admin:jti-1"] != 24*time.Hour {
		t.Fatalf("expected 24h ttl, got %s", store.ttls["admin:jti-1"])
	}

	ok, err := manager.HasSession(ctx, "jti-1")
	if err != nil || !ok {
		t.Fatalf("expected live session, ok=%v err=%v", ok, err)
	}
	owner, err := manager.Owner(ctx, "jti-1")
	if err != nil || owner != "admin-1" {
		t.Fatalf("unexpected owner %q err=%v", owner, err)
	}

	if err := manager.Revoke(ctx, "jti-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	ok, err = manager.HasSession(ctx, "jti-1")
	if err != nil || ok {
		t.Fatalf("expected revoked session, ok=%v err=%v", ok, err)
	}
	if _, err := manager.Owner(ctx, "jti-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestHasSessionPropagatesStoreErrors(t *testing.T) {
	store := newMockStore()
	store.err = errors.New("connection refused")
	manager := newTestManager(store)

	if _, err := manager.HasSession(context.Background(), "jti"); err == nil {
		t.Fatal("expected store error to surface")
	}
}

func TestRegisterRequiresJTI(t *testing.T) {
	manager := newTestManager(newMockStore())
	if err := manager.Register(context.Background(), " ", "admin"); err == nil {
		t.Fatal("expected error for blank jti")
	}
	ok, err := manager.HasSession(context.Background(), "")
	if err != nil || ok {
		t.Fatalf("blank jti should simply be absent, ok=%v err=%v", ok, err)
	}
}

func TestNewManagerValidates(t *testing.T) {
	if _, err := NewManager(nil, config.AdminJWTConfig{TTL: time.Hour}); err == nil {
		t.Fatal("expected nil client error")
	}
}
