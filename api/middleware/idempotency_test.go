package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/gocart/storefront/pkg/errors"
)

type memoryIdempotency struct {
	data map[string]string
}

func newMemoryIdempotency() *memoryIdempotency {
	return &memoryIdempotency{data: make(map[string]string)}
}

func (m *memoryIdempotency) Get(_ context.Context, key string) (string, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (m *memoryIdempotency) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.data[key]; ok {
		return false, nil
	}
	m.data[key] = fmt.Sprint(value)
	return true, nil
}

func (m *memoryIdempotency) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *memoryIdempotency) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryIdempotency) IdempotencyKey(scope, id string) string {
	return "idem:" + scope + ":" + id
}

// idempotentRouter mounts the middleware the way the API router does so the
// chi route pattern is populated.
func idempotentRouter(store *memoryIdempotency, handler http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Use(Idempotency(store, time.Hour, nil))
	r.Post("/api/orders", handler)
	r.Post("/api/addresses", handler)
	return r
}

func post(t *testing.T, h http.Handler, path, key, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if key != "" {
		req.Header.Set(idempotencyHeader, key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIdempotencyReplaysSameBody(t *testing.T) {
	store := newMemoryIdempotency()
	calls := 0
	h := idempotentRouter(store, func(w http.ResponseWriter, r *http.Request) {
		calls++
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = fmt.Fprintf(w, `{"call":%d,"echo":%q}`, calls, body)
	})

	first := post(t, h, "/api/orders", "key-1", `{"items":[1]}`)
	second := post(t, h, "/api/orders", "key-1", `{"items":[1]}`)

	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, 1, calls)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replay"))
	assert.Equal(t, "application/json", second.Header().Get("Content-Type"))
}

func TestIdempotencyRejectsDifferentBody(t *testing.T) {
	store := newMemoryIdempotency()
	h := idempotentRouter(store, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	require.Equal(t, http.StatusCreated, post(t, h, "/api/orders", "key-2", `{"a":1}`).Code)
	rec := post(t, h, "/api/orders", "key-2", `{"a":2}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, string(pkgerrors.CodeIdempotency), errorCode(t, rec))
}

func TestIdempotencyPassesThrough(t *testing.T) {
	tests := []struct {
		name string
		path string
		key  string
	}{
		{name: "no header", path: "/api/orders"},
		{name: "route without rule", path: "/api/addresses", key: "key-3"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemoryIdempotency()
			calls := 0
			h := idempotentRouter(store, func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(http.StatusCreated)
			})
			post(t, h, tc.path, tc.key, `{}`)
			post(t, h, tc.path, tc.key, `{}`)
			assert.Equal(t, 2, calls)
			assert.Empty(t, store.data)
		})
	}
}

func TestIdempotencyDoesNotStoreServerErrors(t *testing.T) {
	store := newMemoryIdempotency()
	calls := 0
	h := idempotentRouter(store, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})

	assert.Equal(t, http.StatusServiceUnavailable, post(t, h, "/api/orders", "key-4", `{}`).Code)
	assert.Equal(t, http.StatusCreated, post(t, h, "/api/orders", "key-4", `{}`).Code)
	assert.Equal(t, http.StatusCreated, post(t, h, "/api/orders", "key-4", `{}`).Code)
	assert.Equal(t, 2, calls)
}

func TestIdempotencyScopesByUser(t *testing.T) {
	store := newMemoryIdempotency()
	calls := 0
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			claims := mintClaims(req.Header.Get("X-Test-User"))
			next.ServeHTTP(w, req.WithContext(WithIdentity(req.Context(), claims)))
		})
	})
	r.Use(Idempotency(store, time.Hour, nil))
	r.Post("/api/orders", func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	})

	for _, user := range []string{"user_a", "user_b"} {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`))
		req.Header.Set(idempotencyHeader, "shared")
		req.Header.Set("X-Test-User", user)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	assert.Equal(t, 2, calls)
	assert.Len(t, store.data, 2)
}
