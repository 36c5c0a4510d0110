package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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

func (m *mockStore) AccessSessionKey(accessID string) string {
	return fmt.Sprintf("sess:access:%s", accessID)
}

func (m *mockStore) UserSessionKey(userID string) string {
	return fmt.Sprintf("sess:user:%s", userID)
}

func TestManagerGenerateAndRotate(t *testing.T) {
	store := newMockStore()
	manager := &Manager{
		store: store,
		keyer: store,
		ttl:   time.Hour,
	}

	ctx := context.Background()
	userID := "user-1"
	accessID := "access-123"
	token, err := manager.Generate(ctx, userID, accessID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if stored := store.data[store.AccessSessionKey(accessID)]; stored != token {
		t.Fatalf("expected stored token %q, got %q", token, stored)
	}
	if mapped := store.data[store.UserSessionKey(userID)]; mapped != accessID {
		t.Fatalf("expected user mapping %q, got %q", accessID, mapped)
	}

	if _, _, err := manager.Rotate(ctx, userID, accessID, "wrong"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected invalid refresh token error, got %v", err)
	}

	newAccessID, newToken, err := manager.Rotate(ctx, userID, accessID, token)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if _, exists := store.data[store.AccessSessionKey(accessID)]; exists {
		t.Fatalf("old access key left behind")
	}
	if stored := store.data[store.AccessSessionKey(newAccessID)]; stored != newToken {
		t.Fatalf("expected new token stored, got %q", stored)
	}
	if mapped := store.data[store.UserSessionKey(userID)]; mapped != newAccessID {
		t.Fatalf("user mapping not rotated, got %q", mapped)
	}
}

func TestManagerGenerateReplacesPriorSession(t *testing.T) {
	store := newMockStore()
	manager := &Manager{store: store, keyer: store, ttl: time.Hour}

	ctx := context.Background()
	if _, err := manager.Generate(ctx, "user-1", "first"); err != nil {
		t.Fatalf("generate first: %v", err)
	}
	if _, err := manager.Generate(ctx, "user-1", "second"); err != nil {
		t.Fatalf("generate second: %v", err)
	}

	if _, exists := store.data[store.AccessSessionKey("first")]; exists {
		t.Fatalf("first session should have been replaced")
	}
	if ok, err := manager.HasSession(ctx, "second"); err != nil || !ok {
		t.Fatalf("expected live second session, ok=%v err=%v", ok, err)
	}
}

func TestManagerRevokeUser(t *testing.T) {
	store := newMockStore()
	manager := &Manager{store: store, keyer: store, ttl: time.Hour}

	ctx := context.Background()
	if _, err := manager.Generate(ctx, "user-1", "access-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if err := manager.RevokeUser(ctx, "user-1"); err != nil {
		t.Fatalf("revoke user: %v", err)
	}
	if ok, err := manager.HasSession(ctx, "access-1"); err != nil || ok {
		t.Fatalf("session should be gone, ok=%v err=%v", ok, err)
	}

	// No session is not an error.
	if err := manager.RevokeUser(ctx, "user-2"); err != nil {
		t.Fatalf("revoke without session: %v", err)
	}
}
