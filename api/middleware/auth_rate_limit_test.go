package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type memoryRateLimiter struct {
	counts map[string]int64
}

func newMemoryRateLimiter() *memoryRateLimiter {
	return &memoryRateLimiter{counts: map[string]int64{}}
}

func (s *memoryRateLimiter) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	s.counts[key]++
	return s.counts[key], nil
}

func loginRequestFrom(ip, email string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"`+email+`"}`))
	req.RemoteAddr = ip + ":51000"
	return req
}

func TestAuthRateLimitBlocksIPOverLimit(t *testing.T) {
	store := newMemoryRateLimiter()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 2, 0)
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, loginRequestFrom("10.0.0.1", "a@b.com"))
		if resp.Code != http.StatusOK {
			t.Fatalf("attempt %d: expected 200 got %d", i+1, resp.Code)
		}
	}

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, loginRequestFrom("10.0.0.1", "a@b.com"))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d", resp.Code)
	}
}

func TestAuthRateLimitBlocksEmailAcrossIPs(t *testing.T) {
	store := newMemoryRateLimiter()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 2)
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ips := []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}
	codes := make([]int, 0, len(ips))
	for _, ip := range ips {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, loginRequestFrom(ip, "Target@Example.com"))
		codes = append(codes, resp.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("expected first two attempts allowed, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third attempt blocked, got %v", codes)
	}
}

func TestAuthRateLimitNormalizesEmailCase(t *testing.T) {
	store := newMemoryRateLimiter()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 1)
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, loginRequestFrom("10.0.0.1", "someone@example.com"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, loginRequestFrom("10.0.0.2", "SOMEONE@example.com"))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for same email in different case, got %d", resp.Code)
	}
}

func TestAuthRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	policy := NewAuthRateLimitPolicy("login", 0, 0, 0)
	handler := AuthRateLimit(policy, newMemoryRateLimiter(), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, loginRequestFrom("10.0.0.1", "a@b.com"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAuthRateLimitRestoresRequestBody(t *testing.T) {
	store := newMemoryRateLimiter()
	policy := NewAuthRateLimitPolicy("login", time.Minute, 0, 5)

	var seen string
	handler := AuthRateLimit(policy, store, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		seen = string(payload)
		w.WriteHeader(http.StatusOK)
	}))

	body := `{"email":"a@b.com","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.RemoteAddr = "10.0.0.1:51000"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != body {
		t.Fatalf("expected handler to see full body, got %q", seen)
	}
}
