package middleware

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestMemoryLimiterFixedWindow(t *testing.T) {
	limiter := NewMemoryLimiter()

	for i := 0; i < 3; i++ {
		if !limiter.Allow("login:1.2.3.4", 3, 50*time.Millisecond) {
			t.Fatalf("expected request %d to be allowed", i+1)
		}
	}
	if limiter.Allow("login:1.2.3.4", 3, 50*time.Millisecond) {
		t.Fatal("expected fourth request to be blocked")
	}
	// A different key has its own window.
	if !limiter.Allow("login:5.6.7.8", 3, 50*time.Millisecond) {
		t.Fatal("expected different key to be allowed")
	}

	time.Sleep(60 * time.Millisecond)
	if !limiter.Allow("login:1.2.3.4", 3, 50*time.Millisecond) {
		t.Fatal("expected window to reset")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:4321"
	if got := ClientIP(r); got != "10.0.0.1" {
		t.Fatalf("expected 10.0.0.1, got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.9")
	if got := ClientIP(r); got != "203.0.113.9" {
		t.Fatalf("expected forwarded address, got %q", got)
	}
}
