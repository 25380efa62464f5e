package service

import (
	"testing"
	"time"
)

func newTestLimiter(window time.Duration, maxAttempts int) (*LoginLimiter, *time.Time) {
	limiter := NewLoginLimiter(window, maxAttempts)
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }
	return limiter, &current
}

func TestLoginLimiterBlocksAfterMaxAttempts(t *testing.T) {
	limiter, _ := newTestLimiter(15*time.Minute, 5)

	for i := 0; i < 5; i++ {
		if !limiter.Allow("admin") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
		limiter.RecordFailure("admin")
	}

	if limiter.Allow("admin") {
		t.Fatal("sixth attempt should be blocked")
	}
	if limiter.RetryAfter("admin") != 15*time.Minute {
		t.Fatalf("retry after want 15m got %v", limiter.RetryAfter("admin"))
	}
}

func TestLoginLimiterWindowExpiryResetsCount(t *testing.T) {
	limiter, current := newTestLimiter(15*time.Minute, 5)

	for i := 0; i < 5; i++ {
		limiter.RecordFailure("admin")
	}
	if limiter.Allow("admin") {
		t.Fatal("should be blocked inside window")
	}

	*current = current.Add(15 * time.Minute)
	if !limiter.Allow("admin") {
		t.Fatal("should be allowed after window expiry")
	}

	limiter.RecordFailure("admin")
	if !limiter.Allow("admin") {
		t.Fatal("fresh window should allow further attempts")
	}
}

func TestLoginLimiterKeysAreIndependent(t *testing.T) {
	limiter, _ := newTestLimiter(15*time.Minute, 5)

	for i := 0; i < 5; i++ {
		limiter.RecordFailure("admin:10.0.0.1")
	}
	if limiter.Allow("admin:10.0.0.1") {
		t.Fatal("first key should be blocked")
	}
	if !limiter.Allow("admin:10.0.0.2") {
		t.Fatal("second key should be unaffected")
	}
}

func TestLoginLimiterResetOnSuccess(t *testing.T) {
	limiter, _ := newTestLimiter(15*time.Minute, 5)

	for i := 0; i < 4; i++ {
		limiter.RecordFailure("admin")
	}
	limiter.Reset("admin")

	for i := 0; i < 5; i++ {
		if !limiter.Allow("admin") {
			t.Fatalf("attempt %d after reset should be allowed", i+1)
		}
		limiter.RecordFailure("admin")
	}
	if limiter.Allow("admin") {
		t.Fatal("should be blocked again after five fresh failures")
	}
}
