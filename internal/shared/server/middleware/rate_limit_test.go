package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsBurstThenBlocks(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 3}

	for i := 0; i < 3; i++ {
		if ok, _ := limiter.Allow("u1|UPLOAD", rule); !ok {
			t.Fatalf("request %d blocked within burst", i+1)
		}
	}
	ok, retryAfter := limiter.Allow("u1|UPLOAD", rule)
	if ok {
		t.Fatal("request allowed past burst")
	}
	if retryAfter <= 0 {
		t.Errorf("retryAfter = %v, want positive", retryAfter)
	}
}

func TestRateLimiterRefills(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("u1|UPLOAD", rule); !ok {
		t.Fatal("first request blocked")
	}
	if ok, _ := limiter.Allow("u1|UPLOAD", rule); ok {
		t.Fatal("second request allowed without refill")
	}

	now = now.Add(2 * time.Second)
	if ok, _ := limiter.Allow("u1|UPLOAD", rule); !ok {
		t.Fatal("request blocked after refill")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	now := time.Now()
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if ok, _ := limiter.Allow("u1|UPLOAD", rule); !ok {
		t.Fatal("u1 blocked")
	}
	if ok, _ := limiter.Allow("u2|UPLOAD", rule); !ok {
		t.Fatal("u2 blocked by u1's bucket")
	}
}

func TestRateLimiterZeroRuleAllows(t *testing.T) {
	limiter := NewRateLimiter(nil)
	if ok, _ := limiter.Allow("u1|X", RateLimitRule{}); !ok {
		t.Fatal("zero rule should not limit")
	}
}
