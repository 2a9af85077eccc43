package worker

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/foo"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// Different domain has its own budget
	if err := limiter.Wait(ctx, "http://other.com"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_WaitBlocksWhenExhausted(t *testing.T) {
	// 1 rps, burst 1: the second wait on the same domain cannot clear
	// within a short deadline
	limiter := NewLimiter(1, 1)

	if err := limiter.Wait(context.Background(), "http://example.com"); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := limiter.Wait(ctx, "http://example.com")
	if err == nil {
		t.Fatal("expected second wait to be blocked by the deadline")
	}

	// Another domain is unaffected
	if err := limiter.Wait(context.Background(), "http://other.com"); err != nil {
		t.Errorf("other domain should pass: %v", err)
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 1)

	start := time.Now()
	err := limiter.WaitWithDelay(context.Background(), "http://example.com", 50*time.Millisecond)
	if err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}

	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected delay >= 50ms, got %v", elapsed)
	}
}

func TestLimiter_WaitWithDelayCancelled(t *testing.T) {
	limiter := NewLimiter(100, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := limiter.WaitWithDelay(ctx, "http://example.com", time.Second)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline error during crawl delay, got %v", err)
	}
}

func TestLimiter_SetDomainRate(t *testing.T) {
	limiter := NewLimiter(10, 10)
	limiter.SetDomainRate("slow.com", 0.1, 1)

	if err := limiter.Wait(context.Background(), "http://slow.com"); err != nil {
		t.Fatalf("first request should pass: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := limiter.Wait(ctx, "http://slow.com"); err == nil {
		t.Error("second request should be held by the domain rate")
	}

	// Default-rate domains are unaffected
	if err := limiter.Wait(context.Background(), "http://fast.com"); err != nil {
		t.Errorf("other domain should pass: %v", err)
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if err := limiter.Wait(context.Background(), "http://bad url with spaces"); err == nil {
		t.Error("expected error for unparsable URL")
	}
}
