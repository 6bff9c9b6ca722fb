package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, cfg Config) (*Limiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, "pa", cfg), mr
}

func defaultTestConfig() Config {
	return Config{
		EnableIPThrottle:        true,
		EnableRefreshThrottle:   true,
		MaxLoginAttempts:        3,
		LoginCooldownDuration:   time.Minute,
		MaxRefreshAttempts:      5,
		RefreshCooldownDuration: time.Minute,
	}
}

func TestCheckLoginAllowsUnknownIdentifier(t *testing.T) {
	limiter, _ := newTestLimiter(t, defaultTestConfig())

	if err := limiter.CheckLogin(context.Background(), "fresh@example.com", "10.0.0.1"); err != nil {
		t.Fatalf("CheckLogin on unknown identifier: %v", err)
	}
}

func TestIncrementLoginBlocksAfterBudget(t *testing.T) {
	limiter, _ := newTestLimiter(t, defaultTestConfig())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := limiter.IncrementLogin(ctx, "user@example.com", "10.0.0.1"); err != nil {
			t.Fatalf("IncrementLogin attempt %d: %v", i+1, err)
		}
	}

	err := limiter.IncrementLogin(ctx, "user@example.com", "10.0.0.1")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("IncrementLogin over budget: got %v, want ErrRateLimited", err)
	}

	err = limiter.CheckLogin(ctx, "user@example.com", "10.0.0.1")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("CheckLogin over budget: got %v, want ErrRateLimited", err)
	}
}

func TestResetLoginClearsCounters(t *testing.T) {
	limiter, _ := newTestLimiter(t, defaultTestConfig())
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_ = limiter.IncrementLogin(ctx, "user@example.com", "10.0.0.1")
	}

	if err := limiter.ResetLogin(ctx, "user@example.com", "10.0.0.1"); err != nil {
		t.Fatalf("ResetLogin: %v", err)
	}

	if err := limiter.CheckLogin(ctx, "user@example.com", "10.0.0.1"); err != nil {
		t.Fatalf("CheckLogin after reset: %v", err)
	}
}

func TestLoginWindowExpires(t *testing.T) {
	limiter, mr := newTestLimiter(t, defaultTestConfig())
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_ = limiter.IncrementLogin(ctx, "user@example.com", "")
	}

	if err := limiter.CheckLogin(ctx, "user@example.com", ""); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("CheckLogin in window: got %v, want ErrRateLimited", err)
	}

	mr.FastForward(2 * time.Minute)

	if err := limiter.CheckLogin(ctx, "user@example.com", ""); err != nil {
		t.Fatalf("CheckLogin after window expiry: %v", err)
	}
}

func TestIPThrottleDisabledIgnoresIP(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.EnableIPThrottle = false
	limiter, mr := newTestLimiter(t, cfg)
	ctx := context.Background()

	if err := limiter.IncrementLogin(ctx, "user@example.com", "10.0.0.1"); err != nil {
		t.Fatalf("IncrementLogin: %v", err)
	}

	if mr.Exists("pa:rl:login:ip:10.0.0.1") {
		t.Fatal("IP counter written while IP throttle disabled")
	}
}

func TestCheckRefreshBlocksAfterBudget(t *testing.T) {
	limiter, _ := newTestLimiter(t, defaultTestConfig())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := limiter.CheckRefresh(ctx, "42"); err != nil {
			t.Fatalf("CheckRefresh attempt %d: %v", i+1, err)
		}
	}

	if err := limiter.CheckRefresh(ctx, "42"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("CheckRefresh over budget: got %v, want ErrRateLimited", err)
	}
}

func TestCheckRefreshDisabled(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.EnableRefreshThrottle = false
	limiter, _ := newTestLimiter(t, cfg)

	for i := 0; i < 20; i++ {
		if err := limiter.CheckRefresh(context.Background(), "42"); err != nil {
			t.Fatalf("CheckRefresh with throttle disabled: %v", err)
		}
	}
}

func TestLoginAttemptsCount(t *testing.T) {
	limiter, _ := newTestLimiter(t, defaultTestConfig())
	ctx := context.Background()

	count, err := limiter.LoginAttempts(ctx, "user@example.com")
	if err != nil || count != 0 {
		t.Fatalf("LoginAttempts before failures: got %d, %v", count, err)
	}

	_ = limiter.IncrementLogin(ctx, "user@example.com", "")
	_ = limiter.IncrementLogin(ctx, "user@example.com", "")

	count, err = limiter.LoginAttempts(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("LoginAttempts: %v", err)
	}
	if count != 2 {
		t.Fatalf("LoginAttempts: got %d, want 2", count)
	}
}

func TestRedisUnavailableWrapsError(t *testing.T) {
	limiter, mr := newTestLimiter(t, defaultTestConfig())
	mr.Close()

	err := limiter.CheckLogin(context.Background(), "user@example.com", "10.0.0.1")
	if !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("CheckLogin with closed redis: got %v, want ErrRedisUnavailable", err)
	}
}
