package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/payrail/payauth"
	"github.com/payrail/payauth/password"
	"github.com/redis/go-redis/v9"
)

type staticUserStore struct {
	user payauth.UserRecord
}

func (s staticUserStore) GetUserByEmail(_ context.Context, email string) (payauth.UserRecord, error) {
	if email != s.user.Email {
		return payauth.UserRecord{}, payauth.ErrUserNotFound
	}
	return s.user, nil
}

func (s staticUserStore) CreateUser(_ context.Context, _ payauth.CreateUserInput) (payauth.UserRecord, error) {
	return payauth.UserRecord{}, payauth.ErrDuplicateUser
}

func newGuardTestEngine(t *testing.T, role string) (*payauth.Engine, string, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	hash, err := password.NewLegacy().Hash("correct-horse")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}

	cfg := payauth.DefaultConfig()
	cfg.JWT.SigningKey = []byte("test-secret")

	engine, err := payauth.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithUserStore(staticUserStore{user: payauth.UserRecord{
			UserID:       "u1",
			Email:        "alice@example.com",
			PasswordHash: hash,
			Role:         role,
			Active:       true,
		}}).
		Build()
	if err != nil {
		mr.Close()
		t.Fatalf("Build failed: %v", err)
	}

	res, err := engine.Login(context.Background(), "alice@example.com", "correct-horse")
	if err != nil {
		mr.Close()
		t.Fatalf("Login failed: %v", err)
	}

	return engine, res.AccessToken, func() {
		engine.Close()
		mr.Close()
	}
}

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := AuthResultFromContext(r.Context()); !ok {
			t.Error("expected auth result in request context")
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestGuardAllowsValidToken(t *testing.T) {
	engine, token, done := newGuardTestEngine(t, "User")
	defer done()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	Guard(engine)(okHandler(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuardRejectsMissingAndMalformedHeaders(t *testing.T) {
	engine, _, done := newGuardTestEngine(t, "User")
	defer done()

	handler := Guard(engine)(okHandler(t))

	for _, header := range []string{"", "Bearer ", "Basic abc", "garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestGuardRejectsInvalidToken(t *testing.T) {
	engine, _, done := newGuardTestEngine(t, "User")
	defer done()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()

	Guard(engine)(okHandler(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRoleEnforcesRole(t *testing.T) {
	engine, token, done := newGuardTestEngine(t, "User")
	defer done()

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	RequireRole(engine, payauth.RoleAdmin)(okHandler(t)).ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for role mismatch, got %d", rec.Code)
	}

	adminEngine, adminToken, adminDone := newGuardTestEngine(t, "Admin")
	defer adminDone()

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()

	RequireRole(adminEngine, payauth.RoleAdmin)(okHandler(t)).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for matching role, got %d", rec.Code)
	}
}
