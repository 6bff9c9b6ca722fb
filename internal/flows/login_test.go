package flows

import (
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"
)

var errTestInvalidCredentials = errors.New("invalid credentials")

func workingLoginDeps() LoginDeps {
	return LoginDeps{
		GetUserByEmail: func(_ context.Context, email string) (LoginUserRecord, error) {
			return LoginUserRecord{
				UserID:       "u1",
				Email:        email,
				PasswordHash: "digest",
				Role:         "User",
				Active:       true,
			}, nil
		},
		VerifyPassword: func(plaintext, digest string) (bool, error) {
			return plaintext == "correct-horse" && digest == "digest", nil
		},
		IssueTokens: func(_ context.Context, user LoginUserRecord) (string, string, time.Time, error) {
			return "access-" + user.UserID, "refresh-" + user.UserID, time.Now().Add(time.Hour), nil
		},
		Errors: LoginErrors{
			EngineNotReady:     errors.New("engine not ready"),
			InvalidCredentials: errTestInvalidCredentials,
			AccountDisabled:    errors.New("account disabled"),
			LoginRateLimited:   errors.New("rate limited"),
			StoreUnavailable:   errors.New("store unavailable"),
		},
	}
}

func TestRunLoginAcceptsStandardLoggerAsWarn(t *testing.T) {
	deps := workingLoginDeps()
	deps.Warn = log.Print

	res, err := RunLogin(context.Background(), "alice@example.com", "correct-horse", deps)
	if err != nil {
		t.Fatalf("RunLogin failed: %v", err)
	}
	if res.AccessToken != "access-u1" || res.RefreshToken != "refresh-u1" {
		t.Fatalf("unexpected tokens: %q %q", res.AccessToken, res.RefreshToken)
	}
}

func TestRunLoginWarnsWhenUpgradePersistFails(t *testing.T) {
	var warnings []string

	deps := workingLoginDeps()
	deps.PasswordUpgradeOnLogin = true
	deps.PasswordNeedsUpgrade = func(string) bool { return true }
	deps.HashPassword = func(string) (string, error) { return "upgraded", nil }
	deps.UpdatePasswordHash = func(context.Context, string, string) error {
		return errors.New("store write failed")
	}
	deps.Warn = func(args ...any) {
		for _, arg := range args {
			if s, ok := arg.(string); ok {
				warnings = append(warnings, s)
			}
		}
	}

	res, err := RunLogin(context.Background(), "alice@example.com", "correct-horse", deps)
	if err != nil {
		t.Fatalf("RunLogin failed: %v", err)
	}
	if res == nil || res.AccessToken == "" {
		t.Fatal("expected tokens despite failed digest upgrade")
	}

	if len(warnings) != 1 || !strings.Contains(warnings[0], "upgrade") {
		t.Fatalf("expected one upgrade warning, got %v", warnings)
	}
}

func TestRunLoginWrongPasswordStaysGeneric(t *testing.T) {
	deps := workingLoginDeps()

	_, err := RunLogin(context.Background(), "alice@example.com", "wrong", deps)
	if !errors.Is(err, errTestInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}
