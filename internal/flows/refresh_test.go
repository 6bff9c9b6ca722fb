package flows

import (
	"context"
	"errors"
	"testing"
	"time"
)

var (
	errTestRefreshInvalid = errors.New("refresh invalid")
	errTestRefreshExpired = errors.New("refresh expired")
	errTestRefreshReuse   = errors.New("refresh reuse")
)

func workingRefreshDeps(rotateCalls *int) RefreshDeps {
	identity := RefreshRotation{
		UserID:    "u1",
		Role:      "User",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return RefreshDeps{
		PeekToken: func(context.Context, string) (RefreshRotation, error) {
			return identity, nil
		},
		RotateToken: func(context.Context, string) (RefreshRotation, error) {
			if rotateCalls != nil {
				*rotateCalls++
			}
			next := identity
			next.Token = "next-token"
			return next, nil
		},
		IssueAccess: func(userID, role string) (string, error) {
			return "access-" + userID, nil
		},
		Errors: RefreshErrors{
			EngineNotReady: errors.New("engine not ready"),
			RefreshInvalid: errTestRefreshInvalid,
			RefreshExpired: errTestRefreshExpired,
			RefreshReuse:   errTestRefreshReuse,
		},
	}
}

func TestRunRefreshSuccessCarriesIdentityForward(t *testing.T) {
	var rotateCalls int
	res, err := RunRefresh(context.Background(), "old-token", workingRefreshDeps(&rotateCalls))
	if err != nil {
		t.Fatalf("RunRefresh failed: %v", err)
	}
	if res.AccessToken != "access-u1" || res.RefreshToken != "next-token" {
		t.Fatalf("unexpected tokens: %q %q", res.AccessToken, res.RefreshToken)
	}
	if rotateCalls != 1 {
		t.Fatalf("expected one rotation, got %d", rotateCalls)
	}
}

func TestRunRefreshSigningFailureLeavesTokenUnrotated(t *testing.T) {
	var rotateCalls int
	deps := workingRefreshDeps(&rotateCalls)
	deps.IssueAccess = func(string, string) (string, error) {
		return "", errors.New("signing failed")
	}

	_, err := RunRefresh(context.Background(), "old-token", deps)
	if err == nil {
		t.Fatal("expected signing error")
	}
	if rotateCalls != 0 {
		t.Fatalf("rotation must not commit when minting fails, got %d rotations", rotateCalls)
	}
}

func TestRunRefreshTerminalTokenNeverMints(t *testing.T) {
	for _, terminal := range []error{errTestRefreshReuse, errTestRefreshExpired, errTestRefreshInvalid} {
		var minted bool
		deps := workingRefreshDeps(nil)
		deps.PeekToken = func(context.Context, string) (RefreshRotation, error) {
			return RefreshRotation{}, terminal
		}
		deps.IssueAccess = func(string, string) (string, error) {
			minted = true
			return "access", nil
		}

		_, err := RunRefresh(context.Background(), "old-token", deps)
		if !errors.Is(err, terminal) {
			t.Fatalf("expected %v, got %v", terminal, err)
		}
		if minted {
			t.Fatalf("terminal token %v must not mint an access token", terminal)
		}
	}
}

func TestRunRefreshLosingRaceReportsReuse(t *testing.T) {
	// Peek observes an active record, then a concurrent caller wins the
	// rotation before ours commits.
	deps := workingRefreshDeps(nil)
	deps.RotateToken = func(context.Context, string) (RefreshRotation, error) {
		return RefreshRotation{}, errTestRefreshReuse
	}

	_, err := RunRefresh(context.Background(), "old-token", deps)
	if !errors.Is(err, errTestRefreshReuse) {
		t.Fatalf("expected reuse error, got %v", err)
	}
}
