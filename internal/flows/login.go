package flows

import (
	"context"
	"errors"
	"time"
)

// LoginResult is the flow-local login response shape.
type LoginResult struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
	User             LoginUserRecord
}

// LoginUserRecord is a flow-local user model used by the login flow.
// PasswordHash never leaves the flow; hosts strip it before returning
// account data to callers.
type LoginUserRecord struct {
	UserID       string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         string
	Active       bool
}

// LoginMetrics carries metric IDs needed by the login flow.
type LoginMetrics struct {
	LoginSuccess     int
	LoginFailure     int
	LoginRateLimited int
	TokenIssued      int
}

// LoginEvents carries audit event names used by the login flow.
type LoginEvents struct {
	LoginSuccess     string
	LoginFailure     string
	LoginRateLimited string
}

// LoginErrors carries host-level sentinel errors used by the login flow.
type LoginErrors struct {
	EngineNotReady     error
	InvalidCredentials error
	AccountDisabled    error
	LoginRateLimited   error
	StoreUnavailable   error
}

// LoginDeps captures login flow dependencies.
type LoginDeps struct {
	PasswordUpgradeOnLogin bool

	ClientIPFromContext func(context.Context) string
	Now                 func() time.Time

	CheckLoginRate     func(context.Context, string, string) error
	IncrementLoginRate func(context.Context, string, string) error
	ResetLoginRate     func(context.Context, string, string) error

	GetUserByEmail     func(context.Context, string) (LoginUserRecord, error)
	UpdatePasswordHash func(context.Context, string, string) error

	VerifyPassword       func(string, string) (bool, error)
	PasswordNeedsUpgrade func(string) bool
	HashPassword         func(string) (string, error)

	IssueTokens func(context.Context, LoginUserRecord) (string, string, time.Time, error)

	MetricInc func(int)
	EmitAudit func(context.Context, string, bool, string, error, func() map[string]string)
	Warn      func(...any)

	Metrics LoginMetrics
	Events  LoginEvents
	Errors  LoginErrors
}

// RunLogin executes the credential verification flow and issues a token pair.
//
// Every credential failure collapses to Errors.InvalidCredentials so callers
// cannot distinguish an unknown email from a wrong password.
func RunLogin(ctx context.Context, email, password string, deps LoginDeps) (*LoginResult, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, error, func() map[string]string) {}
	}
	if deps.Warn == nil {
		deps.Warn = func(...any) {}
	}
	if deps.ClientIPFromContext == nil {
		deps.ClientIPFromContext = func(context.Context) string { return "" }
	}
	if deps.GetUserByEmail == nil ||
		deps.VerifyPassword == nil ||
		deps.IssueTokens == nil {
		return nil, deps.Errors.EngineNotReady
	}

	ip := deps.ClientIPFromContext(ctx)

	if deps.CheckLoginRate != nil {
		if err := deps.CheckLoginRate(ctx, email, ip); err != nil {
			deps.MetricInc(deps.Metrics.LoginRateLimited)
			deps.EmitAudit(ctx, deps.Events.LoginRateLimited, false, "", deps.Errors.LoginRateLimited, func() map[string]string {
				return map[string]string{
					"email": email,
				}
			})
			return nil, deps.Errors.LoginRateLimited
		}
	}

	if email == "" || password == "" {
		return nil, runFailLoginAttempt(ctx, email, ip, "", "empty_credentials", deps)
	}

	user, err := deps.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, deps.Errors.StoreUnavailable) {
			deps.MetricInc(deps.Metrics.LoginFailure)
			deps.EmitAudit(ctx, deps.Events.LoginFailure, false, "", err, func() map[string]string {
				return map[string]string{
					"email":  email,
					"reason": "store_unavailable",
				}
			})
			return nil, err
		}
		return nil, runFailLoginAttempt(ctx, email, ip, "", "user_not_found", deps)
	}

	ok, err := deps.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, runFailLoginAttempt(ctx, email, ip, user.UserID, "password_mismatch", deps)
	}

	if !user.Active {
		deps.MetricInc(deps.Metrics.LoginFailure)
		deps.EmitAudit(ctx, deps.Events.LoginFailure, false, user.UserID, deps.Errors.AccountDisabled, func() map[string]string {
			return map[string]string{
				"email":  email,
				"reason": "account_disabled",
			}
		})
		return nil, deps.Errors.AccountDisabled
	}

	if deps.PasswordUpgradeOnLogin && deps.PasswordNeedsUpgrade != nil && deps.HashPassword != nil {
		if deps.PasswordNeedsUpgrade(user.PasswordHash) {
			if upgradedHash, err := deps.HashPassword(password); err == nil {
				if deps.UpdatePasswordHash != nil {
					if err := deps.UpdatePasswordHash(ctx, user.UserID, upgradedHash); err != nil {
						deps.Warn("payauth: password hash upgrade update failed")
					}
				}
			} else {
				deps.Warn("payauth: password hash upgrade generation failed")
			}
		}
	}
	password = ""

	access, refresh, refreshExp, err := deps.IssueTokens(ctx, user)
	if err != nil {
		deps.MetricInc(deps.Metrics.LoginFailure)
		deps.EmitAudit(ctx, deps.Events.LoginFailure, false, user.UserID, err, func() map[string]string {
			return map[string]string{
				"email":  email,
				"reason": "token_issue_failed",
			}
		})
		return nil, err
	}

	if deps.ResetLoginRate != nil {
		if err := deps.ResetLoginRate(ctx, email, ip); err != nil {
			deps.Warn("payauth: login limiter reset failed")
		}
	}

	deps.MetricInc(deps.Metrics.TokenIssued)
	deps.MetricInc(deps.Metrics.LoginSuccess)
	deps.EmitAudit(ctx, deps.Events.LoginSuccess, true, user.UserID, nil, func() map[string]string {
		return map[string]string{
			"email": email,
		}
	})

	return &LoginResult{
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
		User:             user,
	}, nil
}

// runFailLoginAttempt records a failed attempt against the limiter and emits
// the generic invalid-credentials failure.
func runFailLoginAttempt(ctx context.Context, email, ip, userID, reason string, deps LoginDeps) error {
	if deps.IncrementLoginRate != nil {
		if err := deps.IncrementLoginRate(ctx, email, ip); err != nil {
			deps.MetricInc(deps.Metrics.LoginRateLimited)
			deps.EmitAudit(ctx, deps.Events.LoginRateLimited, false, userID, deps.Errors.LoginRateLimited, func() map[string]string {
				return map[string]string{
					"email": email,
				}
			})
			return deps.Errors.LoginRateLimited
		}
	}
	deps.MetricInc(deps.Metrics.LoginFailure)
	deps.EmitAudit(ctx, deps.Events.LoginFailure, false, userID, deps.Errors.InvalidCredentials, func() map[string]string {
		return map[string]string{
			"email":  email,
			"reason": reason,
		}
	})
	return deps.Errors.InvalidCredentials
}
