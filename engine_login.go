package payauth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/payrail/payauth/internal/flows"
	"github.com/payrail/payauth/refresh"
)

// Login verifies the email/password pair and issues an access token plus a
// rotating refresh token.
//
// Unknown emails and wrong passwords both return [ErrInvalidCredentials];
// callers must not be able to probe which accounts exist.
func (e *Engine) Login(ctx context.Context, email, plaintext string) (*LoginResult, error) {
	if e == nil || e.passwordHash == nil || e.jwtManager == nil || e.refreshStore == nil {
		return nil, ErrEngineNotReady
	}

	result, err := flows.RunLogin(ctx, email, plaintext, e.loginDeps())
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:      result.AccessToken,
		RefreshToken:     result.RefreshToken,
		AccessExpiresIn:  e.jwtManager.AccessTTL(),
		RefreshExpiresAt: result.RefreshExpiresAt,
		User: User{
			UserID:    result.User.UserID,
			FirstName: result.User.FirstName,
			LastName:  result.User.LastName,
			Email:     result.User.Email,
			Role:      result.User.Role,
		},
	}, nil
}

// LoginAttempts exposes the current failed-attempt counter for an email.
// Missing counters report zero; the count never reveals account existence.
func (e *Engine) LoginAttempts(ctx context.Context, email string) (int, error) {
	if e == nil || e.rateLimiter == nil {
		return 0, ErrEngineNotReady
	}
	return e.rateLimiter.LoginAttempts(ctx, email)
}

func (e *Engine) updatePasswordHashFunc() func(context.Context, string, string) error {
	updater, ok := e.userStore.(PasswordHashUpdater)
	if !ok {
		return nil
	}
	return func(ctx context.Context, userID, newHash string) error {
		sctx, cancel := e.storeCtx(ctx)
		defer cancel()
		return updater.UpdatePasswordHash(sctx, userID, newHash)
	}
}

func (e *Engine) loginDeps() flows.LoginDeps {
	return flows.LoginDeps{
		PasswordUpgradeOnLogin: e.config.Password.UpgradeOnLogin,

		ClientIPFromContext: clientIPFromContext,

		CheckLoginRate: func(ctx context.Context, email, ip string) error {
			err := e.rateLimiter.CheckLogin(ctx, email, ip)
			if err != nil {
				e.emitRateLimit(ctx, "login", func() map[string]string {
					return map[string]string{
						"email": email,
					}
				})
			}
			return err
		},
		IncrementLoginRate: e.rateLimiter.IncrementLogin,
		ResetLoginRate:     e.rateLimiter.ResetLogin,

		GetUserByEmail: func(ctx context.Context, email string) (flows.LoginUserRecord, error) {
			sctx, cancel := e.storeCtx(ctx)
			defer cancel()

			user, err := e.userStore.GetUserByEmail(sctx, email)
			if err != nil {
				if errors.Is(err, ErrUserNotFound) {
					return flows.LoginUserRecord{}, ErrUserNotFound
				}
				return flows.LoginUserRecord{}, fmt.Errorf("%w: %v", ErrUserStoreUnavailable, err)
			}
			return flows.LoginUserRecord{
				UserID:       user.UserID,
				FirstName:    user.FirstName,
				LastName:     user.LastName,
				Email:        user.Email,
				PasswordHash: user.PasswordHash,
				Role:         user.Role,
				Active:       user.Active,
			}, nil
		},
		UpdatePasswordHash: e.updatePasswordHashFunc(),

		VerifyPassword:       e.verifyPassword,
		PasswordNeedsUpgrade: e.passwordNeedsUpgrade,
		HashPassword:         e.passwordHash.Hash,

		IssueTokens: func(ctx context.Context, user flows.LoginUserRecord) (string, string, time.Time, error) {
			token, record, err := e.refreshStore.Create(ctx, user.UserID, user.Role)
			if err != nil {
				if errors.Is(err, refresh.ErrRedisUnavailable) {
					return "", "", time.Time{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
				}
				return "", "", time.Time{}, err
			}
			access, err := e.jwtManager.CreateAccess(user.UserID, user.Role)
			if err != nil {
				return "", "", time.Time{}, err
			}
			return access, token, record.ExpiresAt, nil
		},

		MetricInc: func(id int) { e.metricInc(MetricID(id)) },
		EmitAudit: func(ctx context.Context, event string, success bool, userID string, err error, meta func() map[string]string) {
			e.emitAudit(ctx, event, success, userID, err, meta)
		},
		Warn: log.Print,

		Metrics: flows.LoginMetrics{
			LoginSuccess:     int(MetricLoginSuccess),
			LoginFailure:     int(MetricLoginFailure),
			LoginRateLimited: int(MetricLoginRateLimited),
			TokenIssued:      int(MetricTokenIssued),
		},
		Events: flows.LoginEvents{
			LoginSuccess:     auditEventLoginSuccess,
			LoginFailure:     auditEventLoginFailure,
			LoginRateLimited: auditEventLoginRateLimited,
		},
		Errors: flows.LoginErrors{
			EngineNotReady:     ErrEngineNotReady,
			InvalidCredentials: ErrInvalidCredentials,
			AccountDisabled:    ErrAccountDisabled,
			LoginRateLimited:   ErrLoginRateLimited,
			StoreUnavailable:   ErrUserStoreUnavailable,
		},
	}
}
