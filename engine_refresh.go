package payauth

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/payrail/payauth/internal"
	"github.com/payrail/payauth/internal/flows"
	"github.com/payrail/payauth/refresh"
)

// Refresh rotates the presented refresh token and issues a fresh access
// token. The presented token becomes unusable whether rotation succeeds or
// fails; a replay of a rotated token returns [ErrRefreshReuse].
func (e *Engine) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, error) {
	if e == nil || e.refreshStore == nil || e.jwtManager == nil {
		return nil, ErrEngineNotReady
	}

	result, err := flows.RunRefresh(ctx, refreshToken, e.refreshDeps())
	if err != nil {
		return nil, err
	}

	return &RefreshResult{
		AccessToken:      result.AccessToken,
		RefreshToken:     result.RefreshToken,
		AccessExpiresIn:  e.jwtManager.AccessTTL(),
		RefreshExpiresAt: result.RefreshExpiresAt,
		UserID:           result.UserID,
		Role:             result.Role,
	}, nil
}

// Revoke marks a refresh token terminal. Revoking an already revoked or
// expired token succeeds so logout can be retried safely.
func (e *Engine) Revoke(ctx context.Context, refreshToken string) error {
	if e == nil || e.refreshStore == nil {
		return ErrEngineNotReady
	}
	return flows.RunRevoke(ctx, refreshToken, e.refreshDeps())
}

func (e *Engine) refreshDeps() flows.RefreshDeps {
	return flows.RefreshDeps{
		CheckRefreshRate: func(ctx context.Context, token string) error {
			// The limiter key is the token digest, never the token value.
			sum := internal.HashRefreshTokenValue(token)
			err := e.rateLimiter.CheckRefresh(ctx, hex.EncodeToString(sum[:]))
			if err != nil {
				e.emitRateLimit(ctx, "refresh", nil)
			}
			return err
		},

		PeekToken: func(ctx context.Context, token string) (flows.RefreshRotation, error) {
			record, err := e.refreshStore.Peek(ctx, token)
			if err != nil {
				return flows.RefreshRotation{}, e.mapRefreshStoreError(err)
			}
			return flows.RefreshRotation{
				ExpiresAt: record.ExpiresAt,
				UserID:    record.UserID,
				Role:      record.Role,
			}, nil
		},
		RotateToken: func(ctx context.Context, token string) (flows.RefreshRotation, error) {
			rotation, err := e.refreshStore.Rotate(ctx, token)
			if err != nil {
				return flows.RefreshRotation{}, e.mapRefreshStoreError(err)
			}
			return flows.RefreshRotation{
				Token:     rotation.Token,
				ExpiresAt: rotation.ExpiresAt,
				UserID:    rotation.UserID,
				Role:      rotation.Role,
			}, nil
		},
		RevokeToken: func(ctx context.Context, token string) error {
			if err := e.refreshStore.Revoke(ctx, token); err != nil {
				return e.mapRefreshStoreError(err)
			}
			return nil
		},
		IssueAccess: e.jwtManager.CreateAccess,

		MetricInc: func(id int) { e.metricInc(MetricID(id)) },
		EmitAudit: func(ctx context.Context, event string, success bool, userID string, err error, meta func() map[string]string) {
			e.emitAudit(ctx, event, success, userID, err, meta)
		},

		Metrics: flows.RefreshMetrics{
			RefreshSuccess:      int(MetricRefreshSuccess),
			RefreshFailure:      int(MetricRefreshFailure),
			RefreshRateLimited:  int(MetricRefreshRateLimited),
			RefreshReuseBlocked: int(MetricRefreshReuseDetected),
			TokenRevoked:        int(MetricTokenRevoked),
		},
		Events: flows.RefreshEvents{
			RefreshSuccess:     auditEventRefreshSuccess,
			RefreshFailure:     auditEventRefreshInvalid,
			RefreshRateLimited: auditEventRefreshRateLimited,
			RefreshReuse:       auditEventRefreshReuse,
			TokenRevoked:       auditEventTokenRevoked,
		},
		Errors: flows.RefreshErrors{
			EngineNotReady:     ErrEngineNotReady,
			RefreshInvalid:     ErrRefreshInvalid,
			RefreshExpired:     ErrRefreshExpired,
			RefreshReuse:       ErrRefreshReuse,
			RefreshRateLimited: ErrRefreshRateLimited,
			StoreUnavailable:   ErrRedisUnavailable,
		},
	}
}

func (e *Engine) mapRefreshStoreError(err error) error {
	switch {
	case errors.Is(err, refresh.ErrTokenNotFound):
		return ErrRefreshInvalid
	case errors.Is(err, refresh.ErrTokenExpired):
		return ErrRefreshExpired
	case errors.Is(err, refresh.ErrTokenRevoked):
		return ErrRefreshReuse
	case errors.Is(err, refresh.ErrRedisUnavailable):
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	default:
		return err
	}
}
