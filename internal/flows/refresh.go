package flows

import (
	"context"
	"errors"
	"time"
)

// RefreshResult is the flow-local rotation response shape.
type RefreshResult struct {
	AccessToken      string
	RefreshToken     string
	RefreshExpiresAt time.Time
	UserID           string
	Role             string
}

// RefreshRotation is a flow-local view of a completed store rotation.
type RefreshRotation struct {
	Token     string
	ExpiresAt time.Time
	UserID    string
	Role      string
}

// RefreshMetrics carries metric IDs needed by the refresh and revoke flows.
type RefreshMetrics struct {
	RefreshSuccess      int
	RefreshFailure      int
	RefreshRateLimited  int
	RefreshReuseBlocked int
	TokenRevoked        int
}

// RefreshEvents carries audit event names used by the refresh and revoke flows.
type RefreshEvents struct {
	RefreshSuccess     string
	RefreshFailure     string
	RefreshRateLimited string
	RefreshReuse       string
	TokenRevoked       string
}

// RefreshErrors carries host-level sentinel errors used by the refresh and
// revoke flows.
type RefreshErrors struct {
	EngineNotReady     error
	RefreshInvalid     error
	RefreshExpired     error
	RefreshReuse       error
	RefreshRateLimited error
	StoreUnavailable   error
}

// RefreshDeps captures refresh and revoke flow dependencies.
type RefreshDeps struct {
	CheckRefreshRate func(context.Context, string) error

	PeekToken   func(context.Context, string) (RefreshRotation, error)
	RotateToken func(context.Context, string) (RefreshRotation, error)
	RevokeToken func(context.Context, string) error
	IssueAccess func(string, string) (string, error)

	MetricInc func(int)
	EmitAudit func(context.Context, string, bool, string, error, func() map[string]string)

	Metrics RefreshMetrics
	Events  RefreshEvents
	Errors  RefreshErrors
}

// RunRefresh rotates a refresh token and issues a fresh access token bound to
// the identity the store carried forward.
func RunRefresh(ctx context.Context, token string, deps RefreshDeps) (*RefreshResult, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, error, func() map[string]string) {}
	}
	if deps.PeekToken == nil || deps.RotateToken == nil || deps.IssueAccess == nil {
		return nil, deps.Errors.EngineNotReady
	}

	if token == "" {
		deps.MetricInc(deps.Metrics.RefreshFailure)
		deps.EmitAudit(ctx, deps.Events.RefreshFailure, false, "", deps.Errors.RefreshInvalid, func() map[string]string {
			return map[string]string{
				"reason": "empty_token",
			}
		})
		return nil, deps.Errors.RefreshInvalid
	}

	if deps.CheckRefreshRate != nil {
		if err := deps.CheckRefreshRate(ctx, token); err != nil {
			deps.MetricInc(deps.Metrics.RefreshRateLimited)
			deps.EmitAudit(ctx, deps.Events.RefreshRateLimited, false, "", deps.Errors.RefreshRateLimited, nil)
			return nil, deps.Errors.RefreshRateLimited
		}
	}

	// The access token is minted before the rotation commits. A signing
	// failure must leave the presented token active so the caller keeps a
	// usable chain.
	identity, err := deps.PeekToken(ctx, token)
	if err != nil {
		recordRefreshFailure(ctx, err, deps)
		return nil, err
	}

	access, err := deps.IssueAccess(identity.UserID, identity.Role)
	if err != nil {
		deps.MetricInc(deps.Metrics.RefreshFailure)
		deps.EmitAudit(ctx, deps.Events.RefreshFailure, false, identity.UserID, err, func() map[string]string {
			return map[string]string{
				"reason": "access_issue_failed",
			}
		})
		return nil, err
	}

	rotation, err := deps.RotateToken(ctx, token)
	if err != nil {
		recordRefreshFailure(ctx, err, deps)
		return nil, err
	}

	deps.MetricInc(deps.Metrics.RefreshSuccess)
	deps.EmitAudit(ctx, deps.Events.RefreshSuccess, true, rotation.UserID, nil, nil)

	return &RefreshResult{
		AccessToken:      access,
		RefreshToken:     rotation.Token,
		RefreshExpiresAt: rotation.ExpiresAt,
		UserID:           rotation.UserID,
		Role:             rotation.Role,
	}, nil
}

// recordRefreshFailure classifies a peek or rotate failure for metrics and
// audit. Reuse and expiry carry their own signals; everything else is a
// generic refresh failure.
func recordRefreshFailure(ctx context.Context, err error, deps RefreshDeps) {
	switch {
	case errors.Is(err, deps.Errors.RefreshReuse):
		deps.MetricInc(deps.Metrics.RefreshReuseBlocked)
		deps.MetricInc(deps.Metrics.RefreshFailure)
		deps.EmitAudit(ctx, deps.Events.RefreshReuse, false, "", err, nil)
	case errors.Is(err, deps.Errors.RefreshExpired):
		deps.MetricInc(deps.Metrics.RefreshFailure)
		deps.EmitAudit(ctx, deps.Events.RefreshFailure, false, "", err, func() map[string]string {
			return map[string]string{
				"reason": "expired",
			}
		})
	default:
		deps.MetricInc(deps.Metrics.RefreshFailure)
		deps.EmitAudit(ctx, deps.Events.RefreshFailure, false, "", err, nil)
	}
}

// RunRevoke marks a refresh token revoked. Revoking an already-terminal token
// succeeds so logout stays idempotent.
func RunRevoke(ctx context.Context, token string, deps RefreshDeps) error {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, error, func() map[string]string) {}
	}
	if deps.RevokeToken == nil {
		return deps.Errors.EngineNotReady
	}
	if token == "" {
		return deps.Errors.RefreshInvalid
	}

	if err := deps.RevokeToken(ctx, token); err != nil {
		deps.EmitAudit(ctx, deps.Events.TokenRevoked, false, "", err, nil)
		return err
	}

	deps.MetricInc(deps.Metrics.TokenRevoked)
	deps.EmitAudit(ctx, deps.Events.TokenRevoked, true, "", nil, nil)
	return nil
}
