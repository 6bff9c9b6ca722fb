package flows

import (
	"context"
	"errors"

	"github.com/payrail/payauth/registration"
)

// RegisterResult is the flow-local registration response shape.
type RegisterResult struct {
	UserID string
	Email  string
	Role   string
}

// RegisterMetrics carries metric IDs needed by the register flow.
type RegisterMetrics struct {
	RegisterSuccess   int
	RegisterFailure   int
	RegisterRejected  int
	RegisterDuplicate int
}

// RegisterEvents carries audit event names used by the register flow.
type RegisterEvents struct {
	RegisterSuccess  string
	RegisterFailure  string
	RegisterRejected string
}

// RegisterErrors carries host-level sentinel errors used by the register flow.
type RegisterErrors struct {
	EngineNotReady   error
	AccountExists    error
	StoreUnavailable error
}

// RegisterCodes carries outcome codes attached to audit metadata.
type RegisterCodes struct {
	Validation string
	Duplicate  string
	Failed     string
}

// RegisterDeps captures register flow dependencies.
type RegisterDeps struct {
	Validate     func(*registration.Request) []string
	EmailExists  func(context.Context, string) (bool, error)
	HashPassword func(string) (string, error)
	CreateUser   func(context.Context, *registration.Request, string) (string, error)

	// WrapValidation converts the ordered violation list to the host's
	// validation error type.
	WrapValidation func([]string) error

	MetricInc func(int)
	EmitAudit func(context.Context, string, bool, string, error, func() map[string]string)

	Metrics RegisterMetrics
	Events  RegisterEvents
	Errors  RegisterErrors
	Codes   RegisterCodes
}

// RunRegister validates a registration request, rejects duplicates, hashes
// the password and persists the new account.
//
// Validation failures are reported in declaration order via WrapValidation;
// they are the only path that does not touch the user store.
func RunRegister(ctx context.Context, req *registration.Request, deps RegisterDeps) (*RegisterResult, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, error, func() map[string]string) {}
	}
	if deps.Validate == nil ||
		deps.EmailExists == nil ||
		deps.HashPassword == nil ||
		deps.CreateUser == nil ||
		deps.WrapValidation == nil {
		return nil, deps.Errors.EngineNotReady
	}
	if req == nil {
		return nil, deps.WrapValidation([]string{"request is required"})
	}

	if violations := deps.Validate(req); len(violations) > 0 {
		deps.MetricInc(deps.Metrics.RegisterRejected)
		deps.EmitAudit(ctx, deps.Events.RegisterRejected, false, "", nil, func() map[string]string {
			return map[string]string{
				"email":      req.Email,
				"code":       deps.Codes.Validation,
				"violations": violations[0],
			}
		})
		return nil, deps.WrapValidation(violations)
	}

	exists, err := deps.EmailExists(ctx, req.Email)
	if err != nil {
		deps.MetricInc(deps.Metrics.RegisterFailure)
		deps.EmitAudit(ctx, deps.Events.RegisterFailure, false, "", err, func() map[string]string {
			return map[string]string{
				"email":  req.Email,
				"code":   deps.Codes.Failed,
				"reason": "store_unavailable",
			}
		})
		return nil, err
	}
	if exists {
		deps.MetricInc(deps.Metrics.RegisterDuplicate)
		deps.EmitAudit(ctx, deps.Events.RegisterFailure, false, "", deps.Errors.AccountExists, func() map[string]string {
			return map[string]string{
				"email":  req.Email,
				"code":   deps.Codes.Duplicate,
				"reason": "duplicate",
			}
		})
		return nil, deps.Errors.AccountExists
	}

	digest, err := deps.HashPassword(req.Password)
	if err != nil {
		deps.MetricInc(deps.Metrics.RegisterFailure)
		deps.EmitAudit(ctx, deps.Events.RegisterFailure, false, "", err, func() map[string]string {
			return map[string]string{
				"email":  req.Email,
				"code":   deps.Codes.Failed,
				"reason": "hash_failed",
			}
		})
		return nil, err
	}

	userID, err := deps.CreateUser(ctx, req, digest)
	if err != nil {
		// The store may detect a duplicate that raced past EmailExists.
		if errors.Is(err, deps.Errors.AccountExists) {
			deps.MetricInc(deps.Metrics.RegisterDuplicate)
		} else {
			deps.MetricInc(deps.Metrics.RegisterFailure)
		}
		deps.EmitAudit(ctx, deps.Events.RegisterFailure, false, "", err, func() map[string]string {
			code := deps.Codes.Failed
			if errors.Is(err, deps.Errors.AccountExists) {
				code = deps.Codes.Duplicate
			}
			return map[string]string{
				"email":  req.Email,
				"code":   code,
				"reason": "create_failed",
			}
		})
		return nil, err
	}

	deps.MetricInc(deps.Metrics.RegisterSuccess)
	deps.EmitAudit(ctx, deps.Events.RegisterSuccess, true, userID, nil, func() map[string]string {
		return map[string]string{
			"email": req.Email,
		}
	})

	return &RegisterResult{
		UserID: userID,
		Email:  req.Email,
		Role:   req.Role,
	}, nil
}
