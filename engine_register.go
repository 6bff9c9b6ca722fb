package payauth

import (
	"context"
	"errors"
	"fmt"

	"github.com/payrail/payauth/internal/flows"
	"github.com/payrail/payauth/registration"
)

// Register validates the registration request, rejects duplicate emails, and
// persists the new account with a hashed password.
//
// Validation failures return a [*ValidationError] whose Violations slice
// preserves the declaration order of the checks.
func (e *Engine) Register(ctx context.Context, req *registration.Request) (*RegisterResult, error) {
	if e == nil || e.validator == nil || e.passwordHash == nil || e.userStore == nil {
		return nil, ErrEngineNotReady
	}

	role, err := e.resolveRole(req)
	if err != nil {
		e.metricInc(MetricRegisterRejected)
		e.emitAudit(ctx, auditEventRegisterRejected, false, "", err, func() map[string]string {
			meta := map[string]string{}
			if req != nil {
				meta["email"] = req.Email
				meta["role"] = req.Role
			}
			return meta
		})
		return nil, err
	}

	result, err := flows.RunRegister(ctx, req, e.registerDeps(role))
	if err != nil {
		return nil, err
	}

	return &RegisterResult{
		UserID:  result.UserID,
		Email:   result.Email,
		Role:    string(role),
		Message: registration.MsgRegistrationSuccess,
	}, nil
}

// ValidateRegistration runs only the validation stage and returns the ordered
// violation list. An empty slice means the request is acceptable.
func (e *Engine) ValidateRegistration(req *registration.Request) []string {
	if e == nil || e.validator == nil || req == nil {
		return []string{"request is required"}
	}
	return e.validator.Validate(*req)
}

// resolveRole applies the configured default when the request omits a role.
func (e *Engine) resolveRole(req *registration.Request) (Role, error) {
	if req == nil || req.Role == "" {
		return ParseRole(e.config.Registration.DefaultRole)
	}
	return ParseRole(req.Role)
}

func (e *Engine) registerDeps(role Role) flows.RegisterDeps {
	return flows.RegisterDeps{
		Validate: func(req *registration.Request) []string {
			return e.validator.Validate(*req)
		},
		EmailExists: func(ctx context.Context, email string) (bool, error) {
			sctx, cancel := e.storeCtx(ctx)
			defer cancel()

			_, err := e.userStore.GetUserByEmail(sctx, email)
			if err != nil {
				if errors.Is(err, ErrUserNotFound) {
					return false, nil
				}
				return false, fmt.Errorf("%w: %v", ErrUserStoreUnavailable, err)
			}
			return true, nil
		},
		HashPassword: e.passwordHash.Hash,
		CreateUser: func(ctx context.Context, req *registration.Request, digest string) (string, error) {
			sctx, cancel := e.storeCtx(ctx)
			defer cancel()

			created, err := e.userStore.CreateUser(sctx, CreateUserInput{
				FirstName:    req.FirstName,
				LastName:     req.LastName,
				Email:        req.Email,
				PasswordHash: digest,
				PhoneNumber:  req.PhoneNumber,
				Age:          req.Age,
				Role:         string(role),
				Address:      req.Address,
				Account:      req.Account,
				Active:       true,
			})
			if err != nil {
				if errors.Is(err, ErrDuplicateUser) {
					return "", ErrAccountExists
				}
				return "", fmt.Errorf("%w: %v", ErrUserStoreUnavailable, err)
			}
			return created.UserID, nil
		},
		WrapValidation: func(violations []string) error {
			return &ValidationError{Code: registration.CodeValidationFailed, Violations: violations}
		},

		MetricInc: func(id int) { e.metricInc(MetricID(id)) },
		EmitAudit: func(ctx context.Context, event string, success bool, userID string, err error, meta func() map[string]string) {
			e.emitAudit(ctx, event, success, userID, err, meta)
		},

		Metrics: flows.RegisterMetrics{
			RegisterSuccess:   int(MetricRegisterSuccess),
			RegisterFailure:   int(MetricRegisterFailure),
			RegisterRejected:  int(MetricRegisterRejected),
			RegisterDuplicate: int(MetricRegisterDuplicate),
		},
		Events: flows.RegisterEvents{
			RegisterSuccess:  auditEventRegisterSuccess,
			RegisterFailure:  auditEventRegisterFailure,
			RegisterRejected: auditEventRegisterRejected,
		},
		Errors: flows.RegisterErrors{
			EngineNotReady:   ErrEngineNotReady,
			AccountExists:    ErrAccountExists,
			StoreUnavailable: ErrUserStoreUnavailable,
		},
		Codes: flows.RegisterCodes{
			Validation: registration.CodeValidationFailed,
			Duplicate:  registration.CodeUserAlreadyExists,
			Failed:     registration.CodeRegistrationFailed,
		},
	}
}
