package payauth

import (
	"context"
	"strings"

	"github.com/payrail/payauth/internal/rate"
	"github.com/payrail/payauth/jwt"
	"github.com/payrail/payauth/password"
	"github.com/payrail/payauth/refresh"
	"github.com/payrail/payauth/registration"
)

// Engine defines a public type used by payauth APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config       Config
	userStore    UserStore
	refreshStore *refresh.Store
	rateLimiter  *rate.Limiter
	validator    *registration.Validator
	audit        *auditDispatcher
	metrics      *Metrics
	passwordHash password.Hasher
	legacyHash   password.Hasher
	jwtManager   *jwt.Manager
}

// Close describes the close operation and its observable behavior.
//
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// storeCtx bounds every user-store call with the configured timeout so a
// stalled database cannot hold engine goroutines indefinitely.
func (e *Engine) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, e.config.Security.StoreTimeout)
}

// passwordNeedsUpgrade reports whether a stored digest predates the engine's
// configured scheme. Only meaningful when upgrade-on-login is active.
func (e *Engine) passwordNeedsUpgrade(digest string) bool {
	if !e.config.Password.UpgradeOnLogin || e.config.Password.Scheme != SchemeArgon2id {
		return false
	}
	return !strings.HasPrefix(digest, "$argon2id$")
}

// verifyPassword routes a digest to the scheme that produced it. Legacy
// digests stay verifiable under an argon2id config until upgrade-on-login
// rewrites them.
func (e *Engine) verifyPassword(plaintext, digest string) (bool, error) {
	if e.config.Password.Scheme == SchemeArgon2id && !strings.HasPrefix(digest, "$argon2id$") {
		return e.legacyHash.Verify(plaintext, digest)
	}
	return e.passwordHash.Verify(plaintext, digest)
}
