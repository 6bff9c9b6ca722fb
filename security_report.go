package payauth

import "time"

// SecurityReport is a read-only snapshot of the engine's security posture,
// returned by [Engine.SecurityReport].
type SecurityReport struct {
	ProductionMode        bool
	SigningAlgorithm      string
	AccessTTL             time.Duration
	RefreshTTL            time.Duration
	PasswordScheme        PasswordScheme
	Argon2                PasswordConfigReport
	PasswordUpgradeActive bool
	RateLimitingActive    bool
	RefreshThrottleActive bool
	AuditActive           bool
	MetricsActive         bool
}

// PasswordConfigReport contains the Argon2 parameters active in the engine.
// All fields are zero when the legacy scheme is selected.
type PasswordConfigReport struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// SecurityReport describes the securityreport operation and its observable behavior.
//
// SecurityReport does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) SecurityReport() SecurityReport {
	if e == nil {
		return SecurityReport{}
	}

	rateLimiting := e.config.Security.MaxLoginAttempts > 0 &&
		e.config.Security.LoginCooldownDuration > 0

	report := SecurityReport{
		ProductionMode:        e.config.Security.ProductionMode,
		SigningAlgorithm:      "HS256",
		AccessTTL:             e.config.JWT.AccessTTL,
		RefreshTTL:            e.config.Refresh.TTL,
		PasswordScheme:        e.config.Password.Scheme,
		PasswordUpgradeActive: e.config.Password.UpgradeOnLogin,
		RateLimitingActive:    rateLimiting || e.config.Security.EnableRefreshThrottle,
		RefreshThrottleActive: e.config.Security.EnableRefreshThrottle,
		AuditActive:           e.config.Audit.Enabled,
		MetricsActive:         e.config.Metrics.Enabled,
	}
	if e.config.Password.Scheme == SchemeArgon2id {
		report.Argon2 = PasswordConfigReport{
			Memory:      e.config.Password.Memory,
			Time:        e.config.Password.Time,
			Parallelism: e.config.Password.Parallelism,
			SaltLength:  e.config.Password.SaltLength,
			KeyLength:   e.config.Password.KeyLength,
		}
	}
	return report
}
