package internaldefs

import (
	"github.com/payrail/payauth"
)

// CounterDef defines a public type used by payauth APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   payauth.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by payauth APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   payauth.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the authentication engine.
var CounterDefs = []CounterDef{
	{ID: payauth.MetricLoginSuccess, Name: "payauth_login_success_total", Help: "Successful login attempts."},
	{ID: payauth.MetricLoginFailure, Name: "payauth_login_failure_total", Help: "Failed login attempts."},
	{ID: payauth.MetricLoginRateLimited, Name: "payauth_login_rate_limited_total", Help: "Rate-limited login attempts."},
	{ID: payauth.MetricRefreshSuccess, Name: "payauth_refresh_success_total", Help: "Successful refresh rotations."},
	{ID: payauth.MetricRefreshFailure, Name: "payauth_refresh_failure_total", Help: "Failed refresh rotations."},
	{ID: payauth.MetricRefreshReuseDetected, Name: "payauth_refresh_reuse_detected_total", Help: "Detected refresh token reuses."},
	{ID: payauth.MetricRefreshRateLimited, Name: "payauth_refresh_rate_limited_total", Help: "Rate-limited refresh attempts."},
	{ID: payauth.MetricRegisterSuccess, Name: "payauth_register_success_total", Help: "Successful account registrations."},
	{ID: payauth.MetricRegisterFailure, Name: "payauth_register_failure_total", Help: "Failed account registrations."},
	{ID: payauth.MetricRegisterRejected, Name: "payauth_register_rejected_total", Help: "Registrations rejected by validation."},
	{ID: payauth.MetricRegisterDuplicate, Name: "payauth_register_duplicate_total", Help: "Registrations rejected as duplicate."},
	{ID: payauth.MetricTokenIssued, Name: "payauth_token_issued_total", Help: "Issued access/refresh token pairs."},
	{ID: payauth.MetricTokenRevoked, Name: "payauth_token_revoked_total", Help: "Revoked refresh tokens."},
	{ID: payauth.MetricRateLimitHit, Name: "payauth_rate_limit_hit_total", Help: "Rate-limit checks that denied requests."},
}

// HistogramDefs is an exported constant or variable used by the authentication engine.
var HistogramDefs = []HistogramDef{
	{ID: payauth.MetricValidateLatency, Name: "payauth_validate_latency_seconds", Help: "ValidateAccess latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the authentication engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the authentication engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
