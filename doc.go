// Package payauth provides the credential and token engine for the payrail
// payments platform: password verification, account registration checks, JWT
// access tokens, and rotating single-use refresh tokens backed by Redis.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// payauth is the public surface. It exposes [Engine], [Builder], [Config], and
// value types (LoginResult, RegisterResult, MetricsSnapshot, etc.). All
// internal coordination — flow orchestration, rate limiting, audit dispatch —
// lives under internal/ and is never exported.
//
// # What this package must NOT do
//
//   - Expose Redis clients, internal stores, or token encoding details in its
//     public API.
//   - Perform I/O outside of Engine methods (construction via Builder is
//     allocation-only until Build).
//   - Import any sub-package that re-imports payauth (no import cycles).
//
// # Performance contract
//
// ValidateAccess is the hot path. It must not allocate beyond the returned
// AuthResult and must complete without Redis round-trips. Login, Refresh, and
// Register are allowed one user-store call and one Redis round-trip per call.
package payauth
