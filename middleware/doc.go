// Package middleware exposes HTTP middleware adapters for bearer-token
// enforcement built on top of payauth.Engine validation.
//
// # Guards
//
//   - [Guard] — verifies the Authorization bearer token via
//     Engine.ValidateAccess and injects the result into the request context.
//   - [RequireRole] — Guard plus a role equality check.
//
// Each guard reads the Authorization header, calls Engine.ValidateAccess, and
// injects the validated identity into the request context.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// Engine.ValidateAccess.
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly (delegates to Engine).
//   - Access Redis (Engine handles I/O).
//   - Make authorization decisions beyond pass/reject from the Engine and the
//     declared role requirement.
package middleware
