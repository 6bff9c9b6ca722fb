// Package jwt manages access-token issuance and verification with HMAC-SHA256
// signing and strict validation semantics.
//
// Every access token carries subject identity, a role claim, a unique token id
// (jti), issuer, audience, issued-at, and an absolute expiry. Tokens are
// immutable once minted; downstream consumers verify signature and expiry
// through [Manager.ParseAccess] or the middleware package.
//
// # What this package must NOT do
//
//   - Touch Redis or any store — token verification is pure computation.
//   - Issue refresh tokens. Opaque rotating refresh tokens live in the
//     refresh package and never take the JWT shape.
package jwt
