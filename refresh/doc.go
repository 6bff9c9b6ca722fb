// Package refresh implements opaque rotating refresh tokens and their
// Redis-backed state.
//
// # Token format
//
// Token values are 48 bytes of crypto/rand output, base64url-encoded without
// padding. Values are never stored in plaintext — the store keys records by
// the SHA-256 of the value, so a Redis dump alone cannot be replayed.
//
// # Lifecycle
//
// A record is Active until exactly one terminal transition: rotated out by a
// successful refresh, found expired at validation time, or revoked explicitly.
// Terminal records are retained for a grace window so a replayed token is
// answered with "revoked"/"expired" rather than "not found", then evicted by
// Redis TTL. There is no transition back to Active.
//
// Rotation is a single Lua script: it validates the old record, marks it
// revoked, and writes the successor atomically. Two concurrent rotations of
// the same value therefore produce exactly one winner.
//
// # Expiry boundary
//
// A record is expired when expiry < now. The exact expiry instant still
// validates; tests pin this boundary.
//
// # What this package must NOT do
//
//   - Mint access tokens — the Engine pairs rotation with the jwt package.
//   - Decide authentication policy. It manages token state only.
package refresh
