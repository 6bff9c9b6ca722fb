// Package internal contains helper utilities that are intentionally private to payauth,
// including secure random generation for opaque refresh-token values.
//
// # Sub-packages
//
//   - flows — pure-function flow orchestrators for every Engine operation
//   - rate — Redis-backed rate limit primitives for login and refresh
//
// # What this package must NOT do
//
//   - Export anything intended for host applications — the public surface is
//     the payauth root package and its leaf packages.
//   - Perform I/O. Entropy comes from crypto/rand only.
package internal
