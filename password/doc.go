// Package password implements one-way password hashing and verification behind
// a single [Hasher] contract.
//
// # Schemes
//
// Two schemes are provided:
//
//   - [Legacy] — deterministic salt-less SHA-256, base64-encoded. This
//     reproduces the digest format of the system payauth replaces so existing
//     stored digests keep verifying. It is a known-weak construction: no salt,
//     no work factor. Keep it only while migrating stored credentials.
//   - [Argon2] — argon2id with per-record salt in PHC string format:
//
//     $argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// Both schemes verify with constant-time comparison.
//
// # Architecture boundaries
//
// This package owns hashing and verification only. Password policy (minimum
// length, registration rules) is enforced by the registration validator.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords — callers supply plaintext and receive digests.
//   - Import any other payauth package.
//   - Log plaintext passwords or hash parameters at runtime.
package password
