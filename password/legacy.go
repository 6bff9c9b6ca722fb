package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// Legacy is the salt-less SHA-256 scheme: digest = base64(sha256(plaintext)),
// standard encoding with padding. Identical plaintexts always produce
// identical digests, which is exactly why this scheme should not outlive the
// credential migration it exists for.
type Legacy struct{}

// NewLegacy returns the legacy [Hasher]. It never fails; the scheme has no
// parameters.
func NewLegacy() *Legacy {
	return &Legacy{}
}

// Hash computes the salt-less digest for plaintext.
func (l *Legacy) Hash(plaintext string) (string, error) {
	sum := sha256.Sum256([]byte(plaintext))
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

// Verify recomputes the digest for plaintext and compares it to digest in
// constant time. A structurally invalid digest verifies false, never errors:
// credential mismatch is data, not a fault.
func (l *Legacy) Verify(plaintext, digest string) (bool, error) {
	stored, err := base64.StdEncoding.DecodeString(digest)
	if err != nil {
		return false, nil
	}
	computed := sha256.Sum256([]byte(plaintext))
	return subtle.ConstantTimeCompare(computed[:], stored) == 1, nil
}
