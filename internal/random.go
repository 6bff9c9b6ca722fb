package internal

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

// refreshTokenRawSize is the number of random bytes behind one opaque
// refresh-token value. 48 bytes keeps well above the 256-bit entropy floor.
const refreshTokenRawSize = 48

// NewRefreshTokenValue generates one opaque refresh-token value: 48 bytes from
// crypto/rand, base64url-encoded without padding. The plaintext value is handed
// to the caller exactly once; stores only ever see its hash.
func NewRefreshTokenValue() (string, error) {
	var raw [refreshTokenRawSize]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw[:]), nil
}

// ValidateRefreshTokenValue performs structural validation of a presented
// token value without any I/O. Values that cannot have been produced by
// NewRefreshTokenValue are rejected before the store is consulted.
func ValidateRefreshTokenValue(value string) error {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return errors.New("invalid refresh token encoding")
	}
	if len(raw) != refreshTokenRawSize {
		return errors.New("invalid refresh token size")
	}
	return nil
}

// HashRefreshTokenValue returns the SHA-256 digest used as the storage key for
// a token value.
func HashRefreshTokenValue(value string) [32]byte {
	return sha256.Sum256([]byte(value))
}
