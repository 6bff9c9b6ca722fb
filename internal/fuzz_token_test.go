package internal

import (
	"encoding/base64"
	"testing"
)

// FuzzValidateRefreshTokenValue exercises token-value validation with
// arbitrary strings. Goal: no panics; only values that NewRefreshTokenValue
// could have produced are accepted.
func FuzzValidateRefreshTokenValue(f *testing.F) {
	f.Add("")
	f.Add("abc")
	f.Add("!!!not-base64!!!")
	f.Add("aGVsbG8=")

	if value, err := NewRefreshTokenValue(); err == nil {
		f.Add(value)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if err := ValidateRefreshTokenValue(input); err != nil {
			return
		}

		// Accepted values must decode back to exactly the generated size.
		raw, err := base64.RawURLEncoding.DecodeString(input)
		if err != nil {
			t.Fatalf("accepted value does not decode: %v", err)
		}
		if len(raw) != refreshTokenRawSize {
			t.Fatalf("accepted value has %d raw bytes", len(raw))
		}
	})
}
