package password

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func TestLegacyHashDeterministic(t *testing.T) {
	hasher := NewLegacy()

	first, err := hasher.Hash("s3cret-payload")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := hasher.Hash("s3cret-payload")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first != second {
		t.Fatalf("expected deterministic digest, got %q vs %q", first, second)
	}

	other, err := hasher.Hash("s3cret-payloae")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if other == first {
		t.Fatal("distinct plaintexts produced the same digest")
	}
}

func TestLegacyDigestFormat(t *testing.T) {
	hasher := NewLegacy()

	digest, err := hasher.Hash("admin123")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	sum := sha256.Sum256([]byte("admin123"))
	want := base64.StdEncoding.EncodeToString(sum[:])
	if digest != want {
		t.Fatalf("digest format drifted from base64(sha256): got %q want %q", digest, want)
	}
}

func TestLegacyVerifyRoundTrip(t *testing.T) {
	hasher := NewLegacy()

	digest, err := hasher.Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := hasher.Verify("correct-password", digest)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected matching password to verify")
	}

	ok, err = hasher.Verify("wrong-password", digest)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatal("expected mismatched password to fail verification")
	}
}

func TestLegacyVerifyMalformedDigest(t *testing.T) {
	hasher := NewLegacy()

	ok, err := hasher.Verify("anything", "not!base64!!")
	if err != nil {
		t.Fatalf("malformed digest must not error: %v", err)
	}
	if ok {
		t.Fatal("malformed digest must not verify")
	}
}
