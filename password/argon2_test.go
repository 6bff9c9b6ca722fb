package password

import (
	"strings"
	"testing"
)

func secureParams() Params {
	return Params{
		Memory:      65536,
		Time:        3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestArgon2HashAndVerify(t *testing.T) {
	hasher, err := NewArgon2(secureParams())
	if err != nil {
		t.Fatalf("NewArgon2 error: %v", err)
	}

	digest, err := hasher.Hash("P@ssw0rd-Ascii")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	if !strings.HasPrefix(digest, "$argon2id$v=19$m=65536,t=3,p=2$") {
		t.Fatalf("unexpected PHC prefix: %s", digest)
	}

	ok, err := hasher.Verify("P@ssw0rd-Ascii", digest)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if !ok {
		t.Fatal("expected password verification to succeed")
	}
}

func TestArgon2VerifyWrongPassword(t *testing.T) {
	hasher, err := NewArgon2(secureParams())
	if err != nil {
		t.Fatalf("NewArgon2 error: %v", err)
	}

	digest, err := hasher.Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	ok, err := hasher.Verify("wrong-password", digest)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if ok {
		t.Fatal("expected wrong password verification to fail")
	}
}

func TestArgon2SaltedDigestsDiffer(t *testing.T) {
	hasher, err := NewArgon2(secureParams())
	if err != nil {
		t.Fatalf("NewArgon2 error: %v", err)
	}

	first, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first == second {
		t.Fatal("per-record salt must make repeated digests differ")
	}
}

func TestArgon2VerifyForeignDigest(t *testing.T) {
	hasher, err := NewArgon2(secureParams())
	if err != nil {
		t.Fatalf("NewArgon2 error: %v", err)
	}

	legacyDigest, err := NewLegacy().Hash("shared-secret")
	if err != nil {
		t.Fatalf("legacy Hash error: %v", err)
	}

	ok, err := hasher.Verify("shared-secret", legacyDigest)
	if err != nil {
		t.Fatalf("foreign digest must not error: %v", err)
	}
	if ok {
		t.Fatal("foreign digest must not verify")
	}
}

func TestArgon2ParamFloors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Params)
	}{
		{"memory", func(p *Params) { p.Memory = 1024 }},
		{"time", func(p *Params) { p.Time = 0 }},
		{"parallelism", func(p *Params) { p.Parallelism = 0 }},
		{"salt", func(p *Params) { p.SaltLength = 8 }},
		{"key", func(p *Params) { p.KeyLength = 8 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := secureParams()
			tc.mutate(&params)
			if _, err := NewArgon2(params); err == nil {
				t.Fatal("expected construction to fail below parameter floor")
			}
		})
	}
}

func TestArgon2NeedsRehash(t *testing.T) {
	weak := secureParams()
	weak.Time = 1
	weakHasher, err := NewArgon2(weak)
	if err != nil {
		t.Fatalf("NewArgon2 error: %v", err)
	}
	digest, err := weakHasher.Hash("migrating-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}

	strong, err := NewArgon2(secureParams())
	if err != nil {
		t.Fatalf("NewArgon2 error: %v", err)
	}

	upgrade, err := strong.NeedsRehash(digest)
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if !upgrade {
		t.Fatal("expected weaker digest to need rehash")
	}

	current, err := strong.Hash("migrating-password")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	upgrade, err = strong.NeedsRehash(current)
	if err != nil {
		t.Fatalf("NeedsRehash error: %v", err)
	}
	if upgrade {
		t.Fatal("current-parameter digest must not need rehash")
	}
}
