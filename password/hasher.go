package password

// Hasher is the one-way password transform consumed by the Engine. Hash is
// deterministic only for the [Legacy] scheme; Verify must hold for every
// digest the same Hasher produced.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) (bool, error)
}
