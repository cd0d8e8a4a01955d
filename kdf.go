package goCsrf

import "golang.org/x/crypto/scrypt"

// kdfSalt is fixed and compiled in. Identical passwords therefore derive
// identical keys across deployments; see the package documentation.
var kdfSalt = []byte("goCsrf-scrypt-key-derivation-salt")

// KDFConfig holds scrypt cost parameters for password-based key derivation.
type KDFConfig struct {
	// N is the CPU/memory cost; it must be a power of two greater than one.
	N int
	// R is the block size parameter.
	R int
	// P is the parallelism parameter.
	P int
}

// ProductionKDF returns the deployment-grade cost preset. Derivation at this
// cost is deliberately slow and is expected to run once at startup, not
// per-request.
func ProductionKDF() KDFConfig {
	return KDFConfig{N: 1 << 12, R: 8, P: 1}
}

// FastKDF returns a minimal-cost preset for tests and local iteration. Never
// use it with real passwords.
func FastKDF() KDFConfig {
	return KDFConfig{N: 2, R: 8, P: 1}
}

// DeriveKey derives 32 bytes of backend key material from password. A KDF
// failure is unrecoverable and panics; validate cost parameters up front via
// the Builder if they come from configuration.
func DeriveKey(password []byte, cfg KDFConfig) [KeySize]byte {
	raw, err := scrypt.Key(password, kdfSalt, cfg.N, cfg.R, cfg.P, KeySize)
	if err != nil {
		panic("goCsrf: scrypt key derivation: " + err.Error())
	}

	var key [KeySize]byte
	copy(key[:], raw)
	return key
}
