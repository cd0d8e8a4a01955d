package goCsrf

import "errors"

// Backend selects the cryptographic construction used by a Builder-built
// Protection.
type Backend int

const (
	// BackendHmac authenticates values with HMAC-SHA-256. Payload bytes are
	// visible in the encoded form.
	BackendHmac Backend = iota
	// BackendAesGcm encrypts and authenticates values with AES-256-GCM.
	BackendAesGcm
	// BackendChaCha20Poly1305 encrypts and authenticates values with
	// ChaCha20-Poly1305.
	BackendChaCha20Poly1305
)

func (b Backend) String() string {
	switch b {
	case BackendHmac:
		return backendHmac
	case BackendAesGcm:
		return backendAesGcm
	case BackendChaCha20Poly1305:
		return backendChaCha20Poly1305
	default:
		return "unknown"
	}
}

// Config collects construction-time settings. Instances are configured once
// and treated as immutable after Build.
type Config struct {
	Backend Backend
	KDF     KDFConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

// AuditConfig controls the async diagnostic event dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the lock-free counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns production defaults: AES-256-GCM, production KDF cost,
// metrics on, audit off.
func DefaultConfig() Config {
	return Config{
		Backend: BackendAesGcm,
		KDF:     ProductionKDF(),
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func validateConfig(cfg Config) error {
	switch cfg.Backend {
	case BackendHmac, BackendAesGcm, BackendChaCha20Poly1305:
	default:
		return errors.New("unknown backend")
	}

	if cfg.KDF.N < 2 || cfg.KDF.N&(cfg.KDF.N-1) != 0 {
		return errors.New("kdf N must be a power of two greater than one")
	}
	if cfg.KDF.R < 1 {
		return errors.New("kdf R must be >= 1")
	}
	if cfg.KDF.P < 1 {
		return errors.New("kdf P must be >= 1")
	}

	if cfg.Audit.Enabled && cfg.Audit.BufferSize < 1 {
		return errors.New("audit buffer size must be >= 1 when audit is enabled")
	}

	return nil
}
