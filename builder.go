package goCsrf

import (
	"errors"
	"io"

	"github.com/MrEthical07/goCsrf/internal/audit"
)

// Builder assembles a Protection instance with diagnostics wired in. The
// zero-dependency path remains the direct per-backend constructors; use the
// Builder when you want metrics, audit events, or config-driven backend
// selection.
type Builder struct {
	config    Config
	key       *[KeySize]byte
	password  []byte
	auditSink AuditSink
	rng       io.Reader
	built     bool
}

// New returns a Builder seeded with DefaultConfig.
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the entire configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithBackend selects the cryptographic backend.
func (b *Builder) WithBackend(backend Backend) *Builder {
	b.config.Backend = backend
	return b
}

// WithKDF sets the scrypt cost used when building from a password.
func (b *Builder) WithKDF(cfg KDFConfig) *Builder {
	b.config.KDF = cfg
	return b
}

// WithKey supplies externally managed key material directly.
func (b *Builder) WithKey(key [KeySize]byte) *Builder {
	k := key
	b.key = &k
	return b
}

// WithPassword derives key material from password at Build time, using the
// configured KDF cost.
func (b *Builder) WithPassword(password []byte) *Builder {
	b.password = password
	return b
}

// WithAuditSink enables audit dispatch into sink and turns audit on.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithRandomSource replaces the CSPRNG. Intended for tests and hardware
// randomness sources; the reader must be safe for concurrent use.
func (b *Builder) WithRandomSource(r io.Reader) *Builder {
	b.rng = r
	return b
}

// Build validates the configuration, derives or adopts key material, and
// returns the wired Protection. A Builder can be consumed once.
func (b *Builder) Build() (Protection, error) {
	if b.built {
		return nil, errors.New("builder already consumed")
	}
	if err := validateConfig(b.config); err != nil {
		return nil, err
	}
	if b.key == nil && b.password == nil {
		return nil, errors.New("key material required: call WithKey or WithPassword")
	}
	if b.key != nil && b.password != nil {
		return nil, errors.New("WithKey and WithPassword are mutually exclusive")
	}

	var key [KeySize]byte
	if b.key != nil {
		key = *b.key
	} else {
		key = DeriveKey(b.password, b.config.KDF)
	}

	var (
		prot Protection
		core *protection
	)
	switch b.config.Backend {
	case BackendHmac:
		p := NewHmacProtection(key)
		prot, core = p, &p.protection
	case BackendAesGcm:
		p := NewAesGcmProtection(key)
		prot, core = p, &p.protection
	case BackendChaCha20Poly1305:
		p := NewChaCha20Poly1305Protection(key)
		prot, core = p, &p.protection
	}

	core.metrics = NewMetrics(b.config.Metrics)
	if b.config.Audit.Enabled {
		sink := b.auditSink
		if sink == nil {
			sink = NoOpSink{}
		}
		core.audit = audit.NewDispatcher(audit.Config{
			Enabled:    true,
			BufferSize: b.config.Audit.BufferSize,
			DropIfFull: b.config.Audit.DropIfFull,
		}, bridgeSink{sink: sink})
	}
	if b.rng != nil {
		core.rng = b.rng
	}

	b.built = true
	return prot, nil
}
