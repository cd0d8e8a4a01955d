package goCsrf

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"io"
	"time"

	"github.com/MrEthical07/goCsrf/internal/audit"
	"github.com/google/uuid"
)

// Protection is the uniform contract implemented by every backend. A
// Protection instance holds immutable key material and is safe for concurrent
// use without external locking.
type Protection interface {
	// GenerateToken encodes the secret under this backend's token wire format.
	GenerateToken(secret [SecretSize]byte) (Token, error)
	// GenerateCookie encodes the secret plus an expiry of now+ttlSeconds under
	// this backend's cookie wire format. A negative TTL produces an
	// already-expired cookie, which callers may use to clear one.
	GenerateCookie(secret [SecretSize]byte, ttlSeconds int64) (Cookie, error)
	// GenerateTokenPair issues a matching token and cookie. When previous is
	// non-nil its secret is reused, refreshing the cookie expiry without
	// invalidating tokens already rendered to the user; otherwise a fresh
	// 64-byte secret is drawn.
	GenerateTokenPair(previous *[SecretSize]byte, ttlSeconds int64) (Token, Cookie, error)
	// ParseToken length-checks, verifies, and extracts a token. Any length
	// mismatch or integrity failure returns ErrValidationFailure. It never
	// panics on attacker-controlled input.
	ParseToken(data []byte) (UnencryptedToken, error)
	// ParseCookie length-checks, verifies, and extracts a cookie.
	ParseCookie(data []byte) (UnencryptedCookie, error)
	// VerifyTokenPair reports whether the secrets match and the cookie has not
	// expired. It is a pure function of already-decoded values and performs no
	// cryptography.
	VerifyTokenPair(token UnencryptedToken, cookie UnencryptedCookie) bool
	// RandomBytes fills buf with CSPRNG output; failure maps to ErrInternal.
	RandomBytes(buf []byte) error

	// MetricsSnapshot returns the current metric counters and histograms.
	MetricsSnapshot() MetricsSnapshot
	// AuditDropped returns the number of audit events dropped under
	// backpressure.
	AuditDropped() uint64
	// Close flushes and stops the audit dispatcher, if any.
	Close()
}

const (
	backendHmac             = "hmac_sha256"
	backendAesGcm           = "aes256_gcm"
	backendChaCha20Poly1305 = "chacha20poly1305"
)

const (
	auditEventTokenRejected  = "token_rejected"
	auditEventCookieRejected = "cookie_rejected"
	auditEventPairRejected   = "pair_rejected"
	auditEventRandomFailure  = "random_source_failure"

	auditReasonLength    = "length"
	auditReasonIntegrity = "integrity"
	auditReasonPairing   = "pairing"
	auditReasonExpiry    = "expiry"
)

// pairGenerator is the slice of the backend contract needed to compose a pair.
type pairGenerator interface {
	GenerateToken(secret [SecretSize]byte) (Token, error)
	GenerateCookie(secret [SecretSize]byte, ttlSeconds int64) (Cookie, error)
}

// protection carries the state shared by every backend: the random source,
// clock, and diagnostic hooks. Key material lives in the backend structs.
type protection struct {
	backendName string
	rng         io.Reader
	now         func() int64
	metrics     *Metrics
	audit       *audit.Dispatcher
}

func newProtection(backendName string) protection {
	return protection{
		backendName: backendName,
		rng:         rand.Reader,
		now:         func() int64 { return time.Now().Unix() },
	}
}

// RandomBytes fills buf from the configured CSPRNG.
func (p *protection) RandomBytes(buf []byte) error {
	if _, err := io.ReadFull(p.rng, buf); err != nil {
		p.metrics.Inc(MetricRandomSourceFailure)
		p.emitAudit(auditEventRandomFailure, "", "")
		return ErrInternal
	}
	return nil
}

// VerifyTokenPair checks secret equality and cookie freshness. Both checks
// always run so that diagnostics classify every failing condition.
func (p *protection) VerifyTokenPair(token UnencryptedToken, cookie UnencryptedCookie) bool {
	secretsMatch := subtle.ConstantTimeCompare(token.secret[:], cookie.secret[:]) == 1
	if !secretsMatch {
		p.metrics.Inc(MetricPairRejectedMismatch)
		p.emitAudit(auditEventPairRejected, "pair", auditReasonPairing)
	}

	notExpired := cookie.expires > p.now()
	if !notExpired {
		p.metrics.Inc(MetricPairRejectedExpired)
		p.emitAudit(auditEventPairRejected, "pair", auditReasonExpiry)
	}

	if secretsMatch && notExpired {
		p.metrics.Inc(MetricPairVerified)
		return true
	}
	return false
}

func (p *protection) MetricsSnapshot() MetricsSnapshot {
	return p.metrics.Snapshot()
}

func (p *protection) AuditDropped() uint64 {
	return p.audit.Dropped()
}

func (p *protection) Close() {
	p.audit.Close()
}

// makePair implements GenerateTokenPair on behalf of a backend. A random
// source failure propagates as ErrInternal; a failure in either generate step
// collapses to ErrValidationFailure without distinguishing which half failed.
func (p *protection) makePair(g pairGenerator, previous *[SecretSize]byte, ttlSeconds int64) (Token, Cookie, error) {
	var secret [SecretSize]byte
	if previous != nil {
		secret = *previous
		p.metrics.Inc(MetricSecretReused)
	} else {
		if err := p.RandomBytes(secret[:]); err != nil {
			return Token{}, Cookie{}, err
		}
	}

	token, tokenErr := g.GenerateToken(secret)
	cookie, cookieErr := g.GenerateCookie(secret, ttlSeconds)
	if tokenErr != nil || cookieErr != nil {
		return Token{}, Cookie{}, ErrValidationFailure
	}

	p.metrics.Inc(MetricPairIssued)
	return token, cookie, nil
}

func (p *protection) expiresAt(ttlSeconds int64) int64 {
	return p.now() + ttlSeconds
}

// rejectToken records a token rejection and returns the validation error.
func (p *protection) rejectToken(reason string) error {
	switch reason {
	case auditReasonLength:
		p.metrics.Inc(MetricTokenRejectedLength)
	case auditReasonIntegrity:
		p.metrics.Inc(MetricTokenRejectedIntegrity)
	}
	p.emitAudit(auditEventTokenRejected, "token", reason)
	return ErrValidationFailure
}

// rejectCookie records a cookie rejection and returns the validation error.
func (p *protection) rejectCookie(reason string) error {
	switch reason {
	case auditReasonLength:
		p.metrics.Inc(MetricCookieRejectedLength)
	case auditReasonIntegrity:
		p.metrics.Inc(MetricCookieRejectedIntegrity)
	}
	p.emitAudit(auditEventCookieRejected, "cookie", reason)
	return ErrValidationFailure
}

func (p *protection) observeParse(start time.Time) {
	p.metrics.Observe(MetricParseLatency, time.Since(start))
}

// emitAudit publishes a classification-only event. Events never carry secret
// or key material.
func (p *protection) emitAudit(eventType, kind, reason string) {
	if p.audit == nil {
		return
	}
	p.audit.Emit(context.Background(), audit.Event{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		Backend:   p.backendName,
		Kind:      kind,
		Reason:    reason,
	})
}
