package goCsrf

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"time"
)

// HMAC wire format, MAC-then-concatenate. The payload is visible in the
// encoded form; the security property is unforgeability, not secrecy.
//
//	token:  secret(64) ‖ HMAC-SHA-256(secret)(32)
//	cookie: secret(64) ‖ expires_le(8) ‖ HMAC-SHA-256(secret ‖ expires_le)(32)
//
// expires_le is the expiry in seconds since the Unix epoch, little-endian.
const (
	hmacTagSize    = sha256.Size
	hmacTokenSize  = SecretSize + hmacTagSize
	hmacCookieSize = SecretSize + expirySize + hmacTagSize
)

const expirySize = 8

// HmacProtection authenticates CSRF tokens and cookies with HMAC-SHA-256.
type HmacProtection struct {
	protection
	key [KeySize]byte
}

// NewHmacProtection constructs the backend from caller-supplied key material.
func NewHmacProtection(key [KeySize]byte) *HmacProtection {
	return &HmacProtection{protection: newProtection(backendHmac), key: key}
}

// HmacProtectionFromPassword derives key material from password with scrypt
// and constructs the backend around it. It panics if the underlying KDF fails
// catastrophically.
func HmacProtectionFromPassword(password []byte, kdf KDFConfig) *HmacProtection {
	return NewHmacProtection(DeriveKey(password, kdf))
}

func (h *HmacProtection) mac() hash.Hash {
	return hmac.New(sha256.New, h.key[:])
}

// GenerateToken encodes secret under the HMAC token wire format.
func (h *HmacProtection) GenerateToken(secret [SecretSize]byte) (Token, error) {
	mac := h.mac()
	mac.Write(secret[:])

	out := make([]byte, 0, hmacTokenSize)
	out = append(out, secret[:]...)
	out = mac.Sum(out)

	h.metrics.Inc(MetricTokenIssued)
	return NewToken(out), nil
}

// GenerateCookie encodes secret and an expiry of now+ttlSeconds under the
// HMAC cookie wire format.
func (h *HmacProtection) GenerateCookie(secret [SecretSize]byte, ttlSeconds int64) (Cookie, error) {
	var expiresLE [expirySize]byte
	binary.LittleEndian.PutUint64(expiresLE[:], uint64(h.expiresAt(ttlSeconds)))

	mac := h.mac()
	mac.Write(secret[:])
	mac.Write(expiresLE[:])

	out := make([]byte, 0, hmacCookieSize)
	out = append(out, secret[:]...)
	out = append(out, expiresLE[:]...)
	out = mac.Sum(out)

	h.metrics.Inc(MetricCookieIssued)
	return NewCookie(out), nil
}

// GenerateTokenPair issues a matching token and cookie, reusing the previous
// secret when given.
func (h *HmacProtection) GenerateTokenPair(previous *[SecretSize]byte, ttlSeconds int64) (Token, Cookie, error) {
	return h.makePair(h, previous, ttlSeconds)
}

// ParseToken verifies the carried MAC and recovers the secret.
func (h *HmacProtection) ParseToken(data []byte) (UnencryptedToken, error) {
	defer h.observeParse(time.Now())

	if len(data) != hmacTokenSize {
		return UnencryptedToken{}, h.rejectToken(auditReasonLength)
	}

	mac := h.mac()
	mac.Write(data[:SecretSize])
	if !hmac.Equal(mac.Sum(nil), data[SecretSize:]) {
		return UnencryptedToken{}, h.rejectToken(auditReasonIntegrity)
	}

	var token UnencryptedToken
	copy(token.secret[:], data[:SecretSize])

	h.metrics.Inc(MetricTokenParsed)
	return token, nil
}

// ParseCookie verifies the carried MAC and recovers the secret and expiry.
func (h *HmacProtection) ParseCookie(data []byte) (UnencryptedCookie, error) {
	defer h.observeParse(time.Now())

	if len(data) != hmacCookieSize {
		return UnencryptedCookie{}, h.rejectCookie(auditReasonLength)
	}

	mac := h.mac()
	mac.Write(data[:SecretSize+expirySize])
	if !hmac.Equal(mac.Sum(nil), data[SecretSize+expirySize:]) {
		return UnencryptedCookie{}, h.rejectCookie(auditReasonIntegrity)
	}

	cookie := UnencryptedCookie{
		expires: int64(binary.LittleEndian.Uint64(data[SecretSize : SecretSize+expirySize])),
	}
	copy(cookie.secret[:], data[:SecretSize])

	h.metrics.Inc(MetricCookieParsed)
	return cookie, nil
}
