package goCsrf

import (
	"crypto/cipher"
	"encoding/binary"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
)

// ChaCha20-Poly1305 wire format. Identical layout and semantics to AES-GCM
// except the wire nonce is 8 bytes, shrinking the transport by 4 bytes.
//
//	token plaintext:  padding(16) ‖ secret(64)
//	cookie plaintext: padding(16) ‖ expires_le(8) ‖ secret(64)
//	transport:        ciphertext ‖ nonce(8) ‖ tag(16)
//
// The cipher itself runs the 12-byte IETF construction; the 8-byte wire nonce
// is expanded with a zero 4-byte prefix before sealing and opening.
const (
	chaChaWireNonceSize = 8
	chaChaTokenSize     = aeadTokenPlaintextSize + chaChaWireNonceSize + aeadTagSize
	chaChaCookieSize    = aeadCookiePlaintextSize + chaChaWireNonceSize + aeadTagSize
)

// ChaCha20Poly1305Protection encrypts and authenticates CSRF tokens and
// cookies with ChaCha20-Poly1305.
type ChaCha20Poly1305Protection struct {
	protection
	key  [KeySize]byte
	aead cipher.AEAD
}

// NewChaCha20Poly1305Protection constructs the backend from caller-supplied
// key material.
func NewChaCha20Poly1305Protection(key [KeySize]byte) *ChaCha20Poly1305Protection {
	aead, err := chacha20poly1305.New(key[:])
	if err != nil {
		// Unreachable: the key length is fixed by the type.
		panic("goCsrf: chacha20poly1305 init: " + err.Error())
	}
	return &ChaCha20Poly1305Protection{
		protection: newProtection(backendChaCha20Poly1305),
		key:        key,
		aead:       aead,
	}
}

// ChaCha20Poly1305ProtectionFromPassword derives key material from password
// with scrypt and constructs the backend around it. It panics if the
// underlying KDF fails catastrophically.
func ChaCha20Poly1305ProtectionFromPassword(password []byte, kdf KDFConfig) *ChaCha20Poly1305Protection {
	return NewChaCha20Poly1305Protection(DeriveKey(password, kdf))
}

func expandChaChaNonce(wire []byte) [chacha20poly1305.NonceSize]byte {
	var nonce [chacha20poly1305.NonceSize]byte
	copy(nonce[chacha20poly1305.NonceSize-chaChaWireNonceSize:], wire)
	return nonce
}

// GenerateToken encodes secret under the ChaCha20-Poly1305 token wire format.
func (c *ChaCha20Poly1305Protection) GenerateToken(secret [SecretSize]byte) (Token, error) {
	var wireNonce [chaChaWireNonceSize]byte
	if err := c.RandomBytes(wireNonce[:]); err != nil {
		return Token{}, err
	}

	plaintext := make([]byte, aeadTokenPlaintextSize)
	if err := c.RandomBytes(plaintext[:aeadPaddingSize]); err != nil {
		return Token{}, err
	}
	copy(plaintext[aeadPaddingSize:], secret[:])

	nonce := expandChaChaNonce(wireNonce[:])
	sealed := c.aead.Seal(nil, nonce[:], plaintext, nil)

	out := make([]byte, 0, chaChaTokenSize)
	out = append(out, sealed[:aeadTokenPlaintextSize]...)
	out = append(out, wireNonce[:]...)
	out = append(out, sealed[aeadTokenPlaintextSize:]...)

	c.metrics.Inc(MetricTokenIssued)
	return NewToken(out), nil
}

// GenerateCookie encodes secret and an expiry of now+ttlSeconds under the
// ChaCha20-Poly1305 cookie wire format.
func (c *ChaCha20Poly1305Protection) GenerateCookie(secret [SecretSize]byte, ttlSeconds int64) (Cookie, error) {
	var wireNonce [chaChaWireNonceSize]byte
	if err := c.RandomBytes(wireNonce[:]); err != nil {
		return Cookie{}, err
	}

	plaintext := make([]byte, aeadCookiePlaintextSize)
	if err := c.RandomBytes(plaintext[:aeadPaddingSize]); err != nil {
		return Cookie{}, err
	}
	binary.LittleEndian.PutUint64(plaintext[aeadPaddingSize:], uint64(c.expiresAt(ttlSeconds)))
	copy(plaintext[aeadPaddingSize+expirySize:], secret[:])

	nonce := expandChaChaNonce(wireNonce[:])
	sealed := c.aead.Seal(nil, nonce[:], plaintext, nil)

	out := make([]byte, 0, chaChaCookieSize)
	out = append(out, sealed[:aeadCookiePlaintextSize]...)
	out = append(out, wireNonce[:]...)
	out = append(out, sealed[aeadCookiePlaintextSize:]...)

	c.metrics.Inc(MetricCookieIssued)
	return NewCookie(out), nil
}

// GenerateTokenPair issues a matching token and cookie, reusing the previous
// secret when given.
func (c *ChaCha20Poly1305Protection) GenerateTokenPair(previous *[SecretSize]byte, ttlSeconds int64) (Token, Cookie, error) {
	return c.makePair(c, previous, ttlSeconds)
}

// ParseToken authenticates and decrypts a token and recovers the secret.
func (c *ChaCha20Poly1305Protection) ParseToken(data []byte) (UnencryptedToken, error) {
	defer c.observeParse(time.Now())

	if len(data) != chaChaTokenSize {
		return UnencryptedToken{}, c.rejectToken(auditReasonLength)
	}

	nonce := expandChaChaNonce(data[aeadTokenPlaintextSize : aeadTokenPlaintextSize+chaChaWireNonceSize])

	sealed := make([]byte, 0, aeadTokenPlaintextSize+aeadTagSize)
	sealed = append(sealed, data[:aeadTokenPlaintextSize]...)
	sealed = append(sealed, data[aeadTokenPlaintextSize+chaChaWireNonceSize:]...)

	plaintext, err := c.aead.Open(nil, nonce[:], sealed, nil)
	if err != nil {
		return UnencryptedToken{}, c.rejectToken(auditReasonIntegrity)
	}

	var token UnencryptedToken
	copy(token.secret[:], plaintext[aeadPaddingSize:])

	c.metrics.Inc(MetricTokenParsed)
	return token, nil
}

// ParseCookie authenticates and decrypts a cookie and recovers the secret and
// expiry.
func (c *ChaCha20Poly1305Protection) ParseCookie(data []byte) (UnencryptedCookie, error) {
	defer c.observeParse(time.Now())

	if len(data) != chaChaCookieSize {
		return UnencryptedCookie{}, c.rejectCookie(auditReasonLength)
	}

	nonce := expandChaChaNonce(data[aeadCookiePlaintextSize : aeadCookiePlaintextSize+chaChaWireNonceSize])

	sealed := make([]byte, 0, aeadCookiePlaintextSize+aeadTagSize)
	sealed = append(sealed, data[:aeadCookiePlaintextSize]...)
	sealed = append(sealed, data[aeadCookiePlaintextSize+chaChaWireNonceSize:]...)

	plaintext, err := c.aead.Open(nil, nonce[:], sealed, nil)
	if err != nil {
		return UnencryptedCookie{}, c.rejectCookie(auditReasonIntegrity)
	}

	cookie := UnencryptedCookie{
		expires: int64(binary.LittleEndian.Uint64(plaintext[aeadPaddingSize : aeadPaddingSize+expirySize])),
	}
	copy(cookie.secret[:], plaintext[aeadPaddingSize+expirySize:])

	c.metrics.Inc(MetricCookieParsed)
	return cookie, nil
}
