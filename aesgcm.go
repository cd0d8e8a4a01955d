package goCsrf

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"
	"time"
)

// AES-256-GCM wire format. Plaintexts are prefixed with 16 bytes of random
// padding, drawn fresh per encode and discarded on decode; it masks any
// accidental plaintext-length side channel and is not otherwise meaningful.
//
//	token plaintext:  padding(16) ‖ secret(64)
//	cookie plaintext: padding(16) ‖ expires_le(8) ‖ secret(64)
//	transport:        ciphertext ‖ nonce(12) ‖ tag(16)
const (
	aeadPaddingSize = 16
	aeadTagSize     = 16

	aeadTokenPlaintextSize  = aeadPaddingSize + SecretSize
	aeadCookiePlaintextSize = aeadPaddingSize + expirySize + SecretSize

	aesGcmNonceSize  = 12
	aesGcmTokenSize  = aeadTokenPlaintextSize + aesGcmNonceSize + aeadTagSize
	aesGcmCookieSize = aeadCookiePlaintextSize + aesGcmNonceSize + aeadTagSize
)

// AesGcmProtection encrypts and authenticates CSRF tokens and cookies with
// AES-256-GCM.
type AesGcmProtection struct {
	protection
	key  [KeySize]byte
	aead cipher.AEAD
}

// NewAesGcmProtection constructs the backend from caller-supplied key
// material.
func NewAesGcmProtection(key [KeySize]byte) *AesGcmProtection {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		// Unreachable: the key length is fixed by the type.
		panic("goCsrf: aes cipher init: " + err.Error())
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		panic("goCsrf: gcm init: " + err.Error())
	}
	return &AesGcmProtection{
		protection: newProtection(backendAesGcm),
		key:        key,
		aead:       aead,
	}
}

// AesGcmProtectionFromPassword derives key material from password with scrypt
// and constructs the backend around it. It panics if the underlying KDF fails
// catastrophically.
func AesGcmProtectionFromPassword(password []byte, kdf KDFConfig) *AesGcmProtection {
	return NewAesGcmProtection(DeriveKey(password, kdf))
}

// GenerateToken encodes secret under the AES-GCM token wire format.
func (a *AesGcmProtection) GenerateToken(secret [SecretSize]byte) (Token, error) {
	var nonce [aesGcmNonceSize]byte
	if err := a.RandomBytes(nonce[:]); err != nil {
		return Token{}, err
	}

	plaintext := make([]byte, aeadTokenPlaintextSize)
	if err := a.RandomBytes(plaintext[:aeadPaddingSize]); err != nil {
		return Token{}, err
	}
	copy(plaintext[aeadPaddingSize:], secret[:])

	// Seal appends ciphertext‖tag; the wire carries ciphertext‖nonce‖tag.
	sealed := a.aead.Seal(nil, nonce[:], plaintext, nil)

	out := make([]byte, 0, aesGcmTokenSize)
	out = append(out, sealed[:aeadTokenPlaintextSize]...)
	out = append(out, nonce[:]...)
	out = append(out, sealed[aeadTokenPlaintextSize:]...)

	a.metrics.Inc(MetricTokenIssued)
	return NewToken(out), nil
}

// GenerateCookie encodes secret and an expiry of now+ttlSeconds under the
// AES-GCM cookie wire format.
func (a *AesGcmProtection) GenerateCookie(secret [SecretSize]byte, ttlSeconds int64) (Cookie, error) {
	var nonce [aesGcmNonceSize]byte
	if err := a.RandomBytes(nonce[:]); err != nil {
		return Cookie{}, err
	}

	plaintext := make([]byte, aeadCookiePlaintextSize)
	if err := a.RandomBytes(plaintext[:aeadPaddingSize]); err != nil {
		return Cookie{}, err
	}
	binary.LittleEndian.PutUint64(plaintext[aeadPaddingSize:], uint64(a.expiresAt(ttlSeconds)))
	copy(plaintext[aeadPaddingSize+expirySize:], secret[:])

	sealed := a.aead.Seal(nil, nonce[:], plaintext, nil)

	out := make([]byte, 0, aesGcmCookieSize)
	out = append(out, sealed[:aeadCookiePlaintextSize]...)
	out = append(out, nonce[:]...)
	out = append(out, sealed[aeadCookiePlaintextSize:]...)

	a.metrics.Inc(MetricCookieIssued)
	return NewCookie(out), nil
}

// GenerateTokenPair issues a matching token and cookie, reusing the previous
// secret when given.
func (a *AesGcmProtection) GenerateTokenPair(previous *[SecretSize]byte, ttlSeconds int64) (Token, Cookie, error) {
	return a.makePair(a, previous, ttlSeconds)
}

// ParseToken authenticates and decrypts a token and recovers the secret.
func (a *AesGcmProtection) ParseToken(data []byte) (UnencryptedToken, error) {
	defer a.observeParse(time.Now())

	if len(data) != aesGcmTokenSize {
		return UnencryptedToken{}, a.rejectToken(auditReasonLength)
	}

	nonce := data[aeadTokenPlaintextSize : aeadTokenPlaintextSize+aesGcmNonceSize]

	sealed := make([]byte, 0, aeadTokenPlaintextSize+aeadTagSize)
	sealed = append(sealed, data[:aeadTokenPlaintextSize]...)
	sealed = append(sealed, data[aeadTokenPlaintextSize+aesGcmNonceSize:]...)

	plaintext, err := a.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return UnencryptedToken{}, a.rejectToken(auditReasonIntegrity)
	}

	var token UnencryptedToken
	copy(token.secret[:], plaintext[aeadPaddingSize:])

	a.metrics.Inc(MetricTokenParsed)
	return token, nil
}

// ParseCookie authenticates and decrypts a cookie and recovers the secret and
// expiry.
func (a *AesGcmProtection) ParseCookie(data []byte) (UnencryptedCookie, error) {
	defer a.observeParse(time.Now())

	if len(data) != aesGcmCookieSize {
		return UnencryptedCookie{}, a.rejectCookie(auditReasonLength)
	}

	nonce := data[aeadCookiePlaintextSize : aeadCookiePlaintextSize+aesGcmNonceSize]

	sealed := make([]byte, 0, aeadCookiePlaintextSize+aeadTagSize)
	sealed = append(sealed, data[:aeadCookiePlaintextSize]...)
	sealed = append(sealed, data[aeadCookiePlaintextSize+aesGcmNonceSize:]...)

	plaintext, err := a.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return UnencryptedCookie{}, a.rejectCookie(auditReasonIntegrity)
	}

	cookie := UnencryptedCookie{
		expires: int64(binary.LittleEndian.Uint64(plaintext[aeadPaddingSize : aeadPaddingSize+expirySize])),
	}
	copy(cookie.secret[:], plaintext[aeadPaddingSize+expirySize:])

	a.metrics.Inc(MetricCookieParsed)
	return cookie, nil
}
