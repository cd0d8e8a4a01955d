package goCsrf

import "encoding/base64"

// Conventional identifiers for collaborators carrying CSRF values over HTTP.
// The core does not enforce them.
const (
	// CookieName is the suggested cookie name for the CSRF cookie value.
	CookieName = "csrf"
	// FormFieldName is the suggested hidden-form-field name for the CSRF token.
	FormFieldName = "csrf-token"
	// HeaderName is the suggested request header name for the CSRF token.
	HeaderName = "X-CSRF-Token"
	// QueryParamName is the suggested query parameter name for the CSRF token.
	QueryParamName = "csrf-token"
)

const (
	// SecretSize is the length of the random secret value shared between a
	// token and its paired cookie.
	SecretSize = 64
	// KeySize is the length of backend key material.
	KeySize = 32
)

// Token is a signed (and, for AEAD backends, encrypted) CSRF token suitable to
// be delivered to end users in a form field, header, or query string.
type Token struct {
	bytes []byte
}

// NewToken wraps already-encoded token bytes.
func NewToken(bytes []byte) Token {
	return Token{bytes: bytes}
}

// B64String returns the token encoded with the standard base64 alphabet.
func (t Token) B64String() string {
	return base64.StdEncoding.EncodeToString(t.bytes)
}

// B64URLString returns the token encoded with the URL-safe base64 alphabet,
// for embedding in query strings.
func (t Token) B64URLString() string {
	return base64.URLEncoding.EncodeToString(t.bytes)
}

// Value returns the raw encoded bytes.
func (t Token) Value() []byte {
	return t.bytes
}

// Cookie is a signed (and, for AEAD backends, encrypted) CSRF cookie suitable
// to be delivered to end users via Set-Cookie.
type Cookie struct {
	bytes []byte
}

// NewCookie wraps already-encoded cookie bytes.
func NewCookie(bytes []byte) Cookie {
	return Cookie{bytes: bytes}
}

// B64String returns the cookie encoded with the standard base64 alphabet.
func (c Cookie) B64String() string {
	return base64.StdEncoding.EncodeToString(c.bytes)
}

// Value returns the raw encoded bytes.
func (c Cookie) Value() []byte {
	return c.bytes
}

// UnencryptedToken is the verified plaintext of a token. It is produced only
// by a successful ParseToken and is not suitable to send to end users.
type UnencryptedToken struct {
	secret [SecretSize]byte
}

// Value returns the recovered secret bytes.
func (t UnencryptedToken) Value() []byte {
	return t.secret[:]
}

// UnencryptedCookie is the verified plaintext of a cookie. It is produced only
// by a successful ParseCookie and is not suitable to send to end users.
type UnencryptedCookie struct {
	expires int64
	secret  [SecretSize]byte
}

// Value returns the recovered secret bytes.
func (c UnencryptedCookie) Value() []byte {
	return c.secret[:]
}

// Expires returns the cookie expiry as seconds since the Unix epoch.
func (c UnencryptedCookie) Expires() int64 {
	return c.expires
}
