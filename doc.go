// Package goCsrf implements the double-submit-cookie CSRF defense: it issues a
// matched token/cookie pair bound by a shared 64-byte secret, and verifies on
// each request that the presented pair was issued together under the same key
// and has not expired or been tampered with.
//
// Three interchangeable backends implement the [Protection] contract over
// distinct wire formats: HMAC-SHA-256 (integrity only, payload visible),
// AES-256-GCM, and ChaCha20-Poly1305 (both confidential and authenticated).
// Key material is either supplied directly (32 bytes) or derived from a
// password with scrypt.
//
// The package is designed for concurrent server workloads: a Protection
// instance is immutable after construction and safe to share across
// goroutines without locking.
//
// # Architecture boundaries
//
// goCsrf is the protection core only. It produces and consumes opaque byte
// strings; delivering the cookie via Set-Cookie, carrying the token in a form
// field, header, or query string, and routing requests are collaborator
// responsibilities. The conventional identifiers for those collaborators
// ([CookieName], [FormFieldName], [HeaderName], [QueryParamName]) are exported
// but not enforced here.
//
// # What this package must NOT do
//
//   - Persist anything: tokens and cookies are created, transit opaquely, and
//     are discarded after verification.
//   - Set HTTP headers or cookies, or type against any web framework.
//   - Store, rotate, or serialize key material.
//
// # Key derivation limitation
//
// Password-based construction uses a fixed, compiled-in scrypt salt. Two
// deployments deriving from the same password obtain the same key. Callers who
// need per-deployment key diversity must manage raw keys themselves and use
// the from-key constructors.
package goCsrf
