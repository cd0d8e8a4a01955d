package goCsrf

import "errors"

var (
	// ErrInternal reports a local failure unrelated to attacker input, such as
	// an exhausted random source. It indicates a server-side fault and is never
	// attributable to the request being verified.
	ErrInternal = errors.New("csrf internal error")
	// ErrValidationFailure reports an untrusted or stale credential: wrong byte
	// length, MAC or AEAD authentication failure, mismatched token/cookie
	// secrets, or an expired cookie. Callers should reject the request and
	// re-issue a fresh pair; which specific check failed is deliberately not
	// distinguished.
	ErrValidationFailure = errors.New("csrf validation failed")
)
