package goCsrf

import (
	"bytes"
	"errors"
	"testing"
)

// FuzzParseToken exercises every backend's token parser with arbitrary inputs.
// Goal: no panics, errors for anything that was not issued under the key.
func FuzzParseToken(f *testing.F) {
	seedBackends := allBackends()
	for _, p := range seedBackends {
		token, _, err := p.GenerateTokenPair(nil, 3600)
		if err != nil {
			f.Fatalf("GenerateTokenPair failed: %v", err)
		}
		encoded := token.Value()
		f.Add(encoded)
		f.Add(encoded[:len(encoded)/2])
	}

	f.Add([]byte{})
	f.Add([]byte{0})
	f.Add(bytes.Repeat([]byte{0xFF}, 96))
	f.Add(bytes.Repeat([]byte{0x00}, 108))

	backends := allBackends()
	f.Fuzz(func(t *testing.T, data []byte) {
		for name, p := range backends {
			token, err := p.ParseToken(data)
			if err != nil {
				if !errors.Is(err, ErrValidationFailure) {
					t.Fatalf("%s: expected ErrValidationFailure, got %v", name, err)
				}
				continue
			}

			// Anything accepted must re-encode to a parseable token carrying
			// the same secret.
			var secret [SecretSize]byte
			copy(secret[:], token.Value())
			reissued, err := p.GenerateToken(secret)
			if err != nil {
				t.Fatalf("%s: re-encode failed: %v", name, err)
			}
			reparsed, err := p.ParseToken(reissued.Value())
			if err != nil {
				t.Fatalf("%s: re-parse failed: %v", name, err)
			}
			if !bytes.Equal(reparsed.Value(), token.Value()) {
				t.Fatalf("%s: secret changed across re-encode", name)
			}
		}
	})
}

// FuzzParseCookie exercises every backend's cookie parser with arbitrary
// inputs.
func FuzzParseCookie(f *testing.F) {
	seedBackends := allBackends()
	for _, p := range seedBackends {
		_, cookie, err := p.GenerateTokenPair(nil, 3600)
		if err != nil {
			f.Fatalf("GenerateTokenPair failed: %v", err)
		}
		encoded := cookie.Value()
		f.Add(encoded)
		f.Add(encoded[:len(encoded)/2])
	}

	f.Add([]byte{})
	f.Add([]byte{0})
	f.Add(bytes.Repeat([]byte{0xFF}, 104))
	f.Add(bytes.Repeat([]byte{0x00}, 116))

	backends := allBackends()
	f.Fuzz(func(t *testing.T, data []byte) {
		for name, p := range backends {
			cookie, err := p.ParseCookie(data)
			if err != nil {
				if !errors.Is(err, ErrValidationFailure) {
					t.Fatalf("%s: expected ErrValidationFailure, got %v", name, err)
				}
				continue
			}

			// Accepted cookies expose their secret and expiry without panics.
			if got := len(cookie.Value()); got != SecretSize {
				t.Fatalf("%s: expected %d-byte secret, got %d", name, SecretSize, got)
			}
			_ = cookie.Expires()
		}
	})
}
