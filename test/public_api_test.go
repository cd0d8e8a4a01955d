package test

import (
	"testing"

	goCsrf "github.com/MrEthical07/goCsrf"
)

// This test intentionally guards public API compile-compat for consumers.
func TestPublicAPISurfaceCompile(t *testing.T) {
	_ = goCsrf.New

	var _ *goCsrf.Builder
	var _ goCsrf.Config
	var _ goCsrf.KDFConfig
	var _ goCsrf.AuditConfig
	var _ goCsrf.MetricsConfig
	var _ goCsrf.Token
	var _ goCsrf.Cookie
	var _ goCsrf.UnencryptedToken
	var _ goCsrf.UnencryptedCookie
	var _ goCsrf.AuditEvent
	var _ goCsrf.MetricsSnapshot

	var _ error = goCsrf.ErrInternal
	var _ error = goCsrf.ErrValidationFailure

	var _ goCsrf.Protection = (*goCsrf.HmacProtection)(nil)
	var _ goCsrf.Protection = (*goCsrf.AesGcmProtection)(nil)
	var _ goCsrf.Protection = (*goCsrf.ChaCha20Poly1305Protection)(nil)

	var _ goCsrf.AuditSink = goCsrf.NoOpSink{}
	var _ goCsrf.AuditSink = (*goCsrf.ChannelSink)(nil)
	var _ goCsrf.AuditSink = (*goCsrf.JSONWriterSink)(nil)

	var _ func([32]byte) *goCsrf.HmacProtection = goCsrf.NewHmacProtection
	var _ func([32]byte) *goCsrf.AesGcmProtection = goCsrf.NewAesGcmProtection
	var _ func([32]byte) *goCsrf.ChaCha20Poly1305Protection = goCsrf.NewChaCha20Poly1305Protection
	var _ func([]byte, goCsrf.KDFConfig) [32]byte = goCsrf.DeriveKey

	if goCsrf.SecretSize != 64 {
		t.Fatalf("expected 64-byte secrets, got %d", goCsrf.SecretSize)
	}
	if goCsrf.KeySize != 32 {
		t.Fatalf("expected 32-byte keys, got %d", goCsrf.KeySize)
	}
	if goCsrf.CookieName != "csrf" {
		t.Fatalf("unexpected cookie name %q", goCsrf.CookieName)
	}
	if goCsrf.FormFieldName != "csrf-token" {
		t.Fatalf("unexpected form field name %q", goCsrf.FormFieldName)
	}
	if goCsrf.HeaderName != "X-CSRF-Token" {
		t.Fatalf("unexpected header name %q", goCsrf.HeaderName)
	}
	if goCsrf.QueryParamName != "csrf-token" {
		t.Fatalf("unexpected query parameter name %q", goCsrf.QueryParamName)
	}
}
