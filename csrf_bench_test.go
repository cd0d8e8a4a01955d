package goCsrf

import "testing"

func benchBackends() map[string]Protection {
	return allBackends()
}

func BenchmarkGenerateTokenPair(b *testing.B) {
	for name, p := range benchBackends() {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, _, err := p.GenerateTokenPair(nil, 3600); err != nil {
					b.Fatalf("GenerateTokenPair failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkGenerateTokenPairReusedSecret(b *testing.B) {
	secret := testSecret(0x42)
	for name, p := range benchBackends() {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, _, err := p.GenerateTokenPair(&secret, 3600); err != nil {
					b.Fatalf("GenerateTokenPair failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkParseToken(b *testing.B) {
	for name, p := range benchBackends() {
		b.Run(name, func(b *testing.B) {
			token, _, err := p.GenerateTokenPair(nil, 3600)
			if err != nil {
				b.Fatalf("GenerateTokenPair failed: %v", err)
			}
			data := token.Value()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := p.ParseToken(data); err != nil {
					b.Fatalf("ParseToken failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkParseCookie(b *testing.B) {
	for name, p := range benchBackends() {
		b.Run(name, func(b *testing.B) {
			_, cookie, err := p.GenerateTokenPair(nil, 3600)
			if err != nil {
				b.Fatalf("GenerateTokenPair failed: %v", err)
			}
			data := cookie.Value()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := p.ParseCookie(data); err != nil {
					b.Fatalf("ParseCookie failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkVerifyTokenPair(b *testing.B) {
	p := NewAesGcmProtection(testKey())

	token, cookie, err := p.GenerateTokenPair(nil, 3600)
	if err != nil {
		b.Fatalf("GenerateTokenPair failed: %v", err)
	}
	parsedToken, err := p.ParseToken(token.Value())
	if err != nil {
		b.Fatalf("ParseToken failed: %v", err)
	}
	parsedCookie, err := p.ParseCookie(cookie.Value())
	if err != nil {
		b.Fatalf("ParseCookie failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !p.VerifyTokenPair(parsedToken, parsedCookie) {
			b.Fatal("expected pair to verify")
		}
	}
}

func BenchmarkDeriveKeyProduction(b *testing.B) {
	password := []byte("correct horse battery staple")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = DeriveKey(password, ProductionKDF())
	}
}
