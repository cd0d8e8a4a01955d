package goCsrf

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricTokenIssued)

	if got := m.Value(MetricTokenIssued); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricTokenIssued)
	m.Inc(MetricTokenIssued)
	m.Inc(MetricTokenIssued)

	if got := m.Value(MetricTokenIssued); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.Inc(MetricTokenIssued)
	m.Observe(MetricParseLatency, time.Millisecond)

	if got := m.Value(MetricTokenIssued); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	snap := m.Snapshot()
	if len(snap.Counters) != 0 || len(snap.Histograms) != 0 {
		t.Fatal("expected empty snapshot from nil metrics")
	}
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricPairVerified)
			}
		}()
	}
	wg.Wait()

	want := uint64(goroutines * perG)
	if got := m.Value(MetricPairVerified); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestMetricsHistogramBucketCorrectness(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})

	observations := []time.Duration{
		5 * time.Microsecond,
		10 * time.Microsecond,
		25 * time.Microsecond,
		50 * time.Microsecond,
		100 * time.Microsecond,
		250 * time.Microsecond,
		500 * time.Microsecond,
		700 * time.Microsecond,
	}

	for _, d := range observations {
		m.Observe(MetricParseLatency, d)
	}

	snap := m.Snapshot()
	buckets := snap.Histograms[MetricParseLatency]
	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(buckets))
	}
	for i, got := range buckets {
		if got != 1 {
			t.Fatalf("bucket %d: expected 1, got %d", i, got)
		}
	}
}

func TestMetricsHistogramDisabledByDefault(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Observe(MetricParseLatency, time.Microsecond)

	snap := m.Snapshot()
	if len(snap.Histograms) != 0 {
		t.Fatal("expected no histograms without latency opt-in")
	}
}

func TestMetricsObserveIgnoresCounterIDs(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	m.Observe(MetricTokenIssued, time.Microsecond)

	snap := m.Snapshot()
	if len(snap.Histograms[MetricTokenIssued]) != 0 {
		t.Fatal("expected counter IDs to be ignored by Observe")
	}
}

func TestRejectionMetricsByReason(t *testing.T) {
	key := testKey()
	p, err := New().WithBackend(BackendHmac).WithKey(key).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer p.Close()

	// Length rejection: no crypto ran.
	if _, err := p.ParseToken([]byte("short")); !errors.Is(err, ErrValidationFailure) {
		t.Fatalf("expected ErrValidationFailure, got %v", err)
	}

	// Integrity rejection: right length, wrong MAC.
	bogus := make([]byte, 96)
	if _, err := p.ParseToken(bogus); !errors.Is(err, ErrValidationFailure) {
		t.Fatalf("expected ErrValidationFailure, got %v", err)
	}

	snap := p.MetricsSnapshot()
	if snap.Counters[MetricTokenRejectedLength] != 1 {
		t.Fatalf("expected 1 length rejection, got %d", snap.Counters[MetricTokenRejectedLength])
	}
	if snap.Counters[MetricTokenRejectedIntegrity] != 1 {
		t.Fatalf("expected 1 integrity rejection, got %d", snap.Counters[MetricTokenRejectedIntegrity])
	}
}

func TestPairMetricsByOutcome(t *testing.T) {
	p, err := New().WithBackend(BackendHmac).WithKey(testKey()).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer p.Close()

	token, cookie, err := p.GenerateTokenPair(nil, 3600)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	parsedToken, err := p.ParseToken(token.Value())
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	parsedCookie, err := p.ParseCookie(cookie.Value())
	if err != nil {
		t.Fatalf("ParseCookie failed: %v", err)
	}

	if !p.VerifyTokenPair(parsedToken, parsedCookie) {
		t.Fatal("expected pair to verify")
	}

	otherToken, _, err := p.GenerateTokenPair(nil, 3600)
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	parsedOther, err := p.ParseToken(otherToken.Value())
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if p.VerifyTokenPair(parsedOther, parsedCookie) {
		t.Fatal("expected mismatched pair to be rejected")
	}

	snap := p.MetricsSnapshot()
	if snap.Counters[MetricPairVerified] != 1 {
		t.Fatalf("expected 1 verified pair, got %d", snap.Counters[MetricPairVerified])
	}
	if snap.Counters[MetricPairRejectedMismatch] != 1 {
		t.Fatalf("expected 1 mismatch rejection, got %d", snap.Counters[MetricPairRejectedMismatch])
	}
}

func TestSecretReuseCounted(t *testing.T) {
	p, err := New().WithBackend(BackendHmac).WithKey(testKey()).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer p.Close()

	previous := testSecret(0x33)
	if _, _, err := p.GenerateTokenPair(&previous, 3600); err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	if _, _, err := p.GenerateTokenPair(nil, 3600); err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	snap := p.MetricsSnapshot()
	if snap.Counters[MetricSecretReused] != 1 {
		t.Fatalf("expected 1 secret reuse, got %d", snap.Counters[MetricSecretReused])
	}
	if snap.Counters[MetricPairIssued] != 2 {
		t.Fatalf("expected 2 pairs issued, got %d", snap.Counters[MetricPairIssued])
	}
}

func TestBucketIndexBounds(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want int
	}{
		{0, 0},
		{5 * time.Microsecond, 0},
		{6 * time.Microsecond, 1},
		{10 * time.Microsecond, 1},
		{25 * time.Microsecond, 2},
		{50 * time.Microsecond, 3},
		{100 * time.Microsecond, 4},
		{250 * time.Microsecond, 5},
		{500 * time.Microsecond, 6},
		{501 * time.Microsecond, 7},
		{time.Second, 7},
	}

	for _, tc := range cases {
		if got := bucketIndex(tc.d); got != tc.want {
			t.Fatalf("bucketIndex(%v): expected %d, got %d", tc.d, tc.want, got)
		}
	}
}
