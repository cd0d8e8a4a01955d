package goCsrf

import (
	"sync/atomic"
	"time"
)

// MetricID identifies a counter or histogram tracked by a Protection
// instance.
type MetricID uint16

const (
	// MetricTokenIssued counts successfully encoded tokens.
	MetricTokenIssued MetricID = iota
	// MetricCookieIssued counts successfully encoded cookies.
	MetricCookieIssued
	// MetricPairIssued counts GenerateTokenPair successes.
	MetricPairIssued
	// MetricSecretReused counts pair issuances that reused a previous secret.
	MetricSecretReused
	// MetricTokenParsed counts tokens that decoded and verified.
	MetricTokenParsed
	// MetricCookieParsed counts cookies that decoded and verified.
	MetricCookieParsed
	// MetricPairVerified counts VerifyTokenPair successes.
	MetricPairVerified
	// MetricTokenRejectedLength counts tokens rejected before any crypto ran.
	MetricTokenRejectedLength
	// MetricTokenRejectedIntegrity counts tokens failing MAC or AEAD checks.
	MetricTokenRejectedIntegrity
	// MetricCookieRejectedLength counts cookies rejected before any crypto ran.
	MetricCookieRejectedLength
	// MetricCookieRejectedIntegrity counts cookies failing MAC or AEAD checks.
	MetricCookieRejectedIntegrity
	// MetricPairRejectedMismatch counts pairs whose secrets did not match.
	MetricPairRejectedMismatch
	// MetricPairRejectedExpired counts pairs rejected for cookie expiry.
	MetricPairRejectedExpired
	// MetricRandomSourceFailure counts CSPRNG read failures.
	MetricRandomSourceFailure
	// MetricParseLatency is the parse-path latency histogram.
	MetricParseLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds lock-free counters and the parse-latency histogram for one
// Protection instance. All methods are nil-safe.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of all counters and histograms.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id >= metricIDCount {
		return
	}
	if id != MetricParseLatency {
		return
	}

	b := bucketIndex(d)
	atomic.AddUint64(&m.histograms[id].buckets[b], 1)
}

func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := 0; i < histBucketCount; i++ {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricParseLatency].buckets[i])
		}
		s.Histograms[MetricParseLatency] = buckets
	}

	return s
}

// Parse operations run in microseconds, so the histogram bounds do too.
func bucketIndex(d time.Duration) int {
	us := d.Microseconds()

	switch {
	case us <= 5:
		return 0
	case us <= 10:
		return 1
	case us <= 25:
		return 2
	case us <= 50:
		return 3
	case us <= 100:
		return 4
	case us <= 250:
		return 5
	case us <= 500:
		return 6
	default:
		return 7
	}
}
