package internaldefs

import (
	goCsrf "github.com/MrEthical07/goCsrf"
)

// CounterDef maps a MetricID to its exported name and help text.
type CounterDef struct {
	ID   goCsrf.MetricID
	Name string
	Help string
}

// HistogramDef maps a histogram MetricID to its exported name and help text.
type HistogramDef struct {
	ID   goCsrf.MetricID
	Name string
	Help string
}

var CounterDefs = []CounterDef{
	{ID: goCsrf.MetricTokenIssued, Name: "gocsrf_token_issued_total", Help: "Successfully encoded CSRF tokens."},
	{ID: goCsrf.MetricCookieIssued, Name: "gocsrf_cookie_issued_total", Help: "Successfully encoded CSRF cookies."},
	{ID: goCsrf.MetricPairIssued, Name: "gocsrf_pair_issued_total", Help: "Issued token/cookie pairs."},
	{ID: goCsrf.MetricSecretReused, Name: "gocsrf_secret_reused_total", Help: "Pair issuances that reused a previous secret."},
	{ID: goCsrf.MetricTokenParsed, Name: "gocsrf_token_parsed_total", Help: "Tokens that decoded and verified."},
	{ID: goCsrf.MetricCookieParsed, Name: "gocsrf_cookie_parsed_total", Help: "Cookies that decoded and verified."},
	{ID: goCsrf.MetricPairVerified, Name: "gocsrf_pair_verified_total", Help: "Token/cookie pairs that verified."},
	{ID: goCsrf.MetricTokenRejectedLength, Name: "gocsrf_token_rejected_length_total", Help: "Tokens rejected for wrong byte length."},
	{ID: goCsrf.MetricTokenRejectedIntegrity, Name: "gocsrf_token_rejected_integrity_total", Help: "Tokens rejected for MAC or AEAD failure."},
	{ID: goCsrf.MetricCookieRejectedLength, Name: "gocsrf_cookie_rejected_length_total", Help: "Cookies rejected for wrong byte length."},
	{ID: goCsrf.MetricCookieRejectedIntegrity, Name: "gocsrf_cookie_rejected_integrity_total", Help: "Cookies rejected for MAC or AEAD failure."},
	{ID: goCsrf.MetricPairRejectedMismatch, Name: "gocsrf_pair_rejected_mismatch_total", Help: "Pairs rejected for mismatched secrets."},
	{ID: goCsrf.MetricPairRejectedExpired, Name: "gocsrf_pair_rejected_expired_total", Help: "Pairs rejected for cookie expiry."},
	{ID: goCsrf.MetricRandomSourceFailure, Name: "gocsrf_random_source_failure_total", Help: "CSPRNG read failures."},
}

var HistogramDefs = []HistogramDef{
	{ID: goCsrf.MetricParseLatency, Name: "gocsrf_parse_latency_microseconds", Help: "Parse latency histogram."},
}

// HistogramBounds are the bucket upper bounds in microseconds.
var HistogramBounds = []string{
	"5",
	"10",
	"25",
	"50",
	"100",
	"250",
	"500",
	"+Inf",
}

// HistogramBoundSuffix mirrors HistogramBounds with metric-name-safe text.
var HistogramBoundSuffix = []string{
	"5",
	"10",
	"25",
	"50",
	"100",
	"250",
	"500",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed bucket
// count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to the cumulative form used by
// exposition formats.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
