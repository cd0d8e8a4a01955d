// Package otel bridges goCsrf metric snapshots onto an OpenTelemetry meter
// via observable instruments.
package otel
