// Package internaldefs holds the shared metric name/help tables consumed by
// the Prometheus and OpenTelemetry exporters. It exists so both exporters
// export identical series without either importing the other.
package internaldefs
