// Package metrics exports reconciliation metrics with OpenTelemetry.
//
// NewProvider builds a MeterProvider with an OTLP gRPC exporter, or a silent provider
// when no collector is configured. Recorder turns each zone run into counters
// (runs by outcome, fetched, inserted, hidden and dropped) and a duration histogram,
// all tagged with the zone id.
package metrics
