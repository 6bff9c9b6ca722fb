// Package prometheus provides Prometheus collectors for payauth metrics.
//
// [NewPrometheusExporter] accepts a [payauth.Engine] and exposes an [http.Handler]
// that renders all payauth counters and histograms in Prometheus text exposition format.
// Counter names are prefixed payauth_*_total; the single histogram is
// payauth_validate_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
