// Package tracing is a thin wrapper around OpenTelemetry tracing so that the
// rest of the code base can instrument boundary calls via StartSpan/EndSpan
// without depending on the upstream packages directly. Applications that do
// not require tracing simply never call Init; spans become no-ops.
package tracing
