// Package tracing integrates OpenTelemetry with the tool dispatch pipeline.
// Instrumentation lives in its own package so that hosts which do not need
// tracing can leave it uninitialised; spans are then no-ops.
package tracing
