// Package idgen wraps the UUID generator so that it can be stubbed in tests.
// Callers must treat the returned identifiers as opaque strings.
package idgen
