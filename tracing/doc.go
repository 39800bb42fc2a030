// Package tracing integrates observability back-ends with the tickq engine
// to provide span-level visibility into drain steps. All instrumentation is
// kept in a separate package so that applications which do not require
// tracing can exclude it from their build.
package tracing
