// Package records defines the tenant record contract the executor reads
// from: an ordered sequence of opaque records keyed by tenant, plus a
// Postgres-backed implementation.
package records
