// Package jobstore provides durable CRUD over Job records backed by
// Postgres (pgx/v5).
//
// Create, Update, and Delete run inside a single transaction and accept an
// optional afterCommit callback invoked only once the transaction
// successfully commits, and skipped entirely on rollback — the hand-off to
// the scheduling engine must never observe a Job that is not yet durable.
// UpdateNextFire and UpdateStatus each run in their own independent
// transaction so a scheduling outcome is recorded even when the caller's
// transaction (the post-commit hook, or an executor fire) has already
// closed.
package jobstore
