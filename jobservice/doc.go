// Package jobservice is the API-facing job service: it validates
// requests, persists jobs, and hands committed jobs off to the
// scheduling engine.
//
// The hand-off runs in a post-commit hook so the engine never sees a job
// whose creating transaction could still roll back. The hook runs before
// Create returns; failures inside it are absorbed into the job's status
// rather than returned, because the job has already committed.
package jobservice
