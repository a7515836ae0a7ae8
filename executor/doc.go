// Package executor runs one fire of a job: it reads the tenant's records
// from the entity store, fans each record out to the message bus, and
// writes the fire's terminal status back to the job store.
//
// A fire succeeds only if every per-record publish succeeds. The executor
// never retries a fire; a failed fire of a recurring job waits for the
// next scheduled instant.
package executor
