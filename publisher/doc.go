// Package publisher delivers tenant records to the message bus.
//
// The bus is a set of Valkey streams, one per partition of the configured
// topic. Records for a tenant always land on the same partition so a
// consumer sees them in publish order. Each publish retries with
// exponential backoff before reporting failure.
package publisher
