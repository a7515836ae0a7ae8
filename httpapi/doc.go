// Package httpapi exposes the job service as a JSON-over-HTTP API under
// /api/jobs. It owns request decoding, field validation, and the mapping
// from service errors to HTTP status codes.
package httpapi
