// Package timezone resolves IANA zone names and converts between a wall-clock
// reading in a zone and an absolute instant.
//
// All scheduling math elsewhere in dispatcher is done on instants; zone
// conversion happens only at the boundary, per the clock service contract.
package timezone
