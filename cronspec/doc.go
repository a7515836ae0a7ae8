// Package cronspec translates structured recurrence descriptors into
// canonical 6-field cron expressions and computes the next firing instant
// of a cron expression within an IANA zone.
//
// Parsing and the next-fire computation are delegated to robfig/cron/v3,
// which already implements the DST semantics the recurring schedule kind
// requires: a fire that would land in a spring-forward gap is skipped, and
// a fire that lands in a fall-back repeated interval fires once, at the
// earlier offset.
package cronspec
