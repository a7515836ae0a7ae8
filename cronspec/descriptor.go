package cronspec

import (
	"fmt"
	"strconv"
	"strings"
)

// Descriptor is the structured recurrence descriptor a client may submit
// instead of a raw cron string. Exactly one of HourlyInterval,
// DaysOfWeek, or DaysOfMonth should be set; an empty descriptor fires
// daily at Hour:Minute.
type Descriptor struct {
	// HourlyInterval, if > 0, fires at Minute past the hour every N hours,
	// starting at hour 0.
	HourlyInterval int

	// DaysOfWeek fires at Hour:Minute on the given days (1=Mon … 7=Sun;
	// 1–6 coincide with cron's day-of-week numbering, 7 becomes cron's 0).
	DaysOfWeek []int

	// DaysOfMonth fires at Hour:Minute on the given calendar days.
	DaysOfMonth []int

	// Hour and Minute default to 0 when unset.
	Hour   int
	Minute int
}

// Canonical emits the 6-field "sec min hour dom month dow" expression for
// d, using "?" for the non-constraining field between dom and dow.
func Canonical(d Descriptor) string {
	switch {
	case d.HourlyInterval > 0:
		return fmt.Sprintf("0 %d */%d ? * *", d.Minute, d.HourlyInterval)
	case len(d.DaysOfWeek) > 0:
		return fmt.Sprintf("0 %d %d ? * %s", d.Minute, d.Hour, joinInts(canonicalDows(d.DaysOfWeek)))
	case len(d.DaysOfMonth) > 0:
		return fmt.Sprintf("0 %d %d %s * ?", d.Minute, d.Hour, joinInts(d.DaysOfMonth))
	default:
		return fmt.Sprintf("0 %d %d * * *", d.Minute, d.Hour)
	}
}

// canonicalDows maps the request numbering (1=Mon … 7=Sun) onto the cron
// parser's 0=Sun … 6=Sat range. Only Sunday needs translating.
func canonicalDows(days []int) []int {
	out := make([]int, len(days))
	for i, d := range days {
		if d == 7 {
			d = 0
		}
		out[i] = d
	}
	return out
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}
