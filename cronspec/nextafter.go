package cronspec

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

var sixFieldParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

// Parse validates a canonical 6-field cron expression, returning
// ErrInvalidCron if it is syntactically invalid.
func Parse(cronExpr string) (cron.Schedule, error) {
	sched, err := sixFieldParser.Parse(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidCron, cronExpr, err)
	}
	return sched, nil
}

// NextAfter computes the next instant strictly greater than instant that
// satisfies cronExpr in zone. DST handling (skipped spring-forward fires,
// single fall-back fires at the earlier offset) is provided by
// robfig/cron/v3's Schedule.Next, which operates on the instant's
// time.Location.
func NextAfter(instant time.Time, cronExpr string, zone string) (time.Time, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Time{}, fmt.Errorf("cronspec: zone %q: %w", zone, err)
	}

	sched, err := Parse(cronExpr)
	if err != nil {
		return time.Time{}, err
	}

	next := sched.Next(instant.In(loc))
	return next.UTC(), nil
}
