package timezone

import "time"

// Service resolves IANA zone names and converts between a wall-clock
// reading in a zone and an absolute instant.
//
// A wall-clock value is represented as a time.Time in time.UTC whose
// Y/M/D/h/m/s fields carry the local reading — it is deliberately
// zone-less, matching the "wall-clock in zone" contract: the zone is
// always carried alongside it, never implied by the time.Time's own
// location.
type Service struct {
	defaultZone string
}

// New creates a Service. defaultZone is applied whenever a caller passes
// an empty zone name.
func New(defaultZone string) *Service {
	if defaultZone == "" {
		defaultZone = "UTC"
	}
	return &Service{defaultZone: defaultZone}
}

// DefaultZone returns the configured default zone name.
func (s *Service) DefaultZone() string {
	return s.defaultZone
}

// Now returns the current instant.
func (s *Service) Now() time.Time {
	return time.Now().UTC()
}

// Zone resolves an IANA zone name, falling back to the default zone when
// name is empty.
func (s *Service) Zone(name string) (*time.Location, error) {
	if name == "" {
		name = s.defaultZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, ErrZoneUnknown
	}
	return loc, nil
}

// ToInstant converts a wall-clock reading (as produced by ToWall, or built
// directly with time.Date in time.UTC) in zone to an absolute instant.
//
// At a fall-back transition (ambiguous local time, e.g. 1:30am occurring
// twice) the earlier offset is preferred. At a spring-forward transition
// (nonexistent local time, e.g. 2:30am during a gap) the result advances to
// the first valid instant at or after the requested wall-clock — not by
// shifting forward by the size of the gap.
func (s *Service) ToInstant(wall time.Time, zone string) (time.Time, error) {
	loc, err := s.Zone(zone)
	if err != nil {
		return time.Time{}, err
	}

	y, mo, d := wall.Date()
	h, mi, se := wall.Clock()
	ns := wall.Nanosecond()

	candidate := time.Date(y, mo, d, h, mi, se, ns, loc)

	if sameWall(candidate, wall) {
		// The reading resolved cleanly, but time.Date settles an
		// ambiguous fall-back time on whichever offset its zone lookup
		// found first, which for some zones is the later one. If the
		// period candidate landed in begins with a fall-back transition,
		// probe the same reading under the previous period's offset and
		// prefer it when it is also valid.
		start, _ := candidate.ZoneBounds()
		if !start.IsZero() {
			_, curOff := candidate.Zone()
			_, prevOff := start.Add(-time.Second).Zone()
			if prevOff > curOff {
				alt := candidate.Add(time.Duration(curOff-prevOff) * time.Second)
				if sameWall(alt, wall) {
					return alt, nil
				}
			}
		}
		return candidate, nil
	}

	// The requested wall-clock fell in a spring-forward gap, and
	// time.Date shifted it across the transition: forward when the zone
	// lookup applied the pre-gap offset, backward when it applied the
	// post-gap one. Either way the boundary of the zone period candidate
	// landed in is the transition instant, which is the first valid
	// instant at or after the request.
	start, end := candidate.ZoneBounds()
	if wallReading(candidate).Before(wall) {
		return end, nil
	}
	return start, nil
}

// sameWall reports whether t's local reading matches the wall-clock
// fields of wall, to second precision.
func sameWall(t, wall time.Time) bool {
	ty, tmo, td := t.Date()
	th, tmi, tse := t.Clock()
	wy, wmo, wd := wall.Date()
	wh, wmi, wse := wall.Clock()
	return ty == wy && tmo == wmo && td == wd && th == wh && tmi == wmi && tse == wse
}

// wallReading extracts t's local reading as a zone-less wall-clock value.
func wallReading(t time.Time) time.Time {
	y, mo, d := t.Date()
	h, mi, se := t.Clock()
	return time.Date(y, mo, d, h, mi, se, t.Nanosecond(), time.UTC)
}

// ToWall converts an absolute instant to its wall-clock reading in zone.
func (s *Service) ToWall(instant time.Time, zone string) (time.Time, error) {
	loc, err := s.Zone(zone)
	if err != nil {
		return time.Time{}, err
	}
	return wallReading(instant.In(loc)), nil
}
