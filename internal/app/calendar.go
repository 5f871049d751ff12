package app

import (
	"fmt"
	"time"
)

const (
	dayLayout  = "2006-01-02"
	timeLayout = "15:04:05"
)

// Calendar turns the wall clock into the day key and time stamp recorded for
// an event, both in a fixed location.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar returns a calendar for the named IANA zone.
func NewCalendar(zone string) (*Calendar, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", zone, err)
	}
	return NewCalendarWithClock(loc, time.Now), nil
}

// NewCalendarWithClock allows deterministic stamps in tests.
func NewCalendarWithClock(loc *time.Location, now func() time.Time) *Calendar {
	return &Calendar{loc: loc, now: now}
}

// Stamp returns the current day ("2006-01-02") and time ("15:04:05").
func (c *Calendar) Stamp() (day, timestamp string) {
	t := c.now().In(c.loc)
	return t.Format(dayLayout), t.Format(timeLayout)
}
