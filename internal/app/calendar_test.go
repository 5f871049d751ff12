package app

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func TestCalendarStamp(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	cal := NewCalendarWithClock(loc, func() time.Time {
		return time.Date(2024, 7, 1, 4, 15, 9, 0, time.UTC)
	})
	day, ts := cal.Stamp()
	if day != "2024-06-30" || ts != "23:15:09" {
		t.Fatalf("unexpected stamp %s %s", day, ts)
	}
}

func TestNewCalendarRejectsUnknownZone(t *testing.T) {
	if _, err := NewCalendar("Mars/Olympus"); err == nil {
		t.Fatalf("expected error for unknown zone")
	}
}
