package timeutil

import (
	"time"
	_ "time/tzdata" // hosts without zoneinfo still get Stockholm DST
)

// Stockholm is the warehouse's local time zone; reports are written for sv-SE readers.
var Stockholm *time.Location

func init() {
	var err error
	Stockholm, err = time.LoadLocation("Europe/Stockholm")
	if err != nil {
		// unreachable with embedded tzdata; keep a sane zone anyway
		Stockholm = time.FixedZone("CET", 1*60*60)
	}
}

// Now returns the current time in Stockholm
func Now() time.Time {
	return time.Now().In(Stockholm)
}

// ToLocal converts any time to Stockholm time
func ToLocal(t time.Time) time.Time {
	return t.In(Stockholm)
}

// FormatLocal formats a time in Stockholm using the given layout
func FormatLocal(t time.Time, layout string) string {
	return t.In(Stockholm).Format(layout)
}

// Layouts matching the sv-SE locale
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	ClockLayout    = "15:04"
	DateTimeLayout = "2006-01-02 15:04:05"
	FileLayout     = "20060102_150405"
)
