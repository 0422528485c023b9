// Package entity defines the core business entities for the domain layer.
package entity

import (
	"encoding/json"
	"strings"
	"time"
)

// calendarDateLayouts lists the date encodings accepted from the backend.
// Plain ISO dates are the norm; timestamps appear when the backend serializes datetimes.
var calendarDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// CalendarDate is a calendar day as received from a record source.
// It keeps the raw value so that records with a missing or malformed date can be
// reported instead of failing the whole list.
type CalendarDate struct {
	raw   string
	t     time.Time
	valid bool
}

// ParseCalendarDate parses an ISO-8601 calendar date. It never fails: an unparseable
// value yields a CalendarDate whose Valid method returns false.
func ParseCalendarDate(value string) CalendarDate {
	trimmed := strings.TrimSpace(value)
	for _, layout := range calendarDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return CalendarDate{
				raw:   value,
				t:     time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
				valid: true,
			}
		}
	}
	return CalendarDate{raw: value}
}

// NewCalendarDate creates a valid CalendarDate from year, month and day.
func NewCalendarDate(year int, month time.Month, day int) CalendarDate {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) CalendarDate {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return CalendarDate{
		raw:   day.Format("2006-01-02"),
		t:     day,
		valid: true,
	}
}

// Valid reports whether the date was parsed successfully.
func (d CalendarDate) Valid() bool {
	return d.valid
}

// Time returns the date at midnight UTC. It is the zero time for invalid dates.
func (d CalendarDate) Time() time.Time {
	return d.t
}

// Raw returns the value exactly as it was received.
func (d CalendarDate) Raw() string {
	return d.raw
}

// MonthKey returns the YYYY-MM key of the date, or "" when the date is invalid.
func (d CalendarDate) MonthKey() string {
	if !d.valid {
		return ""
	}
	return d.t.Format("2006-01")
}

// String returns the ISO representation for valid dates and the raw value otherwise.
func (d CalendarDate) String() string {
	if d.valid {
		return d.t.Format("2006-01-02")
	}
	return d.raw
}

// Before reports whether d is strictly before other. Invalid dates sort first.
func (d CalendarDate) Before(other CalendarDate) bool {
	if d.valid != other.valid {
		return !d.valid
	}
	return d.t.Before(other.t)
}

// MarshalJSON encodes the date as an ISO string, or null when it was never set.
func (d CalendarDate) MarshalJSON() ([]byte, error) {
	if !d.valid && d.raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts any JSON string or null. Malformed strings are kept as
// invalid dates rather than rejected.
func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = CalendarDate{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*d = CalendarDate{raw: string(data)}
		return nil
	}
	*d = ParseCalendarDate(s)
	return nil
}
