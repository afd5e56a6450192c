package model

import (
	"fmt"
	"time"
)

// timeFormats are tried in order when decoding a timestamp. The API emits
// RFC 3339 with fractional seconds but omits the zone on some endpoints and
// sends bare dates on others.
var timeFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// Time wraps time.Time with the API's lenient timestamp decoding.
type Time struct {
	time.Time
}

// UnmarshalJSON accepts RFC 3339 timestamps with or without a zone, and bare
// YYYY-MM-DD dates. Zoneless values are read as UTC. null decodes to the
// zero Time.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		t.Time = time.Time{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("parsing timestamp %s: not a JSON string", s)
	}
	s = s[1 : len(s)-1]
	for _, layout := range timeFormats {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("parsing timestamp %q: unrecognized format", s)
}

// MarshalJSON emits RFC 3339, or null for the zero Time.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

// NewTime wraps a time.Time.
func NewTime(t time.Time) Time {
	return Time{t}
}

// Date builds a Time at noon UTC on the given day. Noon keeps the calendar
// day stable across zone conversions.
func Date(year int, month time.Month, day int) Time {
	return Time{time.Date(year, month, day, 12, 0, 0, 0, time.UTC)}
}

// NormalizeDate collapses t to noon UTC on its calendar day, so two
// timestamps on the same day compare equal after normalization.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a normalized Time.
func ParseDate(s string) (Time, error) {
	parsed, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return Time{}, fmt.Errorf("parsing date %q: expected YYYY-MM-DD", s)
	}
	return Time{NormalizeDate(parsed)}, nil
}
