// Package parse normalizes the loosely formatted values accepted on the
// check-in/check-out wire.
package parse

import (
	"regexp"
	"strings"
	"time"
)

// TimeLayout is the timestamp format used on the wire and in responses.
const TimeLayout = "2006-01-02 15:04:05"

var (
	hhmmRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
	fullRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s+\d{2}:\d{2}(:\d{2})?$`)
)

// Timestamp normalizes a caller-supplied time string. Three forms are
// accepted, in this precedence:
//
//   - "HH:MM"                  -> today (now's date) at HH:MM:00
//   - "YYYY-MM-DD HH:MM[:SS]"  -> as given, seconds defaulting to 00
//   - anything else            -> now
//
// The result is always in now's location. The same rule applies to both
// in_time and out_time.
func Timestamp(raw string, now time.Time) time.Time {
	s := strings.TrimSpace(raw)

	switch {
	case s != "" && hhmmRe.MatchString(s):
		t, err := time.ParseInLocation(TimeLayout, now.Format("2006-01-02")+" "+s+":00", now.Location())
		if err == nil {
			return t
		}
	case s != "" && fullRe.MatchString(s):
		// Collapse the interior whitespace the regexp tolerates.
		fields := strings.Fields(s)
		clock := fields[1]
		if strings.Count(clock, ":") == 1 {
			clock += ":00"
		}
		t, err := time.ParseInLocation(TimeLayout, fields[0]+" "+clock, now.Location())
		if err == nil {
			return t
		}
	}
	return now.Truncate(time.Second)
}

// Plate normalizes a vehicle plate: trimmed and upper-cased. Plates are
// compared with this normalization everywhere, server and client alike.
func Plate(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
