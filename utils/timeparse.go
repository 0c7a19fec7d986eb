package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The upstream sheets emit clock times in three encodings: 12-hour
// "h:mm am/pm", an ISO-8601-like "...T16:00:00.000Z" string, and a
// locale date string with an embedded "HH:MM:SS". All three must parse
// to the same minutes-since-midnight value; anything else degrades to
// a parse failure, never a panic.

var (
	reMeridiem = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)$`)
	reClockSec = regexp.MustCompile(`(\d{1,2}):(\d{2}):(\d{2})`)
	reISOClock = regexp.MustCompile(`t(\d{1,2}):(\d{2})`)
	reClock    = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ParseTimeToMinutes converts any accepted clock encoding to minutes
// since midnight. The second return is false when nothing parseable is
// found.
func ParseTimeToMinutes(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}

	if m := reMeridiem.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		min := 0
		if m[2] != "" {
			min, _ = strconv.Atoi(m[2])
		}
		if hour < 1 || hour > 12 || min > 59 {
			return 0, false
		}
		if m[3] == "pm" && hour != 12 {
			hour += 12
		}
		if m[3] == "am" && hour == 12 {
			hour = 0
		}
		return hour*60 + min, true
	}

	if m := reClockSec.FindStringSubmatch(s); m != nil {
		return clockMinutes(m[1], m[2])
	}
	if m := reISOClock.FindStringSubmatch(s); m != nil {
		return clockMinutes(m[1], m[2])
	}
	if m := reClock.FindStringSubmatch(s); m != nil {
		return clockMinutes(m[1], m[2])
	}
	return 0, false
}

func clockMinutes(h, m string) (int, bool) {
	hour, _ := strconv.Atoi(h)
	min, _ := strconv.Atoi(m)
	if hour > 23 || min > 59 {
		return 0, false
	}
	return hour*60 + min, true
}

// MinutesToClock renders minutes since midnight as 24-hour HH:MM.
func MinutesToClock(mins int) string {
	mins = ((mins % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

var kolkata *time.Location

// KolkataLocation returns the calendar timezone every date key in the
// system is computed in.
func KolkataLocation() *time.Location {
	if kolkata == nil {
		loc, err := time.LoadLocation("Asia/Kolkata")
		if err != nil {
			loc = time.FixedZone("IST", 5*3600+1800)
		}
		kolkata = loc
	}
	return kolkata
}

// DateKey renders t as a YYYY-MM-DD key on the Asia/Kolkata calendar.
func DateKey(t time.Time) string {
	return t.In(KolkataLocation()).Format("2006-01-02")
}

var upstreamDateLayouts = []string{
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05Z",
	time.RFC3339,
	"2006-01-02",
	"Mon Jan 02 2006 15:04:05",
	"Mon Jan 2 2006 15:04:05",
	"Mon Jan 02 2006",
	"2/1/2006",
	"02/01/2006",
}

// ParseUpstreamDate accepts the date encodings observed from the
// sheets: ISO timestamps, bare YYYY-MM-DD keys and JS locale strings
// (with the trailing "GMT+..." clause stripped).
func ParseUpstreamDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if idx := strings.Index(s, " GMT"); idx > 0 {
		s = s[:idx]
	}
	for _, layout := range upstreamDateLayouts {
		if t, err := time.ParseInLocation(layout, s, KolkataLocation()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
