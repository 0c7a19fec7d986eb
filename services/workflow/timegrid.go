package workflow

import (
	"strconv"
	"strings"
	"time"

	"shootday/utils"
)

// Bookable times sit on a 30-minute grid that opens at 08:00 and wraps
// through the next day to 07:30, so "01:00" after "22:00" means one in
// the following night. Grid position is minutes past 08:00.

const (
	gridOpenMinutes = 8 * 60
	slotMinutes     = 30
	minDuration     = 30
	maxDuration     = 1800
)

// clockMinutes parses a strict HH:MM 24-hour clock string.
func clockMinutes(clock string) (int, bool) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// gridIndex returns the position of a clock time on the grid, or -1
// when the time is off the 30-minute raster.
func gridIndex(clock string) int {
	mins, ok := clockMinutes(clock)
	if !ok || mins%slotMinutes != 0 {
		return -1
	}
	return ((mins - gridOpenMinutes) + 1440) % 1440
}

// ValidateTimeRange checks both times against the grid and the
// duration bounds. Duration d in minutes must satisfy 30 <= d <= 1800.
func ValidateTimeRange(fromTime, toTime string) *ValidationError {
	fromIdx := gridIndex(fromTime)
	if fromIdx < 0 {
		return &ValidationError{Field: "fromTime", Message: "not a valid 30-minute slot"}
	}
	toIdx := gridIndex(toTime)
	if toIdx < 0 {
		return &ValidationError{Field: "toTime", Message: "not a valid 30-minute slot"}
	}
	d := toIdx - fromIdx
	if d < minDuration {
		return &ValidationError{Field: "toTime", Message: "end must be at least 30 minutes after start"}
	}
	if d > maxDuration {
		return &ValidationError{Field: "toTime", Message: "booking window is too long"}
	}
	return nil
}

// DateKeyForOffset maps a 0/1/2 day offset onto a calendar date key in
// Asia/Kolkata.
func DateKeyForOffset(offset int, now time.Time) (string, *ValidationError) {
	if offset < 0 || offset > 2 {
		return "", &ValidationError{Field: "dateOffset", Message: "date must be today, tomorrow or the day after"}
	}
	day := now.In(utils.KolkataLocation()).AddDate(0, 0, offset)
	return utils.DateKey(day), nil
}

// EarliestFromToday returns the first selectable start minute when
// "today" is picked: now rounded up to the next 30-minute boundary.
func EarliestFromToday(now time.Time) int {
	local := now.In(utils.KolkataLocation())
	mins := local.Hour()*60 + local.Minute()
	if mins%slotMinutes == 0 && local.Second() == 0 && local.Nanosecond() == 0 {
		return mins
	}
	return (mins/slotMinutes + 1) * slotMinutes
}

// validateTodayCutoff rejects start times that have already passed on
// the current calendar day. The comparison happens in grid order, not
// raw clock order: 00:00-07:30 sit after the evening slots on the
// wrapped grid, so a post-midnight start is still selectable tonight.
func validateTodayCutoff(fromTime string, now time.Time) *ValidationError {
	fromIdx := gridIndex(fromTime)
	if fromIdx < 0 {
		return &ValidationError{Field: "fromTime", Message: "not a valid time"}
	}
	earliestIdx := ((EarliestFromToday(now) - gridOpenMinutes) + 1440) % 1440
	if fromIdx < earliestIdx {
		return &ValidationError{Field: "fromTime", Message: "time has already passed for today"}
	}
	return nil
}
