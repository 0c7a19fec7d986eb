package myday

import (
	"sort"
	"strings"
	"time"

	"shootday/models"
	"shootday/utils"
)

// unparseableMinutes pushes rows with a broken start time to the end
// of their date bucket instead of dropping or failing them.
const unparseableMinutes = 999999

// dateBucket ranks a booking's date against the current calendar day:
// today first, tomorrow second, everything else last. The comparison
// is an exact calendar-day match in Asia/Kolkata.
func dateBucket(dateStr string, now time.Time) int {
	t, ok := utils.ParseUpstreamDate(dateStr)
	if !ok {
		return 2
	}
	key := utils.DateKey(t)
	switch key {
	case utils.DateKey(now):
		return 0
	case utils.DateKey(now.AddDate(0, 0, 1)):
		return 1
	default:
		return 2
	}
}

// startMinutes parses a booking's start time in any accepted encoding.
func startMinutes(rec models.BookingRecord) int {
	if mins, ok := utils.ParseTimeToMinutes(rec.FromTime); ok {
		return mins
	}
	return unparseableMinutes
}

// SortBookings orders rows by (date bucket, start time ascending),
// stably, so an already-sorted list is untouched.
func SortBookings(items []models.MyDayItem, now time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		bi := dateBucket(items[i].Date, now)
		bj := dateBucket(items[j].Date, now)
		if bi != bj {
			return bi < bj
		}
		return startMinutes(items[i].BookingRecord) < startMinutes(items[j].BookingRecord)
	})
}

// startTime composes a booking's wall-clock start from its date and
// time fields. The second return is false when either part is
// unparseable.
func startTime(rec models.BookingRecord) (time.Time, bool) {
	day, ok := utils.ParseUpstreamDate(rec.Date)
	if !ok {
		return time.Time{}, false
	}
	mins, ok := utils.ParseTimeToMinutes(rec.FromTime)
	if !ok {
		return time.Time{}, false
	}
	loc := utils.KolkataLocation()
	local := day.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), mins/60, mins%60, 0, 0, loc), true
}

// NormalizeRole maps any upstream role string onto exactly "creator"
// or "dop" for the my-day query.
func NormalizeRole(role string) string {
	if strings.Contains(strings.ToLower(role), "dop") {
		return "dop"
	}
	return "creator"
}
