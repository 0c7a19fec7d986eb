package myday

import (
	"reflect"
	"testing"
	"time"

	"shootday/models"
	"shootday/utils"
)

func item(id, date, from string) models.MyDayItem {
	return models.MyDayItem{BookingRecord: models.BookingRecord{
		BookingID: id,
		Date:      date,
		FromTime:  from,
	}}
}

func ids(items []models.MyDayItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.BookingID
	}
	return out
}

func TestSortBookingsBucketsThenStartTime(t *testing.T) {
	now := time.Date(2026, 8, 24, 9, 0, 0, 0, utils.KolkataLocation())
	items := []models.MyDayItem{
		item("next-week", "2026-08-30", "9:00 am"),
		item("tomorrow-early", "2026-08-25", "8:00 am"),
		item("today-late", "2026-08-24", "4:00 pm"),
		item("today-early", "2026-08-24T00:00:00.000Z", "9:00 am"),
		item("tomorrow-late", "2026-08-25", "6:30 pm"),
	}
	SortBookings(items, now)
	want := []string{"today-early", "today-late", "tomorrow-early", "tomorrow-late", "next-week"}
	if got := ids(items); !reflect.DeepEqual(got, want) {
		t.Fatalf("sorted order = %v, want %v", got, want)
	}
}

func TestSortBookingsPushesUnparseableStartToEndOfBucket(t *testing.T) {
	now := time.Date(2026, 8, 24, 9, 0, 0, 0, utils.KolkataLocation())
	items := []models.MyDayItem{
		item("broken", "2026-08-24", "whenever"),
		item("late", "2026-08-24", "11:00 pm"),
		item("early", "2026-08-24", "8:00 am"),
	}
	SortBookings(items, now)
	want := []string{"early", "late", "broken"}
	if got := ids(items); !reflect.DeepEqual(got, want) {
		t.Fatalf("sorted order = %v, want %v", got, want)
	}
}

func TestSortBookingsIsIdempotentAndStable(t *testing.T) {
	now := time.Date(2026, 8, 24, 9, 0, 0, 0, utils.KolkataLocation())
	// Two rows with identical sort keys keep their relative order.
	items := []models.MyDayItem{
		item("first", "2026-08-24", "10:00 am"),
		item("second", "2026-08-24", "10:00 am"),
		item("earlier", "2026-08-24", "9:00 am"),
	}
	SortBookings(items, now)
	once := ids(items)
	SortBookings(items, now)
	if got := ids(items); !reflect.DeepEqual(got, once) {
		t.Fatalf("second sort changed the order: %v vs %v", got, once)
	}
	if !reflect.DeepEqual(once, []string{"earlier", "first", "second"}) {
		t.Fatalf("unexpected order: %v", once)
	}
}

func TestStartTimeComposesWallClock(t *testing.T) {
	rec := models.BookingRecord{Date: "2026-08-24", FromTime: "4:00 pm"}
	got, ok := startTime(rec)
	if !ok {
		t.Fatal("startTime failed to parse")
	}
	want := time.Date(2026, 8, 24, 16, 0, 0, 0, utils.KolkataLocation())
	if !got.Equal(want) {
		t.Fatalf("startTime = %v, want %v", got, want)
	}
	if _, ok := startTime(models.BookingRecord{Date: "garbage", FromTime: "4:00 pm"}); ok {
		t.Error("startTime accepted an unparseable date")
	}
}

func TestNormalizeRole(t *testing.T) {
	cases := map[string]string{
		"DOP":     "dop",
		"dop":     "dop",
		"Creator": "creator",
		"":        "creator",
		"editor":  "creator",
	}
	for in, want := range cases {
		if got := NormalizeRole(in); got != want {
			t.Errorf("NormalizeRole(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitAssignees(t *testing.T) {
	got := splitAssignees("Asha Verma - Creator, Ravi Nair - DOP, ")
	want := []string{"Asha Verma - Creator", "Ravi Nair - DOP"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitAssignees = %v, want %v", got, want)
	}
	if got := splitAssignees("  "); got != nil {
		t.Fatalf("splitAssignees on blank = %v, want nil", got)
	}
}

func TestDiffNamesComparesByParsedName(t *testing.T) {
	old := []string{"Asha Verma - Creator", "Ravi Nair - DOP"}
	updated := []string{"asha verma", "Meera Iyer - Creator"}

	removed := diffNames(old, updated)
	if !reflect.DeepEqual(removed, []string{"Ravi Nair - DOP"}) {
		t.Errorf("removed = %v, want [Ravi Nair - DOP]", removed)
	}
	added := diffNames(updated, old)
	if !reflect.DeepEqual(added, []string{"Meera Iyer - Creator"}) {
		t.Errorf("added = %v, want [Meera Iyer - Creator]", added)
	}
	// No change diffs to empty, never nil, so the wire field is [].
	if got := diffNames(old, old); got == nil || len(got) != 0 {
		t.Errorf("no-op diff = %v, want empty slice", got)
	}
}

func TestMergeAssigneesKeepsExistingAndAppendsMissing(t *testing.T) {
	roster := []string{"Asha Verma - Creator"}
	got := mergeAssignees(roster, []string{"asha verma - creator", "Ravi Nair - DOP"})
	want := []string{"Asha Verma - Creator", "Ravi Nair - DOP"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("mergeAssignees = %v, want %v", got, want)
	}
}

func TestClockOrRaw(t *testing.T) {
	if got := clockOrRaw("4:00 pm"); got != "16:00" {
		t.Errorf("clockOrRaw(4:00 pm) = %q, want 16:00", got)
	}
	if got := clockOrRaw("whenever"); got != "whenever" {
		t.Errorf("clockOrRaw passes unparseable input through, got %q", got)
	}
}
