package myday

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	"shootday/models"
	"shootday/services/gateway"
	"shootday/services/workflow"
	"shootday/utils"
)

type fakeFetcher struct {
	getBody  string
	getErr   error
	posts    []map[string]interface{}
	postBody string
	postErr  error
}

func (f *fakeFetcher) Get(context.Context, string, url.Values) (*gateway.Response, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return testResponse(f.getBody), nil
}

func (f *fakeFetcher) Post(_ context.Context, payload map[string]interface{}) (*gateway.Response, error) {
	f.posts = append(f.posts, payload)
	if f.postErr != nil {
		return nil, f.postErr
	}
	body := f.postBody
	if body == "" {
		body = `{}`
	}
	return testResponse(body), nil
}

func testResponse(body string) *gateway.Response {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	return &gateway.Response{Status: 200, Header: h, Body: []byte(body), IsJSON: true}
}

type fakeFreed struct {
	names map[string][]string
}

func (f *fakeFreed) Names(_ context.Context, bookingID string) ([]string, error) {
	return f.names[bookingID], nil
}

func (f *fakeFreed) Append(_ context.Context, bookingID, name string) error {
	if f.names == nil {
		f.names = map[string][]string{}
	}
	f.names[bookingID] = append(f.names[bookingID], name)
	return nil
}

var asha = models.Session{Email: "asha@example.com", Name: "Asha Verma", Role: "creator"}

func testService(fetcher *fakeFetcher, freed *fakeFreed) *DefaultMyDayService {
	if freed == nil {
		freed = &fakeFreed{}
	}
	return &DefaultMyDayService{
		Gateway:  fetcher,
		Freed:    freed,
		MyDayURL: "https://script.example/myday",
		Now: func() time.Time {
			return time.Date(2026, 8, 24, 9, 0, 0, 0, utils.KolkataLocation())
		},
	}
}

const listBody = `[
	{"Booking ID":"BK-2","Shoot Name":"Promo","Date":"2026-08-25","From Time":"10:00 am","Creator":"Asha Verma"},
	{"Booking ID":"BK-1","Shoot Name":"Launch","Date":"2026-08-24","From Time":"2:00 pm","Creator":"Meera Iyer"}
]`

func TestListFlagsActionsPerRow(t *testing.T) {
	fetcher := &fakeFetcher{getBody: listBody}
	svc := testService(fetcher, nil)

	items, err := svc.List(context.Background(), asha)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	// Sorted: today's booking first.
	today, tomorrow := items[0], items[1]
	if today.BookingID != "BK-1" || tomorrow.BookingID != "BK-2" {
		t.Fatalf("unexpected order: %s, %s", today.BookingID, tomorrow.BookingID)
	}
	if today.CanDelete || today.CanEdit || !today.CanFree {
		t.Errorf("non-creator row should only offer Free: %+v", today)
	}
	if !tomorrow.CanDelete || !tomorrow.CanEdit || tomorrow.CanFree {
		t.Errorf("creator row should offer delete and edit, not Free: %+v", tomorrow)
	}
}

func TestListSuppressesFreeAfterLedgerEntry(t *testing.T) {
	fetcher := &fakeFetcher{getBody: listBody}
	freed := &fakeFreed{names: map[string][]string{"BK-1": {"asha verma"}}}
	svc := testService(fetcher, freed)

	items, err := svc.List(context.Background(), asha)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if items[0].BookingID != "BK-1" || items[0].CanFree {
		t.Errorf("freed row should not offer Free again: %+v", items[0])
	}
}

func TestListAcceptsWrappedRowsAndRejectsOKFalse(t *testing.T) {
	svc := testService(&fakeFetcher{getBody: `{"ok":true,"rows":` + listBody + `}`}, nil)
	items, err := svc.List(context.Background(), asha)
	if err != nil || len(items) != 2 {
		t.Fatalf("wrapped rows: items=%d err=%v", len(items), err)
	}

	svc = testService(&fakeFetcher{getBody: `{"ok":false,"message":"no sheet"}`}, nil)
	_, err = svc.List(context.Background(), asha)
	var rej *UpstreamRejection
	if !errors.As(err, &rej) || rej.Message != "no sheet" {
		t.Fatalf("err = %v, want UpstreamRejection with upstream message", err)
	}
}

func booking(creator string) models.BookingRecord {
	return models.BookingRecord{
		BookingID: "BK-9",
		ShootName: "Promo",
		Date:      "2026-08-25",
		FromTime:  "10:00 am",
		ToTime:    "1:00 pm",
		Creator:   creator,
		DOP:       "Ravi Nair - DOP",
		Cast:      "Asha Verma - Creator, Meera Iyer - Creator",
	}
}

func TestDeleteRequiresCreatorAndReason(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := testService(fetcher, nil)

	if err := svc.Delete(context.Background(), asha, booking("Meera Iyer"), "rain"); !errors.Is(err, ErrNotCreator) {
		t.Errorf("err = %v, want ErrNotCreator", err)
	}
	if err := svc.Delete(context.Background(), asha, booking("Asha Verma"), "  "); !errors.Is(err, ErrReasonRequired) {
		t.Errorf("err = %v, want ErrReasonRequired", err)
	}
	if len(fetcher.posts) != 0 {
		t.Fatal("rejected deletes must not reach the network")
	}

	if err := svc.Delete(context.Background(), asha, booking("asha verma"), "rain"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(fetcher.posts) != 1 || fetcher.posts[0]["action"] != "delete_booking" {
		t.Fatalf("unexpected relay: %v", fetcher.posts)
	}
}

func TestFreeRecordsLedgerAndBlocksRepeat(t *testing.T) {
	fetcher := &fakeFetcher{}
	freed := &fakeFreed{}
	svc := testService(fetcher, freed)
	rec := booking("Meera Iyer")

	if err := svc.Free(context.Background(), asha, rec); err != nil {
		t.Fatalf("Free failed: %v", err)
	}
	if len(fetcher.posts) != 1 || fetcher.posts[0]["action"] != "free_booking" {
		t.Fatalf("unexpected relay: %v", fetcher.posts)
	}
	if err := svc.Free(context.Background(), asha, rec); !errors.Is(err, ErrAlreadyFreed) {
		t.Errorf("err = %v, want ErrAlreadyFreed", err)
	}
	if len(fetcher.posts) != 1 {
		t.Fatal("repeated free must not reach the network")
	}
}

func TestFreeRejectsCreator(t *testing.T) {
	svc := testService(&fakeFetcher{}, nil)
	if err := svc.Free(context.Background(), asha, booking("Asha Verma")); !errors.Is(err, ErrCreatorCannotFree) {
		t.Fatalf("err = %v, want ErrCreatorCannotFree", err)
	}
}

func TestEditLockMergesCurrentAssignees(t *testing.T) {
	// The fresh roster no longer lists Ravi Nair; the booking's current
	// DOP must still be selectable.
	fetcher := &fakeFetcher{postBody: `{"name":["Asha Verma - Creator","Karan Shah - DOP"]}`}
	svc := testService(fetcher, nil)

	roster, err := svc.EditLock(context.Background(), asha, booking("Asha Verma"))
	if err != nil {
		t.Fatalf("EditLock failed: %v", err)
	}
	if roster.FromTime != "10:00" || roster.ToTime != "13:00" {
		t.Errorf("times = %s-%s, want 10:00-13:00", roster.FromTime, roster.ToTime)
	}
	dopNames := map[string]bool{}
	for _, p := range roster.DOPs {
		dopNames[p.Name] = true
	}
	if !dopNames["Karan Shah"] || !dopNames["Ravi Nair"] {
		t.Errorf("DOPs = %v, want fresh roster plus current assignee", roster.DOPs)
	}
	if len(fetcher.posts) != 1 || fetcher.posts[0]["action"] != "booking_lock" {
		t.Fatalf("unexpected relay: %v", fetcher.posts)
	}
}

func TestEditLockRefusesStartedBooking(t *testing.T) {
	svc := testService(&fakeFetcher{}, nil)
	rec := booking("Asha Verma")
	rec.Date = "2026-08-24"
	rec.FromTime = "8:00 am" // now is 09:00
	if _, err := svc.EditLock(context.Background(), asha, rec); !errors.Is(err, ErrBookingStarted) {
		t.Fatalf("err = %v, want ErrBookingStarted", err)
	}
}

func TestEditLockPropagatesOngoingBooking(t *testing.T) {
	svc := testService(&fakeFetcher{postBody: `{"key":"Ongoing Booking"}`}, nil)
	if _, err := svc.EditLock(context.Background(), asha, booking("Asha Verma")); !errors.Is(err, workflow.ErrOngoingBooking) {
		t.Fatalf("err = %v, want ErrOngoingBooking", err)
	}
}

func TestEditSubmitRelaysDiffAndFullAssignment(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := testService(fetcher, nil)

	err := svc.EditSubmit(context.Background(), asha, EditSubmitRequest{
		Booking: booking("Asha Verma"),
		NewDOPs: []string{"Karan Shah - DOP"},
		NewCast: []string{"Asha Verma - Creator", "Meera Iyer - Creator"},
	})
	if err != nil {
		t.Fatalf("EditSubmit failed: %v", err)
	}
	if len(fetcher.posts) != 1 {
		t.Fatalf("expected one relay, got %d", len(fetcher.posts))
	}
	payload := fetcher.posts[0]
	if payload["action"] != "update_booking" {
		t.Fatalf("action = %v", payload["action"])
	}
	removed := payload["removeUsers"].([]string)
	added := payload["addUsers"].([]string)
	if len(removed) != 1 || removed[0] != "Ravi Nair - DOP" {
		t.Errorf("removeUsers = %v, want [Ravi Nair - DOP]", removed)
	}
	if len(added) != 1 || added[0] != "Karan Shah - DOP" {
		t.Errorf("addUsers = %v, want [Karan Shah - DOP]", added)
	}
	wire := payload["booking"].(map[string]interface{})
	if wire["newDop"] != "Karan Shah - DOP" || wire["oldDop"] != "Ravi Nair - DOP" {
		t.Errorf("unexpected dop fields: %v", wire)
	}
}
