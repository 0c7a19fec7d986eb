package myday

import (
	"context"
	"net/url"
	"time"

	"shootday/models"
	"shootday/services/gateway"
)

// Fetcher is the slice of the gateway client this service needs: reads
// from the my-day script and mutating actions through the webhook.
type Fetcher interface {
	Get(ctx context.Context, rawURL string, query url.Values) (*gateway.Response, error)
	Post(ctx context.Context, payload map[string]interface{}) (*gateway.Response, error)
}

// FreedStore is the client-side "I can't make it" ledger. It is
// deliberately non-authoritative: it only suppresses the Free action
// for users of this node and is never synced upstream.
type FreedStore interface {
	Names(ctx context.Context, bookingID string) ([]string, error)
	Append(ctx context.Context, bookingID, name string) error
}

// MyDayService fetches and mutates a user's bookings.
type MyDayService interface {
	List(ctx context.Context, user models.Session) ([]models.MyDayItem, error)
	Delete(ctx context.Context, user models.Session, booking models.BookingRecord, reason string) error
	Free(ctx context.Context, user models.Session, booking models.BookingRecord) error
	EditLock(ctx context.Context, user models.Session, booking models.BookingRecord) (*EditRoster, error)
	EditSubmit(ctx context.Context, user models.Session, req EditSubmitRequest) error
}

// DefaultMyDayService implements MyDayService.
type DefaultMyDayService struct {
	Gateway  Fetcher
	Freed    FreedStore
	MyDayURL string
	Now      func() time.Time
}

func (s *DefaultMyDayService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// EditRoster is the fresh candidate roster for an edit-team flow, with
// the booking's current assignees merged in so they stay selectable
// even when absent from the fresh fetch.
type EditRoster struct {
	DateKey  string          `json:"dateKey"`
	FromTime string          `json:"fromTime"`
	ToTime   string          `json:"toTime"`
	DOPs     []models.Person `json:"dops"`
	Cast     []models.Person `json:"cast"`
}

// EditSubmitRequest carries the full new assignment; the diff against
// the original is computed here, not by the client.
type EditSubmitRequest struct {
	Booking models.BookingRecord `json:"booking"`
	NewDOPs []string             `json:"newDops"`
	NewCast []string             `json:"newCast"`
}
