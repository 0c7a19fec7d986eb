package myday

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"shootday/models"
	"shootday/services/gateway"
	"shootday/utils"

	"go.uber.org/zap"
)

// List fetches the user's bookings from the my-day script, accepts
// either a bare array or {ok:true, rows:[...]}, sorts them, and marks
// which lifecycle actions the user may take per row. An ok:false reply
// or a missing rows field is a surfaced error, not an empty list.
func (s *DefaultMyDayService) List(ctx context.Context, user models.Session) ([]models.MyDayItem, error) {
	query := url.Values{}
	query.Set("employee", user.Name)
	query.Set("role", NormalizeRole(user.Role))

	resp, err := s.Gateway.Get(ctx, s.MyDayURL, query)
	if err != nil {
		return nil, err
	}

	rows, err := decodeRows(resp.Body)
	if err != nil {
		return nil, err
	}

	now := s.now()
	items := make([]models.MyDayItem, 0, len(rows))
	for _, rec := range rows {
		isCreator := strings.EqualFold(strings.TrimSpace(rec.Creator), strings.TrimSpace(user.Name))
		freed, ferr := s.alreadyFreed(ctx, rec.BookingID, user.Name)
		if ferr != nil {
			utils.GetLogger().Warn("freed ledger read failed, offering Free anyway", zap.Error(ferr))
		}
		started := true
		if start, ok := startTime(rec); ok {
			started = !start.After(now)
		}
		items = append(items, models.MyDayItem{
			BookingRecord: rec,
			CanDelete:     isCreator,
			CanFree:       !isCreator && !freed,
			CanEdit:       isCreator && !started,
		})
	}
	SortBookings(items, now)
	return items, nil
}

func decodeRows(body []byte) ([]models.BookingRecord, error) {
	var bare []models.BookingRecord
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	var wrapper struct {
		OK      *bool                  `json:"ok"`
		Rows    []models.BookingRecord `json:"rows"`
		Message string                 `json:"message"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, &gateway.MalformedResponseError{Hint: "my-day body is neither array nor row object"}
	}
	if wrapper.OK == nil || !*wrapper.OK {
		return nil, &UpstreamRejection{Message: wrapper.Message}
	}
	if wrapper.Rows == nil {
		return nil, &UpstreamRejection{Message: "response carried no rows"}
	}
	return wrapper.Rows, nil
}

func (s *DefaultMyDayService) alreadyFreed(ctx context.Context, bookingID, userName string) (bool, error) {
	if bookingID == "" {
		return false, nil
	}
	names, err := s.Freed.Names(ctx, bookingID)
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(userName)) {
			return true, nil
		}
	}
	return false, nil
}
