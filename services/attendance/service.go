package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"time"

	"shootday/models"
	"shootday/services/gateway"
	"shootday/services/myday"
	"shootday/utils"

	"go.uber.org/zap"
)

// windowDays is the rolling attendance window: today plus six days.
const windowDays = 7

// Fetcher is the slice of the gateway client this service needs.
type Fetcher interface {
	Get(ctx context.Context, rawURL string, query url.Values) (*gateway.Response, error)
	PostTo(ctx context.Context, rawURL string, payload map[string]interface{}) (*gateway.Response, error)
}

// Notifier enqueues the best-effort attendance-change webhook. Failure
// to enqueue or deliver never affects the attendance write itself.
type Notifier interface {
	EnqueueAttendanceChange(payload models.AttendanceChangePayload) error
}

// AttendanceService renders the rolling window and writes one record
// per day.
type AttendanceService interface {
	Window(ctx context.Context, user models.Session) ([]models.AttendanceDay, error)
	Rows(ctx context.Context, employee string) ([]models.AttendanceRow, error)
	Submit(ctx context.Context, user models.Session, req SubmitRequest) error
}

// DefaultAttendanceService implements AttendanceService.
type DefaultAttendanceService struct {
	Gateway       Fetcher
	Notify        Notifier
	AttendanceURL string
	MyDayURL      string
	Now           func() time.Time
}

// SubmitRequest writes or updates one day's attendance. Key defaults
// to date+employee when absent. OldStatus rides along on updates so
// the change notification can carry both values.
type SubmitRequest struct {
	Action     string `json:"action"` // "write" or "update"
	Date       string `json:"date"`
	Attendance string `json:"attendance"`
	Key        string `json:"key,omitempty"`
	OldStatus  string `json:"oldStatus,omitempty"`
}

var validStatuses = map[models.AttendanceStatus]bool{
	models.StatusPresent:         true,
	models.StatusAbsent:          true,
	models.StatusPartialLate:     true,
	models.StatusFirstHalfLeave:  true,
	models.StatusSecondHalfLeave: true,
	models.StatusPartialEarly:    true,
}

func (s *DefaultAttendanceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Window builds the 7-day card list starting today: per day, the
// already-submitted status (if any) and the statuses the day's booked
// shoots still allow.
func (s *DefaultAttendanceService) Window(ctx context.Context, user models.Session) ([]models.AttendanceDay, error) {
	submitted, err := s.submittedByDay(ctx, user.Name)
	if err != nil {
		return nil, err
	}
	shoots := s.shootsByDay(ctx, user)

	now := s.now().In(utils.KolkataLocation())
	days := make([]models.AttendanceDay, 0, windowDays)
	for i := 0; i < windowDays; i++ {
		key := utils.DateKey(now.AddDate(0, 0, i))
		spans := shoots[key]
		days = append(days, models.AttendanceDay{
			DateKey:   key,
			Allowed:   AllowedStatuses(spans),
			Submitted: submitted[key],
			HasShoots: len(spans) > 0,
		})
	}
	return days, nil
}

// Submit forwards a write or update to the attendance script. Updates
// additionally fire the change notification, fire-and-forget.
func (s *DefaultAttendanceService) Submit(ctx context.Context, user models.Session, req SubmitRequest) error {
	if req.Action != "write" && req.Action != "update" {
		return errors.New("action must be write or update")
	}
	if !validStatuses[models.AttendanceStatus(req.Attendance)] {
		return errors.New("unknown attendance status")
	}
	key := req.Key
	if key == "" {
		key = req.Date + user.Name
	}
	if _, err := s.Gateway.PostTo(ctx, s.AttendanceURL, map[string]interface{}{
		"action":     req.Action,
		"date":       req.Date,
		"employee":   user.Name,
		"attendance": req.Attendance,
		"key":        key,
	}); err != nil {
		return err
	}

	if req.Action == "update" && s.Notify != nil {
		payload := models.AttendanceChangePayload{
			Employee:  user.Name,
			Date:      req.Date,
			OldStatus: req.OldStatus,
			NewStatus: req.Attendance,
		}
		if err := s.Notify.EnqueueAttendanceChange(payload); err != nil {
			// The attendance write already persisted; the webhook is
			// best-effort only.
			utils.GetLogger().Warn("failed to enqueue attendance change notification",
				zap.String("employee", user.Name), zap.Error(err))
		}
	}
	return nil
}

// Rows fetches the raw persisted attendance for an employee.
func (s *DefaultAttendanceService) Rows(ctx context.Context, employee string) ([]models.AttendanceRow, error) {
	query := url.Values{}
	query.Set("employee", employee)
	resp, err := s.Gateway.Get(ctx, s.AttendanceURL, query)
	if err != nil {
		return nil, err
	}
	var wrapper struct {
		OK   *bool                  `json:"ok"`
		Rows []models.AttendanceRow `json:"rows"`
	}
	if err := resp.Decode(&wrapper); err != nil {
		return nil, err
	}
	if wrapper.OK != nil && !*wrapper.OK {
		return nil, errors.New("attendance read rejected upstream")
	}
	return wrapper.Rows, nil
}

func (s *DefaultAttendanceService) submittedByDay(ctx context.Context, employee string) (map[string]string, error) {
	rows, err := s.Rows(ctx, employee)
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]string, len(rows))
	for _, row := range rows {
		key := row.Date
		if day, ok := utils.ParseUpstreamDate(row.Date); ok {
			key = utils.DateKey(day)
		}
		byDay[key] = row.Attendance
	}
	return byDay, nil
}

// shootsByDay reduces the user's bookings to minute spans grouped by
// date key. A failed or malformed read degrades to no shoots (every
// status stays allowed) rather than blocking the window.
func (s *DefaultAttendanceService) shootsByDay(ctx context.Context, user models.Session) map[string][]models.ShootSpan {
	query := url.Values{}
	query.Set("employee", user.Name)
	query.Set("role", myday.NormalizeRole(user.Role))

	byDay := map[string][]models.ShootSpan{}
	resp, err := s.Gateway.Get(ctx, s.MyDayURL, query)
	if err != nil {
		utils.GetLogger().Warn("shoot schedule unavailable for attendance window", zap.Error(err))
		return byDay
	}
	var rows []models.BookingRecord
	if err := json.Unmarshal(resp.Body, &rows); err != nil {
		var wrapper struct {
			Rows []models.BookingRecord `json:"rows"`
		}
		if err := json.Unmarshal(resp.Body, &wrapper); err != nil || wrapper.Rows == nil {
			utils.GetLogger().Warn("shoot schedule had unexpected shape, treating as empty")
			return byDay
		}
		rows = wrapper.Rows
	}
	for _, rec := range rows {
		day, ok := utils.ParseUpstreamDate(rec.Date)
		if !ok {
			continue
		}
		from, okFrom := utils.ParseTimeToMinutes(rec.FromTime)
		to, okTo := utils.ParseTimeToMinutes(rec.ToTime)
		if !okFrom || !okTo {
			continue
		}
		key := utils.DateKey(day)
		byDay[key] = append(byDay[key], models.ShootSpan{FromMinutes: from, ToMinutes: to})
	}
	return byDay
}
