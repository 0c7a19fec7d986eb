package workflow

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"shootday/models"
	"shootday/services/gateway"
	"shootday/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ongoingBookingKey is the advisory collision signal the upstream
// script emits when another booking is mid-flight on the same slot.
const ongoingBookingKey = "Ongoing Booking"

// Lock validates the date/time selection, asks the upstream to hold
// the slot, and on success creates a lock session under the 90-second
// exclusivity window. The roster is re-fetched on every call and never
// cached across locks.
func (s *DefaultWorkflowService) Lock(ctx context.Context, user models.Session, req LockRequest) (*LockResult, error) {
	if req.DateOffset == nil {
		return nil, &ValidationError{Field: "dateOffset", Message: "select a date"}
	}
	now := s.now()
	dateKey, verr := DateKeyForOffset(*req.DateOffset, now)
	if verr != nil {
		return nil, verr
	}
	if verr := ValidateTimeRange(req.FromTime, req.ToTime); verr != nil {
		return nil, verr
	}
	if *req.DateOffset == 0 {
		if verr := validateTodayCutoff(req.FromTime, now); verr != nil {
			return nil, verr
		}
	}

	resp, err := s.Gateway.Post(ctx, map[string]interface{}{
		"action":   "booking_lock",
		"user":     user.Name,
		"email":    user.Email,
		"dateKey":  dateKey,
		"fromTime": req.FromTime,
		"toTime":   req.ToTime,
	})
	if err != nil {
		return nil, err
	}

	if doc, derr := resp.Document(); derr == nil {
		if key, _ := doc["key"].(string); key == ongoingBookingKey {
			return nil, ErrOngoingBooking
		}
	}

	roster := gateway.NormalizeRoster(resp.Body)
	if roster == nil {
		utils.GetLogger().Warn("lock returned no parseable roster, degrading to empty",
			zap.String("user", user.Name), zap.String("dateKey", dateKey))
		roster = []string{}
	}
	if !gateway.RosterHasUser(roster, user.Name) {
		return nil, ErrNotOnRoster
	}

	dops, cast := gateway.PartitionRoster(roster)
	session := &models.LockSession{
		ID:        NewRequestID(),
		User:      user,
		DateKey:   dateKey,
		FromTime:  req.FromTime,
		ToTime:    req.ToTime,
		DOPs:      dops,
		Cast:      cast,
		CreatedAt: now,
	}
	if err := s.Store.Save(ctx, session, utils.LockTTL); err != nil {
		return nil, err
	}
	// A date or time change does not survive the old lock: the
	// superseded session is dropped along with its roster.
	if req.PreviousLock != "" {
		if err := s.Store.Delete(ctx, req.PreviousLock); err != nil {
			utils.GetLogger().Warn("failed to drop superseded lock", zap.Error(err))
		}
	}

	return &LockResult{
		LockID:           session.ID,
		DateKey:          dateKey,
		FromTime:         req.FromTime,
		ToTime:           req.ToTime,
		ExpiresInSeconds: int(utils.LockTTL / time.Second),
		DOPs:             dops,
		Cast:             cast,
	}, nil
}

// Submit validates the filled-in details against the held lock and
// relays the booking upstream exactly once per attempt, under a fresh
// idempotency key. A concurrent duplicate for the same lock is
// suppressed before any network call.
func (s *DefaultWorkflowService) Submit(ctx context.Context, user models.Session, req SubmitRequest) (*SubmitResult, error) {
	session, err := s.Store.Get(ctx, req.LockID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(session.User.Email, user.Email) {
		return nil, ErrLockExpired
	}
	if verr := validateSubmit(session, req); verr != nil {
		return nil, verr
	}

	ok, err := s.Store.AcquireGuard(ctx, req.LockID, utils.SubmitGuardTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSubmitInFlight
	}

	requestID := NewRequestID()
	resp, err := s.Gateway.Post(ctx, map[string]interface{}{
		"action":     "booking_submit",
		"request_id": requestID,
		"user":       user.Name,
		"email":      user.Email,
		"dateKey":    session.DateKey,
		"fromTime":   session.FromTime,
		"toTime":     session.ToTime,
		"shootName":  req.Shoot.ShootName,
		"brand":      req.Shoot.Brand,
		"ip":         req.Shoot.IP,
		"noOfShoot":  req.Shoot.NoOfShoot,
		"location":   req.Shoot.Location,
		"dop":        joinSelections(session, req.DOPs),
		"cast":       joinSelections(session, req.Names),
	})
	if err != nil {
		// State only advances after a confirmed response, so a
		// failed relay just frees the guard for a retry.
		if gerr := s.Store.ReleaseGuard(ctx, req.LockID); gerr != nil {
			utils.GetLogger().Warn("failed to release submit guard", zap.Error(gerr))
		}
		return nil, err
	}

	doc, derr := resp.Document()
	if derr != nil {
		utils.GetLogger().Warn("submit confirmation had unexpected shape", zap.Error(derr))
		doc = nil
	}

	if err := s.Store.Delete(ctx, req.LockID); err != nil {
		utils.GetLogger().Warn("failed to clear lock after submit", zap.Error(err))
	}
	if err := s.Store.ReleaseGuard(ctx, req.LockID); err != nil {
		utils.GetLogger().Warn("failed to release submit guard", zap.Error(err))
	}

	return &SubmitResult{RequestID: requestID, Booking: doc}, nil
}

// Cancel drops a held lock explicitly (page reset).
func (s *DefaultWorkflowService) Cancel(ctx context.Context, user models.Session, lockID string) error {
	session, err := s.Store.Get(ctx, lockID)
	if err != nil {
		return err
	}
	if !strings.EqualFold(session.User.Email, user.Email) {
		return ErrLockExpired
	}
	return s.Store.Delete(ctx, lockID)
}

func validateSubmit(session *models.LockSession, req SubmitRequest) error {
	if strings.TrimSpace(req.Shoot.ShootName) == "" {
		return &ValidationError{Field: "shootName", Message: "required"}
	}
	hasBrand := strings.TrimSpace(req.Shoot.Brand) != ""
	hasIP := strings.TrimSpace(req.Shoot.IP) != ""
	if hasBrand == hasIP {
		return &ValidationError{Field: "brand", Message: "choose exactly one of brand or ip"}
	}
	if req.Shoot.NoOfShoot < 1 {
		return &ValidationError{Field: "noOfShoot", Message: "must be at least 1"}
	}
	if strings.TrimSpace(req.Shoot.Location) == "" {
		return &ValidationError{Field: "location", Message: "required"}
	}
	if len(req.Names) == 0 {
		return &ValidationError{Field: "names", Message: "select at least one cast member"}
	}
	for _, name := range append(append([]string{}, req.DOPs...), req.Names...) {
		if session.RosterEntry(name) == "" {
			return &ValidationError{Field: "names", Message: fmt.Sprintf("%s is not on the roster for this slot", name)}
		}
	}
	// One person, one role: a name picked as DOP cannot also be cast.
	for _, dop := range req.DOPs {
		for _, name := range req.Names {
			if strings.EqualFold(dop, name) {
				return ErrRoleConflict
			}
		}
	}
	return nil
}

// joinSelections resolves selected names back to their roster wire
// strings and joins them the way the sheet expects.
func joinSelections(session *models.LockSession, names []string) string {
	entries := make([]string, 0, len(names))
	for _, name := range names {
		if entry := session.RosterEntry(name); entry != "" {
			entries = append(entries, entry)
		}
	}
	return strings.Join(entries, ", ")
}

// NewRequestID returns a fresh idempotency key: a random UUID, with a
// timestamp+random fallback if the entropy source fails.
func NewRequestID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return fmt.Sprintf("%d-%06d", time.Now().UnixNano(), rand.Intn(1000000))
}
