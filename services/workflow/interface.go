package workflow

import (
	"context"
	"time"

	"shootday/models"
	"shootday/services/gateway"
)

// Relay is the slice of the gateway client the workflow needs.
type Relay interface {
	Post(ctx context.Context, payload map[string]interface{}) (*gateway.Response, error)
}

// LockStore persists lock sessions under the advisory exclusivity
// window and owns the in-flight submit guard.
type LockStore interface {
	Save(ctx context.Context, session *models.LockSession, ttl time.Duration) error
	Get(ctx context.Context, id string) (*models.LockSession, error)
	Delete(ctx context.Context, id string) error
	AcquireGuard(ctx context.Context, id string, ttl time.Duration) (bool, error)
	ReleaseGuard(ctx context.Context, id string) error
}

// WorkflowService drives the slot-locking and booking-submission flow:
// lock a date/time window, then submit full details against the roster
// the lock returned.
type WorkflowService interface {
	Lock(ctx context.Context, user models.Session, req LockRequest) (*LockResult, error)
	Submit(ctx context.Context, user models.Session, req SubmitRequest) (*SubmitResult, error)
	Cancel(ctx context.Context, user models.Session, lockID string) error
}

// DefaultWorkflowService implements WorkflowService.
type DefaultWorkflowService struct {
	Gateway Relay
	Store   LockStore
	// Now is the clock used for date-offset mapping and the
	// today-cutoff rule. Tests pin it; production leaves it nil.
	Now func() time.Time
}

func (s *DefaultWorkflowService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// LockRequest selects a calendar day (as an offset so the client never
// computes dates in its own timezone) and a time window on the
// 30-minute grid.
type LockRequest struct {
	DateOffset   *int   `json:"dateOffset"`
	FromTime     string `json:"fromTime"`
	ToTime       string `json:"toTime"`
	PreviousLock string `json:"previousLock,omitempty"`
}

// LockResult is the held slot plus the partitioned candidate roster.
type LockResult struct {
	LockID           string          `json:"lockId"`
	DateKey          string          `json:"dateKey"`
	FromTime         string          `json:"fromTime"`
	ToTime           string          `json:"toTime"`
	ExpiresInSeconds int             `json:"expiresInSeconds"`
	DOPs             []models.Person `json:"dops"`
	Cast             []models.Person `json:"cast"`
}

// SubmitRequest carries the filled-in details against a held lock.
type SubmitRequest struct {
	LockID string              `json:"lockId"`
	Shoot  models.ShootDetails `json:"shoot"`
	DOPs   []string            `json:"dops"`
	Names  []string            `json:"names"`
}

// SubmitResult echoes the upstream confirmation.
type SubmitResult struct {
	RequestID string                 `json:"requestId"`
	Booking   map[string]interface{} `json:"booking,omitempty"`
}
