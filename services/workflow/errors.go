package workflow

import (
	"errors"
	"fmt"
)

// Sentinel errors for the lock/submit flow. Handlers map these onto
// HTTP statuses; none of them ever reaches a global error handler.
var (
	// ErrOngoingBooking is the upstream's advisory collision signal:
	// someone else is mid-booking on this slot. The client retries
	// after the exclusivity window.
	ErrOngoingBooking = errors.New("slot is currently being booked by someone else")

	// ErrNotOnRoster means the user is absent from the candidate
	// roster for the slot, i.e. already booked there.
	ErrNotOnRoster = errors.New("already booked for this slot")

	// ErrLockExpired means the lock session is gone: expired, never
	// created, or superseded by a newer lock.
	ErrLockExpired = errors.New("lock expired, select the slot again")

	// ErrSubmitInFlight suppresses a duplicate submit while the first
	// one is still running. The duplicate makes no network call.
	ErrSubmitInFlight = errors.New("submission already in flight")

	// ErrRoleConflict enforces that no person holds DOP and general
	// cast at the same time within one submission.
	ErrRoleConflict = errors.New("a person cannot be both DOP and cast")
)

// ValidationError is a local, pre-flight rejection. It always blocks
// the request before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
