package myday

import "errors"

var (
	// ErrNotCreator gates delete and edit to the booking's recorded creator.
	ErrNotCreator = errors.New("only the booking's creator can do that")

	// ErrCreatorCannotFree keeps the creator on the delete path instead.
	ErrCreatorCannotFree = errors.New("the creator deletes a booking instead of freeing it")

	// ErrAlreadyFreed suppresses a second self-release from this node.
	ErrAlreadyFreed = errors.New("you have already freed yourself from this booking")

	// ErrReasonRequired rejects a delete without a free-text reason.
	ErrReasonRequired = errors.New("a reason is required to delete a booking")

	// ErrBookingStarted refuses edits once the start time has passed.
	ErrBookingStarted = errors.New("this booking has already started")
)

// UpstreamRejection carries an ok:false message from the my-day script.
type UpstreamRejection struct {
	Message string
}

func (e *UpstreamRejection) Error() string {
	if e.Message == "" {
		return "upstream rejected the request"
	}
	return e.Message
}
