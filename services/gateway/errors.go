package gateway

import (
	"errors"
	"fmt"
)

// NetworkError covers timeouts, DNS failures and connection resets on
// the way to an upstream. The transport detail stays wrapped; callers
// surface a uniform message.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("upstream unreachable (%s): %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UpstreamHTTPError is a non-2xx upstream reply. The status and body
// are preserved so the proxy surface can relay them verbatim.
type UpstreamHTTPError struct {
	Status int
	Body   []byte
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.Status)
}

// MalformedResponseError marks a body that did not match any expected
// shape. Callers degrade to an empty result and log a warning rather
// than failing hard; the upstream is not under this system's control.
type MalformedResponseError struct {
	Hint string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("unexpected upstream response shape: %s", e.Hint)
}

// ErrRequestIDMismatch is returned when the upstream echoes back a
// different request_id than the one sent with a mutating call.
var ErrRequestIDMismatch = errors.New("upstream request_id echo mismatch")
