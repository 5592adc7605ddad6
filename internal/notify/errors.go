package notify

import "fmt"

// ErrSendFailed is returned when a message could not be delivered to the
// platform.
type ErrSendFailed struct {
	Channel string

	// StatusCode is the HTTP status returned by the platform, or zero when
	// no response was received.
	StatusCode int

	Cause error
}

func (e *ErrSendFailed) Error() string {
	return fmt.Sprintf("notify: send failed on %s: %v", e.Channel, e.Cause)
}

func (e *ErrSendFailed) Unwrap() error { return e.Cause }
