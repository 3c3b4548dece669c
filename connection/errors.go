package connection

import (
	"errors"
	"fmt"
)

var (
	// ErrTransportUnavailable is returned when the connection to the game
	// cannot be opened, written to, read from or shut down. The connection
	// is not usable afterwards.
	ErrTransportUnavailable = errors.New("transport unavailable")

	// ErrMalformedResponse is returned when a reply line is cut short by the
	// stream closing or is not valid UTF-8.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrUnexpectedResponse is returned when a reply arrived intact but its
	// fields do not have the expected shape. The connection stays usable.
	ErrUnexpectedResponse = errors.New("unexpected response shape")

	// ErrWouldBlock is returned by a NonBlocking transport read when no data
	// is ready.
	ErrWouldBlock = errors.New("read would block")

	// ErrInvalidArgument is returned when a request argument would break
	// line framing.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ResponseError describes a reply that could not be decoded.
type ResponseError struct {
	Op  string // command that produced the reply
	Raw string // the reply line as received
	Err error  // underlying parse error, may be nil
}

func (e *ResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v %q: %v", e.Op, ErrUnexpectedResponse, e.Raw, e.Err)
	}
	return fmt.Sprintf("%s: %v %q", e.Op, ErrUnexpectedResponse, e.Raw)
}

// Unwrap lets errors.Is match both ErrUnexpectedResponse and the cause.
func (e *ResponseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrUnexpectedResponse, e.Err}
	}
	return []error{ErrUnexpectedResponse}
}

// unavailable wraps err as a connection-fatal error for op.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrTransportUnavailable, err)
}
