package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport matches any failure of the HTTP exchange itself. Retrying
	// the same request may succeed.
	ErrTransport = errors.New("transport error")

	// ErrInvalidResponseFormat means the body was not a JSON document (or, on
	// the strict path, was not declared as one).
	ErrInvalidResponseFormat = errors.New("invalid response format")

	// ErrUnexpectedResponseShape means the body was valid JSON but no incident
	// array could be located in it.
	ErrUnexpectedResponseShape = errors.New("unexpected response shape")
)

// Error kinds reported to API clients.
const (
	KindTransport               = "transport"
	KindInvalidResponseFormat   = "invalid_response_format"
	KindUnexpectedResponseShape = "unexpected_response_shape"
	KindUnknown                 = "unknown"
)

// TransportError describes a failed request to the incident backend: a
// network-level error, or a non-2xx response.
type TransportError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	msg := "backend " + e.URL
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	switch {
	case e.Body != "":
		msg += ": " + e.Body
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrTransport) match any *TransportError.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// Retryable reports whether repeating the same request could help.
func Retryable(err error) bool {
	return errors.Is(err, ErrTransport)
}

// ErrorKind classifies err into one of the Kind* constants.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrTransport):
		return KindTransport
	case errors.Is(err, ErrInvalidResponseFormat):
		return KindInvalidResponseFormat
	case errors.Is(err, ErrUnexpectedResponseShape):
		return KindUnexpectedResponseShape
	default:
		return KindUnknown
	}
}
