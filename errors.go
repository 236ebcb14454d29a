package adminctl

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNoToken signals that an operation requiring authentication was
// attempted without a persisted token. It is raised locally, before any
// network traffic.
var ErrNoToken = errors.New("no authentication token found")

// ServerError is returned when the API answered the request but rejected it,
// either with a non-2xx HTTP status or with a non-200 application status in
// the response envelope. Message carries the server-provided message when
// the body had one.
type ServerError struct {
	HTTPStatus int
	Status     int
	Message    string
}

// Error implements the error interface
func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request rejected with status %d", e.HTTPStatus)
}

// TransportError is returned when the request could not be completed at all
// (connection refused, DNS failure, timeout). The wrapped error comes from
// the transport layer.
type TransportError struct {
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes the transport-level cause
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorMessage extracts the message a user should see for err: the
// server-provided message for rejected requests, the transport message
// otherwise. State machines store this string in their error slice instead
// of the raw error.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var srv *ServerError
	if errors.As(err, &srv) {
		return srv.Error()
	}
	var tr *TransportError
	if errors.As(err, &tr) {
		return tr.Error()
	}
	return err.Error()
}
