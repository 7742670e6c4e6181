package sdk

import (
	"errors"
	"fmt"
)

var (
	// ErrAPIKeyMissing is returned when no API key can be resolved from any
	// source. This is a configuration error, not a network error.
	ErrAPIKeyMissing = errors.New("no API key found: set " + EnvAPIKey + ", add it to the secrets mapping, or pass it explicitly")

	// ErrNoDatabaseURL is returned when an operation uses a relative path
	// but no database URL was resolved.
	ErrNoDatabaseURL = errors.New("no database URL configured: set " + EnvDBURL + " or address the service with an absolute URL")

	// ErrNotConnected is returned when the facade is used before Connect.
	ErrNotConnected = errors.New("facade is not connected")

	// ErrServer matches any ServerError via errors.Is.
	ErrServer = errors.New("server reported failure")
)

// ServerError reports a remote call whose response did not indicate success.
// It carries the response status code and the server-provided message.
type ServerError struct {
	// StatusCode is the HTTP status code of the failed response.
	StatusCode int

	// Message is the server-provided error message, when present.
	Message string
}

// NewServerError builds a ServerError from a failed response envelope.
func NewServerError(resp *Response) *ServerError {
	return &ServerError{StatusCode: resp.StatusCode, Message: resp.ServerMessage()}
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error: status %d: %s", e.StatusCode, e.Message)
}

// Is reports ErrServer as a match so callers can test with errors.Is.
func (e *ServerError) Is(target error) bool { return target == ErrServer }
