package apimock

import (
	"errors"
	"fmt"
	"net/http"

	sdk "github.com/xataconnect/sdk"
)

var (
	// ErrUnexpectedMethod is returned when the HTTP method is not as expected.
	ErrUnexpectedMethod = errors.New("unexpected method")

	// ErrUnexpectedPath is returned when the request path is not as expected.
	ErrUnexpectedPath = errors.New("unexpected path")

	// ErrOperationFailed is returned when Fail is set without a custom error.
	ErrOperationFailed = errors.New("operation failed")
)

// Mock simulates the transport call with validation and configurable
// responses.
type Mock struct {
	// ExpectedMethod defines the HTTP method expected in the call.
	ExpectedMethod string

	// ExpectedPath defines the path expected in the call.
	ExpectedPath string

	// Error is the error to return if the mock is configured to fail.
	Error error

	// PayloadValidator validates the body passed to the call.
	PayloadValidator func([]byte) error

	// Response defines the response to return for the call.
	Response func() *sdk.Response

	// Fail indicates whether the mock should return an error.
	Fail bool

	// Calls counts completed invocations, validation included.
	Calls int
}

// Config represents the configuration for creating a Mock instance.
type Config struct {
	// ExpectedMethod defines the HTTP method expected in the call.
	ExpectedMethod string

	// ExpectedPath defines the path expected in the call.
	ExpectedPath string

	// Error is the error to return if the mock is configured to fail.
	Error error

	// PayloadValidator validates the body passed to the call.
	PayloadValidator func([]byte) error

	// Response defines the response to return for the call.
	Response func() *sdk.Response

	// Fail indicates whether the mock should return an error.
	Fail bool
}

// New creates a new instance of the Mock based on the provided Config.
func New(config Config) (*Mock, error) {
	return &Mock{
		ExpectedMethod:   config.ExpectedMethod,
		ExpectedPath:     config.ExpectedPath,
		Error:            config.Error,
		PayloadValidator: config.PayloadValidator,
		Response:         config.Response,
		Fail:             config.Fail,
	}, nil
}

// Call simulates a transport call, validating inputs and returning a
// response or error.
func (m *Mock) Call(method, path, contentType string, body []byte) (*sdk.Response, error) {
	m.Calls++

	// Return user-defined error if Fail is set
	if m.Fail && m.Error != nil {
		return nil, m.Error
	}

	// Return default error if Fail is set but no custom error is provided
	if m.Fail {
		return nil, ErrOperationFailed
	}

	// Validate method
	if m.ExpectedMethod != "" && m.ExpectedMethod != method {
		return nil, fmt.Errorf("%w: expected method %s, got %s", ErrUnexpectedMethod, m.ExpectedMethod, method)
	}

	// Validate path
	if m.ExpectedPath != "" && m.ExpectedPath != path {
		return nil, fmt.Errorf("%w: expected path %s, got %s", ErrUnexpectedPath, m.ExpectedPath, path)
	}

	// Validate payload using user-defined validator, if provided
	if m.PayloadValidator != nil {
		if err := m.PayloadValidator(body); err != nil {
			return nil, err
		}
	}

	// Return user-defined response if provided
	if m.Response != nil {
		return m.Response(), nil
	}

	// Default to an empty success response
	return &sdk.Response{StatusCode: http.StatusOK, Status: "200 OK"}, nil
}

// OK returns a canned success response with the given JSON body.
func OK(body string) func() *sdk.Response {
	return func() *sdk.Response {
		return &sdk.Response{StatusCode: http.StatusOK, Status: "200 OK", Body: []byte(body)}
	}
}

// Failure returns a canned error response with the given status code and
// server message.
func Failure(code int, message string) func() *sdk.Response {
	return func() *sdk.Response {
		return &sdk.Response{
			StatusCode: code,
			Status:     http.StatusText(code),
			Body:       []byte(fmt.Sprintf(`{"message":%q}`, message)),
		}
	}
}
