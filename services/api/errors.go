package apisvc

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotAuthenticated is returned, wrapped in an *AuthError, when a protected endpoint is called without a token.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidResponse is returned, wrapped in a *DecodeError, when a successful response is not valid JSON.
	ErrInvalidResponse = errors.New("received invalid JSON response from server")
	ErrInvalidBody     = errors.New("invalid request body provided")
	ErrNotHTML         = errors.New("failed to retrieve HTML content")

	errBodyTooLarge = errors.New("response body is too large")
)

// AuthError is returned when the session could not provide a token.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return "failed to retrieve authentication session"
	}
	return "failed to retrieve authentication session: " + e.Err.Error()
}

func (e *AuthError) Unwrap() error { return e.Err }
func (e *AuthError) Cause() error  { return e.Err }

// TransportError is returned when the request never got a response.
type TransportError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("API call %s %s failed: %v", e.Method, e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
func (e *TransportError) Cause() error  { return e.Err }

// HTTPError is returned for any non-2xx response.
// Message is the best message that could be extracted from the body.
type HTTPError struct {
	Status      int
	StatusText  string
	Message     string
	FieldErrors map[string]string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// DecodeError is returned when a successful response body cannot be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return ErrInvalidResponse.Error()
	}
	return e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }
func (e *DecodeError) Cause() error  { return e.Err }

// StatusCode returns the HTTP status of err if it is (or wraps) an *HTTPError, 0 otherwise.
func StatusCode(err error) int {
	var herr *HTTPError
	if errors.As(err, &herr) {
		return herr.Status
	}
	return 0
}
