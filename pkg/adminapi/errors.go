package adminapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidConfig is returned by NewClient for an unusable Config
	ErrInvalidConfig = errors.New("invalid admin api config")

	// ErrUnauthorized is returned for any 401; the session token is already cleared
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned for 403 responses
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidRequest is returned for 400 and 422 responses
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound is returned for 404 responses
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned for 409 responses (duplicate slug, category in use, ...)
	ErrConflict = errors.New("conflict")

	// ErrServer is returned for 5xx responses
	ErrServer = errors.New("server error")

	// ErrNetwork is returned when the request never produced a response
	ErrNetwork = errors.New("network error")

	// ErrMalformedResponse is returned when a 2xx body cannot be decoded
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError is a non-2xx response from the backend
type APIError struct {
	StatusCode int
	// Message is the server supplied message, kept verbatim
	Message string
	Method  string
	Path    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
}

// Is maps the status code onto the package sentinels
func (e *APIError) Is(target error) bool {
	return target == statusSentinel(e.StatusCode)
}

func statusSentinel(code int) error {
	switch {
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusForbidden:
		return ErrForbidden
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusConflict:
		return ErrConflict
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return ErrInvalidRequest
	case code >= 500:
		return ErrServer
	default:
		return nil
	}
}

// ServerMessage returns the verbatim backend message carried by err, if any
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
