package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the resource API could not be reached.
	ErrUnavailable = errors.New("resource api unavailable")

	// ErrUnexpectedStatus indicates a non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrDecode indicates the response body did not match the expected shape.
	ErrDecode = errors.New("invalid response body")
)

// HTTPError carries the status code and a trimmed body of a failed call.
type HTTPError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

func (e *HTTPError) Unwrap() error { return ErrUnexpectedStatus }

// errorCode classifies an error for observability.
func errorCode(err error) string {
	var httpErr *HTTPError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &httpErr):
		return fmt.Sprintf("http_%d", httpErr.Code)
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrDecode):
		return "decode"
	default:
		return "unknown"
	}
}
