package filesrv

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/zyc-labs/filesrv_sdk_go/internal/filesrvapi"
)

// ErrMalformedResponse is wrapped when a successful response lacks a field
// the operation returns.
var ErrMalformedResponse = filesrvapi.ErrMalformed

// HTTPError reports a non-2xx reply. Message is the server's "error" field.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("HTTP %d - %s", e.StatusCode, e.Message)
}

// TransportError reports a request that produced no HTTP status.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.URL == "" {
		return fmt.Sprintf("filesrv: %s request failed: %v", e.Method, e.Err)
	}
	return fmt.Sprintf("filesrv: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// StatusCode returns the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode, true
	}
	return 0, false
}

// IsUnauthorized reports whether err is an HTTP 401.
func IsUnauthorized(err error) bool {
	status, ok := StatusCode(err)
	return ok && status == http.StatusUnauthorized
}

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}
