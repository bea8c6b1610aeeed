package osu

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure classes shared by both API generations.
var (
	// ErrNoData indicates the service answered but had nothing to report.
	ErrNoData = errors.New("osu: no data")
	// ErrMalformedPayload indicates the response body did not have the expected shape.
	ErrMalformedPayload = errors.New("osu: malformed payload")
	// ErrTransport indicates the request failed at the network or HTTP layer.
	ErrTransport = errors.New("osu: transport failure")
)

// APIError represents a non-2xx answer from the osu! service.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("osu API error: %s", e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("osu API error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("osu API error: status %d", e.StatusCode)
}

// Is reports APIError as a transport failure.
func (e *APIError) Is(target error) bool {
	return target == ErrTransport
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure,
// typically an invalid API key or an expired bearer token.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// PayloadError wraps a decoding failure together with the offending body.
type PayloadError struct {
	Err  error
	Body string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("osu: malformed payload: %v", e.Err)
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

// Is reports PayloadError as ErrMalformedPayload.
func (e *PayloadError) Is(target error) bool {
	return target == ErrMalformedPayload
}

// ErrorKind is the coarse classification of a client error.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNoData
	KindMalformed
	KindTransport
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindNoData:
		return "no-data"
	case KindMalformed:
		return "malformed-payload"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by this module onto one of the three
// failure classes. nil and foreign errors yield KindUnknown.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrNoData):
		return KindNoData
	case errors.Is(err, ErrMalformedPayload):
		return KindMalformed
	case errors.Is(err, ErrTransport):
		return KindTransport
	default:
		return KindUnknown
	}
}
