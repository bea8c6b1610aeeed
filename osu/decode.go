package osu

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var jsonNull = []byte("null")

// DecodeOne parses body as a single T.
//
// A top-level object with an "error" key is the service's way of saying
// "nothing here" and yields ErrNoData; a non-null value is kept as the
// error text, e.g. "Replay not available.". Anything that does not parse
// into T yields a *PayloadError.
func DecodeOne[T any](body []byte) (T, error) {
	var out T
	if err := checkEnvelope(body); err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		var zero T
		return zero, &PayloadError{Err: err, Body: string(body)}
	}
	return out, nil
}

// DecodeList parses body as a JSON array of T. An empty array yields
// ErrNoData rather than an empty success.
func DecodeList[T any](body []byte) ([]T, error) {
	if err := checkEnvelope(body); err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &PayloadError{Err: err, Body: string(body)}
	}
	if len(out) == 0 {
		return nil, ErrNoData
	}
	return out, nil
}

// First returns the first element of list, or ErrNoData.
func First[T any](list []T) (T, error) {
	return Nth(list, 1)
}

// Nth returns the n-th (1-based) element of list, or ErrNoData when the
// list is shorter than n.
func Nth[T any](list []T, n int) (T, error) {
	if n < 1 || n > len(list) {
		var zero T
		return zero, ErrNoData
	}
	return list[n-1], nil
}

// Last returns the final element of list, or ErrNoData.
func Last[T any](list []T) (T, error) {
	return Nth(list, len(list))
}

type errorEnvelope struct {
	Error            json.RawMessage `json:"error"`
	ErrorDescription string          `json:"error_description"`
	Message          string          `json:"message"`
}

// checkEnvelope inspects the top level of body for "no data" markers. It
// returns nil when body should be decoded normally. A bare ErrNoData means
// the marker was {"error": null}.
func checkEnvelope(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if bytes.Equal(trimmed, jsonNull) {
		return ErrNoData
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return &PayloadError{Err: err, Body: string(body)}
	}
	raw, ok := fields["error"]
	if !ok {
		return nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return ErrNoData
	}

	var env errorEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return &PayloadError{Err: err, Body: string(body)}
	}
	msg := string(env.Error)
	var s string
	if json.Unmarshal(env.Error, &s) == nil {
		msg = s
	}
	if env.ErrorDescription != "" {
		msg += ": " + env.ErrorDescription
	}
	return fmt.Errorf("%w: %s", ErrNoData, msg)
}
