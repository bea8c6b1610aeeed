package osu

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
)

// DefaultUserAgent is sent by both clients unless overridden.
const DefaultUserAgent = "osu-api-go/0.1.0"

// Doer is the subset of *http.Client the clients need.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultHTTPClient returns a client with its own non-shared transport and
// the Go defaults otherwise. No timeout is set; use the request context.
func DefaultHTTPClient() *http.Client {
	return cleanhttp.DefaultClient()
}

// Exchange sends req and returns the body of a 2xx response.
//
// Network failures are wrapped with ErrTransport and non-2xx answers become
// *APIError, except a 404 whose body is {"error": null}, which the modern
// API uses for "not found" and which maps to ErrNoData. The legacy API key
// never appears in the text of a returned error.
func Exchange(hc Doer, req *http.Request) ([]byte, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, redact(err, req.URL.Query().Get(LegacyKeyParam)))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrTransport, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	if resp.StatusCode == http.StatusNotFound && checkEnvelope(body) == ErrNoData {
		return nil, ErrNoData
	}

	return nil, &APIError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(resp.StatusCode, body),
		Body:       string(body),
	}
}

// errorMessage extracts a human readable message from an error body.
func errorMessage(status int, body []byte) string {
	var env struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Message          string `json:"message"`
	}
	if json.Unmarshal(body, &env) == nil {
		switch {
		case env.ErrorDescription != "":
			return env.ErrorDescription
		case env.Error != "":
			return env.Error
		case env.Message != "":
			return env.Message
		}
	}
	return http.StatusText(status)
}

// LegacyKeyParam is the query parameter carrying the legacy API key.
const LegacyKeyParam = "k"

// redactedError hides secret from the text of err. The chain stays
// reachable through Unwrap.
type redactedError struct {
	err    error
	secret string
}

func (e *redactedError) Error() string {
	msg := e.err.Error()
	for _, form := range []string{e.secret, url.QueryEscape(e.secret)} {
		msg = strings.ReplaceAll(msg, form, "REDACTED")
	}
	return msg
}

func (e *redactedError) Unwrap() error {
	return e.err
}

func redact(err error, secret string) error {
	if secret == "" {
		return err
	}
	return &redactedError{err: err, secret: secret}
}
