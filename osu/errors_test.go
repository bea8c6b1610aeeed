package osu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindUnknown},
		{"no data", ErrNoData, KindNoData},
		{"wrapped no data", fmt.Errorf("get_user: %w", ErrNoData), KindNoData},
		{"payload", &PayloadError{Err: errors.New("bad")}, KindMalformed},
		{"api error", &APIError{StatusCode: 500}, KindTransport},
		{"wrapped api error", fmt.Errorf("lookup: %w", &APIError{StatusCode: 401}), KindTransport},
		{"network", fmt.Errorf("%w: %w", ErrTransport, errors.New("connection refused")), KindTransport},
		{"foreign", errors.New("something else"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name         string
		err          *APIError
		wantMsg      string
		notFound     bool
		unauthorized bool
	}{
		{
			name:     "not found",
			err:      &APIError{StatusCode: 404, Message: "Not Found"},
			wantMsg:  "osu API error: status 404: Not Found",
			notFound: true,
		},
		{
			name:         "unauthorized",
			err:          &APIError{StatusCode: 401},
			wantMsg:      "osu API error: status 401",
			unauthorized: true,
		},
		{
			name:         "forbidden",
			err:          &APIError{StatusCode: 403, Message: "Forbidden"},
			wantMsg:      "osu API error: status 403: Forbidden",
			unauthorized: true,
		},
		{
			name:    "service message",
			err:     &APIError{Message: "Please provide a valid API key."},
			wantMsg: "osu API error: Please provide a valid API key.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
			assert.Equal(t, tt.notFound, tt.err.IsNotFound())
			assert.Equal(t, tt.unauthorized, tt.err.IsUnauthorized())
			assert.ErrorIs(t, tt.err, ErrTransport)
		})
	}
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "no-data", KindNoData.String())
	assert.Equal(t, "malformed-payload", KindMalformed.String())
	assert.Equal(t, "transport", KindTransport.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
