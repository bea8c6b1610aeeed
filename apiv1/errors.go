package apiv1

import "errors"

// Common errors
var (
	// ErrMissingAPIKey indicates the client was built without an API key
	ErrMissingAPIKey = errors.New("osu API key is required")
	// ErrMissingUser indicates an endpoint that needs a user got none
	ErrMissingUser = errors.New("user reference is required")
)
