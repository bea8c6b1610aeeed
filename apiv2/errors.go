package apiv2

import "errors"

// Common errors
var (
	// ErrMissingClientCredentials indicates an empty client id or secret
	ErrMissingClientCredentials = errors.New("osu OAuth client id and secret are required")
	// ErrMissingAccessToken indicates a client built without a bearer token
	ErrMissingAccessToken = errors.New("osu access token is required")
)
