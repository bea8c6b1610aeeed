package apiv1

import "github.com/rcoplo/osu-api-go/osu"

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL    string
	userAgent  string
	httpClient osu.Doer
}

// WithBaseURL points the client at another host, e.g. a test server.
// The value is the API root, "https://osu.ppy.sh/api" by default.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc osu.Doer) Option {
	return func(o *clientOptions) {
		if hc != nil {
			o.httpClient = hc
		}
	}
}
