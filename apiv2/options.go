package apiv2

import "github.com/rcoplo/osu-api-go/osu"

// Option configures a Client or a token request.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	baseURL    string
	tokenURL   string
	userAgent  string
	httpClient osu.Doer
}

func newOptions(opts []Option) *clientOptions {
	options := &clientOptions{
		baseURL:   DefaultBaseURL,
		tokenURL:  DefaultTokenURL,
		userAgent: osu.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.httpClient == nil {
		options.httpClient = osu.DefaultHTTPClient()
	}
	return options
}

// WithBaseURL sets the API root, "https://osu.ppy.sh/api/v2" by default.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithTokenURL sets the OAuth token endpoint.
func WithTokenURL(tokenURL string) Option {
	return func(o *clientOptions) {
		o.tokenURL = tokenURL
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
