package apiv1

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rcoplo/osu-api-go/osu"
)

// DefaultBaseURL is the root of the legacy API.
const DefaultBaseURL = "https://osu.ppy.sh/api"

// Client represents a legacy osu! API client. It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient osu.Doer
	logger     zerolog.Logger
}

// NewClient creates a new legacy API client
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	options := &clientOptions{
		baseURL:   DefaultBaseURL,
		userAgent: osu.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.httpClient == nil {
		options.httpClient = osu.DefaultHTTPClient()
	}

	return &Client{
		baseURL:    strings.TrimSuffix(options.baseURL, "/"),
		apiKey:     apiKey,
		userAgent:  options.userAgent,
		httpClient: options.httpClient,
		logger:     logger,
	}, nil
}

// get performs a GET on endpoint with the key and the assembled query.
func (c *Client) get(ctx context.Context, endpoint string, q *osu.LegacyQuery) ([]byte, error) {
	query := wireQuery(q.String())
	url := fmt.Sprintf("%s/%s?%s=%s%s", c.baseURL, endpoint, osu.LegacyKeyParam, c.apiKey, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	body, err := osu.Exchange(c.httpClient, req)

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("query", query).
		Int("bytes", len(body)).
		Dur("took", time.Since(start)).
		Err(err).
		Msg("legacy API request")

	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	return body, nil
}

// wireQuery escapes the few bytes that cannot appear raw on an HTTP request
// line. Everything else goes to the legacy service verbatim.
func wireQuery(q string) string {
	return queryReplacer.Replace(q)
}

var queryReplacer = strings.NewReplacer(
	" ", "%20",
	`"`, "%22",
	"#", "%23",
	"<", "%3C",
	">", "%3E",
)

// modeCode turns an optional mode into the "m" parameter.
func modeCode(m *osu.Mode) osu.Param {
	return osu.ModeParam("m", m, osu.ModeCode)
}

// flag turns an optional boolean into the 0/1 integer the legacy API reads.
func flag(key string, b *bool) osu.Param {
	if b == nil {
		return osu.Param{Key: key}
	}
	var v int8
	if *b {
		v = 1
	}
	return osu.Int8(key, &v)
}
