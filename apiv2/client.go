package apiv2

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rcoplo/osu-api-go/osu"
)

// DefaultBaseURL is the root of the modern API.
const DefaultBaseURL = "https://osu.ppy.sh/api/v2"

// Client represents a modern osu! API client bound to one Credential.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient osu.Doer
	cred       Credential
	logger     zerolog.Logger
}

// NewClient creates a client that authenticates with cred.
func NewClient(cred Credential, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if cred.AccessToken == "" {
		return nil, ErrMissingAccessToken
	}
	options := newOptions(opts)

	return &Client{
		baseURL:    strings.TrimSuffix(options.baseURL, "/"),
		userAgent:  options.userAgent,
		httpClient: options.httpClient,
		cred:       cred,
		logger:     logger,
	}, nil
}

// Connect mints a Credential and returns a client using it.
func Connect(ctx context.Context, clientID, clientSecret string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	cred, err := RequestToken(ctx, clientID, clientSecret, opts...)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Time("expires_at", cred.ExpiresAt()).
		Msg("Obtained osu! access token")

	return NewClient(cred, logger, opts...)
}

// Credential returns the token the client authenticates with.
func (c *Client) Credential() Credential {
	return c.cred
}

// WithCredential returns a copy of the client using cred. The receiver is
// left unchanged.
func (c *Client) WithCredential(cred Credential) *Client {
	clone := *c
	clone.cred = cred
	return &clone
}

// get performs an authenticated GET on path with the encoded query.
func (c *Client) get(ctx context.Context, path string, q *osu.ModernQuery) ([]byte, error) {
	url := q.AppendTo(c.baseURL + "/" + path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authorization())
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	body, err := osu.Exchange(c.httpClient, req)

	c.logger.Debug().
		Str("path", path).
		Str("query", q.Encode()).
		Int("bytes", len(body)).
		Dur("took", time.Since(start)).
		Err(err).
		Msg("modern API request")

	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return body, nil
}

func (c *Client) authorization() string {
	tokenType := c.cred.TokenType
	if tokenType == "" || strings.EqualFold(tokenType, "bearer") {
		tokenType = "Bearer"
	}
	return tokenType + " " + c.cred.AccessToken
}
