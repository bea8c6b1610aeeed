package apiv2

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rcoplo/osu-api-go/osu"
)

// DefaultTokenURL is the OAuth token endpoint.
const DefaultTokenURL = "https://osu.ppy.sh/oauth/token"

// Credential is a bearer token minted with the client-credentials grant.
// It is a plain value; nothing renews it.
type Credential struct {
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"` // seconds, 86400 at issue
	AccessToken string    `json:"access_token"`
	IssuedAt    time.Time `json:"issued_at"`
}

// ExpiresAt returns the instant the token stops being accepted.
func (c Credential) ExpiresAt() time.Time {
	return c.IssuedAt.Add(time.Duration(c.ExpiresIn) * time.Second)
}

// Expired reports whether the token is past its expiry.
func (c Credential) Expired() bool {
	return !time.Now().Before(c.ExpiresAt())
}

// TTL returns the time left before expiry, never negative.
func (c Credential) TTL() time.Duration {
	if d := time.Until(c.ExpiresAt()); d > 0 {
		return d
	}
	return 0
}

type tokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Scope        string `json:"scope"`
}

// RequestToken exchanges an OAuth application's id and secret for a
// Credential with the "public" scope.
func RequestToken(ctx context.Context, clientID, clientSecret string, opts ...Option) (Credential, error) {
	if clientID == "" || clientSecret == "" {
		return Credential{}, ErrMissingClientCredentials
	}
	options := newOptions(opts)

	payload, err := json.Marshal(tokenRequest{
		GrantType:    "client_credentials",
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scope:        "public",
	})
	if err != nil {
		return Credential{}, fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, options.tokenURL, bytes.NewReader(payload))
	if err != nil {
		return Credential{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", options.userAgent)

	issuedAt := time.Now()
	body, err := osu.Exchange(options.httpClient, req)
	if err != nil {
		return Credential{}, fmt.Errorf("token request: %w", err)
	}

	cred, err := osu.DecodeOne[Credential](body)
	if err != nil {
		return Credential{}, fmt.Errorf("token request: %w", err)
	}
	if cred.AccessToken == "" {
		return Credential{}, &osu.PayloadError{Err: ErrMissingAccessToken, Body: string(body)}
	}
	cred.IssuedAt = issuedAt
	return cred, nil
}
