package apiv2

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcoplo/osu-api-go/osu"
)

// tokenHandler answers the client-credentials grant for id 1234/secret.
func tokenHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "client_credentials", req["grant_type"])
		assert.Equal(t, "public", req["scope"])

		if req["client_id"] != "1234" || req["client_secret"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"Client authentication failed","message":"Client authentication failed"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token_type":"Bearer","expires_in":86400,"access_token":"tok"}`))
	}
}

func TestRequestToken(t *testing.T) {
	server := httptest.NewServer(tokenHandler(t))
	defer server.Close()

	before := time.Now()
	cred, err := RequestToken(context.Background(), "1234", "secret", WithTokenURL(server.URL))
	require.NoError(t, err)

	assert.Equal(t, "Bearer", cred.TokenType)
	assert.Equal(t, "tok", cred.AccessToken)
	assert.Equal(t, int64(86400), cred.ExpiresIn)
	assert.False(t, cred.IssuedAt.Before(before))
	assert.Equal(t, cred.IssuedAt.Add(24*time.Hour), cred.ExpiresAt())
	assert.False(t, cred.Expired())
	assert.Greater(t, cred.TTL(), 23*time.Hour)
}

func TestRequestTokenErrors(t *testing.T) {
	server := httptest.NewServer(tokenHandler(t))
	defer server.Close()

	t.Run("bad secret", func(t *testing.T) {
		_, err := RequestToken(context.Background(), "1234", "wrong", WithTokenURL(server.URL))
		var apiErr *osu.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.True(t, apiErr.IsUnauthorized())
		assert.Equal(t, "Client authentication failed", apiErr.Message)
		assert.NotContains(t, err.Error(), "wrong")
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := RequestToken(context.Background(), "", "secret", WithTokenURL(server.URL))
		assert.ErrorIs(t, err, ErrMissingClientCredentials)
	})

	t.Run("no token in body", func(t *testing.T) {
		empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"token_type":"Bearer","expires_in":86400}`))
		}))
		defer empty.Close()

		_, err := RequestToken(context.Background(), "1234", "secret", WithTokenURL(empty.URL))
		assert.Equal(t, osu.KindMalformed, osu.Classify(err))
	})
}

func TestCredentialExpiry(t *testing.T) {
	cred := Credential{ExpiresIn: 60, IssuedAt: time.Now().Add(-2 * time.Minute)}
	assert.True(t, cred.Expired())
	assert.Equal(t, time.Duration(0), cred.TTL())
}

func TestConnect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", tokenHandler(t))
	mux.HandleFunc("/api/v2/beatmaps/lookup", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":75,"beatmapset_id":1,"version":"Normal"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := Connect(context.Background(), "1234", "secret", zerolog.Nop(),
		WithTokenURL(server.URL+"/oauth/token"),
		WithBaseURL(server.URL+"/api/v2"),
	)
	require.NoError(t, err)
	assert.Equal(t, "tok", client.Credential().AccessToken)

	bm, err := client.LookupBeatmapByID(context.Background(), 75)
	require.NoError(t, err)
	assert.Equal(t, "Normal", bm.Version)
}
