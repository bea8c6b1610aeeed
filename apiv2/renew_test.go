package apiv2

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenewingClient(t *testing.T) {
	var seen sync.Map
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Store(r.Header.Get("Authorization"), true)
		_, _ = w.Write([]byte(`{"id": 75, "beatmapset_id": 1, "version": "Normal"}`))
	}))
	t.Cleanup(server.Close)

	stale := Credential{TokenType: "Bearer", ExpiresIn: 30, AccessToken: "old", IssuedAt: time.Now()}
	client, err := NewClient(stale, zerolog.Nop(), WithBaseURL(server.URL))
	require.NoError(t, err)

	var renewals atomic.Int32
	renew := func(context.Context) (Credential, error) {
		renewals.Add(1)
		return Credential{TokenType: "Bearer", ExpiresIn: 86400, AccessToken: "new", IssuedAt: time.Now()}, nil
	}
	rc := NewRenewingClient(client, renew, time.Minute)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bm, err := rc.LookupBeatmapByID(context.Background(), 75)
			assert.NoError(t, err)
			if bm != nil {
				assert.Equal(t, int64(75), bm.ID)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), renewals.Load())
	_, usedNew := seen.Load("Bearer new")
	_, usedOld := seen.Load("Bearer old")
	assert.True(t, usedNew)
	assert.False(t, usedOld)
	assert.Equal(t, "old", client.Credential().AccessToken, "wrapped client is not mutated")
}

func TestRenewingClientKeepsFreshToken(t *testing.T) {
	client := newTestClient(t, respond(t, "/beatmaps/lookup", "id=75", http.StatusOK, `{"id": 75}`))

	rc := NewRenewingClient(client, func(context.Context) (Credential, error) {
		t.Error("renew called for a fresh token")
		return Credential{}, nil
	}, time.Minute)

	_, err := rc.LookupBeatmapByID(context.Background(), 75)
	require.NoError(t, err)
}

func TestRenewingClientRenewFailure(t *testing.T) {
	expired := Credential{TokenType: "Bearer", ExpiresIn: 1, AccessToken: "old", IssuedAt: time.Now().Add(-time.Hour)}
	client, err := NewClient(expired, zerolog.Nop(), WithBaseURL("http://127.0.0.1:0"))
	require.NoError(t, err)

	boom := errors.New("token endpoint down")
	rc := NewRenewingClient(client, func(context.Context) (Credential, error) {
		return Credential{}, boom
	}, 0)

	_, err = rc.GetBeatmapScores(context.Background(), 1, BeatmapScoresQuery{})
	assert.ErrorIs(t, err, boom)
}
