package apiv1

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcoplo/osu-api-go/osu"
)

const testKey = "test-key"

// newTestClient starts a server answering every request with handler.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(testKey, zerolog.Nop(), WithBaseURL(server.URL+"/"))
	require.NoError(t, err)
	return client
}

// respond returns a handler that checks path and raw query and writes body.
func respond(t *testing.T, path, rawQuery, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, path, r.URL.Path)
		assert.Equal(t, rawQuery, r.URL.RawQuery)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(body))
	}
}

func TestNewClient(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("missing API key", func(t *testing.T) {
		_, err := NewClient("", logger)
		require.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("defaults", func(t *testing.T) {
		client, err := NewClient(testKey, logger)
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, client.baseURL)
		assert.Equal(t, osu.DefaultUserAgent, client.userAgent)
		assert.NotNil(t, client.httpClient)
	})

	t.Run("options", func(t *testing.T) {
		hc := &http.Client{}
		client, err := NewClient(testKey, logger,
			WithBaseURL("http://localhost:8080/api/"),
			WithUserAgent("bot/1.0"),
			WithHTTPClient(hc),
		)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/api", client.baseURL)
		assert.Equal(t, "bot/1.0", client.userAgent)
		assert.Same(t, hc, client.httpClient)
	})
}

func TestGetUser(t *testing.T) {
	mania := osu.ModeMania
	client := newTestClient(t, respond(t,
		"/get_user",
		"k=test-key&m=3&u=18267600&type=id",
		`[{"user_id":"18267600","username":"rcoplo","pp_raw":"4321.5","events":[{"beatmap_id":"75","date":"2013-07-07 22:34:04"}]}]`,
	))

	user, err := client.GetUser(context.Background(), osu.UserID(18267600), UserQuery{Mode: &mania})
	require.NoError(t, err)
	assert.Equal(t, "rcoplo", user.Username)
	assert.Equal(t, "4321.5", user.PPRaw)
	require.Len(t, user.Events, 1)
	assert.Equal(t, "75", user.Events[0].BeatmapID)
}

func TestGetUserByName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k=test-key&u=some%20player&type=string&event_days=5", r.URL.RawQuery)
		assert.Equal(t, "some player", r.URL.Query().Get("u"))
		_, _ = w.Write([]byte(`[{"user_id":"2","username":"some player"}]`))
	})

	user, err := client.GetUser(context.Background(), osu.Username("some player"), UserQuery{EventDays: osu.Ptr[int8](5)})
	require.NoError(t, err)
	assert.Equal(t, "2", user.UserID)
}

func TestGetUserErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind osu.ErrorKind
	}{
		{"unknown user", http.StatusOK, `[]`, osu.KindNoData},
		{"junk", http.StatusOK, `<html>oops</html>`, osu.KindMalformed},
		{"invalid key", http.StatusUnauthorized, `{"error":"Please provide a valid API key."}`, osu.KindTransport},
		{"error in body", http.StatusOK, `{"error":"Please provide a valid API key."}`, osu.KindNoData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			user, err := client.GetUser(context.Background(), osu.UserID(1), UserQuery{})
			require.Error(t, err)
			assert.Nil(t, user)
			assert.Equal(t, tt.wantKind, osu.Classify(err))
		})
	}

	t.Run("nil user", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})
		_, err := client.GetUser(context.Background(), nil, UserQuery{})
		assert.ErrorIs(t, err, ErrMissingUser)
	})
}

func TestGetUserUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Please provide a valid API key."}`))
	})

	_, err := client.GetUser(context.Background(), osu.UserID(1), UserQuery{})
	var apiErr *osu.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsUnauthorized())
	assert.Equal(t, "Please provide a valid API key.", apiErr.Message)
}

func TestGetBeatmaps(t *testing.T) {
	taiko := osu.ModeTaiko
	client := newTestClient(t, respond(t,
		"/get_beatmaps",
		"k=test-key&since=2013-01-01&s=1&b=2&u=peppy&type=string&m=1&a=1&h=c8f08438204abfcdd1a748ebfae67421&limit=5&mods=72",
		`[{"beatmap_id":"2","beatmapset_id":"1","version":"Oni"},{"beatmap_id":"3","beatmapset_id":"1","version":"Muzukashii"}]`,
	))

	maps, err := client.GetBeatmaps(context.Background(), BeatmapsQuery{
		Since:            osu.Ptr("2013-01-01"),
		SetID:            osu.Ptr[int64](1),
		BeatmapID:        osu.Ptr[int64](2),
		User:             osu.Username("peppy"),
		Mode:             &taiko,
		IncludeConverted: osu.Ptr(true),
		Hash:             osu.Ptr("c8f08438204abfcdd1a748ebfae67421"),
		Limit:            osu.Ptr[int16](5),
		Mods:             osu.Mods{osu.Hidden, osu.DoubleTime},
	})
	require.NoError(t, err)
	require.Len(t, maps, 2)
	assert.Equal(t, "Oni", maps[0].Version)
}

func TestGetBeatmapsNoFilters(t *testing.T) {
	client := newTestClient(t, respond(t, "/get_beatmaps", "k=test-key", `[{"beatmap_id":"75"}]`))

	maps, err := client.GetBeatmaps(context.Background(), BeatmapsQuery{})
	require.NoError(t, err)
	assert.Len(t, maps, 1)
}

func TestGetBeatmap(t *testing.T) {
	client := newTestClient(t, respond(t,
		"/get_beatmaps",
		"k=test-key&b=3536583&a=1&limit=1",
		`[{"beatmap_id":"3536583","title":"Sakura no Uta"}]`,
	))

	bm, err := client.GetBeatmap(context.Background(), 3536583)
	require.NoError(t, err)
	assert.Equal(t, "Sakura no Uta", bm.Title)
}

func TestGetBeatmapNotFound(t *testing.T) {
	client := newTestClient(t, respond(t, "/get_beatmaps", "k=test-key&b=1&a=1&limit=1", `[]`))

	bm, err := client.GetBeatmap(context.Background(), 1)
	assert.Nil(t, bm)
	assert.ErrorIs(t, err, osu.ErrNoData)
}

func TestGetBeatmapSetAndForUser(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		client := newTestClient(t, respond(t, "/get_beatmaps", "k=test-key&s=1730502&a=1", `[{"beatmap_id":"1"},{"beatmap_id":"2"}]`))
		maps, err := client.GetBeatmapSet(context.Background(), 1730502)
		require.NoError(t, err)
		assert.Len(t, maps, 2)
	})

	t.Run("for user", func(t *testing.T) {
		client := newTestClient(t, respond(t, "/get_beatmaps", "k=test-key&b=5&u=7&type=id&a=1&limit=1", `[{"beatmap_id":"5","creator_id":"7"}]`))
		bm, err := client.GetBeatmapForUser(context.Background(), 5, osu.UserID(7))
		require.NoError(t, err)
		assert.Equal(t, "7", bm.CreatorID)
	})
}
