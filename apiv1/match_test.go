package apiv1

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcoplo/osu-api-go/osu"
)

const matchBody = `{
	"match": {"match_id":"105537044","name":"OWC: (Team A) vs (Team B)","start_time":"2022-11-05 12:00:00","end_time":null},
	"games": [
		{"game_id":"1","beatmap_id":"75","mods":"0","scores":[{"slot":"0","team":"1","user_id":"2","score":"1000","pass":"1","enabled_mods":null}]},
		{"game_id":"2","beatmap_id":"76","mods":"8","scores":[{"slot":"0","team":"1","user_id":"2","score":"2000","pass":"1","enabled_mods":"16"}]}
	]
}`

func TestGetMatch(t *testing.T) {
	client := newTestClient(t, respond(t, "/get_match", "k=test-key&mp=105537044", matchBody))

	room, err := client.GetMatch(context.Background(), 105537044)
	require.NoError(t, err)
	assert.Equal(t, "105537044", room.Match.MatchID)
	assert.Nil(t, room.Match.EndTime)
	require.Len(t, room.Games, 2)

	assert.Equal(t, osu.Mods{osu.NoMod}, room.Games[0].GlobalMods())
	assert.Nil(t, room.Games[0].Scores[0].Mods())
	assert.Equal(t, osu.Mods{osu.HardRock}, room.Games[1].Scores[0].Mods())
}

func TestGetMatchUnknown(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind osu.ErrorKind
	}{
		{"zero match", `{"match":0,"games":[]}`, osu.KindNoData},
		{"null match", `{"match":null,"games":[]}`, osu.KindNoData},
		{"wrong match shape", `{"match":"abc","games":[]}`, osu.KindMalformed},
		{"junk", `not json`, osu.KindMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, respond(t, "/get_match", "k=test-key&mp=1", tt.body))
			room, err := client.GetMatch(context.Background(), 1)
			assert.Nil(t, room)
			assert.Equal(t, tt.kind, osu.Classify(err))
		})
	}
}

func TestGetMatchLatestGame(t *testing.T) {
	t.Run("last game", func(t *testing.T) {
		client := newTestClient(t, respond(t, "/get_match", "k=test-key&mp=105537044", matchBody))
		g, err := client.GetMatchLatestGame(context.Background(), 105537044)
		require.NoError(t, err)
		assert.Equal(t, "2", g.GameID)
		assert.Equal(t, osu.Mods{osu.Hidden}, g.GlobalMods())
	})

	t.Run("no games yet", func(t *testing.T) {
		client := newTestClient(t, respond(t, "/get_match", "k=test-key&mp=3",
			`{"match":{"match_id":"3","name":"room","start_time":"2022-11-05 12:00:00","end_time":null},"games":[]}`))
		g, err := client.GetMatchLatestGame(context.Background(), 3)
		assert.Nil(t, g)
		assert.ErrorIs(t, err, osu.ErrNoData)
	})
}

func TestGetReplay(t *testing.T) {
	t.Run("content", func(t *testing.T) {
		client := newTestClient(t, respond(t, "/get_replay", "k=test-key&m=3&b=992512&u=18267600&type=id",
			`{"content":"aGVsbG8gcmVwbGF5","encoding":"base64"}`))

		replay, err := client.GetReplay(context.Background(), 992512, osu.UserID(18267600), osu.ModeMania)
		require.NoError(t, err)

		data, err := replay.Bytes()
		require.NoError(t, err)
		assert.Equal(t, "hello replay", string(data))
	})

	t.Run("not available", func(t *testing.T) {
		client := newTestClient(t, respond(t, "/get_replay", "k=test-key&m=0&b=1&u=2&type=id",
			`{"error":"Replay not available."}`))

		replay, err := client.GetReplay(context.Background(), 1, osu.UserID(2), osu.ModeOsu)
		assert.Nil(t, replay)
		assert.ErrorIs(t, err, osu.ErrNoData)
		assert.Contains(t, err.Error(), "Replay not available.")
	})

	t.Run("bad base64", func(t *testing.T) {
		_, err := Replay{Content: "!!!"}.Bytes()
		assert.Error(t, err)
	})
}
