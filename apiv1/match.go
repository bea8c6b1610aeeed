package apiv1

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/rcoplo/osu-api-go/osu"
)

// matchEnvelope defers decoding of "match", which is 0 for unknown rooms.
type matchEnvelope struct {
	Match json.RawMessage `json:"match"`
	Games []Game          `json:"games"`
}

// GetMatch retrieves the history of a multiplayer room. An unknown id
// yields osu.ErrNoData.
func (c *Client) GetMatch(ctx context.Context, matchID int64) (*MatchRoom, error) {
	var query osu.LegacyQuery
	query.Add(osu.Int64("mp", &matchID))

	body, err := c.get(ctx, "get_match", &query)
	if err != nil {
		return nil, err
	}

	env, err := osu.DecodeOne[matchEnvelope](body)
	if err != nil {
		return nil, err
	}
	raw := bytes.TrimSpace(env.Match)
	if len(raw) == 0 || bytes.Equal(raw, []byte("0")) || bytes.Equal(raw, []byte("null")) {
		return nil, osu.ErrNoData
	}

	room := &MatchRoom{Games: env.Games}
	if err := json.Unmarshal(raw, &room.Match); err != nil {
		return nil, &osu.PayloadError{Err: err, Body: string(body)}
	}
	return room, nil
}

// GetMatchLatestGame retrieves the last map played in a room.
func (c *Client) GetMatchLatestGame(ctx context.Context, matchID int64) (*Game, error) {
	room, err := c.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	g, err := osu.Last(room.Games)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
