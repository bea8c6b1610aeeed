package apiv1

import (
	"context"

	"github.com/rcoplo/osu-api-go/osu"
)

// GetReplay retrieves the replay of user's best score on a difficulty.
// The service allows 10 of these calls per minute.
func (c *Client) GetReplay(ctx context.Context, beatmapID int64, user osu.UserRef, mode osu.Mode) (*Replay, error) {
	if user == nil {
		return nil, ErrMissingUser
	}

	var query osu.LegacyQuery
	query.Add(
		modeCode(&mode),
		osu.Int64("b", &beatmapID),
	).AddUser(user)

	body, err := c.get(ctx, "get_replay", &query)
	if err != nil {
		return nil, err
	}
	replay, err := osu.DecodeOne[Replay](body)
	if err != nil {
		return nil, err
	}
	return &replay, nil
}
