package apiv1

import (
	"context"

	"github.com/rcoplo/osu-api-go/osu"
)

// ScoresQuery holds the optional parameters of get_scores.
type ScoresQuery struct {
	Mode *osu.Mode
	// Mods keeps only scores set with exactly these mods.
	Mods osu.Mods
	// Limit caps the result count, 100 at most.
	Limit *int16
}

// GetScores retrieves the leaderboard of a difficulty. A nil user returns
// the global top scores.
func (c *Client) GetScores(ctx context.Context, beatmapID int64, user osu.UserRef, q ScoresQuery) ([]Score, error) {
	var query osu.LegacyQuery
	query.Add(osu.Int64("b", &beatmapID))
	if user != nil {
		query.AddUser(user)
	}
	query.Add(
		modeCode(q.Mode),
		osu.ModsParam("mods", q.Mods),
		osu.Int16("limit", q.Limit),
	)

	body, err := c.get(ctx, "get_scores", &query)
	if err != nil {
		return nil, err
	}
	return osu.DecodeList[Score](body)
}

// GetScore retrieves the best score of user on a difficulty.
func (c *Client) GetScore(ctx context.Context, beatmapID int64, user osu.UserRef, mode osu.Mode) (*Score, error) {
	if user == nil {
		return nil, ErrMissingUser
	}
	scores, err := c.GetScores(ctx, beatmapID, user, ScoresQuery{
		Mode:  &mode,
		Limit: osu.Ptr[int16](1),
	})
	if err != nil {
		return nil, err
	}
	return first(scores)
}
