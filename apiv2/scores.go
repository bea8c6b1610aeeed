package apiv2

import (
	"context"
	"fmt"

	"github.com/rcoplo/osu-api-go/osu"
)

// modsKey is the array-style key the service reads mods from.
const modsKey = "mods[]"

// ScoreQuery holds the optional filters of the user score endpoints.
type ScoreQuery struct {
	Mode *osu.Mode
	Mods osu.Mods
}

func (q ScoreQuery) encode() *osu.ModernQuery {
	var query osu.ModernQuery
	query.Add(
		osu.ModeParam("mode", q.Mode, osu.ModeName),
		osu.ModsParam(modsKey, q.Mods),
	)
	return &query
}

// GetUserBeatmapScore retrieves a player's best score on a beatmap.
func (c *Client) GetUserBeatmapScore(ctx context.Context, beatmapID, userID int64, q ScoreQuery) (*UserBeatmapScore, error) {
	path := fmt.Sprintf("beatmaps/%d/scores/users/%d", beatmapID, userID)

	body, err := c.get(ctx, path, q.encode())
	if err != nil {
		return nil, err
	}
	score, err := osu.DecodeOne[UserBeatmapScore](body)
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// GetUserBeatmapScores retrieves every score a player holds on a beatmap,
// one per mod combination.
func (c *Client) GetUserBeatmapScores(ctx context.Context, beatmapID, userID int64, q ScoreQuery) ([]Score, error) {
	path := fmt.Sprintf("beatmaps/%d/scores/users/%d/all", beatmapID, userID)

	body, err := c.get(ctx, path, q.encode())
	if err != nil {
		return nil, err
	}
	res, err := osu.DecodeOne[BeatmapScores](body)
	if err != nil {
		return nil, err
	}
	if len(res.Scores) == 0 {
		return nil, osu.ErrNoData
	}
	return res.Scores, nil
}

// BeatmapScoresQuery holds the optional filters of a beatmap leaderboard.
type BeatmapScoresQuery struct {
	Mode *osu.Mode
	Mods osu.Mods
	// Type is the leaderboard kind, e.g. "global", "country" or "friend".
	Type *string
}

// GetBeatmapScores retrieves the top scores of a beatmap. An empty
// leaderboard yields osu.ErrNoData.
func (c *Client) GetBeatmapScores(ctx context.Context, beatmapID int64, q BeatmapScoresQuery) (*BeatmapScores, error) {
	var query osu.ModernQuery
	query.Add(
		osu.ModeParam("mode", q.Mode, osu.ModeCode),
		osu.ModsParam(modsKey, q.Mods),
		osu.String("type", q.Type),
	)

	body, err := c.get(ctx, fmt.Sprintf("beatmaps/%d/scores", beatmapID), &query)
	if err != nil {
		return nil, err
	}
	res, err := osu.DecodeOne[BeatmapScores](body)
	if err != nil {
		return nil, err
	}
	if len(res.Scores) == 0 {
		return nil, osu.ErrNoData
	}
	return &res, nil
}
