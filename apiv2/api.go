package apiv2

import (
	"context"
)

// API defines the interface for modern osu! API operations
type API interface {
	// LookupBeatmap finds a beatmap by id, checksum or file name
	LookupBeatmap(ctx context.Context, q LookupQuery) (*Beatmap, error)
	LookupBeatmapByID(ctx context.Context, beatmapID int64) (*Beatmap, error)

	// GetUserBeatmapScore retrieves a player's best score on a beatmap
	GetUserBeatmapScore(ctx context.Context, beatmapID, userID int64, q ScoreQuery) (*UserBeatmapScore, error)

	// GetUserBeatmapScores retrieves all of a player's scores on a beatmap
	GetUserBeatmapScores(ctx context.Context, beatmapID, userID int64, q ScoreQuery) ([]Score, error)

	// GetBeatmapScores retrieves a beatmap leaderboard
	GetBeatmapScores(ctx context.Context, beatmapID int64, q BeatmapScoresQuery) (*BeatmapScores, error)
}

var _ API = (*Client)(nil)
