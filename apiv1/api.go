package apiv1

import (
	"context"

	"github.com/rcoplo/osu-api-go/osu"
)

// API defines the interface for legacy osu! API operations
type API interface {
	// GetBeatmaps retrieves difficulties matching a query
	GetBeatmaps(ctx context.Context, q BeatmapsQuery) ([]Beatmap, error)
	GetBeatmap(ctx context.Context, beatmapID int64) (*Beatmap, error)
	GetBeatmapSet(ctx context.Context, setID int64) ([]Beatmap, error)
	GetBeatmapForUser(ctx context.Context, beatmapID int64, user osu.UserRef) (*Beatmap, error)

	// GetUser retrieves a player profile
	GetUser(ctx context.Context, user osu.UserRef, q UserQuery) (*User, error)

	// GetScores retrieves a difficulty's leaderboard
	GetScores(ctx context.Context, beatmapID int64, user osu.UserRef, q ScoresQuery) ([]Score, error)
	GetScore(ctx context.Context, beatmapID int64, user osu.UserRef, mode osu.Mode) (*Score, error)

	// GetUserBest retrieves a player's top plays
	GetUserBest(ctx context.Context, user osu.UserRef, q ListQuery) ([]GameRecord, error)
	GetUserBestAt(ctx context.Context, user osu.UserRef, mode osu.Mode, n int) (*GameRecord, error)

	// GetUserRecent retrieves a player's recent plays
	GetUserRecent(ctx context.Context, user osu.UserRef, q ListQuery) ([]GameRecord, error)
	GetUserMostRecent(ctx context.Context, user osu.UserRef, mode osu.Mode) (*GameRecord, error)

	// GetMatch retrieves a multiplayer room history
	GetMatch(ctx context.Context, matchID int64) (*MatchRoom, error)
	GetMatchLatestGame(ctx context.Context, matchID int64) (*Game, error)

	// GetReplay retrieves replay data
	GetReplay(ctx context.Context, beatmapID int64, user osu.UserRef, mode osu.Mode) (*Replay, error)
}

var _ API = (*Client)(nil)
