package apiv2

import (
	"context"

	"github.com/rcoplo/osu-api-go/osu"
)

// LookupQuery selects a beatmap by id, .osu checksum or file name. Nil
// fields are not sent.
type LookupQuery struct {
	ID       *int64
	Checksum *string
	Filename *string
}

// LookupBeatmap finds a single beatmap. An unknown beatmap yields
// osu.ErrNoData.
func (c *Client) LookupBeatmap(ctx context.Context, q LookupQuery) (*Beatmap, error) {
	var query osu.ModernQuery
	query.Add(
		osu.Int64("id", q.ID),
		osu.String("checksum", q.Checksum),
		osu.String("filename", q.Filename),
	)

	body, err := c.get(ctx, "beatmaps/lookup", &query)
	if err != nil {
		return nil, err
	}
	bm, err := osu.DecodeOne[Beatmap](body)
	if err != nil {
		return nil, err
	}
	return &bm, nil
}

// LookupBeatmapByID finds a beatmap by its difficulty id.
func (c *Client) LookupBeatmapByID(ctx context.Context, beatmapID int64) (*Beatmap, error) {
	return c.LookupBeatmap(ctx, LookupQuery{ID: &beatmapID})
}
