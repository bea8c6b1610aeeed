package apiv1

import (
	"context"

	"github.com/rcoplo/osu-api-go/osu"
)

// BeatmapsQuery holds the optional filters of get_beatmaps. Nil fields are
// not sent.
type BeatmapsQuery struct {
	// Since returns maps ranked after this MySQL-formatted date.
	Since *string
	// SetID restricts to one beatmap set ("s").
	SetID *int64
	// BeatmapID restricts to one difficulty ("b").
	BeatmapID *int64
	// User restricts to maps created by this player.
	User osu.UserRef
	// Mode restricts to one mode ("m").
	Mode *osu.Mode
	// IncludeConverted asks for converted maps ("a"); only honored with a
	// non-osu Mode.
	IncludeConverted *bool
	// Hash looks a difficulty up by its .osu checksum ("h").
	Hash *string
	// Limit caps the result count, 500 at most.
	Limit *int16
	// Mods applies difficulty-changing mods to the returned star rating.
	Mods osu.Mods
}

// GetBeatmaps retrieves every ranked difficulty matching q.
func (c *Client) GetBeatmaps(ctx context.Context, q BeatmapsQuery) ([]Beatmap, error) {
	var query osu.LegacyQuery
	query.Add(
		osu.String("since", q.Since),
		osu.Int64("s", q.SetID),
		osu.Int64("b", q.BeatmapID),
	)
	if q.User != nil {
		query.AddUser(q.User)
	}
	query.Add(
		modeCode(q.Mode),
		flag("a", q.IncludeConverted),
		osu.String("h", q.Hash),
		osu.Int16("limit", q.Limit),
		osu.ModsParam("mods", q.Mods),
	)

	body, err := c.get(ctx, "get_beatmaps", &query)
	if err != nil {
		return nil, err
	}
	return osu.DecodeList[Beatmap](body)
}

// GetBeatmap retrieves a single difficulty by id.
func (c *Client) GetBeatmap(ctx context.Context, beatmapID int64) (*Beatmap, error) {
	maps, err := c.GetBeatmaps(ctx, BeatmapsQuery{
		BeatmapID:        &beatmapID,
		IncludeConverted: osu.Ptr(true),
		Limit:            osu.Ptr[int16](1),
	})
	if err != nil {
		return nil, err
	}
	return first(maps)
}

// GetBeatmapSet retrieves every difficulty of a beatmap set.
func (c *Client) GetBeatmapSet(ctx context.Context, setID int64) ([]Beatmap, error) {
	return c.GetBeatmaps(ctx, BeatmapsQuery{
		SetID:            &setID,
		IncludeConverted: osu.Ptr(true),
	})
}

// GetBeatmapForUser retrieves a difficulty restricted to maps by user.
func (c *Client) GetBeatmapForUser(ctx context.Context, beatmapID int64, user osu.UserRef) (*Beatmap, error) {
	if user == nil {
		return nil, ErrMissingUser
	}
	maps, err := c.GetBeatmaps(ctx, BeatmapsQuery{
		BeatmapID:        &beatmapID,
		User:             user,
		IncludeConverted: osu.Ptr(true),
		Limit:            osu.Ptr[int16](1),
	})
	if err != nil {
		return nil, err
	}
	return first(maps)
}

// first returns a pointer to the first element of list, or osu.ErrNoData.
func first[T any](list []T) (*T, error) {
	v, err := osu.First(list)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
