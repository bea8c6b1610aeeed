package apiv1

import (
	"context"

	"github.com/rcoplo/osu-api-go/osu"
)

// UserQuery holds the optional parameters of get_user.
type UserQuery struct {
	// Mode selects the statistics to return; the service defaults to osu.
	Mode *osu.Mode
	// EventDays bounds the age of returned events, 1 to 31.
	EventDays *int8
}

// GetUser retrieves a player profile.
func (c *Client) GetUser(ctx context.Context, user osu.UserRef, q UserQuery) (*User, error) {
	if user == nil {
		return nil, ErrMissingUser
	}

	var query osu.LegacyQuery
	query.Add(modeCode(q.Mode)).
		AddUser(user).
		Add(osu.Int8("event_days", q.EventDays))

	body, err := c.get(ctx, "get_user", &query)
	if err != nil {
		return nil, err
	}
	users, err := osu.DecodeList[User](body)
	if err != nil {
		return nil, err
	}
	return first(users)
}

// ListQuery holds the optional parameters shared by get_user_best and
// get_user_recent.
type ListQuery struct {
	Mode *osu.Mode
	// Limit caps the result count: 100 for best, 50 for recent.
	Limit *int16
}

// GetUserBest retrieves a player's top plays, best first.
func (c *Client) GetUserBest(ctx context.Context, user osu.UserRef, q ListQuery) ([]GameRecord, error) {
	return c.userRecords(ctx, "get_user_best", user, q)
}

// GetUserBestAt retrieves the n-th (1-based) top play.
func (c *Client) GetUserBestAt(ctx context.Context, user osu.UserRef, mode osu.Mode, n int) (*GameRecord, error) {
	if n < 1 || n > 1<<15-1 {
		return nil, osu.ErrNoData
	}
	records, err := c.GetUserBest(ctx, user, ListQuery{
		Mode:  &mode,
		Limit: osu.Ptr(int16(n)),
	})
	if err != nil {
		return nil, err
	}
	r, err := osu.Nth(records, n)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetUserRecent retrieves a player's plays of the last 24 hours, failed
// ones included, newest first.
func (c *Client) GetUserRecent(ctx context.Context, user osu.UserRef, q ListQuery) ([]GameRecord, error) {
	return c.userRecords(ctx, "get_user_recent", user, q)
}

// GetUserMostRecent retrieves the newest play.
func (c *Client) GetUserMostRecent(ctx context.Context, user osu.UserRef, mode osu.Mode) (*GameRecord, error) {
	records, err := c.GetUserRecent(ctx, user, ListQuery{
		Mode:  &mode,
		Limit: osu.Ptr[int16](1),
	})
	if err != nil {
		return nil, err
	}
	return first(records)
}

func (c *Client) userRecords(ctx context.Context, endpoint string, user osu.UserRef, q ListQuery) ([]GameRecord, error) {
	if user == nil {
		return nil, ErrMissingUser
	}

	var query osu.LegacyQuery
	query.Add(modeCode(q.Mode)).
		AddUser(user).
		Add(osu.Int16("limit", q.Limit))

	body, err := c.get(ctx, endpoint, &query)
	if err != nil {
		return nil, err
	}
	return osu.DecodeList[GameRecord](body)
}
