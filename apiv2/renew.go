package apiv2

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RenewFunc returns a fresh credential.
type RenewFunc func(ctx context.Context) (Credential, error)

// RenewingClient serves API calls from a Client whose credential is
// replaced through renew once it has less than margin left. Long-running
// callers use it instead of tracking expiry themselves.
type RenewingClient struct {
	mu     sync.Mutex
	client *Client
	renew  RenewFunc
	margin time.Duration
}

var _ API = (*RenewingClient)(nil)

// NewRenewingClient wraps client. A non-positive margin renews only
// expired credentials.
func NewRenewingClient(client *Client, renew RenewFunc, margin time.Duration) *RenewingClient {
	return &RenewingClient{client: client, renew: renew, margin: margin}
}

// current returns the client to use, renewing its credential first when
// needed. Concurrent callers wait for a single renewal.
func (r *RenewingClient) current(ctx context.Context) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.client.cred.TTL() > r.margin && !r.client.cred.Expired() {
		return r.client, nil
	}

	cred, err := r.renew(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to renew token: %w", err)
	}
	r.client.logger.Debug().Time("expires_at", cred.ExpiresAt()).Msg("Token renewed")
	r.client = r.client.WithCredential(cred)
	return r.client, nil
}

func (r *RenewingClient) LookupBeatmap(ctx context.Context, q LookupQuery) (*Beatmap, error) {
	c, err := r.current(ctx)
	if err != nil {
		return nil, err
	}
	return c.LookupBeatmap(ctx, q)
}

func (r *RenewingClient) LookupBeatmapByID(ctx context.Context, beatmapID int64) (*Beatmap, error) {
	c, err := r.current(ctx)
	if err != nil {
		return nil, err
	}
	return c.LookupBeatmapByID(ctx, beatmapID)
}

func (r *RenewingClient) GetUserBeatmapScore(ctx context.Context, beatmapID, userID int64, q ScoreQuery) (*UserBeatmapScore, error) {
	c, err := r.current(ctx)
	if err != nil {
		return nil, err
	}
	return c.GetUserBeatmapScore(ctx, beatmapID, userID, q)
}

func (r *RenewingClient) GetUserBeatmapScores(ctx context.Context, beatmapID, userID int64, q ScoreQuery) ([]Score, error) {
	c, err := r.current(ctx)
	if err != nil {
		return nil, err
	}
	return c.GetUserBeatmapScores(ctx, beatmapID, userID, q)
}

func (r *RenewingClient) GetBeatmapScores(ctx context.Context, beatmapID int64, q BeatmapScoresQuery) (*BeatmapScores, error) {
	c, err := r.current(ctx)
	if err != nil {
		return nil, err
	}
	return c.GetBeatmapScores(ctx, beatmapID, q)
}
