// Package tokencache keeps a minted osu! API v2 credential in Redis until
// shortly before it expires, so separate processes can share one token.
package tokencache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rcoplo/osu-api-go/apiv2"
)

// DefaultMargin is how long before expiry a cached credential stops being
// served.
const DefaultMargin = time.Minute

// ErrMiss is returned by Load when no usable credential is cached.
var ErrMiss = errors.New("no cached token")

// Store persists a single credential.
type Store interface {
	Load(ctx context.Context) (apiv2.Credential, error)
	Save(ctx context.Context, cred apiv2.Credential) error
	Clear(ctx context.Context) error
}

// RedisStore is a Store backed by one Redis key holding the credential as
// JSON, with a TTL matching the credential's remaining lifetime.
type RedisStore struct {
	client *redis.Client
	key    string
	margin time.Duration
}

var _ Store = (*RedisStore)(nil)

// New connects to the Redis instance at addr.
func New(addr, password string, db int, key string) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisStore(client, key)
}

// NewRedisStore uses an existing client.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key, margin: DefaultMargin}
}

// WithMargin returns a copy that stops serving credentials margin before
// they expire.
func (s *RedisStore) WithMargin(margin time.Duration) *RedisStore {
	c := *s
	c.margin = margin
	return &c
}

// Close the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Load returns the cached credential, or ErrMiss.
func (s *RedisStore) Load(ctx context.Context) (apiv2.Credential, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apiv2.Credential{}, ErrMiss
		}
		return apiv2.Credential{}, fmt.Errorf("reading cached token: %w", err)
	}

	var cred apiv2.Credential
	if err := json.Unmarshal(data, &cred); err != nil || cred.AccessToken == "" {
		// Unreadable entries are dropped so the next Save replaces them.
		_ = s.client.Del(ctx, s.key).Err()
		return apiv2.Credential{}, ErrMiss
	}
	if cred.TTL() <= s.margin {
		return apiv2.Credential{}, ErrMiss
	}
	return cred, nil
}

// Save caches cred until margin before its expiry. Credentials already
// inside the margin are not stored.
func (s *RedisStore) Save(ctx context.Context, cred apiv2.Credential) error {
	ttl := cred.TTL() - s.margin
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("caching token: %w", err)
	}
	return nil
}

// Clear removes the cached credential.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clearing cached token: %w", err)
	}
	return nil
}

// MintFunc obtains a fresh credential, e.g. by calling apiv2.RequestToken.
type MintFunc func(ctx context.Context) (apiv2.Credential, error)

// Obtain returns the credential cached in store, minting and caching a new
// one on a miss. Cache failures are logged and never fail the call; a nil
// store always mints.
func Obtain(ctx context.Context, store Store, mint MintFunc, logger zerolog.Logger) (apiv2.Credential, error) {
	if store != nil {
		cred, err := store.Load(ctx)
		if err == nil {
			logger.Debug().Dur("ttl", cred.TTL()).Msg("Using cached token")
			return cred, nil
		}
		if !errors.Is(err, ErrMiss) {
			logger.Warn().Err(err).Msg("Token cache unavailable")
		}
	}

	cred, err := mint(ctx)
	if err != nil {
		return apiv2.Credential{}, err
	}

	if store != nil {
		if err := store.Save(ctx, cred); err != nil {
			logger.Warn().Err(err).Msg("Failed to cache token")
		}
	}
	return cred, nil
}
