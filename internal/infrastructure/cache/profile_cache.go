package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/waste3d/memorymatch/internal/domain"
	"github.com/waste3d/memorymatch/internal/mirror"
)

const DefaultProfileTTL = 10 * time.Minute

type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = DefaultProfileTTL
	}
	return &ProfileCache{client: client, ttl: ttl}
}

func profileKey(clientID string) string {
	return "profile:" + clientID
}

func (c *ProfileCache) Save(ctx context.Context, p domain.Profile) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return c.client.Set(ctx, profileKey(p.ClientID), b, c.ttl).Err()
}

// Get returns redis.Nil when the profile is not cached.
func (c *ProfileCache) Get(ctx context.Context, clientID string) (domain.Profile, error) {
	b, err := c.client.Get(ctx, profileKey(clientID)).Bytes()
	if err != nil {
		return domain.Profile{}, err
	}
	var p domain.Profile
	if err := json.Unmarshal(b, &p); err != nil {
		return domain.Profile{}, fmt.Errorf("decode cached profile: %w", err)
	}
	return p, nil
}

func (c *ProfileCache) Delete(ctx context.Context, clientID string) error {
	return c.client.Del(ctx, profileKey(clientID)).Err()
}

// CachedRemote puts a read-through ProfileCache in front of a mirror.Remote.
// The backing store stays authoritative; cache failures are only logged.
type CachedRemote struct {
	next  mirror.Remote
	cache *ProfileCache
	log   *zap.Logger
}

func NewCachedRemote(next mirror.Remote, cache *ProfileCache, log *zap.Logger) *CachedRemote {
	return &CachedRemote{next: next, cache: cache, log: log}
}

func (r *CachedRemote) Upsert(ctx context.Context, p domain.Profile) error {
	if err := r.next.Upsert(ctx, p); err != nil {
		// a stale entry would outlive the failed write
		if derr := r.cache.Delete(ctx, p.ClientID); derr != nil {
			r.log.Warn("profile cache delete failed", zap.String("client_id", p.ClientID), zap.Error(derr))
		}
		return err
	}
	if err := r.cache.Save(ctx, p); err != nil {
		r.log.Warn("profile cache save failed", zap.String("client_id", p.ClientID), zap.Error(err))
	}
	return nil
}

func (r *CachedRemote) Fetch(ctx context.Context, clientID string) (domain.Profile, error) {
	p, err := r.cache.Get(ctx, clientID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, redis.Nil) {
		r.log.Warn("profile cache read failed", zap.String("client_id", clientID), zap.Error(err))
	}

	p, err = r.next.Fetch(ctx, clientID)
	if err != nil {
		return domain.Profile{}, err
	}
	if err := r.cache.Save(ctx, p); err != nil {
		r.log.Warn("profile cache save failed", zap.String("client_id", clientID), zap.Error(err))
	}
	return p, nil
}
