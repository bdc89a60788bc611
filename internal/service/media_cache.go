package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lecture-site/channel-media-api-go/internal/metrics"
	"github.com/lecture-site/channel-media-api-go/internal/models"
	"github.com/lecture-site/channel-media-api-go/pkg/logger"
)

const (
	cacheKeyChannelVideos    = "media:channel_videos"
	cacheKeyChannelPlaylists = "media:channel_playlists"
	cacheKeyPlaylistVideos   = "media:playlist_videos:"
)

// CachedResolver decorates a MediaResolver with a Redis TTL cache so repeated
// page loads do not burn upstream API quota. The cache is strictly best
// effort: a Redis failure counts as a miss and the upstream result is served
// regardless, so enabling the cache can never make a request fail.
type CachedResolver struct {
	inner MediaResolver
	rdb   *redis.Client
	ttl   time.Duration
}

var _ MediaResolver = (*CachedResolver)(nil)

// NewCachedResolver wraps inner with a Redis cache using the given TTL.
func NewCachedResolver(inner MediaResolver, rdb *redis.Client, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
	}
}

// ChannelVideos serves the channel feed from cache when possible.
func (c *CachedResolver) ChannelVideos(ctx context.Context) ([]models.VideoSummary, error) {
	var cached []models.VideoSummary
	if c.lookup(ctx, "channel_videos", cacheKeyChannelVideos, &cached) {
		return cached, nil
	}

	videos, err := c.inner.ChannelVideos(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, cacheKeyChannelVideos, videos)
	return videos, nil
}

// ChannelPlaylists serves the playlist listing from cache when possible.
func (c *CachedResolver) ChannelPlaylists(ctx context.Context) ([]models.PlaylistSummary, error) {
	var cached []models.PlaylistSummary
	if c.lookup(ctx, "channel_playlists", cacheKeyChannelPlaylists, &cached) {
		return cached, nil
	}

	playlists, err := c.inner.ChannelPlaylists(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, cacheKeyChannelPlaylists, playlists)
	return playlists, nil
}

// PlaylistVideos serves one playlist's entries from cache when possible.
func (c *CachedResolver) PlaylistVideos(ctx context.Context, playlistID string) ([]models.VideoSummary, error) {
	key := cacheKeyPlaylistVideos + playlistID

	var cached []models.VideoSummary
	if c.lookup(ctx, "playlist_videos", key, &cached) {
		return cached, nil
	}

	videos, err := c.inner.PlaylistVideos(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, videos)
	return videos, nil
}

// lookup reads and decodes one cache entry into dest. Any failure, including
// an unreachable Redis, is reported as a miss.
func (c *CachedResolver) lookup(ctx context.Context, operation, key string, dest any) bool {
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("Media cache read failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		metrics.CacheLookup(operation, metrics.CacheMiss)
		return false
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		logger.Log.Warn("Media cache entry is corrupt, discarding",
			zap.String("key", key),
			zap.Error(err),
		)
		metrics.CacheLookup(operation, metrics.CacheMiss)
		return false
	}

	metrics.CacheLookup(operation, metrics.CacheHit)
	return true
}

func (c *CachedResolver) store(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		logger.Log.Error("Failed to serialize media cache entry",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}

	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logger.Log.Warn("Media cache write failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
