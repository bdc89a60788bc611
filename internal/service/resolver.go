// Package service provides the business logic of the channel media API: the
// resolver's ordered lookup strategies and the optional Redis response cache.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/lecture-site/channel-media-api-go/internal/metrics"
	"github.com/lecture-site/channel-media-api-go/internal/models"
	"github.com/lecture-site/channel-media-api-go/internal/normalize"
	"github.com/lecture-site/channel-media-api-go/internal/youtube"
	"github.com/lecture-site/channel-media-api-go/pkg/logger"
)

// MediaResolver is the operation surface the HTTP handlers consume. Resolver
// implements it directly; CachedResolver decorates it with a Redis cache.
type MediaResolver interface {
	ChannelVideos(ctx context.Context) ([]models.VideoSummary, error)
	ChannelPlaylists(ctx context.Context) ([]models.PlaylistSummary, error)
	PlaylistVideos(ctx context.Context, playlistID string) ([]models.VideoSummary, error)
}

// ChannelIdentity names the target channel under both lookup keys the
// platform supports. Older channels may only resolve through the legacy
// username.
type ChannelIdentity struct {
	ID       string
	Username string
}

// Resolver answers the three media operations by trying ordered lookup
// strategies against the upstream client, stopping at the first strategy
// that yields records. It holds no state between calls; every result is a
// fresh projection of the upstream responses.
type Resolver struct {
	client  youtube.PlatformClient
	channel ChannelIdentity
}

var _ MediaResolver = (*Resolver)(nil)

// NewResolver creates a Resolver for the given channel.
func NewResolver(client youtube.PlatformClient, channel ChannelIdentity) *Resolver {
	return &Resolver{
		client:  client,
		channel: channel,
	}
}

// ChannelVideos returns the videos uploaded by the configured channel. It
// tries progressively looser strategies: the uploads playlist found via the
// channel id, the uploads playlist found via the legacy username, then a
// free-text search on the username. An exhausted chain yields an empty
// result, not an error; upstream failures abort the whole operation.
//
// The search step trades correctness for availability: it can surface videos
// that merely match the username as text.
func (r *Resolver) ChannelVideos(ctx context.Context) ([]models.VideoSummary, error) {
	metrics.FallbackStep("channel_videos", "by_id")
	channels, err := r.client.ChannelContentDetailsByID(ctx, r.channel.ID)
	if err != nil {
		return nil, &UpstreamError{Op: "channel videos", Cause: err}
	}
	videos, err := r.uploadsVideos(ctx, channels)
	if err != nil {
		return nil, err
	}
	if len(videos) > 0 {
		return videos, nil
	}

	metrics.FallbackStep("channel_videos", "by_username")
	channels, err = r.client.ChannelContentDetailsByUsername(ctx, r.channel.Username)
	if err != nil {
		return nil, &UpstreamError{Op: "channel videos", Cause: err}
	}
	videos, err = r.uploadsVideos(ctx, channels)
	if err != nil {
		return nil, err
	}
	if len(videos) > 0 {
		return videos, nil
	}

	metrics.FallbackStep("channel_videos", "search")
	logger.Log.Warn("Channel lookup exhausted, falling back to search",
		zap.String("channelId", r.channel.ID),
		zap.String("query", r.channel.Username),
	)
	results, err := r.client.SearchVideos(ctx, r.channel.Username)
	if err != nil {
		return nil, &UpstreamError{Op: "channel videos", Cause: err}
	}

	videos = make([]models.VideoSummary, 0, len(results))
	for _, item := range results {
		videos = append(videos, normalize.SearchResultVideo(item))
	}
	return videos, nil
}

// ChannelPlaylists returns the playlists owned by the configured channel,
// falling back to resolving the channel id through the legacy username when
// the direct listing comes back empty. There is no search step for
// playlists; an unresolvable channel yields an empty result.
func (r *Resolver) ChannelPlaylists(ctx context.Context) ([]models.PlaylistSummary, error) {
	metrics.FallbackStep("channel_playlists", "by_id")
	items, err := r.client.PlaylistsForChannel(ctx, r.channel.ID)
	if err != nil {
		return nil, &UpstreamError{Op: "channel playlists", Cause: err}
	}

	if len(items) == 0 {
		metrics.FallbackStep("channel_playlists", "by_username")
		channels, err := r.client.ChannelContentDetailsByUsername(ctx, r.channel.Username)
		if err != nil {
			return nil, &UpstreamError{Op: "channel playlists", Cause: err}
		}
		if len(channels) == 0 {
			return []models.PlaylistSummary{}, nil
		}

		items, err = r.client.PlaylistsForChannel(ctx, channels[0].Id)
		if err != nil {
			return nil, &UpstreamError{Op: "channel playlists", Cause: err}
		}
	}

	playlists := make([]models.PlaylistSummary, 0, len(items))
	for _, item := range items {
		playlists = append(playlists, normalize.Playlist(item))
	}
	return playlists, nil
}

// PlaylistVideos returns the entries of one playlist, each record tagged with
// the playlist id it was fetched through. The id must be non-empty; the HTTP
// boundary enforces that. An unknown playlist yields an empty result.
func (r *Resolver) PlaylistVideos(ctx context.Context, playlistID string) ([]models.VideoSummary, error) {
	items, err := r.client.PlaylistItems(ctx, playlistID)
	if err != nil {
		return nil, &UpstreamError{Op: "playlist videos", Cause: err}
	}

	videos := make([]models.VideoSummary, 0, len(items))
	for _, item := range items {
		videos = append(videos, normalize.PlaylistItemVideo(item, playlistID))
	}
	return videos, nil
}

// uploadsVideos resolves the uploads playlist of the first matched channel
// and returns its normalized entries. A missing channel, missing relation or
// empty playlist yields an empty slice so the caller moves on to the next
// strategy. Uploads records stay untagged: the absent playlistId marks them
// as channel-feed records rather than a playlist browse.
func (r *Resolver) uploadsVideos(ctx context.Context, channels []*ytapi.Channel) ([]models.VideoSummary, error) {
	uploadsID := uploadsPlaylistID(channels)
	if uploadsID == "" {
		return nil, nil
	}

	items, err := r.client.PlaylistItems(ctx, uploadsID)
	if err != nil {
		return nil, &UpstreamError{Op: "channel videos", Cause: err}
	}

	videos := make([]models.VideoSummary, 0, len(items))
	for _, item := range items {
		videos = append(videos, normalize.PlaylistItemVideo(item, ""))
	}
	return videos, nil
}

func uploadsPlaylistID(channels []*ytapi.Channel) string {
	if len(channels) == 0 || channels[0] == nil {
		return ""
	}
	details := channels[0].ContentDetails
	if details == nil || details.RelatedPlaylists == nil {
		return ""
	}
	return details.RelatedPlaylists.Uploads
}

// UpstreamError marks a transport or HTTP failure of the video platform. The
// resolver never recovers from one mid-chain: a failed step aborts the whole
// operation rather than risking partial or wrong data.
type UpstreamError struct {
	Op    string
	Cause error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}
