// Package youtube wraps the YouTube Data API v3 behind the small surface the
// media resolver needs.
package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/lecture-site/channel-media-api-go/internal/metrics"
)

// The platform caps list responses at 50 items per page. The service reads
// the first page only.
const maxPageSize = 50

// PlatformClient is the upstream surface the resolver depends on. Each
// operation returns the parsed items of one API response; an empty slice
// means "no data" and drives the resolver's fallback chain, while transport
// and HTTP failures propagate as errors.
type PlatformClient interface {
	ChannelContentDetailsByID(ctx context.Context, channelID string) ([]*youtube.Channel, error)
	ChannelContentDetailsByUsername(ctx context.Context, username string) ([]*youtube.Channel, error)
	PlaylistsForChannel(ctx context.Context, channelID string) ([]*youtube.Playlist, error)
	PlaylistItems(ctx context.Context, playlistID string) ([]*youtube.PlaylistItem, error)
	SearchVideos(ctx context.Context, query string) ([]*youtube.SearchResult, error)
}

// Client calls the YouTube Data API v3 authenticated by a single API key.
type Client struct {
	service    *youtube.Service
	maxResults int64
}

var _ PlatformClient = (*Client)(nil)

// NewClient creates a YouTube API client. maxResults bounds the page size of
// list calls and is clamped to the platform maximum of 50.
func NewClient(apiKey string, maxResults int64) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	if maxResults <= 0 || maxResults > maxPageSize {
		maxResults = maxPageSize
	}

	service, err := youtube.NewService(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service:    service,
		maxResults: maxResults,
	}, nil
}

// ChannelContentDetailsByID looks up a channel by its canonical channel id.
func (c *Client) ChannelContentDetailsByID(ctx context.Context, channelID string) ([]*youtube.Channel, error) {
	call := c.service.Channels.List([]string{"contentDetails"}).Id(channelID).Context(ctx)

	response, err := call.Do()
	if err != nil {
		metrics.UpstreamCall("channels.list.id", metrics.OutcomeError)
		return nil, fmt.Errorf("failed to fetch channel %q by id: %w", channelID, err)
	}
	metrics.UpstreamCall("channels.list.id", metrics.OutcomeOK)

	return response.Items, nil
}

// ChannelContentDetailsByUsername looks up a channel by its legacy username.
// The response includes the channel's own id so callers can retry id-scoped
// operations against it.
func (c *Client) ChannelContentDetailsByUsername(ctx context.Context, username string) ([]*youtube.Channel, error) {
	call := c.service.Channels.List([]string{"id", "contentDetails"}).ForUsername(username).Context(ctx)

	response, err := call.Do()
	if err != nil {
		metrics.UpstreamCall("channels.list.username", metrics.OutcomeError)
		return nil, fmt.Errorf("failed to fetch channel %q by username: %w", username, err)
	}
	metrics.UpstreamCall("channels.list.username", metrics.OutcomeOK)

	return response.Items, nil
}

// PlaylistsForChannel lists the playlists owned by a channel, first page only.
func (c *Client) PlaylistsForChannel(ctx context.Context, channelID string) ([]*youtube.Playlist, error) {
	call := c.service.Playlists.List([]string{"snippet", "contentDetails"}).
		ChannelId(channelID).
		MaxResults(c.maxResults).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		metrics.UpstreamCall("playlists.list", metrics.OutcomeError)
		return nil, fmt.Errorf("failed to fetch playlists for channel %q: %w", channelID, err)
	}
	metrics.UpstreamCall("playlists.list", metrics.OutcomeOK)

	return response.Items, nil
}

// PlaylistItems lists the entries of a playlist, first page only.
func (c *Client) PlaylistItems(ctx context.Context, playlistID string) ([]*youtube.PlaylistItem, error) {
	call := c.service.PlaylistItems.List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(c.maxResults).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		metrics.UpstreamCall("playlistItems.list", metrics.OutcomeError)
		return nil, fmt.Errorf("failed to fetch items of playlist %q: %w", playlistID, err)
	}
	metrics.UpstreamCall("playlistItems.list", metrics.OutcomeOK)

	return response.Items, nil
}

// SearchVideos runs a free-text video search. Results match the query text,
// not necessarily a particular channel.
func (c *Client) SearchVideos(ctx context.Context, query string) ([]*youtube.SearchResult, error) {
	call := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(c.maxResults).
		Context(ctx)

	response, err := call.Do()
	if err != nil {
		metrics.UpstreamCall("search.list", metrics.OutcomeError)
		return nil, fmt.Errorf("failed to search videos for %q: %w", query, err)
	}
	metrics.UpstreamCall("search.list", metrics.OutcomeOK)

	return response.Items, nil
}
