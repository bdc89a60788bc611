// Package normalize maps raw YouTube Data API items onto the stable record
// shapes served by the media endpoints.
//
// Mapping is best effort: the upstream API is trusted but not
// schema-guaranteed, so absent fields become zero values instead of errors.
package normalize

import (
	"google.golang.org/api/youtube/v3"

	"github.com/lecture-site/channel-media-api-go/internal/models"
)

// PlaylistItemVideo maps one playlist entry to a video record. The video id
// of a playlist entry lives under snippet.resourceId. sourcePlaylistID tags
// the record only when the lookup was playlist-scoped; the channel uploads
// feed passes an empty string.
func PlaylistItemVideo(item *youtube.PlaylistItem, sourcePlaylistID string) models.VideoSummary {
	video := models.VideoSummary{PlaylistID: sourcePlaylistID}
	if item == nil || item.Snippet == nil {
		return video
	}

	snippet := item.Snippet
	if snippet.ResourceId != nil {
		video.ID = snippet.ResourceId.VideoId
	}
	video.Title = snippet.Title
	video.Description = snippet.Description
	video.PublishedAt = snippet.PublishedAt
	video.ChannelTitle = snippet.ChannelTitle
	video.Thumbnails = thumbnailSet(snippet.Thumbnails)

	return video
}

// SearchResultVideo maps one search result to a video record. Unlike playlist
// entries, a search result carries its video id under the top-level id.
func SearchResultVideo(item *youtube.SearchResult) models.VideoSummary {
	var video models.VideoSummary
	if item == nil {
		return video
	}

	if item.Id != nil {
		video.ID = item.Id.VideoId
	}
	if snippet := item.Snippet; snippet != nil {
		video.Title = snippet.Title
		video.Description = snippet.Description
		video.PublishedAt = snippet.PublishedAt
		video.ChannelTitle = snippet.ChannelTitle
		video.Thumbnails = thumbnailSet(snippet.Thumbnails)
	}

	return video
}

// Playlist maps one playlist item to a playlist record.
func Playlist(item *youtube.Playlist) models.PlaylistSummary {
	var playlist models.PlaylistSummary
	if item == nil {
		return playlist
	}

	playlist.ID = item.Id
	if snippet := item.Snippet; snippet != nil {
		playlist.Title = snippet.Title
		playlist.Description = snippet.Description
		playlist.Thumbnails = thumbnailSet(snippet.Thumbnails)
	}
	if item.ContentDetails != nil {
		playlist.ItemCount = item.ContentDetails.ItemCount
	}

	return playlist
}

func thumbnailSet(details *youtube.ThumbnailDetails) models.ThumbnailSet {
	var set models.ThumbnailSet
	if details == nil {
		return set
	}

	set.Default = thumbnail(details.Default)
	set.Medium = thumbnail(details.Medium)
	set.High = thumbnail(details.High)
	set.Standard = thumbnail(details.Standard)
	set.Maxres = thumbnail(details.Maxres)

	return set
}

func thumbnail(t *youtube.Thumbnail) *models.Thumbnail {
	if t == nil {
		return nil
	}
	return &models.Thumbnail{
		URL:    t.Url,
		Width:  t.Width,
		Height: t.Height,
	}
}
