// Package models contains the data records and response envelopes served by
// the channel media API.
package models

// Thumbnail is a single image rendition reported by the video platform.
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int64  `json:"width"`
	Height int64  `json:"height"`
}

// ThumbnailSet maps the platform's named resolutions to renditions. Only
// default, medium and high are reliably present; standard and maxres exist
// for some videos only and consumers must not assume them.
type ThumbnailSet struct {
	Default  *Thumbnail `json:"default,omitempty"`
	Medium   *Thumbnail `json:"medium,omitempty"`
	High     *Thumbnail `json:"high,omitempty"`
	Standard *Thumbnail `json:"standard,omitempty"`
	Maxres   *Thumbnail `json:"maxres,omitempty"`
}

// VideoSummary is the normalized projection of one upstream video item. It is
// built fresh on every request and carries no identity beyond the platform's
// video id.
type VideoSummary struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	PublishedAt  string       `json:"publishedAt"`
	Thumbnails   ThumbnailSet `json:"thumbnails"`
	ChannelTitle string       `json:"channelTitle"`
	// PlaylistID is set only on records obtained through a playlist-scoped
	// lookup. Channel-feed and search records leave it empty, which is how
	// the front end tells the two origins apart.
	PlaylistID string `json:"playlistId,omitempty"`
}

// PlaylistSummary is the normalized projection of one upstream playlist.
type PlaylistSummary struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Thumbnails  ThumbnailSet `json:"thumbnails"`
	// ItemCount is the size the platform reported at fetch time. It can race
	// with an immediately following playlist-items fetch.
	ItemCount int64 `json:"itemCount"`
}

// ErrorResponse is the fixed error envelope of the media endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PreflightResponse answers CORS preflight requests.
type PreflightResponse struct {
	Message string `json:"message"`
}
