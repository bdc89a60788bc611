// Package handler provides the HTTP request handlers of the channel media
// API.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lecture-site/channel-media-api-go/internal/models"
	"github.com/lecture-site/channel-media-api-go/internal/service"
	"github.com/lecture-site/channel-media-api-go/pkg/logger"
)

// Error messages are a compatibility contract with the front end and must
// not change.
const (
	errChannelVideos     = "Error fetching channel videos"
	errPlaylists         = "Error fetching playlists"
	errPlaylistVideos    = "Error fetching playlist videos"
	errPlaylistIDMissing = "Playlist ID is required"
)

// MediaHandler serves the three public media endpoints.
type MediaHandler struct {
	resolver service.MediaResolver
}

// NewMediaHandler creates a new MediaHandler instance.
func NewMediaHandler(resolver service.MediaResolver) *MediaHandler {
	return &MediaHandler{
		resolver: resolver,
	}
}

// GetChannelVideos handles GET /api/v1/channel/videos. An exhausted lookup
// chain is a 200 with an empty array; only upstream failures map to 500.
func (h *MediaHandler) GetChannelVideos(c *gin.Context) {
	videos, err := h.resolver.ChannelVideos(c.Request.Context())
	if err != nil {
		logger.Log.Error("Failed to resolve channel videos",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: errChannelVideos})
		return
	}

	if videos == nil {
		videos = []models.VideoSummary{}
	}
	c.JSON(http.StatusOK, videos)
}

// GetChannelPlaylists handles GET /api/v1/channel/playlists.
func (h *MediaHandler) GetChannelPlaylists(c *gin.Context) {
	playlists, err := h.resolver.ChannelPlaylists(c.Request.Context())
	if err != nil {
		logger.Log.Error("Failed to resolve channel playlists",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: errPlaylists})
		return
	}

	if playlists == nil {
		playlists = []models.PlaylistSummary{}
	}
	c.JSON(http.StatusOK, playlists)
}

// GetPlaylistVideos handles GET /api/v1/playlist/videos?playlistId=...,
// rejecting requests without a playlist id before any upstream call is made.
func (h *MediaHandler) GetPlaylistVideos(c *gin.Context) {
	playlistID := c.Query("playlistId")
	if playlistID == "" {
		logger.Log.Warn("Playlist videos requested without playlist id",
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errPlaylistIDMissing})
		return
	}

	videos, err := h.resolver.PlaylistVideos(c.Request.Context(), playlistID)
	if err != nil {
		logger.Log.Error("Failed to resolve playlist videos",
			zap.Error(err),
			zap.String("playlistId", playlistID),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: errPlaylistVideos})
		return
	}

	if videos == nil {
		videos = []models.VideoSummary{}
	}
	c.JSON(http.StatusOK, videos)
}

// Preflight answers CORS preflight requests on the media routes.
func Preflight(c *gin.Context) {
	c.JSON(http.StatusOK, models.PreflightResponse{Message: "Preflight call successful"})
}
