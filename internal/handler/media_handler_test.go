package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lecture-site/channel-media-api-go/internal/middleware"
	"github.com/lecture-site/channel-media-api-go/internal/models"
	"github.com/lecture-site/channel-media-api-go/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	// Initialize logger to prevent nil pointer errors
	_ = logger.Init("error", "")
}

type stubResolver struct {
	videos    []models.VideoSummary
	playlists []models.PlaylistSummary
	err       error
	calls     int
}

func (s *stubResolver) ChannelVideos(_ context.Context) ([]models.VideoSummary, error) {
	s.calls++
	return s.videos, s.err
}

func (s *stubResolver) ChannelPlaylists(_ context.Context) ([]models.PlaylistSummary, error) {
	s.calls++
	return s.playlists, s.err
}

func (s *stubResolver) PlaylistVideos(_ context.Context, _ string) ([]models.VideoSummary, error) {
	s.calls++
	return s.videos, s.err
}

// newTestRouter mirrors the production route setup for the media endpoints.
func newTestRouter(resolver *stubResolver) *gin.Engine {
	h := NewMediaHandler(resolver)

	router := gin.New()
	api := router.Group("/api/v1", middleware.MediaCORS())
	api.GET("/channel/videos", h.GetChannelVideos)
	api.OPTIONS("/channel/videos", Preflight)
	api.GET("/channel/playlists", h.GetChannelPlaylists)
	api.OPTIONS("/channel/playlists", Preflight)
	api.GET("/playlist/videos", h.GetPlaylistVideos)
	api.OPTIONS("/playlist/videos", Preflight)

	return router
}

func TestGetChannelVideos_Success(t *testing.T) {
	resolver := &stubResolver{
		videos: []models.VideoSummary{
			{ID: "v1", Title: "First"},
			{ID: "v2", Title: "Second"},
		},
	}
	router := newTestRouter(resolver)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/channel/videos", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))

	var videos []models.VideoSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &videos))
	require.Len(t, videos, 2)
	assert.Equal(t, "v1", videos[0].ID)
}

func TestGetChannelVideos_EmptyIsNotAnError(t *testing.T) {
	router := newTestRouter(&stubResolver{videos: []models.VideoSummary{}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/channel/videos", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetChannelVideos_UpstreamFailure(t *testing.T) {
	router := newTestRouter(&stubResolver{err: errors.New("upstream down")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/channel/videos", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Error fetching channel videos"}`, w.Body.String())
}

func TestGetChannelPlaylists_Success(t *testing.T) {
	resolver := &stubResolver{
		playlists: []models.PlaylistSummary{{ID: "PL1", Title: "Course A", ItemCount: 4}},
	}
	router := newTestRouter(resolver)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/channel/playlists", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var playlists []models.PlaylistSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &playlists))
	require.Len(t, playlists, 1)
	assert.Equal(t, int64(4), playlists[0].ItemCount)
}

func TestGetChannelPlaylists_UpstreamFailure(t *testing.T) {
	router := newTestRouter(&stubResolver{err: errors.New("boom")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/channel/playlists", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Error fetching playlists"}`, w.Body.String())
}

func TestGetPlaylistVideos_RequiresPlaylistID(t *testing.T) {
	resolver := &stubResolver{videos: []models.VideoSummary{{ID: "v1"}}}
	router := newTestRouter(resolver)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/playlist/videos", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Playlist ID is required"}`, w.Body.String())
	assert.Zero(t, resolver.calls, "a rejected request must not reach the resolver")
}

func TestGetPlaylistVideos_Success(t *testing.T) {
	resolver := &stubResolver{
		videos: []models.VideoSummary{{ID: "v1", PlaylistID: "PL42"}},
	}
	router := newTestRouter(resolver)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/playlist/videos?playlistId=PL42", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var videos []models.VideoSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &videos))
	require.Len(t, videos, 1)
	assert.Equal(t, "PL42", videos[0].PlaylistID)
}

func TestGetPlaylistVideos_UpstreamFailure(t *testing.T) {
	router := newTestRouter(&stubResolver{err: errors.New("boom")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/playlist/videos?playlistId=PL42", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Error fetching playlist videos"}`, w.Body.String())
}

func TestPreflight(t *testing.T) {
	router := newTestRouter(&stubResolver{})

	for _, path := range []string{
		"/api/v1/channel/videos",
		"/api/v1/channel/playlists",
		"/api/v1/playlist/videos",
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, path, nil))

		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), path)
		assert.JSONEq(t, `{"message":"Preflight call successful"}`, w.Body.String(), path)
	}
}

func TestNilResultsSerializeAsEmptyArray(t *testing.T) {
	// A defensive guard: the response must be a JSON array even if a
	// resolver implementation returns a nil slice.
	router := newTestRouter(&stubResolver{videos: nil, playlists: nil})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/channel/videos", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/channel/playlists", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
