package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lecture-site/channel-media-api-go/internal/config"
	"github.com/lecture-site/channel-media-api-go/internal/handler"
	"github.com/lecture-site/channel-media-api-go/internal/metrics"
	"github.com/lecture-site/channel-media-api-go/internal/middleware"
	"github.com/lecture-site/channel-media-api-go/internal/service"
	"github.com/lecture-site/channel-media-api-go/internal/youtube"
	"github.com/lecture-site/channel-media-api-go/pkg/logger"
)

const idleTimeout = 60 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal("Invalid configuration", zap.Error(err))
	}

	ytClient, err := youtube.NewClient(cfg.YouTube.APIKey, cfg.YouTube.MaxResults)
	if err != nil {
		logger.Log.Fatal("Failed to create YouTube API client", zap.Error(err))
	}

	resolver := service.NewResolver(ytClient, service.ChannelIdentity{
		ID:       cfg.YouTube.ChannelID,
		Username: cfg.YouTube.ChannelUsername,
	})

	var mediaResolver service.MediaResolver = resolver
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		mediaResolver = service.NewCachedResolver(resolver, redisClient, cfg.Redis.CacheTTL)
		logger.Log.Info("Media cache enabled",
			zap.String("addr", cfg.Redis.Addr),
			zap.Duration("ttl", cfg.Redis.CacheTTL),
		)
	}

	mediaHandler := handler.NewMediaHandler(mediaResolver)
	healthHandler := handler.NewHealthHandler(redisClient)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger())

	api := router.Group("/api/v1", middleware.MediaCORS())
	api.GET("/channel/videos", mediaHandler.GetChannelVideos)
	api.OPTIONS("/channel/videos", handler.Preflight)
	api.GET("/channel/playlists", mediaHandler.GetChannelPlaylists)
	api.OPTIONS("/channel/playlists", handler.Preflight)
	api.GET("/playlist/videos", mediaHandler.GetPlaylistVideos)
	api.OPTIONS("/playlist/videos", handler.Preflight)

	// Function-style routes the deployed front end still calls.
	legacy := router.Group("/", middleware.MediaCORS())
	legacy.GET("/get-channel-videos", mediaHandler.GetChannelVideos)
	legacy.OPTIONS("/get-channel-videos", handler.Preflight)
	legacy.GET("/get-playlists", mediaHandler.GetChannelPlaylists)
	legacy.OPTIONS("/get-playlists", handler.Preflight)
	legacy.GET("/get-playlist-videos", mediaHandler.GetPlaylistVideos)
	legacy.OPTIONS("/get-playlist-videos", handler.Preflight)

	router.GET("/health/live", healthHandler.LivenessProbe)
	router.GET("/health/ready", healthHandler.ReadinessProbe)

	if cfg.Metrics.Enabled {
		handlers := make([]gin.HandlerFunc, 0, 2)
		if len(cfg.Metrics.APIKeys) > 0 {
			handlers = append(handlers, middleware.NewAPIKeyAuth(cfg.Metrics.APIKeys).Middleware())
		}
		handlers = append(handlers, gin.WrapH(metrics.Handler()))
		router.GET("/metrics", handlers...)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  idleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("Server starting",
			zap.Int("port", cfg.Server.Port),
			zap.String("channelId", cfg.YouTube.ChannelID),
			zap.String("channelUsername", cfg.YouTube.ChannelUsername),
		)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Log.Fatal("Server error", zap.Error(err))
	case sig := <-shutdown:
		logger.Log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Log.Error("Graceful shutdown failed", zap.Error(err))
			if err := server.Close(); err != nil {
				logger.Log.Error("Failed to close server", zap.Error(err))
			}
			os.Exit(1)
		}

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				logger.Log.Error("Failed to close Redis client", zap.Error(err))
			}
		}

		logger.Log.Info("Server stopped gracefully")
	}
}
