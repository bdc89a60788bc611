// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	YouTube YouTubeConfig
	Redis   RedisConfig
	Metrics MetricsConfig
	Logging LoggingConfig
	Server  ServerConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// YouTubeConfig identifies the upstream API key and the target channel. The
// channel is named by both lookup keys the platform supports; the resolver
// decides which one works at request time.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type YouTubeConfig struct {
	APIKey          string
	ChannelID       string
	ChannelUsername string
	MaxResults      int64
}

// RedisConfig contains the optional media cache configuration.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
	Enabled  bool
}

// MetricsConfig controls the Prometheus endpoint. With API keys configured,
// /metrics requires one of them.
type MetricsConfig struct {
	APIKeys []string
	Enabled bool
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set defaults
	setDefaults()

	// Read environment variables
	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate reports configuration the server cannot start without.
func (c *Config) Validate() error {
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("youtube.apikey is required")
	}
	if c.YouTube.ChannelID == "" && c.YouTube.ChannelUsername == "" {
		return fmt.Errorf("at least one of youtube.channelid and youtube.channelusername is required")
	}
	return nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.readtimeout", 15*time.Second)
	viper.SetDefault("server.writetimeout", 15*time.Second)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)

	// YouTube
	viper.SetDefault("youtube.apikey", "")
	viper.SetDefault("youtube.channelid", "")
	viper.SetDefault("youtube.channelusername", "")
	viper.SetDefault("youtube.maxresults", 50)

	// Redis media cache
	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.cachettl", 5*time.Minute)

	// Metrics
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.apikeys", []string{})

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
