package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port            string
		Mode            string
		ShutdownTimeout time.Duration
	}
	Log struct {
		Level string
	}
	Redis struct {
		URL string
	}
	Cache struct {
		TTL time.Duration
	}
	RateLimit struct {
		RequestsPerMinute int
		Burst             int
	}
	CORS struct {
		Origins []string
	}
	Query struct {
		MaxLength int
	}
}

func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom reads config.yaml from dir if present, then the environment.
// Environment keys use underscores, e.g. SERVER_PORT or REDIS_URL.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("redis.url", "")
	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("ratelimit.requests_per_minute", 60)
	v.SetDefault("ratelimit.burst", 20)
	v.SetDefault("cors.origins", []string{"*"})
	v.SetDefault("query.max_length", 2000)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	config.Server.Port = v.GetString("server.port")
	config.Server.Mode = v.GetString("server.mode")
	config.Server.ShutdownTimeout = v.GetDuration("server.shutdown_timeout")
	config.Log.Level = v.GetString("log.level")
	config.Redis.URL = v.GetString("redis.url")
	config.Cache.TTL = v.GetDuration("cache.ttl")
	config.RateLimit.RequestsPerMinute = v.GetInt("ratelimit.requests_per_minute")
	config.RateLimit.Burst = v.GetInt("ratelimit.burst")
	config.CORS.Origins = v.GetStringSlice("cors.origins")
	config.Query.MaxLength = v.GetInt("query.max_length")

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %q", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid server mode: %q", c.Server.Mode)
	}
	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("ratelimit.requests_per_minute must be positive")
	}
	if c.RateLimit.Burst <= 0 {
		return fmt.Errorf("ratelimit.burst must be positive")
	}
	if c.Query.MaxLength <= 0 {
		return fmt.Errorf("query.max_length must be positive")
	}
	return nil
}

// CacheEnabled reports whether a Redis URL was configured.
func (c *Config) CacheEnabled() bool {
	return c.Redis.URL != ""
}

func (c *Config) Addr() string {
	return ":" + c.Server.Port
}
