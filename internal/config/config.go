package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the tabstats server.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Analyze   AnalyzeConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port              int
	Env               string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	TrustProxyHeaders bool
}

type LogConfig struct {
	Level  string
	Format string
}

// RedisConfig is optional. An empty URL disables rate limiting.
type RedisConfig struct {
	URL string
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

type AnalyzeConfig struct {
	MaxConcurrent int
	MaxBodyBytes  int64
	MaxAnalyses   int
	QueueTimeout  time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"json": true, "text": true}
)

// Load reads configuration from environment variables and returns a validated Config.
// Variables from the env file named by TABSTATS_ENV_FILE (default .env) are
// loaded first; they never override variables already set in the process.
func Load() (*Config, error) {
	envFile := envString("TABSTATS_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read env file %s: %w", envFile, err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:              envInt("TABSTATS_PORT", 8080),
			Env:               envString("TABSTATS_ENV", "development"),
			ReadTimeout:       envDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:      envDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			TrustProxyHeaders: envBool("TRUST_PROXY_HEADERS", false),
		},
		Log: LogConfig{
			Level:  strings.ToLower(envString("LOG_LEVEL", "info")),
			Format: strings.ToLower(envString("LOG_FORMAT", "json")),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 60),
		},
		Analyze: AnalyzeConfig{
			MaxConcurrent: envInt("ANALYZE_MAX_CONCURRENT", 8),
			MaxBodyBytes:  envInt64("ANALYZE_MAX_BODY_BYTES", 10<<20),
			MaxAnalyses:   envInt("ANALYZE_MAX_ANALYSES", 50),
			QueueTimeout:  envDuration("ANALYZE_QUEUE_TIMEOUT", 10*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: envList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("TABSTATS_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT and SERVER_WRITE_TIMEOUT must be positive")
	}

	if !validLevels[c.Log.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", c.Log.Level)
	}
	if !validFormats[c.Log.Format] {
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.Log.Format)
	}

	if c.Redis.URL != "" &&
		!strings.HasPrefix(c.Redis.URL, "redis://") && !strings.HasPrefix(c.Redis.URL, "rediss://") {
		return fmt.Errorf("REDIS_URL must start with redis:// or rediss://, got %q", c.Redis.URL)
	}
	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimit.RequestsPerMinute)
	}

	if c.Analyze.MaxConcurrent <= 0 {
		return fmt.Errorf("ANALYZE_MAX_CONCURRENT must be positive, got %d", c.Analyze.MaxConcurrent)
	}
	if c.Analyze.MaxBodyBytes <= 0 {
		return fmt.Errorf("ANALYZE_MAX_BODY_BYTES must be positive, got %d", c.Analyze.MaxBodyBytes)
	}
	if c.Analyze.MaxAnalyses <= 0 {
		return fmt.Errorf("ANALYZE_MAX_ANALYSES must be positive, got %d", c.Analyze.MaxAnalyses)
	}
	if c.Analyze.QueueTimeout < 0 {
		return fmt.Errorf("ANALYZE_QUEUE_TIMEOUT must not be negative, got %s", c.Analyze.QueueTimeout)
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must name at least one origin")
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return i
}

func envBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

// envList splits a comma-separated variable, dropping empty entries.
func envList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
