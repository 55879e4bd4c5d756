package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr           string        `yaml:"addr" validate:"required"`
	ReadTimeout    time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `yaml:"write_timeout" validate:"gt=0"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" validate:"gt=0"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
	ShutdownGrace  time.Duration `yaml:"shutdown_grace" validate:"gt=0"`
}

// CORSConfig lists the browser origins allowed to call the API
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" validate:"min=1,dive,required"`
}

// UpstreamConfig holds NBA data source configuration
type UpstreamConfig struct {
	StatsBaseURL      string        `yaml:"stats_base_url" validate:"required,url"`
	LiveBaseURL       string        `yaml:"live_base_url" validate:"required,url"`
	Season            string        `yaml:"season" validate:"omitempty,season"`
	SeasonType        string        `yaml:"season_type" validate:"oneof='Regular Season' Playoffs 'Pre Season' PlayIn"`
	Timeout           time.Duration `yaml:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `yaml:"requests_per_second" validate:"gt=0"`
	Burst             int           `yaml:"burst" validate:"min=1"`
	MaxAttempts       int           `yaml:"max_attempts" validate:"min=1,max=10"`
	RetryDelay        time.Duration `yaml:"retry_delay" validate:"gte=0"`
}

// LeadersConfig controls leaderboard size
type LeadersConfig struct {
	Limit int `yaml:"limit" validate:"min=1,max=100"`
}

// RedisConfig holds scoreboard stream configuration. An empty URL disables publishing.
type RedisConfig struct {
	URL    string `yaml:"url" validate:"omitempty,url"`
	Stream string `yaml:"stream" validate:"required"`
	MaxLen int64  `yaml:"max_len" validate:"gte=0"`
}

// LogConfig controls the zap logger and its rotating file sink
type LogConfig struct {
	Level      string `yaml:"level" validate:"oneof=debug info warn error"`
	FileName   string `yaml:"file-name"`
	MaxSize    int    `yaml:"max-size" validate:"gte=0"`
	MaxBackups int    `yaml:"max-backups" validate:"gte=0"`
	MaxAge     int    `yaml:"max-age" validate:"gte=0"`
	Compress   bool   `yaml:"compress"`
	Console    bool   `yaml:"console"`
	JSON       bool   `yaml:"json"`
}

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	CORS     CORSConfig     `yaml:"cors"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Leaders  LeadersConfig  `yaml:"leaders"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
}

var seasonPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   45 * time.Second,
			IdleTimeout:    60 * time.Second,
			RequestTimeout: 40 * time.Second,
			ShutdownGrace:  10 * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost:3001",
			},
		},
		Upstream: UpstreamConfig{
			StatsBaseURL:      "https://stats.nba.com/stats",
			LiveBaseURL:       "https://cdn.nba.com/static/json/liveData",
			SeasonType:        "Regular Season",
			Timeout:           30 * time.Second,
			RequestsPerSecond: 2,
			Burst:             4,
			MaxAttempts:       3,
			RetryDelay:        500 * time.Millisecond,
		},
		Leaders: LeadersConfig{
			Limit: 5,
		},
		Redis: RedisConfig{
			Stream: "games.scoreboard.basketball_nba",
			MaxLen: 1000,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
			Console:    true,
		},
	}
}

// LoadConfig layers defaults, the optional YAML file at path and environment
// overrides, then validates the result
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides fields from environment variables.
// Every malformed value is reported, not just the first.
func (c *Config) applyEnv() error {
	var errs error

	c.Server.Addr = getEnv("SERVER_ADDR", c.Server.Addr)
	errs = multierr.Append(errs, envDuration("REQUEST_TIMEOUT", &c.Server.RequestTimeout))

	if origins := getEnv("CORS_ORIGINS", ""); origins != "" {
		c.CORS.AllowedOrigins = splitList(origins)
	}

	c.Upstream.StatsBaseURL = getEnv("NBA_STATS_URL", c.Upstream.StatsBaseURL)
	c.Upstream.LiveBaseURL = getEnv("NBA_LIVE_URL", c.Upstream.LiveBaseURL)
	c.Upstream.Season = getEnv("NBA_SEASON", c.Upstream.Season)
	c.Upstream.SeasonType = getEnv("NBA_SEASON_TYPE", c.Upstream.SeasonType)
	errs = multierr.Append(errs, envDuration("UPSTREAM_TIMEOUT", &c.Upstream.Timeout))
	errs = multierr.Append(errs, envInt("UPSTREAM_MAX_ATTEMPTS", &c.Upstream.MaxAttempts))
	if v := getEnv("UPSTREAM_RPS", ""); v != "" {
		rps, err := cast.ToFloat64E(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("UPSTREAM_RPS: %w", err))
		} else {
			c.Upstream.RequestsPerSecond = rps
		}
	}

	errs = multierr.Append(errs, envInt("LEADERS_LIMIT", &c.Leaders.Limit))

	c.Redis.URL = getEnv("REDIS_URL", c.Redis.URL)
	c.Redis.Stream = getEnv("REDIS_STREAM", c.Redis.Stream)

	c.Log.Level = strings.ToLower(getEnv("LOG_LEVEL", c.Log.Level))
	c.Log.FileName = getEnv("LOG_FILE", c.Log.FileName)

	return errs
}

// Validate checks every field and reports all violations together
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.RegisterValidation("season", func(fl validator.FieldLevel) bool {
		return seasonPattern.MatchString(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("registering season validator: %w", err)
	}

	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}

	var errs error
	for _, fe := range verrs {
		errs = multierr.Append(errs, fmt.Errorf("config %s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errs
}

// PublishingEnabled reports whether scoreboard snapshots go to Redis
func (c *Config) PublishingEnabled() bool {
	return c.Redis.URL != ""
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envInt(key string, dst *int) error {
	v := getEnv(key, "")
	if v == "" {
		return nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v := getEnv(key, "")
	if v == "" {
		return nil
	}
	d, err := cast.ToDurationE(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
