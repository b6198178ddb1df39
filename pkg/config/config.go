// Package config loads runtime settings for the playground server from an
// optional YAML file and PLAYGROUND_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the server settings.
type Config struct {
	Addr         string            `yaml:"addr" env:"PLAYGROUND_ADDR" env-default:":8080" env-description:"listen address"`
	BasePath     string            `yaml:"base_path" env:"PLAYGROUND_BASE_PATH" env-default:"/playground" env-description:"route prefix"`
	DelaySeconds int               `yaml:"delay_seconds" env:"PLAYGROUND_DELAY" env-default:"0" env-description:"initial global delay (0-10)"`
	ManifestPath string            `yaml:"manifest_path" env:"PLAYGROUND_MANIFEST" env-description:"optional catalog manifest overriding widget definitions"`
	SeedRows     bool              `yaml:"seed_rows" env:"PLAYGROUND_SEED_ROWS" env-default:"true" env-description:"start the orders table with sample rows"`
	ChartTTL     time.Duration     `yaml:"chart_ttl" env:"PLAYGROUND_CHART_TTL" env-default:"5s" env-description:"activity chart render cache ttl"`
	Log          LogConfig         `yaml:"log"`
	Session      SessionConfig     `yaml:"session"`
	Credentials  map[string]string `yaml:"credentials" env:"PLAYGROUND_CREDENTIALS" env-default:"tester:playground" env-description:"demo logins as user:password pairs"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" env:"PLAYGROUND_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"PLAYGROUND_LOG_FORMAT" env-default:"text"`
}

// SessionConfig holds the session cookie settings. Empty keys are generated
// at startup.
type SessionConfig struct {
	CookieName string        `yaml:"cookie_name" env:"PLAYGROUND_SESSION_COOKIE" env-default:"playground_session"`
	HashKey    string        `yaml:"hash_key" env:"PLAYGROUND_SESSION_HASH_KEY"`
	BlockKey   string        `yaml:"block_key" env:"PLAYGROUND_SESSION_BLOCK_KEY"`
	MaxAge     time.Duration `yaml:"max_age" env:"PLAYGROUND_SESSION_MAX_AGE" env-default:"24h"`
}

// Load reads path when set, then applies environment overrides.
func Load(path string) (Config, error) {
	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("config: addr is required")
	}
	if c.DelaySeconds < 0 || c.DelaySeconds > 10 {
		return fmt.Errorf("config: delay_seconds must be between 0 and 10, got %d", c.DelaySeconds)
	}
	switch n := len(c.Session.BlockKey); n {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("config: session block key must be 16, 24 or 32 bytes, got %d", n)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Logger builds the slog logger described by the log settings.
func (c Config) Logger() *slog.Logger {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// Usage describes the supported environment variables.
func Usage() (string, error) {
	var cfg Config
	return cleanenv.GetDescription(&cfg, nil)
}

func parseLevel(raw string) (slog.Level, error) {
	var level slog.Level
	if strings.TrimSpace(raw) == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: invalid log level %q", raw)
	}
	return level, nil
}
