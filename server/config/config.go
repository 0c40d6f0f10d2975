// Package config loads relay settings. Values come from, in increasing
// priority: built-in defaults, an optional relay.yaml, an optional .env file,
// and ARENA_* environment variables. Flags in cmd/server override the result.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the relay's runtime settings.
type Config struct {
	Addr           string        `mapstructure:"addr"`
	Path           string        `mapstructure:"path"`
	Room           string        `mapstructure:"room"`
	OutboundQueue  int           `mapstructure:"outbound_queue"` // frames buffered per peer before it is dropped
	InboxSize      int           `mapstructure:"inbox_size"`
	ReadLimit      int64         `mapstructure:"read_limit"` // bytes per frame
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	StatsInterval  time.Duration `mapstructure:"stats_interval"` // 0 disables the stats log
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:          ":7373",
		Path:          "/ws",
		Room:          "arena",
		OutboundQueue: 64,
		InboxSize:     256,
		ReadLimit:     32 << 10,
		WriteTimeout:  5 * time.Second,
		StatsInterval: 30 * time.Second,
	}
}

// Load reads the configuration. configPath may name a YAML file or a
// directory to search for relay.yaml; an empty path searches "." and
// "config". envFiles are loaded into the environment first; missing ones are
// skipped.
func Load(configPath string, envFiles ...string) (*Config, error) {
	if err := loadEnvFiles(envFiles); err != nil {
		return nil, err
	}

	v := viper.New()
	def := Default()
	v.SetDefault("addr", def.Addr)
	v.SetDefault("path", def.Path)
	v.SetDefault("room", def.Room)
	v.SetDefault("outbound_queue", def.OutboundQueue)
	v.SetDefault("inbox_size", def.InboxSize)
	v.SetDefault("read_limit", def.ReadLimit)
	v.SetDefault("write_timeout", def.WriteTimeout)
	v.SetDefault("stats_interval", def.StatsInterval)
	v.SetDefault("allowed_origins", []string{})

	v.SetEnvPrefix("ARENA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicitFile := strings.HasSuffix(configPath, ".yaml") || strings.HasSuffix(configPath, ".yml")
	if explicitFile {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("relay")
		v.SetConfigType("yaml")
		if configPath != "" {
			v.AddConfigPath(configPath)
		}
		v.AddConfigPath(".")
		v.AddConfigPath("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitFile || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFiles(files []string) error {
	for _, f := range files {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must be set")
	}
	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("path %q must start with /", c.Path)
	}
	if c.OutboundQueue <= 0 {
		return fmt.Errorf("outbound_queue must be > 0, got %d", c.OutboundQueue)
	}
	if c.InboxSize <= 0 {
		return fmt.Errorf("inbox_size must be > 0, got %d", c.InboxSize)
	}
	if c.ReadLimit <= 0 {
		return fmt.Errorf("read_limit must be > 0, got %d", c.ReadLimit)
	}
	if c.WriteTimeout <= 0 {
		return fmt.Errorf("write_timeout must be > 0")
	}
	if c.StatsInterval < 0 {
		return fmt.Errorf("stats_interval must be >= 0")
	}
	return nil
}
