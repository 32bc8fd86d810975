package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Export  ExportConfig
	Brand   BrandConfig
	Mode    ModeConfig
}

// ServerConfig holds HTTP settings.
type ServerConfig struct {
	Port string
	// SessionTTL is how long a session may sit idle before it is dropped.
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// CatalogConfig says where the photos live.
type CatalogConfig struct {
	Dir string
	// List is an optional CSV whose first column lists the identifiers.
	List string
	// RemoteBase, when set, makes the compositor download photos from
	// <RemoteBase>/<identifier> instead of reading Dir.
	RemoteBase string `mapstructure:"remote_base"`
}

// ExportConfig holds encoding settings.
type ExportConfig struct {
	Quality        int
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// BrandConfig holds the display strings drawn into the collage and passed
// to clients.
type BrandConfig struct {
	Site      string
	Watermark string
	Title     string
	Subtitle  string
	// ShareURL is encoded by the QR endpoint.
	ShareURL string `mapstructure:"share_url"`
}

// ModeConfig holds the capacity new sessions start with.
type ModeConfig struct {
	Default int
}

// Load reads configuration from file and env. Env var overrides use prefix
// BIGCOLLAGE_; PORT is also honoured for the server port.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.session_ttl", 2*time.Hour)
	v.SetDefault("catalog.dir", "photos")
	v.SetDefault("catalog.list", "")
	v.SetDefault("catalog.remote_base", "")
	v.SetDefault("export.quality", 90)
	v.SetDefault("export.allowed_origins", []string{})
	v.SetDefault("brand.site", "big5_big15.vercel")
	v.SetDefault("brand.watermark", "Made by CaganT")
	v.SetDefault("brand.title", "Big %d")
	v.SetDefault("brand.subtitle", "Pick your %d favourites to build your personal collection.")
	v.SetDefault("brand.share_url", "https://big5_big15.vercel.app")
	v.SetDefault("mode.default", 15)

	v.SetConfigType("toml")
	if cfgPath := os.Getenv("BIGCOLLAGE_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("bigcollage")
	}

	v.SetEnvPrefix("BIGCOLLAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BIGCOLLAGE_SERVER_PORT") == "" {
		c.Server.Port = port
	}
	return c, c.Validate()
}

// Validate checks values that would otherwise fail later at export time.
func (c Config) Validate() error {
	if c.Export.Quality < 1 || c.Export.Quality > 100 {
		return fmt.Errorf("export.quality must be in [1, 100], got %d", c.Export.Quality)
	}
	if c.Mode.Default != 5 && c.Mode.Default != 15 {
		return fmt.Errorf("mode.default must be 5 or 15, got %d", c.Mode.Default)
	}
	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("server.session_ttl must be positive, got %s", c.Server.SessionTTL)
	}
	if c.Catalog.Dir == "" && c.Catalog.List == "" {
		return fmt.Errorf("catalog.dir or catalog.list is required")
	}
	return nil
}
