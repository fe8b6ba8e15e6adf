package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Map     MapConfig     `mapstructure:"map"`
	Data    DataConfig    `mapstructure:"data"`
	Route   RouteConfig   `mapstructure:"route"`
	Debug   DebugConfig   `mapstructure:"debug"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type MapConfig struct {
	Zoom          float64       `mapstructure:"zoom"`
	MinZoom       float64       `mapstructure:"min_zoom"`
	MaxZoom       float64       `mapstructure:"max_zoom"`
	ZoomSnap      float64       `mapstructure:"zoom_snap"`
	Aspect        float64       `mapstructure:"aspect"`
	PaddingX      float64       `mapstructure:"padding_x"`
	PaddingY      float64       `mapstructure:"padding_y"`
	FrameInterval time.Duration `mapstructure:"frame_interval"`
}

type DataConfig struct {
	CacheDir string `mapstructure:"cache_dir"`
	Offline  bool   `mapstructure:"offline"`
}

type RouteConfig struct {
	Provider  string `mapstructure:"provider"`
	APIKey    string `mapstructure:"api_key"`
	Waypoints string `mapstructure:"waypoints"`
}

type DebugConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration from an optional file and environment variables.
// An explicit path must exist; otherwise routeview.yaml is looked up in the
// working directory and ~/.routeview.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("map.zoom", 13)
	v.SetDefault("map.min_zoom", 1)
	v.SetDefault("map.max_zoom", 18)
	v.SetDefault("map.zoom_snap", 1)
	v.SetDefault("map.aspect", 2.0)
	v.SetDefault("map.padding_x", 4)
	v.SetDefault("map.padding_y", 2)
	v.SetDefault("map.frame_interval", "100ms")
	v.SetDefault("data.cache_dir", "")
	v.SetDefault("data.offline", false)
	v.SetDefault("route.provider", "straight")
	v.SetDefault("route.api_key", "")
	v.SetDefault("route.waypoints", "")
	v.SetDefault("debug.file", "")
	v.SetDefault("debug.level", "debug")
	v.SetDefault("metrics.addr", "")

	// Config file
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("routeview")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.routeview")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// Environment variables: ROUTEVIEW_ROUTE_API_KEY → route.api_key
	v.SetEnvPrefix("ROUTEVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that configuration fields are sane. Flags are applied on
// top of the loaded file, so callers validate after overriding.
func (c *Config) Validate() error {
	var errs []string

	if c.Map.MinZoom < 0 || c.Map.MaxZoom > 22 || c.Map.MinZoom > c.Map.MaxZoom {
		errs = append(errs, fmt.Sprintf("map zoom range must lie within 0-22, got %g-%g", c.Map.MinZoom, c.Map.MaxZoom))
	}
	if c.Map.Zoom < c.Map.MinZoom || c.Map.Zoom > c.Map.MaxZoom {
		errs = append(errs, fmt.Sprintf("map.zoom must be within %g-%g, got %g", c.Map.MinZoom, c.Map.MaxZoom, c.Map.Zoom))
	}
	if c.Map.ZoomSnap < 0 {
		errs = append(errs, "map.zoom_snap must not be negative")
	}
	if c.Map.Aspect < 1.0 || c.Map.Aspect > 4.0 {
		errs = append(errs, fmt.Sprintf("map.aspect must be between 1.0 and 4.0, got %g", c.Map.Aspect))
	}
	if c.Map.PaddingX < 0 || c.Map.PaddingY < 0 {
		errs = append(errs, "map padding must not be negative")
	}
	if c.Map.FrameInterval <= 0 {
		errs = append(errs, "map.frame_interval must be positive")
	}
	switch c.Route.Provider {
	case "straight":
	case "google":
		if c.Route.APIKey == "" {
			errs = append(errs, "route.api_key is required for the google provider")
		}
	default:
		errs = append(errs, fmt.Sprintf("route.provider must be straight or google, got %q", c.Route.Provider))
	}
	if _, err := c.Debug.SlogLevel(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (d DebugConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(d.Level)); err != nil {
		return 0, fmt.Errorf("debug.level: %w", err)
	}
	return level, nil
}
