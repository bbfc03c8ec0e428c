package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gogpu/fx"
	"github.com/gogpu/fx/effects"
	"github.com/gogpu/gg"
)

// envPrefix scopes the environment variables read by the demo.
// FXDEMO_METRICS__ADDR sets metrics.addr.
const envPrefix = "FXDEMO_"

// Config is the demo configuration.
type Config struct {
	Width         int           `koanf:"width"`
	Height        int           `koanf:"height"`
	Background    string        `koanf:"background"`
	Output        string        `koanf:"output"`
	FailurePolicy string        `koanf:"failure_policy"`
	Log           LogConfig     `koanf:"log"`
	Metrics       MetricsConfig `koanf:"metrics"`
}

// LogConfig selects the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `koanf:"level"`
}

// MetricsConfig enables the Prometheus endpoint when Addr is set.
type MetricsConfig struct {
	Addr string `koanf:"addr"`
	Path string `koanf:"path"`
}

var defaults = map[string]any{
	"width":          640,
	"height":         360,
	"background":     "#1a1a2e",
	"output":         "fxdemo.png",
	"failure_policy": "isolate",
	"log.level":      "info",
	"metrics.path":   "/metrics",
}

// LoadConfig reads path (a missing file is fine), then FXDEMO_ variables,
// then fills in defaults.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	for key, v := range defaults {
		if !k.Exists(key) {
			_ = k.Set(key, v)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", c.Width, c.Height)
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	return nil
}

// Policy returns the configured rebuild failure policy.
func (c *Config) Policy() (fx.FailurePolicy, error) {
	switch strings.ToLower(c.FailurePolicy) {
	case "", "isolate":
		return fx.IsolateFailures, nil
	case "abort":
		return fx.AbortOnFailure, nil
	default:
		return 0, fmt.Errorf("unknown failure policy %q", c.FailurePolicy)
	}
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

// BackgroundColor parses Background as a hex color.
func (c *Config) BackgroundColor() (gg.RGBA, error) {
	bg, err := effects.ParseColor(c.Background)
	if err != nil {
		return gg.RGBA{}, fmt.Errorf("background: %w", err)
	}
	return bg, nil
}
