// Package config loads the daemon configuration from a YAML file with strict
// decoding, then applies AIRWAVE_* environment overrides on top.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the resolved daemon configuration after file load, environment
// overrides and validation.
type AppConfig struct {
	// Listen is the HTTP bind address, host:port.
	Listen string `yaml:"listen"`
	// DataDir holds per-channel working directories with segmenter output.
	DataDir string `yaml:"dataDir"`
	// LogLevel is a zerolog level name (trace..fatal).
	LogLevel string `yaml:"logLevel"`
	// PlaylistWindow caps how many segments a served playlist may contain.
	// Zero means unbounded.
	PlaylistWindow int `yaml:"playlistWindow"`
	// RateLimitPerMinute bounds playlist requests per client IP. Zero
	// disables rate limiting.
	RateLimitPerMinute int `yaml:"rateLimitPerMinute"`
}

// Defaults returns the configuration used when no file and no environment
// overrides are present.
func Defaults() AppConfig {
	return AppConfig{
		Listen:             ":8080",
		DataDir:            "/data",
		LogLevel:           "info",
		PlaylistWindow:     0,
		RateLimitPerMinute: 120,
	}
}

// Load reads the YAML file at path (missing file means defaults only),
// applies environment overrides and validates the result.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied config path
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := decodeStrict(data, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// decodeStrict rejects unknown fields and multi-document files.
func decodeStrict(data []byte, cfg *AppConfig) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("strict config parse error: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("config file contains multiple documents or trailing content")
	}
	return nil
}

func applyEnv(cfg *AppConfig) {
	cfg.Listen = envString("AIRWAVE_LISTEN", cfg.Listen)
	cfg.DataDir = envString("AIRWAVE_DATA_DIR", cfg.DataDir)
	cfg.LogLevel = envString("AIRWAVE_LOG_LEVEL", cfg.LogLevel)
	cfg.PlaylistWindow = envInt("AIRWAVE_PLAYLIST_WINDOW", cfg.PlaylistWindow)
	cfg.RateLimitPerMinute = envInt("AIRWAVE_RATE_LIMIT_PER_MINUTE", cfg.RateLimitPerMinute)
}

func (c AppConfig) validate() error {
	var problems []string

	if c.Listen == "" {
		problems = append(problems, "listen must not be empty")
	}
	if c.DataDir == "" {
		problems = append(problems, "dataDir must not be empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "fatal":
	default:
		problems = append(problems, fmt.Sprintf("unknown logLevel %q", c.LogLevel))
	}
	if c.PlaylistWindow < 0 {
		problems = append(problems, "playlistWindow must be >= 0")
	}
	if c.RateLimitPerMinute < 0 {
		problems = append(problems, "rateLimitPerMinute must be >= 0")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
