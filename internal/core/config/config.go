// Package config handles configuration loading and validation for diffview.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Layout           string    `yaml:"layout"`              // split or unified
	Theme            string    `yaml:"theme"`               // color theme name
	HoverHideDelayMS int       `yaml:"hover_hide_delay_ms"` // block affordance hide delay
	Exclude          []string  `yaml:"exclude"`             // glob patterns filtering the file list
	Log              LogConfig `yaml:"log"`
	DataDir          string    `yaml:"-"` // set by caller, not from config file
}

// LogConfig controls log output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Layout:           "split",
		Theme:            "tokyo-night",
		HoverHideDelayMS: 300,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the given path and sets the data
// directory. If configPath is empty or doesn't exist, returns defaults
// with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks constraints the rest of the program relies on.
func (c *Config) Validate() error {
	switch c.Layout {
	case "split", "unified":
	default:
		return fmt.Errorf("invalid layout %q: must be split or unified", c.Layout)
	}

	if c.HoverHideDelayMS < 0 {
		return fmt.Errorf("hover_hide_delay_ms must be >= 0, got %d", c.HoverHideDelayMS)
	}

	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	return nil
}

// HoverHideDelay returns the affordance hide delay as a duration.
func (c *Config) HoverHideDelay() time.Duration {
	return time.Duration(c.HoverHideDelayMS) * time.Millisecond
}

// CommentStorePath is the JSON file backing self-contained comment
// persistence.
func (c *Config) CommentStorePath() string {
	return filepath.Join(c.DataDir, "comments.json")
}

// Excluded reports whether a diff file path matches any exclude pattern.
func (c *Config) Excluded(path string) bool {
	for _, pattern := range c.Exclude {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}
