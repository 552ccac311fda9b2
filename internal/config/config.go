package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/pstuifzand/tui-flamechart/internal/cluster"
)

// Config holds application configuration
type Config struct {
	Theme    string            `toml:"theme"`
	Settings map[string]string `toml:"settings"`
	Chart    ChartConfig       `toml:"chart"`

	// set with :set, never written to disk
	sessionSettings map[string]string
}

// Load reads config.toml from the config directory
func Load() (*Config, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return defaultConfig(), nil
	}
	return LoadFromFile(filepath.Join(dir, "config.toml"))
}

// LoadFromFile reads filePath over the defaults, so keys the file leaves
// out keep their default value. A missing file is not an error.
func LoadFromFile(filePath string) (*Config, error) {
	config := defaultConfig()
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	} else if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", filePath, err)
	}
	if config.Theme == "" {
		config.Theme = defaultTheme
	}
	if config.Settings == nil {
		config.Settings = map[string]string{}
	}
	if config.Chart.Colors == nil {
		config.Chart.Colors = map[string]string{}
	}
	return config, nil
}

const defaultTheme = "tokyo-night"

func defaultConfig() *Config {
	return &Config{
		Theme:           defaultTheme,
		Settings:        map[string]string{},
		Chart:           DefaultChart(),
		sessionSettings: map[string]string{},
	}
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return defaultConfig()
}

// GetConfigDir returns $XDG_CONFIG_HOME/tui-flamechart, or
// ~/.config/tui-flamechart when the variable is unset
func GetConfigDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tui-flamechart"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tui-flamechart"), nil
}

// Set changes key for this session only
func (c *Config) Set(key, value string) {
	if c.sessionSettings == nil {
		c.sessionSettings = map[string]string{}
	}
	c.sessionSettings[key] = value
}

// Get returns the session value of key, else the persisted one, else ""
func (c *Config) Get(key string) string {
	if v, ok := c.sessionSettings[key]; ok {
		return v
	}
	return c.Settings[key]
}

// Persist moves the session settings into Settings, so that Save writes them
func (c *Config) Persist() {
	if c.Settings == nil {
		c.Settings = map[string]string{}
	}
	maps.Copy(c.Settings, c.sessionSettings)
	c.sessionSettings = map[string]string{}
}

// GetAll merges the persisted and session settings, session winning
func (c *Config) GetAll() map[string]string {
	result := maps.Clone(c.Settings)
	if result == nil {
		result = map[string]string{}
	}
	maps.Copy(result, c.sessionSettings)
	return result
}

// EffectiveChart returns the [chart] section with settings applied on top.
// Settings that do not parse are skipped.
func (c *Config) EffectiveChart() ChartConfig {
	chart := c.Chart.clone()
	for k, v := range c.GetAll() {
		_ = chart.apply(k, v)
	}
	return chart
}

// Thresholds returns the cluster merge thresholds of the effective chart config
func (c *Config) Thresholds() cluster.Thresholds {
	chart := c.EffectiveChart()
	return cluster.Thresholds{
		StickDistance:   chart.StickDistance,
		MinBlockSize:    chart.MinBlockSize,
		MaxClusterWidth: chart.MaxClusterWidth,
	}
}

// HitRebuildDelay returns the debounce delay of the hit region rebuild
func (c *Config) HitRebuildDelay() time.Duration {
	return time.Duration(c.EffectiveChart().HitRebuildDelayMS) * time.Millisecond
}

// Save writes the persisted part of the configuration to config.toml in
// the config directory. Session settings are not written; see Persist.
func (c *Config) Save() error {
	dir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("config dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return c.SaveToFile(filepath.Join(dir, "config.toml"))
}

// SaveToFile writes the configuration to filePath
func (c *Config) SaveToFile(filePath string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
