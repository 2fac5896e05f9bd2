// Package config loads the demo's settings from an optional JSON file and
// HOWITZER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "howitzer.json"

// EnvPrefix prefixes environment overrides, e.g. HOWITZER_WINDOW_WIDTH.
const EnvPrefix = "HOWITZER"

// WindowConfig holds the window settings.
type WindowConfig struct {
	Title   string `json:"title" mapstructure:"title"`
	Width   int    `json:"width" mapstructure:"width"`
	Height  int    `json:"height" mapstructure:"height"`
	ShowFPS bool   `json:"showFps" mapstructure:"showFps"`
	HideHUD bool   `json:"hideHud" mapstructure:"hideHud"`
}

// StorageConfig holds the best-score store settings. An empty Path keeps
// scores in memory only.
type StorageConfig struct {
	Path string `json:"path" mapstructure:"path"`
}

// CameraConfig holds camera settings.
type CameraConfig struct {
	TransitionSeconds float64 `json:"transitionSeconds" mapstructure:"transitionSeconds"`
}

// Config is the full demo configuration.
type Config struct {
	LogLevel      string        `json:"logLevel" mapstructure:"logLevel"`
	Debug         bool          `json:"debug" mapstructure:"debug"`
	SceneFile     string        `json:"sceneFile" mapstructure:"sceneFile"`
	ScriptFile    string        `json:"scriptFile" mapstructure:"scriptFile"`
	ScreenshotDir string        `json:"screenshotDir" mapstructure:"screenshotDir"`
	Seed          uint64        `json:"seed" mapstructure:"seed"`
	Window        WindowConfig  `json:"window" mapstructure:"window"`
	Storage       StorageConfig `json:"storage" mapstructure:"storage"`
	Camera        CameraConfig  `json:"camera" mapstructure:"camera"`
}

// setDefaults registers every key so environment overrides are picked up by
// Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("debug", false)
	v.SetDefault("sceneFile", "")
	v.SetDefault("scriptFile", "")
	v.SetDefault("screenshotDir", "screenshots")
	v.SetDefault("seed", 0)

	v.SetDefault("window.title", "Howitzer")
	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 768)
	v.SetDefault("window.showFps", false)
	v.SetDefault("window.hideHud", false)

	v.SetDefault("storage.path", "./howitzer.db")

	v.SetDefault("camera.transitionSeconds", 0.35)
}

// Load reads FileName from configDir when it exists, applies environment
// overrides and defaults, and validates the result. A missing file is not an
// error.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(strings.TrimSuffix(FileName, ".json"))
	v.SetConfigType("json")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.TransitionSeconds < 0 {
		return fmt.Errorf("invalid camera.transitionSeconds %v", c.Camera.TransitionSeconds)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid logLevel %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
