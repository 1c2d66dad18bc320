package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	UI   UIConfig   `mapstructure:"ui"`
	Data DataConfig `mapstructure:"data"`
	Log  LogConfig  `mapstructure:"log"`
}

type UIConfig struct {
	Theme           string `mapstructure:"theme"`
	MouseEnabled    bool   `mapstructure:"mouse_enabled"`
	PanelWidthRatio int    `mapstructure:"panel_width_ratio"`
}

type DataConfig struct {
	PageSize             int `mapstructure:"page_size"`
	MaxCellDisplayLength int `mapstructure:"max_cell_display_length"`
	PlotSampleLimit      int `mapstructure:"plot_sample_limit"`
	ProgressThresholdMs  int `mapstructure:"progress_threshold_ms"`
}

type LogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	File    string `mapstructure:"file"`
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		UI: UIConfig{
			Theme:           "default",
			MouseEnabled:    true,
			PanelWidthRatio: 25,
		},
		Data: DataConfig{
			PageSize:             250,
			MaxCellDisplayLength: 100,
			PlotSampleLimit:      250000,
			ProgressThresholdMs:  600,
		},
		Log: LogConfig{
			Enabled: false,
			File:    "tably.log",
		},
	}
}

// Load loads configuration from files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths in priority order
	// 1. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "tably"))
	}

	// 2. Current directory
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("ui.theme", "default")
	v.SetDefault("ui.mouse_enabled", true)
	v.SetDefault("ui.panel_width_ratio", 25)
	v.SetDefault("data.page_size", 250)
	v.SetDefault("data.max_cell_display_length", 100)
	v.SetDefault("data.plot_sample_limit", 250000)
	v.SetDefault("data.progress_threshold_ms", 600)
	v.SetDefault("log.enabled", false)
	v.SetDefault("log.file", "tably.log")

	// Read config (it's okay if file doesn't exist, we have defaults)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	// Unmarshal into struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "tably"), nil
}
