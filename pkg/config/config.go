// Package config loads process configuration from environment
// variables. This is deployment plumbing (paths, log verbosity); the
// user-facing preferences live in the settings store.
package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all process configuration for the application.
type Config struct {
	Paths PathsConfig
	Log   LogConfig
}

// PathsConfig holds filesystem locations.
type PathsConfig struct {
	DataDir    string // where the profile and settings documents live
	LocalesDir string // optional directory of translation overrides
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level    string
	Encoding string // "console" or "json"
}

// SettingsPath is the location of the settings document.
func (p PathsConfig) SettingsPath() string {
	return filepath.Join(p.DataDir, "settings.json")
}

// ProfilesPath is the location of the profile collection document.
func (p PathsConfig) ProfilesPath() string {
	return filepath.Join(p.DataDir, "profiles.json")
}

// LoadConfig reads configuration from environment variables with
// defaults. Variables are uppercase with underscores, e.g. DATA_DIR.
func LoadConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)
	bindEnv(v)
	v.AutomaticEnv()

	cfg := &Config{
		Paths: PathsConfig{
			DataDir:    v.GetString("data_dir"),
			LocalesDir: v.GetString("locales_dir"),
		},
		Log: LogConfig{
			Level:    v.GetString("log_level"),
			Encoding: v.GetString("log_encoding"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "./data")
	v.SetDefault("locales_dir", "") // empty = embedded tables only
	v.SetDefault("log_level", "info")
	v.SetDefault("log_encoding", "console")
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("data_dir", "DATA_DIR")
	_ = v.BindEnv("locales_dir", "LOCALES_DIR")
	_ = v.BindEnv("log_level", "LOG_LEVEL")
	_ = v.BindEnv("log_encoding", "LOG_ENCODING")
}
