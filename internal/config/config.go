// This file defines the configuration structure for the application.
package config

import (
	// use Viper for loading the config.yml file.
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Port          int    `mapstructure:"port"`
	BaseURL       string `mapstructure:"base_url"`
	CheckInterval int    `mapstructure:"check_interval"` // minutes between subscription checks
	Database      struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	RateLimit struct {
		Requests   int `mapstructure:"requests"`
		PerSeconds int `mapstructure:"per_seconds"`
	} `mapstructure:"rate_limit"`
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct.
func Load() (*Config, error) {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or "yaml"
	viper.AddConfigPath(".")      // looking for config in the current directory

	// --- Environment Variable Overrides ---
	// e.g., KIRYUU_DATABASE_PATH overrides the `database.path` key.
	viper.SetEnvPrefix("KIRYUU")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("port", 8080)
	viper.SetDefault("base_url", "")
	viper.SetDefault("check_interval", 360)
	viper.SetDefault("database.path", "./kiryuu.db")
	// The upstream site tolerates roughly ten requests every three seconds.
	viper.SetDefault("rate_limit.requests", 10)
	viper.SetDefault("rate_limit.per_seconds", 3)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error and use defaults
		} else {
			// Config file was found but another error was produced
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
