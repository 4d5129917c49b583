// Package config provides configuration settings for both services.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the configuration settings for the application.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Shortener ShortenerConfig `mapstructure:"shortener"`
	UserAPI   UserAPIConfig   `mapstructure:"user_api"`
}

// LogConfig holds logging settings shared by both services.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ShortenerConfig holds the settings for the URL shortener service.
type ShortenerConfig struct {
	Port           int           `mapstructure:"port"`
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	StoreCapacity  int           `mapstructure:"store_capacity"`
	CodeLength     int           `mapstructure:"code_length"`
}

// UserAPIConfig holds the settings for the user management service.
type UserAPIConfig struct {
	Port           int           `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	DatabasePath   string        `mapstructure:"database_path"`
	BcryptCost     int           `mapstructure:"bcrypt_cost"`
}

// Addr returns the listen address for the shortener service.
func (c ShortenerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Addr returns the listen address for the user management service.
func (c UserAPIConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load reads the configuration from an optional ./configs/config.yaml file
// with environment variable overrides (e.g. SHORTENER_PORT for
// shortener.port). Missing keys fall back to defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.AddConfigPath("./configs")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, the defaults cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")

	v.SetDefault("shortener.port", 3000)
	v.SetDefault("shortener.base_url", "http://localhost:3000")
	v.SetDefault("shortener.request_timeout", 5*time.Second)
	v.SetDefault("shortener.store_capacity", 1000000)
	v.SetDefault("shortener.code_length", 6)

	v.SetDefault("user_api.port", 3001)
	v.SetDefault("user_api.request_timeout", 5*time.Second)
	v.SetDefault("user_api.database_path", "users.db")
	v.SetDefault("user_api.bcrypt_cost", 0) // 0 selects the bcrypt default
}
