// Package config loads client settings from the environment and an optional
// .env file, with defaults that match the public Yago Market backend.
package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig
	Catalog CatalogConfig
	UI      UIConfig
	Log     LogConfig
}

type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	MaxInFlight    int
}

type CatalogConfig struct {
	// PageSize is the size of the featured products page.
	PageSize int
	// CategoryPerPage is the page size for category listings.
	CategoryPerPage int
	// ImageConcurrency caps parallel image lookups per page load.
	ImageConcurrency int
}

type UIConfig struct {
	Theme string // "light" or "dark"
}

type LogConfig struct {
	Path  string
	Debug bool
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	viper.SetDefault("YAGO_API_URL", "http://127.0.0.1:8000")
	viper.SetDefault("YAGO_REQUEST_TIMEOUT", "15s")
	viper.SetDefault("YAGO_MAX_IN_FLIGHT", 16)
	viper.SetDefault("YAGO_PAGE_SIZE", 15)
	viper.SetDefault("YAGO_CATEGORY_PER_PAGE", 21)
	viper.SetDefault("YAGO_IMAGE_CONCURRENCY", 8)
	viper.SetDefault("YAGO_THEME", "dark")
	viper.SetDefault("YAGO_LOG_PATH", "")
	viper.SetDefault("YAGO_DEBUG", false)

	// A missing .env is fine; the environment and defaults cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(*viper.ConfigParseError); ok {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	cfg := &Config{
		API: APIConfig{
			BaseURL:        viper.GetString("YAGO_API_URL"),
			RequestTimeout: viper.GetDuration("YAGO_REQUEST_TIMEOUT"),
			MaxInFlight:    viper.GetInt("YAGO_MAX_IN_FLIGHT"),
		},
		Catalog: CatalogConfig{
			PageSize:         viper.GetInt("YAGO_PAGE_SIZE"),
			CategoryPerPage:  viper.GetInt("YAGO_CATEGORY_PER_PAGE"),
			ImageConcurrency: viper.GetInt("YAGO_IMAGE_CONCURRENCY"),
		},
		UI: UIConfig{
			Theme: viper.GetString("YAGO_THEME"),
		},
		Log: LogConfig{
			Path:  viper.GetString("YAGO_LOG_PATH"),
			Debug: viper.GetBool("YAGO_DEBUG"),
		},
	}

	return cfg, nil
}
