package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the console's runtime settings, read from environment
// variables with sensible defaults.
type Config struct {
	// APIBaseURL points the console at an external product API. Empty
	// means "start the embedded backend and talk to that".
	APIBaseURL string
	// AppPort is the listen address of the embedded backend.
	AppPort string
	// DatabaseDSN selects the embedded backend's storage. Empty keeps
	// everything in memory.
	DatabaseDSN string
	// RabbitMQURL enables product event publishing when set.
	RabbitMQURL string
	// HTTPTimeout bounds each request the console makes.
	HTTPTimeout time.Duration
}

// Load reads configuration from environment variables, falling back to
// defaults suitable for local development.
func Load() Config {
	viper.SetDefault("API_BASE_URL", "")
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("HTTP_TIMEOUT", "30s")
	viper.AutomaticEnv()

	return Config{
		APIBaseURL:  viper.GetString("API_BASE_URL"),
		AppPort:     viper.GetString("APP_PORT"),
		DatabaseDSN: viper.GetString("DATABASE_DSN"),
		RabbitMQURL: viper.GetString("RABBITMQ_URL"),
		HTTPTimeout: viper.GetDuration("HTTP_TIMEOUT"),
	}
}
