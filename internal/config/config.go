// Package config loads service configuration from environment variables.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// App holds all runtime settings. Defaults suit local development against a
// dockerised Postgres.
type App struct {
	Port string `envconfig:"PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"roombooking"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// Load reads the configuration from the environment.
func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}
