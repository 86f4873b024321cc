// Package config reads the process configuration from the environment.
//
// Variables can be set in a .env file in the working directory. Variables
// that are already set in the environment take precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config is the configuration of the backend process.
type Config struct {
	Port      string        // Port to listen on
	GinMode   string        // gin mode, "release" unless set
	LogFormat string        // "human" or "json", empty for the gin mode dependent default
	LogLevel  zerolog.Level // Minimum level for log output

	// DatabaseDSN is the sqlite database file. It is only used
	// when Postgres is false.
	DatabaseDSN string

	// Postgres is true when DB_HOST is set. PostgresDSN is then the
	// connection string built from the DB_* variables.
	Postgres    bool
	PostgresDSN string

	APIURL *url.URL // Base URL for links in responses
}

var (
	ErrLogLevel = errors.New("LOG_LEVEL is not a valid log level")
	ErrAPIURL   = errors.New("API_URL must be a valid absolute URL")
)

// Load reads the .env file if it exists and parses the configuration
// from the environment.
func Load() (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("could not read .env file: %w", err)
	}

	return FromEnv()
}

// FromEnv parses the configuration from the environment.
func FromEnv() (Config, error) {
	c := Config{
		Port:        get("PORT", "8080"),
		GinMode:     get("GIN_MODE", "release"),
		LogFormat:   os.Getenv("LOG_FORMAT"),
		DatabaseDSN: get("DB_DSN", filepath.Join("data", "ledger.db")),
	}

	level, err := zerolog.ParseLevel(get("LOG_LEVEL", "info"))
	if err != nil || level == zerolog.NoLevel {
		return Config{}, fmt.Errorf("%w, got '%s'", ErrLogLevel, os.Getenv("LOG_LEVEL"))
	}
	c.LogLevel = level

	// If DB_HOST is set, assume postgresql
	host, ok := os.LookupEnv("DB_HOST")
	if ok {
		c.Postgres = true
		c.PostgresDSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable", host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), get("DB_NAME", "ledger"), get("DB_PORT", "5432"))
	}

	apiURL, err := url.Parse(get("API_URL", fmt.Sprintf("http://localhost:%s", c.Port)))
	if err != nil || !apiURL.IsAbs() {
		return Config{}, ErrAPIURL
	}
	c.APIURL = apiURL

	return c, nil
}

// get returns the value of the environment variable or the fallback
// if it is unset or empty.
func get(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
