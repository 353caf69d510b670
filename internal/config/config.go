/*
Package config loads application configuration from a .env file and the
environment, falling back to flag-provided defaults so the same binary
configures itself whether run bare, in Docker, or from cmd/server's flags.

LOAD ORDER:
  1. .env file (via joho/godotenv), if present
  2. Environment variables
  3. Caller-supplied defaults (typically from flag.String/-Int)
*/
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the resolved server configuration.
type Config struct {
	Port   int
	DBPath string
	Env    string
}

// Load reads .env (ignored if absent) then the environment, applying
// portDefault/dbPathDefault where no PORT/DB_PATH is set.
func Load(portDefault int, dbPathDefault string) (*Config, error) {
	_ = godotenv.Load() // absent .env is not an error; env/flags still apply

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(portDefault)))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	return &Config{
		Port:   port,
		DBPath: getEnv("DB_PATH", dbPathDefault),
		Env:    getEnv("APP_ENV", "development"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
