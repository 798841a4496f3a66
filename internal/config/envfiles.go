package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnvFiles loads environment variables from .env/.env.local before any
// environment query (KOTLIN_HOME and friends). Existing process variables
// are never overwritten; missing files are not an error.
func LoadEnvFiles() {
	for _, path := range []string{".env", ".env.local"} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load env file", "file", path, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "file", path)
	}
}
