package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"

	"turbine-repair/internal/shared/telemetry"
)

// loadEnvFiles loads KEY=VALUE pairs from the given files if they exist.
// Variables already present in the environment win.
func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		err := godotenv.Load(path)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		telemetry.Warn("config.env_file_invalid", map[string]any{"path": path, "error": err.Error()})
	}
}
