// Package ingest loads indicator series from tabular files and holds the
// environment-driven configuration for where raw and processed data live.
package ingest

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds the data-directory layout and credentials, populated from
// the environment with an optional .env file.
type Config struct {
	// RawDir is where source indicator files are read from.
	RawDir string

	// ProcessedDir is where merged outputs are written.
	ProcessedDir string

	// APIKey authenticates against indicator download APIs. Empty when
	// the pipeline only works from local files.
	APIKey string
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present; explicit environment
// variables win over it.
func LoadConfig(envFiles ...string) *Config {
	// Missing .env is fine; the environment alone is a valid source.
	_ = godotenv.Load(envFiles...)

	return &Config{
		RawDir:       getenvDefault("PANELKIT_RAW_DIR", filepath.Join("data", "raw")),
		ProcessedDir: getenvDefault("PANELKIT_PROCESSED_DIR", filepath.Join("data", "processed")),
		APIKey:       os.Getenv("PANELKIT_API_KEY"),
	}
}

// EnsureDirs creates the raw and processed directories if needed.
func (c *Config) EnsureDirs() error {
	if err := os.MkdirAll(c.RawDir, 0o755); err != nil {
		return err
	}
	return os.MkdirAll(c.ProcessedDir, 0o755)
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
