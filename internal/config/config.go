// Package config resolves satprep settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDB    = "SATPREP_DB"
	EnvBank  = "SATPREP_BANK"
	EnvTheme = "SATPREP_THEME"
	EnvLog   = "SATPREP_LOG"
)

// Config holds runtime settings. Empty paths mean "use the default".
type Config struct {
	// DBPath is the SQLite file for preferences and the answer log.
	// Empty resolves to the XDG data home.
	DBPath string

	// BankPath is a JSON or XLSX question bank. Empty uses the embedded bank.
	BankPath string

	// Theme names a preset applied at startup, overriding the stored choice.
	Theme string

	// LogPath receives diagnostics while the TUI owns the terminal.
	// Empty discards them.
	LogPath string
}

// DefaultConfig returns a Config with every setting at its default.
func DefaultConfig() Config {
	return Config{}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv(EnvDB); p != "" {
		cfg.DBPath = p
	}
	if p := os.Getenv(EnvBank); p != "" {
		cfg.BankPath = p
	}
	if t := os.Getenv(EnvTheme); t != "" {
		cfg.Theme = t
	}
	if p := os.Getenv(EnvLog); p != "" {
		cfg.LogPath = p
	}

	return cfg
}

// LoadDotEnv reads KEY=value pairs from the given files (".env" when none)
// into the process environment. Variables that are already set win, and
// missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads .env files and then the environment.
func Load(files ...string) (Config, error) {
	if err := LoadDotEnv(files...); err != nil {
		return DefaultConfig(), err
	}
	return ConfigFromEnv(), nil
}
