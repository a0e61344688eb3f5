package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDB, EnvBank, EnvTheme, EnvLog} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, DefaultConfig(), ConfigFromEnv())
}

func TestConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDB, "/tmp/sat.db")
	t.Setenv(EnvBank, "bank.xlsx")
	t.Setenv(EnvTheme, "Nord")
	t.Setenv(EnvLog, "debug.log")

	assert.Equal(t, Config{
		DBPath:   "/tmp/sat.db",
		BankPath: "bank.xlsx",
		Theme:    "Nord",
		LogPath:  "debug.log",
	}, ConfigFromEnv())
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvTheme, "Dracula")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SATPREP_BANK=questions.json\nSATPREP_THEME=Nord\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "questions.json", cfg.BankPath)
	assert.Equal(t, "Dracula", cfg.Theme, "existing variables are not overridden")
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadDotEnvMalformed(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SATPREP_BANK='unterminated\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
