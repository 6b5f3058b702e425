package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/ratio/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, Validate(DefaultConfig()))
}

func TestLoadFile_MissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[budget]\ncurrency = \"EUR\"\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.Budget.Currency)
	assert.Equal(t, "50-30-20", cfg.Budget.Mode)
	assert.Equal(t, 30, cfg.General.DefaultWindowDays)
	assert.Equal(t, "127.0.0.1:8788", cfg.Server.Addr)
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[general\n"), 0o600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := DefaultConfig()
	cfg.General.LedgerPath = "/tmp/ledger.json"
	cfg.Budget.Mode = string(model.Mode652015)
	cfg.Logging.Format = "json"

	require.NoError(t, SaveFile(path, cfg))
	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.DefaultWindowDays = 0
	cfg.General.DefaultView = "week"
	cfg.Budget.Mode = "70-20-10"
	cfg.Budget.Currency = "XYZ"
	cfg.Logging.Level = "loud"

	err := Validate(cfg)
	require.Error(t, err)
	for _, want := range []string{"default_window_days", "default_view", "budget.mode", "budget.currency", "logging.level"} {
		assert.Contains(t, err.Error(), want)
	}
	assert.ErrorIs(t, err, model.ErrUnknownMode)
}

func TestLedgerPathPrecedence(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv(EnvLedgerPath, "")

	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("/data", "ratio", "ledger.db"), LedgerPath(cfg))

	cfg.General.LedgerPath = "/cfg/ledger.db"
	assert.Equal(t, "/cfg/ledger.db", LedgerPath(cfg))

	t.Setenv(EnvLedgerPath, "/env/ledger.json")
	assert.Equal(t, "/env/ledger.json", LedgerPath(cfg))
}

func TestLogLevelEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	assert.Equal(t, "warn", LogLevel(DefaultConfig()))
	t.Setenv(EnvLogLevel, "debug")
	assert.Equal(t, "debug", LogLevel(DefaultConfig()))
}

func TestConfigDirXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "ratio", "config.toml"), ConfigPath())
}

func TestNewLedger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Budget.Currency = "inr"
	cfg.Budget.Mode = "bogus"

	l := NewLedger(cfg)
	assert.Equal(t, model.INR, l.Currency)
	assert.Equal(t, model.Mode503020, l.Mode)
	assert.Empty(t, l.Expenses)
}
