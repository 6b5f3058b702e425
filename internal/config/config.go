package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/ratio/internal/model"

	"github.com/BurntSushi/toml"
)

// Environment variables that override the config file.
const (
	EnvLedgerPath = "RATIO_LEDGER_PATH"
	EnvLogLevel   = "RATIO_LOG_LEVEL"
)

// Dashboard views selectable as the default.
const (
	ViewMonth = "month"
	ViewAll   = "all"
)

// Config holds all ratio configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Budget     BudgetConfig     `toml:"budget"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
	Logging    LoggingConfig    `toml:"logging"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	LedgerPath        string `toml:"ledger_path,omitempty"`
	DefaultWindowDays int    `toml:"default_window_days"`
	DefaultView       string `toml:"default_view"`
}

// BudgetConfig holds the mode and currency given to new or reset ledgers.
type BudgetConfig struct {
	Mode     string `toml:"mode"`
	Currency string `toml:"currency"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds daemon settings.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	IntervalSec  int    `toml:"interval_sec"`
	EventsBuffer int    `toml:"events_buffer"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	OutputFile string `toml:"output_file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultWindowDays: 30,
			DefaultView:       ViewMonth,
		},
		Budget: BudgetConfig{
			Mode:     string(model.Mode503020),
			Currency: string(model.USD),
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8788",
			IntervalSec:  10,
			EventsBuffer: 200,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ratio")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ratio")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "ratio")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "ratio")
}

// DefaultLedgerPath is where the ledger lives when nothing else is configured.
func DefaultLedgerPath() string {
	return filepath.Join(DataDir(), "ledger.db")
}

// LedgerPath resolves the ledger location: env var, then config, then default.
func LedgerPath(cfg Config) string {
	if p := os.Getenv(EnvLedgerPath); p != "" {
		return p
	}
	if cfg.General.LedgerPath != "" {
		return cfg.General.LedgerPath
	}
	return DefaultLedgerPath()
}

// LogLevel returns the configured log level, overridden by the env var.
func LogLevel(cfg Config) string {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		return lvl
	}
	return cfg.Logging.Level
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads the config at path. Keys missing from the file keep their
// defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's own config file
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(ConfigPath(), cfg)
}

// SaveFile writes the config to path, creating its directory.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is the user's own config file
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"console": true, "json": true}
)

// Validate reports every invalid setting, joined into one error.
func Validate(cfg Config) error {
	var errs []error
	if cfg.General.DefaultWindowDays <= 0 {
		errs = append(errs, fmt.Errorf("general.default_window_days must be positive, got %d", cfg.General.DefaultWindowDays))
	}
	if v := cfg.General.DefaultView; v != ViewMonth && v != ViewAll {
		errs = append(errs, fmt.Errorf("general.default_view must be %q or %q, got %q", ViewMonth, ViewAll, v))
	}
	if _, err := model.ParseMode(cfg.Budget.Mode); err != nil {
		errs = append(errs, fmt.Errorf("budget.mode %q: %w", cfg.Budget.Mode, err))
	}
	if _, err := model.ParseCurrency(cfg.Budget.Currency); err != nil {
		errs = append(errs, fmt.Errorf("budget.currency %q: %w", cfg.Budget.Currency, err))
	}
	if cfg.Server.IntervalSec <= 0 {
		errs = append(errs, fmt.Errorf("server.interval_sec must be positive, got %d", cfg.Server.IntervalSec))
	}
	if cfg.Server.EventsBuffer <= 0 {
		errs = append(errs, fmt.Errorf("server.events_buffer must be positive, got %d", cfg.Server.EventsBuffer))
	}
	if !validLevels[cfg.Logging.Level] {
		errs = append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", cfg.Logging.Level))
	}
	if !validFormats[cfg.Logging.Format] {
		errs = append(errs, fmt.Errorf("logging.format %q is not console or json", cfg.Logging.Format))
	}
	return errors.Join(errs...)
}

// NewLedger returns an empty ledger carrying the configured mode and
// currency. Invalid settings fall back to the ledger defaults.
func NewLedger(cfg Config) model.Ledger {
	l := model.DefaultLedger()
	if m, err := model.ParseMode(cfg.Budget.Mode); err == nil {
		l = l.WithMode(m)
	}
	if c, err := model.ParseCurrency(cfg.Budget.Currency); err == nil {
		l = l.WithCurrency(c)
	}
	return l
}
