// Package config loads the ledger configuration from an optional TOML file,
// a .env file and environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultConfigFile = "tenant-ledger.toml"
	MemoryDB          = ":memory:"
)

// Environment variables that override file settings.
const (
	EnvDB       = "TENANT_LEDGER_DB"
	EnvDataDir  = "TENANT_LEDGER_DATA_DIR"
	EnvLogLevel = "LOG_LEVEL"
	EnvJSONLogs = "TENANT_LEDGER_JSON_LOGS"
	EnvLogFile  = "TENANT_LEDGER_LOG_FILE"
)

// LateFeeConfig holds the late fee policy offered when recording payments.
type LateFeeConfig struct {
	GraceDays int     `toml:"grace_days"` // days after the 1st before rent counts as late
	Amount    float64 `toml:"amount"`     // flat fee suggested for late payments
}

// ReminderConfig controls the document expiry check.
type ReminderConfig struct {
	WindowDays int `toml:"window_days"` // documents expiring within this many days are flagged
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
	JSON  bool   `toml:"json"`
}

type WindowConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// Config holds every setting of the application.
type Config struct {
	DataDir        string `toml:"data_dir"`        // base directory for relative paths
	DBFile         string `toml:"db_file"`         // SQLite database file
	PhotoDir       string `toml:"photo_dir"`       // tenant ID photos
	DocsDir        string `toml:"docs_dir"`        // tenant documents
	CurrencySymbol string `toml:"currency_symbol"` // prefix for formatted amounts

	LateFee   LateFeeConfig  `toml:"late_fee"`
	Reminders ReminderConfig `toml:"reminders"`
	Log       LogConfig      `toml:"log"`
	Window    WindowConfig   `toml:"window"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		DataDir:        ".",
		DBFile:         "tenant_ledger.db",
		PhotoDir:       "tenant_photos",
		DocsDir:        "tenant_documents",
		CurrencySymbol: "₹",
		LateFee: LateFeeConfig{
			GraceDays: 5,
			Amount:    0,
		},
		Reminders: ReminderConfig{WindowDays: 30},
		Log:       LogConfig{Level: "info"},
		Window:    WindowConfig{Width: 1200, Height: 800},
	}
}

// LoadDotEnv loads a .env file from the working directory when present.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load reads path, or DefaultConfigFile when path is empty and that file
// exists, then applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvDB); v != "" {
		c.DBFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv(EnvJSONLogs); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvJSONLogs, v, err)
		}
		c.Log.JSON = b
	}
	return nil
}

// Validate rejects settings the application cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.DBFile == "" {
		errs = append(errs, errors.New("db_file must not be empty"))
	}
	if c.PhotoDir == "" {
		errs = append(errs, errors.New("photo_dir must not be empty"))
	}
	if c.DocsDir == "" {
		errs = append(errs, errors.New("docs_dir must not be empty"))
	}
	if c.LateFee.GraceDays < 0 {
		errs = append(errs, errors.New("late_fee.grace_days must not be negative"))
	}
	if c.LateFee.Amount < 0 {
		errs = append(errs, errors.New("late_fee.amount must not be negative"))
	}
	if c.Reminders.WindowDays < 0 {
		errs = append(errs, errors.New("reminders.window_days must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// DBPath returns the database location, resolved against DataDir.
func (c *Config) DBPath() string {
	if c.DBFile == MemoryDB {
		return MemoryDB
	}
	return c.resolve(c.DBFile)
}

func (c *Config) PhotoPath() string {
	return c.resolve(c.PhotoDir)
}

func (c *Config) DocsPath() string {
	return c.resolve(c.DocsDir)
}

// EnsureDirs creates the attachment directories and the database directory.
func (c *Config) EnsureDirs() error {
	dirs := []string{c.PhotoPath(), c.DocsPath()}
	if c.DBPath() != MemoryDB {
		dirs = append(dirs, filepath.Dir(c.DBPath()))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.DataDir == "" {
		return p
	}
	return filepath.Join(c.DataDir, p)
}
