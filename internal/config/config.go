// Package config loads budgetboard settings from a TOML file, an optional
// .env file and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvSheetID     = "BUDGETBOARD_SHEET_ID"
	EnvCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvDatabaseURL = "BUDGETBOARD_DATABASE_URL"
	EnvBackend     = "BUDGETBOARD_BACKEND"
	EnvLocale      = "BUDGETBOARD_LOCALE"
	EnvPayday      = "BUDGETBOARD_PAYDAY"
)

// Config holds all budgetboard configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Store      StoreConfig      `toml:"store"`
	Sheets     SheetsConfig     `toml:"sheets"`
	Server     ServerConfig     `toml:"server"`
	Export     ExportConfig     `toml:"export"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Locale      string `toml:"locale"`
	Payday      int    `toml:"payday"`
	CacheTTLSec int    `toml:"cache_ttl_sec"`
	LogLevel    string `toml:"log_level,omitempty"`
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Backend     string `toml:"backend"`
	SQLitePath  string `toml:"sqlite_path,omitempty"`
	PostgresURL string `toml:"postgres_url,omitempty"`
}

// SheetsConfig holds Google Sheets settings.
type SheetsConfig struct {
	SpreadsheetID   string `toml:"spreadsheet_id,omitempty"`
	CredentialsFile string `toml:"credentials_file,omitempty"`
	TransactionsTab string `toml:"transactions_tab,omitempty"`
}

// ServerConfig holds the web API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// ExportConfig holds spreadsheet export settings.
type ExportConfig struct {
	Dir       string `toml:"dir,omitempty"`
	GCSBucket string `toml:"gcs_bucket,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Locale:      "en",
			Payday:      25,
			CacheTTLSec: 3600,
		},
		Store: StoreConfig{
			Backend: "sqlite",
		},
		Sheets: SheetsConfig{
			TransactionsTab: "Sheet1",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8765",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetboard")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "budgetboard")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory for the local database,
// logs and exports.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetboard")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "budgetboard")
}

// Load reads the config file at Path, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config file at path, then applies a .env file from the
// working directory and environment overrides.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user or Dir
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	// A missing .env is the normal case.
	_ = godotenv.Load()

	applyEnv(&cfg)
	cfg.fillDefaults()
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvSheetID); v != "" {
		cfg.Sheets.SpreadsheetID = v
	}
	if v := os.Getenv(EnvCredentials); v != "" {
		cfg.Sheets.CredentialsFile = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		cfg.Store.PostgresURL = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv(EnvLocale); v != "" {
		cfg.General.Locale = v
	}
	if v := os.Getenv(EnvPayday); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.General.Payday = n
		}
	}
}

func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.General.Payday < 1 || c.General.Payday > 31 {
		c.General.Payday = def.General.Payday
	}
	if c.General.CacheTTLSec <= 0 {
		c.General.CacheTTLSec = def.General.CacheTTLSec
	}
	if c.General.Locale == "" {
		c.General.Locale = def.General.Locale
	}
	if c.Store.Backend == "" {
		c.Store.Backend = def.Store.Backend
	}
	if c.Store.SQLitePath == "" {
		c.Store.SQLitePath = filepath.Join(DataDir(), "budget.db")
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
	if c.Server.Addr == "" {
		c.Server.Addr = def.Server.Addr
	}
}

// CacheTTL returns the snapshot memoization window.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.General.CacheTTLSec) * time.Second
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
