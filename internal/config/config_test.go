package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv(EnvSheetID, "")
	t.Setenv(EnvBackend, "")
	t.Setenv(EnvPayday, "")
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.General.Payday != 25 || cfg.General.CacheTTLSec != 3600 {
		t.Fatalf("general = %+v", cfg.General)
	}
	if cfg.Store.Backend != "sqlite" || cfg.Store.SQLitePath == "" {
		t.Fatalf("store = %+v", cfg.Store)
	}
	if cfg.Sheets.TransactionsTab != "Sheet1" {
		t.Fatalf("TransactionsTab = %q", cfg.Sheets.TransactionsTab)
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
[general]
locale = "th"
payday = 28

[store]
backend = "sheets"

[sheets]
spreadsheet_id = "from-file"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvSheetID, "from-env")
	t.Setenv(EnvBackend, "")
	t.Setenv(EnvPayday, "40")
	t.Setenv(EnvLocale, "")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Sheets.SpreadsheetID != "from-env" {
		t.Fatalf("SpreadsheetID = %q, want from-env", cfg.Sheets.SpreadsheetID)
	}
	if cfg.General.Locale != "th" || cfg.Store.Backend != "sheets" {
		t.Fatalf("file values lost: %+v %+v", cfg.General, cfg.Store)
	}
	if cfg.General.Payday != 25 {
		t.Fatalf("out-of-range payday = %d, want default 25", cfg.General.Payday)
	}
}

func TestLoadFrom_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("malformed config accepted")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvLocale, "")
	cfg := DefaultConfig()
	cfg.General.Locale = "th"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("config file not written")
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.Locale != "th" {
		t.Fatalf("Locale = %q, want th", got.General.Locale)
	}
}
