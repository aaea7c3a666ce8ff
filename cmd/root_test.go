package cmd

import (
	"testing"
	"time"

	"github.com/theirongolddev/budgetboard/internal/config"
	"github.com/theirongolddev/budgetboard/internal/store"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1500", "1500", true},
		{"1,234.50", "1234.5", true},
		{"฿99", "99", true},
		{" 12 ", "12", true},
		{"abc", "", false},
	}
	for _, tc := range cases {
		got, err := parseMoney(tc.in)
		if (err == nil) != tc.ok {
			t.Fatalf("parseMoney(%q) err = %v, want ok=%v", tc.in, err, tc.ok)
		}
		if tc.ok && got.String() != tc.want {
			t.Fatalf("parseMoney(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseDayAndMonth(t *testing.T) {
	d, err := parseDay("")
	if err != nil || !d.IsZero() {
		t.Fatalf("parseDay(\"\") = %v, %v; want zero time", d, err)
	}
	d, err = parseDay("2025-06-30")
	if err != nil || !d.Equal(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("parseDay = %v, %v", d, err)
	}
	if _, err := parseDay("30/06/2025"); err == nil {
		t.Fatal("parseDay accepted 30/06/2025")
	}

	m, err := parseMonth("2025-07")
	if err != nil || m.Month() != time.July || m.Day() != 1 {
		t.Fatalf("parseMonth = %v, %v", m, err)
	}
	if _, err := parseMonth("July"); err == nil {
		t.Fatal("parseMonth accepted July")
	}
}

func TestStoreOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Store.Backend = store.BackendSheets
	cfg.Sheets.SpreadsheetID = "sheet-1"
	cfg.Sheets.TransactionsTab = "Ledger"

	opts := storeOptions(cfg)
	if opts.Backend != store.BackendSheets || opts.SpreadsheetID != "sheet-1" {
		t.Fatalf("opts = %+v", opts)
	}
	if got := opts.TabNames[store.Transactions.Name]; got != "Ledger" {
		t.Fatalf("transactions tab = %q, want Ledger", got)
	}
}

func TestMaskSecret(t *testing.T) {
	if got := maskSecret("postgres://user:pw@localhost:5432/budget"); got != "postgres://u...dget" {
		t.Fatalf("maskSecret = %q", got)
	}
	if got := maskSecret(""); got != "not set" {
		t.Fatalf("maskSecret(\"\") = %q", got)
	}
}
