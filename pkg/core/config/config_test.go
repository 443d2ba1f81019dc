package config

import (
	"os"
	"path/filepath"
	"testing"

	"pacpro/pkg/core/pac"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pacpro.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	for _, k := range []string{"PAC_ADDR", "DATABASE_URL", "PAC_SQLITE_PATH", "PAC_STORE_DIR", "PAC_CASH_SIGN"} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr expected :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Store.FileDir != ".cache/pac/projections" {
		t.Errorf("FileDir expected default, got %s", cfg.Store.FileDir)
	}
	if cfg.Calculation.CashSign != "expense" {
		t.Errorf("CashSign expected expense, got %s", cfg.Calculation.CashSign)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
server:
  addr: ":9090"
store:
  sqlite_path: "data/pac.db"
calculation:
  cash_sign: negated
`)
	t.Setenv("PAC_ADDR", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Addr expected env override :7070, got %s", cfg.Server.Addr)
	}
	if cfg.Store.SQLitePath != "data/pac.db" {
		t.Errorf("SQLitePath expected data/pac.db, got %s", cfg.Store.SQLitePath)
	}
	if cfg.Calculation.CashSign != "negated" {
		t.Errorf("CashSign expected negated, got %s", cfg.Calculation.CashSign)
	}
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "server: [unterminated"},
		{"bad cash sign", "calculation:\n  cash_sign: sideways\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSettings_SwitchCashSign(t *testing.T) {
	s := NewSettings(Default())
	if s.CashSign() != pac.CashAsExpense {
		t.Fatalf("expected default expense, got %s", s.CashSign())
	}
	if err := s.SetCashSign("negated"); err != nil {
		t.Fatal(err)
	}
	if s.Options().CashSign != pac.CashNegated {
		t.Errorf("expected negated, got %s", s.Options().CashSign)
	}
	if err := s.SetCashSign("bogus"); err == nil {
		t.Error("expected error for unknown sign")
	}
	if s.CashSign() != pac.CashNegated {
		t.Error("failed switch must keep the previous sign")
	}
}
