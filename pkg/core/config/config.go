// Package config loads service settings from config/pacpro.yaml and the
// environment. Environment variables win over the file.
package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"pacpro/pkg/core/pac"

	"gopkg.in/yaml.v2"
)

// DefaultPath is where cmd binaries look for the config file.
const DefaultPath = "config/pacpro.yaml"

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Store       StoreConfig       `yaml:"store"`
	Calculation CalculationConfig `yaml:"calculation"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StoreConfig selects the persistence backend. The first non-empty of
// DatabaseURL, SQLitePath and FileDir wins.
type StoreConfig struct {
	DatabaseURL string `yaml:"database_url"`
	SQLitePath  string `yaml:"sqlite_path"`
	FileDir     string `yaml:"file_dir"`
}

type CalculationConfig struct {
	CashSign string `yaml:"cash_sign"` // "expense" or "negated"
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Server:      ServerConfig{Addr: ":8080"},
		Store:       StoreConfig{FileDir: ".cache/pac/projections"},
		Calculation: CalculationConfig{CashSign: string(pac.CashAsExpense)},
	}
}

// Load reads path (a missing file is not an error), applies environment
// overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		fmt.Printf("[CONFIG] %s not found, using defaults\n", path)
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(&cfg)

	if _, err := pac.ParseCashSign(cfg.Calculation.CashSign); err != nil {
		return Config{}, fmt.Errorf("calculation.cash_sign: %w", err)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	override := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	override(&cfg.Server.Addr, "PAC_ADDR")
	override(&cfg.Store.DatabaseURL, "DATABASE_URL")
	override(&cfg.Store.SQLitePath, "PAC_SQLITE_PATH")
	override(&cfg.Store.FileDir, "PAC_STORE_DIR")
	override(&cfg.Calculation.CashSign, "PAC_CASH_SIGN")
}

// Settings holds the calculation options that may change at runtime.
type Settings struct {
	mu       sync.RWMutex
	cashSign pac.CashSign
}

// NewSettings seeds runtime settings from cfg. cfg must have passed Load.
func NewSettings(cfg Config) *Settings {
	sign, err := pac.ParseCashSign(cfg.Calculation.CashSign)
	if err != nil {
		sign = pac.CashAsExpense
	}
	return &Settings{cashSign: sign}
}

// CashSign returns the active Cash +/- convention.
func (s *Settings) CashSign() pac.CashSign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cashSign
}

// SetCashSign switches the Cash +/- convention.
func (s *Settings) SetCashSign(raw string) error {
	sign, err := pac.ParseCashSign(raw)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cashSign = sign
	s.mu.Unlock()
	fmt.Printf("[CONFIG] Cash +/- convention set to %s\n", sign)
	return nil
}

// Options returns calculator options for the current settings.
func (s *Settings) Options() pac.Options {
	return pac.Options{CashSign: s.CashSign()}
}
