// Package config reads the fleetfin.yaml configuration plus the FLEETFIN_*
// environment overrides.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level fleetfin.yaml configuration.
type Config struct {
	Business  BusinessConfig  `yaml:"business"`
	Fiscal    FiscalConfig    `yaml:"fiscal"`
	Financing FinancingConfig `yaml:"financing"`
	Reporting ReportingConfig `yaml:"reporting"`
	Git       GitConfig       `yaml:"git"`
}

// BusinessConfig identifies the fleet operator.
type BusinessConfig struct {
	Name      string `yaml:"name"`
	FleetCode string `yaml:"fleet_code,omitempty"`
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// FinancingConfig holds vehicle-financing defaults.
type FinancingConfig struct {
	TermMonths           int     `yaml:"term_months"`
	DefaultAnnualRatePct float64 `yaml:"default_annual_rate_pct"`
}

// ReportingConfig holds report defaults.
type ReportingConfig struct {
	DefaultTopN        int `yaml:"default_top_n"`
	DepreciationMonths int `yaml:"depreciation_months"`
}

// GitConfig controls auto-commit of the books directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Env holds environment overrides, read with the FLEETFIN_ prefix.
type Env struct {
	DataDir  string `envconfig:"DATA_DIR"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads a fleetfin.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// FromEnv reads FLEETFIN_* environment overrides.
func FromEnv() (Env, error) {
	var env Env
	if err := envconfig.Process("fleetfin", &env); err != nil {
		return Env{}, fmt.Errorf("reading environment: %w", err)
	}
	return env, nil
}

// Default returns a Config with sensible defaults for a new books directory.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name: businessName,
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Financing: FinancingConfig{
			TermMonths:           60,
			DefaultAnnualRatePct: 4.5,
		},
		Reporting: ReportingConfig{
			DefaultTopN:        10,
			DepreciationMonths: 60,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "FleetFin",
			AuthorEmail: "books@fleetfin.dev",
		},
	}
}
