package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names.
const (
	EnvPrefix     = "JOBMATCH_"
	EnvConfigPath = "JOBMATCH_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if JOBMATCH_CONFIG is set
//  3. env (prefix JOBMATCH_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(EnvConfigPath); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// JOBMATCH_DB_DRIVER -> db_driver; underscores stay to match koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: db_driver must be %q or %q, got %q", ErrInvalidConfig, DriverSQLite, DriverPostgres, c.DBDriver)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("%w: db_dsn must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json", "pretty":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.MaxLimit <= 0 {
		return fmt.Errorf("%w: max_limit must be positive", ErrInvalidConfig)
	}
	if c.DefaultLimit <= 0 || c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("%w: default_limit must be in [1, max_limit]", ErrInvalidConfig)
	}
	if c.BatchWorkers <= 0 {
		return fmt.Errorf("%w: batch_workers must be positive", ErrInvalidConfig)
	}
	if c.SkillWeight < 0 || c.DistanceWeight < 0 || c.SalaryWeight < 0 || c.ExperienceWeight < 0 {
		return fmt.Errorf("%w: scoring weights must not be negative", ErrInvalidConfig)
	}
	if c.SalaryFloor < 0 || c.SalaryCeiling <= c.SalaryFloor {
		return fmt.Errorf("%w: salary_ceiling must exceed salary_floor", ErrInvalidConfig)
	}
	return nil
}
