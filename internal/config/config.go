// Package config defines process configuration and its loading hooks.
//
// Conventions:
// - New() builds a Config holding every default.
// - Load layers a YAML file and JOBMATCH_ environment variables on top.
// - Errors returned from this package wrap ErrLoadConfig or ErrInvalidConfig.
package config

import (
	"runtime"

	"github.com/okian/jobmatch/internal/domain/scoring"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text, json or pretty.
	LogFormat string `koanf:"log_format"`

	// DBDriver selects the snapshot store driver: sqlite or pgx.
	DBDriver string `koanf:"db_driver"`

	// DBDSN is the data source name handed to the driver.
	DBDSN string `koanf:"db_dsn"`

	// DefaultLimit is used when a query does not ask for a result count.
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps the result count of any query.
	MaxLimit int `koanf:"max_limit"`

	// BatchWorkers bounds the batch recommendation worker pool.
	BatchWorkers int `koanf:"batch_workers"`

	// SeedSample loads the built-in sample dataset when the store is empty.
	SeedSample bool `koanf:"seed_sample"`

	// Scoring weights, one per factor.
	SkillWeight      float64 `koanf:"skill_weight"`
	DistanceWeight   float64 `koanf:"distance_weight"`
	SalaryWeight     float64 `koanf:"salary_weight"`
	ExperienceWeight float64 `koanf:"experience_weight"`

	// SalaryFloor and SalaryCeiling bound the salary scale mapped to [0,100].
	SalaryFloor   float64 `koanf:"salary_floor"`
	SalaryCeiling float64 `koanf:"salary_ceiling"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		DBDriver:         DriverSQLite,
		DBDSN:            "jobmatch.db",
		DefaultLimit:     5,
		MaxLimit:         100,
		BatchWorkers:     runtime.NumCPU(),
		SeedSample:       true,
		SkillWeight:      scoring.DefaultSkillWeight,
		DistanceWeight:   scoring.DefaultDistanceWeight,
		SalaryWeight:     scoring.DefaultSalaryWeight,
		ExperienceWeight: scoring.DefaultExperienceWeight,
		SalaryFloor:      scoring.DefaultSalaryFloor,
		SalaryCeiling:    scoring.DefaultSalaryCeiling,
	}
}

// ScoringOptions converts the scoring fields into scorer options.
func (c *Config) ScoringOptions() []scoring.Option {
	return []scoring.Option{
		scoring.WithWeights(c.SkillWeight, c.DistanceWeight, c.SalaryWeight, c.ExperienceWeight),
		scoring.WithSalaryBand(c.SalaryFloor, c.SalaryCeiling),
	}
}

// ClampLimit maps a requested result count onto [1, MaxLimit], using
// DefaultLimit for non-positive requests.
func (c *Config) ClampLimit(limit int) int {
	if limit <= 0 {
		limit = c.DefaultLimit
	}
	if limit > c.MaxLimit {
		limit = c.MaxLimit
	}
	return limit
}
