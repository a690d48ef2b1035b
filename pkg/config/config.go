// Package config provides configuration management for adegenet.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Inbreeding: result_type, sample_size, grid_size, true_names, refine
//   - Export: format
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Inbreeding.Seed
//   - Export.SQLitePath, Export.Postgres, Export.MetricsFile
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use ADEGENET_ prefix with underscores for nesting:
//
//	ADEGENET_INBREEDING_RESULT_TYPE=estimate
//	ADEGENET_INBREEDING_SAMPLE_SIZE=500
//	ADEGENET_DATABASE_HOST=localhost
//	ADEGENET_LOG_LEVEL=info
//	ADEGENET_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete adegenet configuration.
type Config struct {
	// Inbreeding contains settings of inbreeding estimation.
	Inbreeding InbreedingConfig `mapstructure:"inbreeding" yaml:"inbreeding"`

	// Export determines where and how results are written.
	Export ExportConfig `mapstructure:"export" yaml:"export"`

	// Database contains PostgreSQL connection settings used by the
	// PostgreSQL exporter.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of individuals processed concurrently.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// InbreedingConfig contains parameters of F estimation.
type InbreedingConfig struct {
	// ResultType is 'sample', 'function' or 'estimate'.
	ResultType string `mapstructure:"result_type" yaml:"result_type"`

	// SampleSize is the number of F values drawn per individual.
	SampleSize int `mapstructure:"sample_size" yaml:"sample_size"`

	// GridSize is the number of points of the density grid. Zero means
	// ten times the sample size.
	GridSize int `mapstructure:"grid_size" yaml:"grid_size"`

	// TrueNames keeps names of individuals in the output, otherwise
	// positional labels are used.
	TrueNames bool `mapstructure:"true_names" yaml:"true_names"`

	// Refine improves maximum-likelihood estimates beyond grid resolution.
	Refine bool `mapstructure:"refine" yaml:"refine"`

	// Seed of the random generator. Zero picks a new seed every run.
	Seed uint64 `mapstructure:"-" yaml:"-"`
}

// ExportConfig determines outputs of estimation.
type ExportConfig struct {
	// Format of text output: 'csv', 'tsv', 'compact' or 'pretty'
	// (the last two are JSON).
	Format string `mapstructure:"format" yaml:"format"`

	// SQLitePath, if set, is a SQLite file that receives results.
	SQLitePath string `mapstructure:"-" yaml:"-"`

	// Postgres enables export of results to PostgreSQL.
	Postgres bool `mapstructure:"-" yaml:"-"`

	// MetricsFile, if set, receives Prometheus metrics of the run in
	// textfile collector format.
	MetricsFile string `mapstructure:"-" yaml:"-"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of rows sent to PostgreSQL in one COPY.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Inbreeding: InbreedingConfig{
			ResultType: "sample",
			SampleSize: 200,
			TrueNames:  true,
		},
		Export: ExportConfig{
			Format: "csv",
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "adegenet",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
