package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptInbreedingResultType sets what is computed for every individual.
// Valid values: "sample", "function", "estimate".
func OptInbreedingResultType(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Inbreeding.ResultType", s) {
			c.Inbreeding.ResultType = s
		}
	}
}

// OptInbreedingSampleSize sets the number of F values drawn per individual.
func OptInbreedingSampleSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Sample Size", i) {
			c.Inbreeding.SampleSize = i
		}
	}
}

// OptInbreedingGridSize sets the number of density grid points.
// Zero restores the default of ten points per sampled value.
func OptInbreedingGridSize(i int) Option {
	return func(c *Config) {
		if i == 0 || isValidInt("Grid Size", i) {
			c.Inbreeding.GridSize = i
		}
	}
}

// OptInbreedingTrueNames sets whether names of individuals are kept in
// the output.
func OptInbreedingTrueNames(b bool) Option {
	return func(c *Config) {
		c.Inbreeding.TrueNames = b
	}
}

// OptInbreedingRefine sets whether maximum-likelihood estimates are refined
// beyond the grid resolution.
func OptInbreedingRefine(b bool) Option {
	return func(c *Config) {
		c.Inbreeding.Refine = b
	}
}

// OptInbreedingSeed sets the seed of the random generator.
// Runtime-only field - not in ToOptions().
func OptInbreedingSeed(i uint64) Option {
	return func(c *Config) {
		c.Inbreeding.Seed = i
	}
}

// OptExportFormat sets the format of text output.
// Valid values: "csv", "tsv", "compact", "pretty".
func OptExportFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Export.Format", s) {
			c.Export.Format = s
		}
	}
}

// OptExportSQLitePath sets the SQLite file that receives results.
// Runtime-only field - not in ToOptions().
func OptExportSQLitePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("SQLite Path", s) {
			c.Export.SQLitePath = s
		}
	}
}

// OptExportPostgres enables export of results to PostgreSQL.
// Runtime-only field - not in ToOptions().
func OptExportPostgres(b bool) Option {
	return func(c *Config) {
		c.Export.Postgres = b
	}
}

// OptExportMetricsFile sets the file for Prometheus metrics.
// Runtime-only field - not in ToOptions().
func OptExportMetricsFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Metrics File", s) {
			c.Export.MetricsFile = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of rows copied to PostgreSQL at once.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of individuals processed concurrently.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
