// Package schema provides database models for exported inbreeding results.
//
// Models carry two sets of tags. GORM tags drive AutoMigrate on
// PostgreSQL, `db` and `ddl` tags give column names and SQLite column
// definitions.
package schema

import (
	"database/sql"
	"time"
)

// DDLGenerator defines how Go models generate SQLite DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the table name for this model.
	TableName() string
}

// Run describes one estimation call.
type Run struct {
	// ID is a random UUID of the run.
	ID string `gorm:"type:varchar(36);primaryKey" db:"id" ddl:"TEXT PRIMARY KEY"`

	// Source is the input file the genotypes came from.
	Source string `gorm:"type:text;not null;default:''" db:"source" ddl:"TEXT NOT NULL DEFAULT ''"`

	// ResultType is 'sample', 'function' or 'estimate'.
	ResultType string `gorm:"type:varchar(16);not null" db:"result_type" ddl:"TEXT NOT NULL"`

	// SampleSize is the number of values drawn per individual.
	SampleSize int `gorm:"not null" db:"sample_size" ddl:"INTEGER NOT NULL"`

	// GridSize is the number of points of the density grid.
	GridSize int `gorm:"not null" db:"grid_size" ddl:"INTEGER NOT NULL"`

	// Seed of the random generator in decimal form. It does not fit
	// signed 64-bit columns.
	Seed string `gorm:"type:varchar(20);not null" db:"seed" ddl:"TEXT NOT NULL"`

	// Refine is true if estimates were refined beyond grid resolution.
	Refine bool `gorm:"not null" db:"refine" ddl:"INTEGER NOT NULL"`

	// Individuals is the number of individuals in the run.
	Individuals int `gorm:"not null" db:"individuals" ddl:"INTEGER NOT NULL"`

	// Degenerate is the number of individuals with zero likelihood.
	Degenerate int `gorm:"not null" db:"degenerate" ddl:"INTEGER NOT NULL"`

	// Version of adegenet that produced the run.
	Version string `gorm:"type:varchar(50)" db:"version" ddl:"TEXT"`

	// CreatedAt is the time of the run.
	CreatedAt time.Time `gorm:"not null" db:"created_at" ddl:"TIMESTAMP NOT NULL"`
}

// Estimate is the result for one individual.
type Estimate struct {
	// ID is UUID v5 of run ID and key of the individual.
	ID string `gorm:"type:varchar(36);primaryKey" db:"id" ddl:"TEXT PRIMARY KEY"`

	// RunID refers to the run.
	RunID string `gorm:"type:varchar(36);not null;index" db:"run_id" ddl:"TEXT NOT NULL REFERENCES runs(id)"`

	// Idx is the position of the individual in the input.
	Idx int `gorm:"not null" db:"idx" ddl:"INTEGER NOT NULL"`

	// Key identifies the individual in the output.
	Key string `gorm:"column:ind_key;type:varchar(255);not null" db:"ind_key" ddl:"TEXT NOT NULL"`

	// Name of the individual in the input.
	Name string `gorm:"type:varchar(255);not null" db:"name" ddl:"TEXT NOT NULL"`

	// Population whose frequencies were used.
	Population string `gorm:"type:varchar(255);not null;index" db:"population" ddl:"TEXT NOT NULL"`

	// Loci is the number of loci in the likelihood.
	Loci int `gorm:"not null" db:"loci" ddl:"INTEGER NOT NULL"`

	// Skipped is the number of missing or undefined loci.
	Skipped int `gorm:"not null" db:"skipped" ddl:"INTEGER NOT NULL"`

	// Degenerate is true if the likelihood is zero for every F.
	Degenerate bool `gorm:"not null" db:"degenerate" ddl:"INTEGER NOT NULL"`

	// MLE is the maximum-likelihood estimate of F, NULL unless estimates
	// were requested.
	MLE sql.NullFloat64 `gorm:"type:double precision" db:"mle" ddl:"REAL"`

	// SampleMean is the mean of sampled values, NULL unless samples
	// were requested.
	SampleMean sql.NullFloat64 `gorm:"type:double precision" db:"sample_mean" ddl:"REAL"`

	// Error explains a degenerate result.
	Error string `gorm:"type:text;not null;default:''" db:"error" ddl:"TEXT NOT NULL DEFAULT ''"`
}

// Sample is one value of F drawn for an individual.
type Sample struct {
	// EstimateID refers to the individual's estimate.
	EstimateID string `gorm:"type:varchar(36);primaryKey" db:"estimate_id" ddl:"TEXT NOT NULL REFERENCES estimates(id)"`

	// Draw is the position of the value in the sample.
	Draw int `gorm:"primaryKey;autoIncrement:false" db:"draw" ddl:"INTEGER NOT NULL"`

	// RunID refers to the run.
	RunID string `gorm:"type:varchar(36);not null;index" db:"run_id" ddl:"TEXT NOT NULL"`

	// F is the sampled value.
	F float64 `gorm:"type:double precision;not null" db:"f" ddl:"REAL NOT NULL"`
}

// LikelihoodPoint is the likelihood of an individual at one grid point.
type LikelihoodPoint struct {
	// EstimateID refers to the individual's estimate.
	EstimateID string `gorm:"type:varchar(36);primaryKey" db:"estimate_id" ddl:"TEXT NOT NULL REFERENCES estimates(id)"`

	// Point is the index of the grid point.
	Point int `gorm:"primaryKey;autoIncrement:false" db:"point" ddl:"INTEGER NOT NULL"`

	// RunID refers to the run.
	RunID string `gorm:"type:varchar(36);not null;index" db:"run_id" ddl:"TEXT NOT NULL"`

	// F is the value of the grid point.
	F float64 `gorm:"type:double precision;not null" db:"f" ddl:"REAL NOT NULL"`

	// LogLik is the log-likelihood at F, NULL where the likelihood is zero.
	LogLik sql.NullFloat64 `gorm:"type:double precision" db:"log_lik" ddl:"REAL"`

	// Mass is the normalized probability mass at F.
	Mass float64 `gorm:"type:double precision;not null" db:"mass" ddl:"REAL NOT NULL"`
}
