package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Seed, SQLitePath, Postgres,
// MetricsFile).
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.Inbreeding.ResultType
	if s != "" {
		res = append(res, OptInbreedingResultType(s))
	}
	i = c.Inbreeding.SampleSize
	if i > 0 {
		res = append(res, OptInbreedingSampleSize(i))
	}
	i = c.Inbreeding.GridSize
	if i >= 0 {
		res = append(res, OptInbreedingGridSize(i))
	}
	res = append(res,
		OptInbreedingTrueNames(c.Inbreeding.TrueNames),
		OptInbreedingRefine(c.Inbreeding.Refine),
	)

	s = c.Export.Format
	if s != "" {
		res = append(res, OptExportFormat(s))
	}

	s = c.Database.Host
	if s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	i = c.Database.Port
	if i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	s = c.Database.User
	if s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	s = c.Database.Password
	if s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	s = c.Database.Database
	if s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	s = c.Database.SSLMode
	if s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}
	i = c.Database.BatchSize
	if i > 0 {
		res = append(res, OptDatabaseBatchSize(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

var enums = func() map[string]map[string]struct{} {
	s := struct{}{}
	return map[string]map[string]struct{}{
		"Inbreeding.ResultType": {"sample": s, "function": s, "estimate": s},
		"Export.Format": {"csv": s, "tsv": s,
			"compact": s, "pretty": s},
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
}()

func isValidEnum(name, val string) bool {
	if _, ok := enums[name][val]; ok {
		return true
	}

	vals := slices.Sorted(maps.Keys(enums[name]))
	lines := make([]string, len(vals))
	for i, v := range vals {
		lines[i] = fmt.Sprintf("  * %s", v)
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
