package cmd

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/vmikk/adegenet/pkg/config"
	"github.com/vmikk/adegenet/pkg/inbreeding"
)

// inbreedingFlags keep values of the inbreeding command flags.
type inbreedingFlags struct {
	resultType   string
	sampleSize   int
	gridSize     int
	seed         uint64
	refine       bool
	genericNames bool
	strata       string
	freqs        string
	delimiter    string
	format       string
	output       string
	sqlite       string
	postgres     bool
	metricsFile  string
	jobs         int
	quiet        bool
}

func (f *inbreedingFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.resultType, "result-type", "r", "",
		"what to compute: sample, function or estimate")
	fs.IntVarP(&f.sampleSize, "sample-size", "n", 0,
		"number of F values sampled per individual")
	fs.IntVarP(&f.gridSize, "grid-size", "m", 0,
		"number of density grid points (0 = 10 x sample size)")
	fs.Uint64Var(&f.seed, "seed", 0,
		"seed of the random generator (0 = random)")
	fs.BoolVar(&f.refine, "refine", false,
		"refine estimates beyond grid resolution")
	fs.BoolVar(&f.genericNames, "generic-names", false,
		"label individuals by position instead of names")
	fs.StringVar(&f.strata, "strata", "",
		"YAML file assigning individuals to populations")
	fs.StringVar(&f.freqs, "freqs", "",
		"YAML file with pre-computed allele frequencies")
	fs.StringVar(&f.delimiter, "delimiter", "",
		"column delimiter of genotypes (default by file extension)")
	fs.StringVarP(&f.format, "format", "f", "",
		"output format: csv, tsv, compact or pretty")
	fs.StringVarP(&f.output, "output", "o", "",
		"file for text output (default STDOUT)")
	fs.StringVar(&f.sqlite, "sqlite", "",
		"SQLite file that receives results")
	fs.BoolVar(&f.postgres, "postgres", false,
		"save results to PostgreSQL")
	fs.StringVar(&f.metricsFile, "metrics-file", "",
		"file for Prometheus metrics of the run")
	fs.IntVarP(&f.jobs, "jobs", "j", 0,
		"number of individuals processed concurrently")
	fs.BoolVarP(&f.quiet, "quiet", "q", false,
		"no progress bar and no summary")
}

// options converts flags set by the user to configuration options.
// Estimation parameters that must not be silently dropped are applied
// later by params.
func (f *inbreedingFlags) options(cmd *cobra.Command) []config.Option {
	var res []config.Option
	changed := cmd.Flags().Changed

	if changed("seed") {
		res = append(res, config.OptInbreedingSeed(f.seed))
	}
	if changed("refine") {
		res = append(res, config.OptInbreedingRefine(f.refine))
	}
	if changed("generic-names") {
		res = append(res, config.OptInbreedingTrueNames(!f.genericNames))
	}
	if changed("sqlite") {
		res = append(res, config.OptExportSQLitePath(f.sqlite))
	}
	if changed("postgres") {
		res = append(res, config.OptExportPostgres(f.postgres))
	}
	if changed("metrics-file") {
		res = append(res, config.OptExportMetricsFile(f.metricsFile))
	}
	if changed("jobs") {
		res = append(res, config.OptJobsNumber(f.jobs))
	}
	return res
}

// params builds estimation parameters from configuration and flags.
// Result type, sample size and grid size given as flags are passed as is,
// so invalid values fail validation instead of being ignored.
func (f *inbreedingFlags) params(
	cmd *cobra.Command,
	cfg *config.Config,
) inbreeding.Params {
	changed := cmd.Flags().Changed
	res := inbreeding.Params{
		ResultType: cfg.Inbreeding.ResultType,
		SampleSize: cfg.Inbreeding.SampleSize,
		GridSize:   cfg.Inbreeding.GridSize,
		TrueNames:  cfg.Inbreeding.TrueNames,
		Seed:       cfg.Inbreeding.Seed,
		Refine:     cfg.Inbreeding.Refine,
		JobsNumber: cfg.JobsNumber,
	}
	if changed("result-type") {
		res.ResultType = f.resultType
	}
	if changed("sample-size") {
		res.SampleSize = f.sampleSize
	}
	if changed("grid-size") {
		res.GridSize = f.gridSize
	}
	return res
}

// check rejects flag values that have a different meaning in
// configuration. An explicit zero grid size is an error here, in
// config.yaml it means "ten times the sample size".
func (f *inbreedingFlags) check(cmd *cobra.Command) error {
	if cmd.Flags().Changed("grid-size") && f.gridSize <= 0 {
		return inbreeding.InvalidGridSizeError(f.gridSize)
	}
	return nil
}

// formatName returns the output format from flags or configuration.
func (f *inbreedingFlags) formatName(
	cmd *cobra.Command,
	cfg *config.Config,
) string {
	if cmd.Flags().Changed("format") {
		return f.format
	}
	return cfg.Export.Format
}

// parseDelimiter converts a delimiter flag to a rune. Besides single
// characters it accepts "tab", "comma", "semicolon" and "\t".
func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "tab", `\t`, "\t":
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) || r == '"' || r == '\n' {
		return 0, fmt.Errorf("invalid delimiter %q", s)
	}
	return r, nil
}
