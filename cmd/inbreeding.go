/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
	"github.com/vmikk/adegenet/internal/ioexport"
	"github.com/vmikk/adegenet/internal/iogeno"
	"github.com/vmikk/adegenet/internal/iometrics"
	"github.com/vmikk/adegenet/internal/ioprogress"
	"github.com/vmikk/adegenet/pkg/genotype"
	"github.com/vmikk/adegenet/pkg/inbreeding"
)

// getInbreedingCmd returns the inbreeding command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getInbreedingCmd() *cobra.Command {
	var flags inbreedingFlags

	inbreedingCmd := &cobra.Command{
		Use:   "inbreeding <genotypes file>",
		Short: "Estimate inbreeding coefficients of individuals",
		Long: `Estimate the inbreeding coefficient F of every individual.

The genotypes file is a CSV or TSV table. The first column has names
of individuals, an optional 'pop' column assigns them to populations,
the rest are loci. A call is a list of alleles separated by '/' or
'|', for example 'A/B' or '120/124/124/130'. Empty cells, 'NA', '0',
'-' and '.' are missing data.

Allele frequencies are computed for every population from the data,
unless a frequency file is given with --freqs. Populations can be
assigned with --strata, individuals not listed there go to the
'unassigned' population.

Result types:
  sample    values of F drawn from the likelihood on a grid (default)
  function  the likelihood of F tabulated at grid points
  estimate  the maximum-likelihood estimate of F

Examples:
  # 200 sampled values of F for every individual
  adegenet inbreeding genotypes.csv

  # Maximum-likelihood estimates as pretty JSON
  adegenet inbreeding -r estimate -f pretty genotypes.csv

  # Reproducible samples saved to SQLite
  adegenet inbreeding -n 500 --seed 42 --sqlite results.sqlite data.tsv

  # Populations from a strata file, results to PostgreSQL
  adegenet inbreeding --strata pops.yaml --postgres data.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runInbreeding(cmd, &flags, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	flags.register(inbreedingCmd)

	return inbreedingCmd
}

func runInbreeding(
	cmd *cobra.Command,
	flags *inbreedingFlags,
	path string,
) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if opts := flags.options(cmd); len(opts) > 0 {
		cfg.Update(opts)
	}

	// configuration errors are reported before any input is read
	if err := flags.check(cmd); err != nil {
		return err
	}
	p := flags.params(cmd, cfg)
	if err := p.Validate(); err != nil {
		return err
	}
	format, err := ioexport.ParseFormat(flags.formatName(cmd, cfg))
	if err != nil {
		return err
	}

	ds, err := readInput(cmd, flags, path, &p)
	if err != nil {
		return err
	}

	var observers inbreeding.Observers
	var metrics *iometrics.Metrics
	if cfg.Export.MetricsFile != "" {
		if metrics, err = iometrics.New(); err != nil {
			return err
		}
		observers = append(observers, metrics)
	}
	var bar *ioprogress.Bar
	if !flags.quiet {
		bar = ioprogress.New(len(ds.Individuals), "Individuals: ", cmd.ErrOrStderr())
		observers = append(observers, bar)
	}
	if len(observers) > 0 {
		p.Observer = observers
	}

	engine, err := inbreeding.New(p)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := engine.Run(ctx, ds)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			gn.Warn("<warn>Estimation cancelled, results are not saved</warn>")
		}
		return err
	}

	run := ioexport.NewRun(path, p, res)
	if err = export(ctx, cmd, flags, format, run); err != nil {
		return err
	}

	if metrics != nil {
		if err = metrics.WriteTextfile(cfg.Export.MetricsFile); err != nil {
			return err
		}
	}

	if !flags.quiet {
		summary(res, time.Since(start))
	}
	return nil
}

// readInput reads genotypes together with optional strata and
// frequencies and sets them to estimation parameters.
func readInput(
	cmd *cobra.Command,
	flags *inbreedingFlags,
	path string,
	p *inbreeding.Params,
) (*genotype.Dataset, error) {
	delim := iogeno.DetectDelimiter(path)
	if cmd.Flags().Changed("delimiter") {
		var err error
		if delim, err = parseDelimiter(flags.delimiter); err != nil {
			return nil, iogeno.HeaderError(path, err.Error())
		}
	}

	ds, err := iogeno.ReadGenotypes(path, delim)
	if err != nil {
		return nil, err
	}
	slog.Info("Genotypes loaded",
		"path", path,
		"individuals", humanize.Comma(int64(len(ds.Individuals))),
		"loci", len(ds.Loci),
	)

	if flags.strata != "" {
		grouper, err := iogeno.ReadStrata(flags.strata)
		if err != nil {
			return nil, err
		}
		p.Grouper = grouper
	}

	if flags.freqs != "" {
		tables, err := iogeno.ReadFrequencies(flags.freqs, ds.Loci)
		if err != nil {
			return nil, err
		}
		p.Frequencies = tables
	}
	return ds, nil
}

// export writes results to every configured destination.
func export(
	ctx context.Context,
	cmd *cobra.Command,
	flags *inbreedingFlags,
	format gnfmt.Format,
	run *ioexport.Run,
) error {
	var w io.Writer = cmd.OutOrStdout()
	name := "STDOUT"
	if flags.output != "" {
		f, err := os.Create(flags.output)
		if err != nil {
			return ioexport.OpenError(flags.output, err)
		}
		defer f.Close()
		w, name = f, flags.output
	}

	exporters := []ioexport.Exporter{ioexport.NewText(w, name, format)}

	if cfg.Export.SQLitePath != "" {
		exp, err := ioexport.NewSQLite(ctx, cfg.Export.SQLitePath)
		if err != nil {
			return err
		}
		exporters = append(exporters, exp)
	}

	if cfg.Export.Postgres {
		exp, err := ioexport.NewPostgres(ctx, &cfg.Database)
		if err != nil {
			closeAll(exporters)
			return err
		}
		exporters = append(exporters, exp)
	}
	defer closeAll(exporters)

	for _, exp := range exporters {
		if err := exp.Export(ctx, run); err != nil {
			return err
		}
	}
	return nil
}

func closeAll(exporters []ioexport.Exporter) {
	for _, exp := range exporters {
		if err := exp.Close(); err != nil {
			slog.Error("Cannot close exporter", "error", err)
		}
	}
}

func summary(res *inbreeding.Results, dur time.Duration) {
	gn.Info(
		"Processed <em>%s</em> individuals in %s",
		humanize.Comma(int64(len(res.Items))),
		gnfmt.TimeString(dur.Seconds()),
	)
	if deg := res.Degenerate(); len(deg) > 0 {
		gn.Warn(
			"<warn>%d individuals have zero likelihood for every F</warn>",
			len(deg),
		)
	}
	if cfg.Export.SQLitePath != "" {
		gn.Info("Results saved to <em>%s</em>", cfg.Export.SQLitePath)
	}
	if cfg.Export.Postgres {
		gn.Info("Results saved to PostgreSQL database <em>%s</em>",
			cfg.Database.Database)
	}
}
