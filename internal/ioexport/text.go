package ioexport

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/vmikk/adegenet/pkg/inbreeding"
)

// NA marks values that cannot be computed in text output.
const NA = "NA"

// ParseFormat converts a format name to gnfmt.Format.
func ParseFormat(s string) (gnfmt.Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return gnfmt.CSV, nil
	case "tsv":
		return gnfmt.TSV, nil
	case "compact", "json":
		return gnfmt.CompactJSON, nil
	case "pretty":
		return gnfmt.PrettyJSON, nil
	default:
		return gnfmt.FormatNone, FormatError(s)
	}
}

type textExporter struct {
	w      io.Writer
	name   string
	format gnfmt.Format
}

// NewText creates an exporter that writes results to w. The name is used
// in error messages.
func NewText(w io.Writer, name string, format gnfmt.Format) Exporter {
	return &textExporter{w: w, name: name, format: format}
}

// Export implements Exporter.
func (t *textExporter) Export(ctx context.Context, run *Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch t.format {
	case gnfmt.CompactJSON, gnfmt.PrettyJSON:
		return t.json(run)
	case gnfmt.TSV:
		return t.csv(run, '\t')
	default:
		return t.csv(run, ',')
	}
}

// Close implements Exporter. The writer belongs to the caller.
func (t *textExporter) Close() error {
	return nil
}

func (t *textExporter) csv(run *Run, sep rune) error {
	w := csv.NewWriter(t.w)
	w.Comma = sep

	rows := csvRows(run)
	if err := w.WriteAll(rows); err != nil {
		return WriteError(t.name, err)
	}
	return nil
}

func csvRows(run *Run) [][]string {
	res := run.Results
	header := []string{
		"Key", "Name", "Population", "Loci", "Skipped", "Degenerate",
	}

	switch res.Type {
	case inbreeding.ResultEstimate:
		rows := [][]string{append(header, "F")}
		for i := range res.Items {
			item := &res.Items[i]
			rows = append(rows, append(rowStart(item), formatFloat(item.MLE)))
		}
		return rows

	case inbreeding.ResultSample:
		n := run.Params.SampleSize
		for i := 1; i <= n; i++ {
			header = append(header, "F"+strconv.Itoa(i))
		}
		rows := [][]string{header}
		for i := range res.Items {
			item := &res.Items[i]
			row := rowStart(item)
			for j := range n {
				v := NA
				if j < len(item.Samples) {
					v = formatFloat(item.Samples[j])
				}
				row = append(row, v)
			}
			rows = append(rows, row)
		}
		return rows

	default:
		rows := [][]string{
			{"Key", "Name", "Population", "F", "LogLik", "Mass"},
		}
		for i := range res.Items {
			item := &res.Items[i]
			if item.Func == nil {
				continue
			}
			g := item.Func.Grid(res.Grid)
			for j := range g.F {
				rows = append(rows, []string{
					item.Key, item.Name, item.Population,
					formatFloat(g.F[j]),
					formatFloat(g.LogLik[j]),
					formatFloat(g.Mass[j]),
				})
			}
		}
		return rows
	}
}

func rowStart(item *inbreeding.Result) []string {
	return []string{
		item.Key,
		item.Name,
		item.Population,
		strconv.Itoa(item.Loci),
		strconv.Itoa(item.Skipped),
		strconv.FormatBool(item.Degenerate),
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NA
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// jsonRun is the JSON form of a run.
type jsonRun struct {
	ID          string           `json:"id"`
	Source      string           `json:"source,omitempty"`
	ResultType  string           `json:"resultType"`
	SampleSize  int              `json:"sampleSize"`
	GridSize    int              `json:"gridSize"`
	Seed        string           `json:"seed"`
	Refine      bool             `json:"refine"`
	Version     string           `json:"version"`
	CreatedAt   string           `json:"createdAt"`
	Individuals []jsonIndividual `json:"individuals"`
}

// jsonIndividual is the JSON form of one result. Non-finite numbers are
// written as null.
type jsonIndividual struct {
	Key        string      `json:"key"`
	Name       string      `json:"name"`
	Population string      `json:"population"`
	Loci       int         `json:"loci"`
	Skipped    int         `json:"skipped"`
	Degenerate bool        `json:"degenerate,omitempty"`
	Error      string      `json:"error,omitempty"`
	F          *float64    `json:"f,omitempty"`
	Samples    []*float64  `json:"samples,omitempty"`
	Likelihood []jsonPoint `json:"likelihood,omitempty"`
}

type jsonPoint struct {
	F      float64  `json:"f"`
	LogLik *float64 `json:"logLik"`
	Mass   float64  `json:"mass"`
}

func (t *textExporter) json(run *Run) error {
	recs := run.records()
	out := jsonRun{
		ID:          run.ID,
		Source:      run.Source,
		ResultType:  recs.run.ResultType,
		SampleSize:  recs.run.SampleSize,
		GridSize:    recs.run.GridSize,
		Seed:        recs.run.Seed,
		Refine:      recs.run.Refine,
		Version:     recs.run.Version,
		CreatedAt:   run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Individuals: make([]jsonIndividual, 0, len(run.Results.Items)),
	}

	for i := range run.Results.Items {
		item := &run.Results.Items[i]
		ind := jsonIndividual{
			Key:        item.Key,
			Name:       item.Name,
			Population: item.Population,
			Loci:       item.Loci,
			Skipped:    item.Skipped,
			Degenerate: item.Degenerate,
		}
		if item.Err != nil {
			ind.Error = item.Err.Error()
		}
		switch item.Type {
		case inbreeding.ResultEstimate:
			ind.F = finite(item.MLE)
		case inbreeding.ResultSample:
			ind.Samples = make([]*float64, len(item.Samples))
			for j, f := range item.Samples {
				ind.Samples[j] = finite(f)
			}
		case inbreeding.ResultFunction:
			if item.Func != nil {
				g := item.Func.Grid(run.Results.Grid)
				ind.Likelihood = make([]jsonPoint, len(g.F))
				for j := range g.F {
					ind.Likelihood[j] = jsonPoint{
						F:      g.F[j],
						LogLik: finite(g.LogLik[j]),
						Mass:   g.Mass[j],
					}
				}
			}
		}
		out.Individuals = append(out.Individuals, ind)
	}

	enc := gnfmt.GNjson{Pretty: t.format == gnfmt.PrettyJSON}
	bs, err := enc.Encode(out)
	if err != nil {
		return WriteError(t.name, err)
	}
	bs = append(bs, '\n')
	if _, err = t.w.Write(bs); err != nil {
		return WriteError(t.name, err)
	}
	return nil
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
