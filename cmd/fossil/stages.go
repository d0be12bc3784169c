package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot/vg"

	"github.com/untoldecay/fossiluse/internal/charts"
	"github.com/untoldecay/fossiluse/internal/config"
	"github.com/untoldecay/fossiluse/internal/dataset"
	"github.com/untoldecay/fossiluse/internal/storage/sqlite"
	"github.com/untoldecay/fossiluse/internal/types"
)

// cleanParams configures stage 1
type cleanParams struct {
	Input  string
	Output string
	DBPath string
	Filter dataset.Filter
	// Sinks receive the classified dataset alongside the output file.
	Sinks []dataset.Sink
}

// runCleanStage runs load -> clean -> classify -> persist, also saving to
// SQLite when DBPath is set.
func runCleanStage(ctx context.Context, p cleanParams, log runLogger) (*dataset.Result, error) {
	if p.Input == "" {
		return nil, fmt.Errorf("no input file (set --input or input in config)")
	}
	if p.Output == "" {
		return nil, fmt.Errorf("no output file (set --output or output in config)")
	}

	opts := dataset.Options{
		Input:  p.Input,
		Output: p.Output,
		Filter: p.Filter,
		Sinks:  append([]dataset.Sink(nil), p.Sinks...),
		Logger: log.slog(),
	}

	var store *sqlite.SQLiteStorage
	if p.DBPath != "" {
		var err error
		store, err = sqlite.New(ctx, p.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", p.DBPath, err)
		}
		defer func() { _ = store.Close() }()
		opts.Sinks = append(opts.Sinks, store)
	}

	res, err := dataset.Run(ctx, opts)
	if err != nil {
		return nil, err
	}

	if store != nil {
		if err := store.SetMetadata(ctx, "source", p.Input); err != nil {
			return nil, err
		}
		log.log("saved %d records to %s", res.Dataset.Len(), p.DBPath)
	}
	return res, nil
}

// loadTagged reads stage-1 output for charting, from the SQLite store when
// dbPath is set and from the tagged table otherwise. Rows that carry no
// labels (an untagged input) are classified on the fly.
func loadTagged(ctx context.Context, input, dbPath string) ([]types.Record, error) {
	if dbPath != "" {
		store, err := sqlite.New(ctx, dbPath)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", dbPath, err)
		}
		defer func() { _ = store.Close() }()

		records, err := store.LoadRecords(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dbPath, err)
		}
		return records, nil
	}

	ds, err := dataset.LoadFile(input)
	if err != nil {
		return nil, err
	}
	for i := range ds.Records {
		if ds.Records[i].Labels.IsZero() {
			dataset.Tag(ds)
			break
		}
	}
	return ds.Records, nil
}

// chartParams configures stage 2
type chartParams struct {
	Output string
	Radar  string
	Title  string
	Width  float64 // inches
	Height float64 // inches
	DPI    int
}

func chartParamsFromConfig() chartParams {
	return chartParams{
		Output: config.GetString("chart.output"),
		Radar:  config.GetString("chart.radar"),
		Title:  config.GetString("chart.title"),
		Width:  config.GetFloat64("chart.width"),
		Height: config.GetFloat64("chart.height"),
		DPI:    config.GetInt("chart.dpi"),
	}
}

func (p chartParams) panelOptions() charts.Options {
	o := charts.DefaultOptions()
	if p.Title != "" {
		o.Title = p.Title
	}
	if p.Width > 0 {
		o.Width = vg.Length(p.Width) * vg.Inch
	}
	if p.Height > 0 {
		o.Height = vg.Length(p.Height) * vg.Inch
	}
	if p.DPI > 0 {
		o.DPI = p.DPI
	}
	o.Format = charts.FormatFromPath(p.Output)
	return o
}

func (p chartParams) radarOptions() charts.Options {
	o := charts.RadarOptions()
	if p.DPI > 0 {
		o.DPI = p.DPI
	}
	o.Format = charts.FormatFromPath(p.Radar)
	return o
}

// runChartStage renders the panel (and the radar plot when requested).
func runChartStage(records []types.Record, p chartParams, log runLogger) error {
	if p.Output == "" {
		return fmt.Errorf("no chart output (set --output or chart.output in config)")
	}
	err := writeFileAtomic(p.Output, func(w io.Writer) error {
		return charts.RenderPanel(w, records, p.panelOptions())
	})
	if err != nil {
		return fmt.Errorf("rendering %s: %w", p.Output, err)
	}
	log.log("rendered infographic %s from %d records", p.Output, len(records))

	if p.Radar != "" {
		err := writeFileAtomic(p.Radar, func(w io.Writer) error {
			return charts.RenderRadar(w, records, p.radarOptions())
		})
		if err != nil {
			return fmt.Errorf("rendering %s: %w", p.Radar, err)
		}
		log.log("rendered radar plot %s", p.Radar)
	}
	return nil
}

// writeFileAtomic writes through a temp file in the target directory and
// renames it into place, so readers never see a half-written image.
func writeFileAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// coverageWarnings lists chart groups that have no rows, which render as
// empty bars or slices.
func coverageWarnings(records []types.Record) []string {
	regions := make(map[types.Region]bool)
	blocs := make(map[types.EuroBloc]bool)
	for i := range records {
		regions[records[i].Region] = true
		blocs[records[i].EuroBloc] = true
	}

	var warnings []string
	if len(records) == 0 {
		return []string{"no rows left after cleaning; charts are empty"}
	}
	for _, r := range types.Regions {
		if r != types.RegionOther && !regions[r] {
			warnings = append(warnings, fmt.Sprintf("no rows for region %s", r))
		}
	}
	for _, b := range []types.EuroBloc{types.BlocEU, types.BlocRussia, types.BlocUkraine} {
		if !blocs[b] {
			warnings = append(warnings, fmt.Sprintf("no rows for %s; its pie slice is empty", b))
		}
	}
	return warnings
}
