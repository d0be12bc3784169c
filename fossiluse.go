// Package fossiluse provides a minimal public API for using the fossil
// pipeline from other Go programs.
//
// It re-exports the record and label types, the classifier, the stage-1
// pipeline and the chart renderers. Everything else lives in internal
// packages and may change without notice.
package fossiluse

import (
	"context"
	"io"

	"github.com/untoldecay/fossiluse/internal/charts"
	"github.com/untoldecay/fossiluse/internal/classify"
	"github.com/untoldecay/fossiluse/internal/dataset"
	"github.com/untoldecay/fossiluse/internal/storage"
	"github.com/untoldecay/fossiluse/internal/storage/memory"
	"github.com/untoldecay/fossiluse/internal/storage/sqlite"
	"github.com/untoldecay/fossiluse/internal/types"
)

// Storage is the interface for classified dataset storage
type Storage = storage.Storage

// NewSQLiteStorage opens (creating if needed) a SQLite store at dbPath
func NewSQLiteStorage(ctx context.Context, dbPath string) (Storage, error) {
	return sqlite.New(ctx, dbPath)
}

// NewMemoryStorage returns an empty in-process store
func NewMemoryStorage() Storage {
	return memory.New("")
}

// Core types from internal/types
type (
	Record       = types.Record
	Dataset      = types.Dataset
	Fuel         = types.Fuel
	Labels       = types.Labels
	Organization = types.Organization
	Region       = types.Region
	EuroBloc     = types.EuroBloc
)

// Organization constants
const (
	OrgOPEC  = types.OrgOPEC
	OrgBRICS = types.OrgBRICS
	OrgG7    = types.OrgG7
	OrgOther = types.OrgOther
)

// Region constants, in classification priority order
const (
	RegionAfrica       = types.RegionAfrica
	RegionMiddleEast   = types.RegionMiddleEast
	RegionEastAsia     = types.RegionEastAsia
	RegionEurope       = types.RegionEurope
	RegionNorthAmerica = types.RegionNorthAmerica
	RegionSouthAmerica = types.RegionSouthAmerica
	RegionOceania      = types.RegionOceania
	RegionOther        = types.RegionOther
)

// EuroBloc constants
const (
	BlocEU      = types.BlocEU
	BlocRussia  = types.BlocRussia
	BlocUkraine = types.BlocUkraine
	BlocOther   = types.BlocOther
)

// Pipeline types from internal/dataset
type (
	Filter     = dataset.Filter
	CleanStats = dataset.CleanStats
	Options    = dataset.Options
	Result     = dataset.Result
	Sink       = dataset.Sink
)

// Sentinel errors
var (
	ErrMissingColumn  = dataset.ErrMissingColumn
	ErrLocked         = dataset.ErrLocked
	ErrNotInitialized = storage.ErrNotInitialized
)

// Classify returns the Organizations, Region and EURU labels of an entity name
func Classify(name string) Labels {
	return classify.Classify(name)
}

// DefaultFilter is the [1980, 2022) window without aggregate entities
func DefaultFilter() Filter {
	return dataset.DefaultFilter()
}

// LoadFile reads a CSV or XLSX table, filling missing numbers with 0
func LoadFile(path string) (*Dataset, error) {
	return dataset.LoadFile(path)
}

// Clean applies f to ds and reports what was dropped
func Clean(ds *Dataset, f Filter) (*Dataset, CleanStats) {
	return dataset.Clean(ds, f)
}

// Run executes load -> clean -> classify -> persist
func Run(ctx context.Context, opts Options) (*Result, error) {
	return dataset.Run(ctx, opts)
}

// ChartOptions controls rendered image size, resolution and format
type ChartOptions = charts.Options

// DefaultChartOptions is the 30x30 inch PNG poster layout
func DefaultChartOptions() ChartOptions {
	return charts.DefaultOptions()
}

// RenderPanel draws the seven-chart infographic from tagged records
func RenderPanel(w io.Writer, records []Record, o ChartOptions) error {
	return charts.RenderPanel(w, records, o)
}
