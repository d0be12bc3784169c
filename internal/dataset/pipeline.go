package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/untoldecay/fossiluse/internal/classify"
	"github.com/untoldecay/fossiluse/internal/debug"
	"github.com/untoldecay/fossiluse/internal/types"
)

// ErrLocked is returned when another run holds the output lock.
var ErrLocked = errors.New("another run is writing the output")

// Sink receives the classified dataset in addition to the output file
// (e.g. the SQLite store).
type Sink interface {
	SaveDataset(ctx context.Context, ds *types.Dataset) error
}

// Options configures a stage-1 run
type Options struct {
	Input  string
	Output string
	Filter Filter
	Sinks  []Sink
	Logger *slog.Logger
}

// Result summarises a stage-1 run
type Result struct {
	Input    string         `json:"input"`
	Output   string         `json:"output"`
	Stats    CleanStats     `json:"stats"`
	Duration time.Duration  `json:"duration_ns"`
	Dataset  *types.Dataset `json:"-"`
}

// Tag attaches classification labels to every record of ds.
func Tag(ds *types.Dataset) *types.Dataset {
	classify.Apply(ds.Records)
	return ds
}

// LockPath is the lock file guarding output
func LockPath(output string) string {
	return filepath.Join(filepath.Dir(output), "."+filepath.Base(output)+".lock")
}

// Run executes load -> clean -> classify -> persist.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	start := time.Now()

	lock := flock.New(LockPath(opts.Output))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring output lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", opts.Output, ErrLocked)
	}
	defer func() { _ = lock.Unlock() }()

	raw, err := LoadFile(opts.Input)
	if err != nil {
		return nil, err
	}
	log.Info("loaded dataset", "input", opts.Input, "rows", raw.Len())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned, stats := Clean(raw, opts.Filter)
	log.Info("cleaned dataset",
		"kept", stats.Kept,
		"dropped_entity", stats.DroppedEntity,
		"dropped_year", stats.DroppedOutside)
	debug.Logf("clean: year window [%d, %d), %d excluded names\n", opts.Filter.YearMin, opts.Filter.YearMax, len(opts.Filter.Exclude))

	Tag(cleaned)

	if err := WriteFile(opts.Output, cleaned); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}
	log.Info("wrote dataset", "output", opts.Output, "rows", cleaned.Len())

	for _, sink := range opts.Sinks {
		if err := sink.SaveDataset(ctx, cleaned); err != nil {
			return nil, fmt.Errorf("saving dataset: %w", err)
		}
	}

	return &Result{
		Input:    opts.Input,
		Output:   opts.Output,
		Stats:    stats,
		Duration: time.Since(start),
		Dataset:  cleaned,
	}, nil
}
