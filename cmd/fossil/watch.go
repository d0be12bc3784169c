package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/untoldecay/fossiluse/internal/config"
	"github.com/untoldecay/fossiluse/internal/dataset"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	GroupID: "pipeline",
	Short:   "Re-run the pipeline whenever the input changes",
	Long: `Run 'fossil run' once, then again every time the input table changes.
Bursts of writes are coalesced (watch.debounce, default 500ms). When
filesystem events are unavailable the input is polled every
watch.poll-interval instead. Stop with Ctrl-C.

Examples:
  fossil watch
  fossil watch -i data.xlsx --chart-output live.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cp := cleanParamsFromFlags(cmd)
		chp := chartParamsFromFlags(cmd, "chart-output")
		return watchPipeline(cmd.Context(), cp, chp, runLog)
	},
}

// watchPipeline runs the pipeline now and after every debounced change of
// the input until ctx is canceled. Failed runs are reported and the watch
// continues; runs never overlap.
func watchPipeline(ctx context.Context, cp cleanParams, chp chartParams, log runLogger) error {
	var mu sync.Mutex
	rerun := func(reason string) {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}

		report, err := runPipeline(ctx, cp, chp, log)
		switch {
		case errors.Is(err, dataset.ErrLocked):
			log.warn("skipped run (%s): %v", reason, err)
			fmt.Printf("Skipped: %v\n", err)
		case err != nil:
			log.warn("run failed (%s): %v", reason, err)
			fmt.Printf("Run failed: %v\n", err)
		default:
			log.log("run finished (%s): %d rows kept", reason, report.Kept)
			fmt.Printf("Updated %s and %s (%d rows, %s)\n", report.Output, report.Chart, report.Kept, reason)
		}
	}

	rerun("startup")

	fw, err := NewFileWatcher(cp.Input, config.GetDuration("watch.debounce"), config.GetDuration("watch.poll-interval"), func() {
		rerun("input changed")
	})
	if err != nil {
		return err
	}
	fw.Start(ctx, log)
	defer func() { _ = fw.Close() }()

	fmt.Printf("Watching %s (Ctrl-C to stop)\n", cp.Input)
	<-ctx.Done()
	return nil
}

func init() {
	addCleanFlags(watchCmd)
	addChartFlags(watchCmd, "chart-output", "")
	rootCmd.AddCommand(watchCmd)
}
