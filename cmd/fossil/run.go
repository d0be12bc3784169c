package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/untoldecay/fossiluse/internal/dataset"
	"github.com/untoldecay/fossiluse/internal/storage/memory"
	"github.com/untoldecay/fossiluse/internal/ui"
)

var runCmd = &cobra.Command{
	Use:     "run",
	GroupID: "pipeline",
	Short:   "Clean and classify, then render the infographic",
	Long: `Run both stages: 'fossil clean' followed by 'fossil chart' on the rows it
just tagged.

Examples:
  fossil run
  fossil run --chart-output poster.png --radar radar.png --db fossil.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		keys := chartFlagKeys("chart-output")
		for k, v := range cleanFlagKeys {
			keys[k] = v
		}
		reportOverrides(cmd, keys)

		report, err := runPipeline(cmd.Context(), cleanParamsFromFlags(cmd), chartParamsFromFlags(cmd, "chart-output"), runLog)
		if err != nil {
			return err
		}

		if jsonOutput {
			outputJSON(report)
			return nil
		}
		fmt.Println(ui.RenderRunReport(report, min(ui.GetWidth(), 100)))
		return nil
	},
}

// runPipeline runs stage 1 then renders stage 2 from the records stage 1
// saved into an in-memory store.
func runPipeline(ctx context.Context, cp cleanParams, chp chartParams, log runLogger) (ui.RunReport, error) {
	start := time.Now()

	mem := memory.New(cp.Output)
	defer func() { _ = mem.Close() }()
	cp.Sinks = append(cp.Sinks, mem)

	res, err := runCleanStage(ctx, cp, log)
	if err != nil {
		return ui.RunReport{}, err
	}
	if err := ctx.Err(); err != nil {
		return ui.RunReport{}, err
	}

	records, err := mem.LoadRecords(ctx)
	if err != nil {
		return ui.RunReport{}, fmt.Errorf("loading tagged records: %w", err)
	}
	if err := runChartStage(records, chp, log); err != nil {
		return ui.RunReport{}, err
	}

	report := newRunReport(res, cp.DBPath, chp)
	report.Warnings = coverageWarnings(records)
	for _, w := range report.Warnings {
		log.warn("%s", w)
	}
	report.Duration = time.Since(start)
	return report, nil
}

func newRunReport(res *dataset.Result, dbPath string, chp chartParams) ui.RunReport {
	return ui.RunReport{
		Input:          res.Input,
		Output:         res.Output,
		DBPath:         dbPath,
		Chart:          chp.Output,
		Radar:          chp.Radar,
		Read:           res.Stats.Read,
		Kept:           res.Stats.Kept,
		DroppedEntity:  res.Stats.DroppedEntity,
		DroppedOutside: res.Stats.DroppedOutside,
	}
}

func init() {
	addCleanFlags(runCmd)
	addChartFlags(runCmd, "chart-output", "")
	rootCmd.AddCommand(runCmd)
}
