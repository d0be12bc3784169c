package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:     "chart",
	GroupID: "pipeline",
	Short:   "Render the infographic panel from a tagged dataset",
	Long: `Render the seven-chart infographic from the output of 'fossil clean':
mean fuel use by region, coal trends for six European countries, oil
production and consumption by bloc, and the EU/Russia/Ukraine gas split.

The input defaults to the configured clean output. With --db the rows are
read from the SQLite database instead. --radar additionally renders the EU
consumption radar plot. The image format follows the file extension
(png, jpg, svg, pdf, eps, tiff).

Examples:
  fossil chart
  fossil chart -o poster.svg --width 20 --height 20
  fossil chart --db fossil.db --radar radar.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reportOverrides(cmd, chartFlagKeys("output"))

		input := stringSetting(cmd, "input", "output")
		dbPath, _ := cmd.Flags().GetString("db")
		records, err := loadTagged(cmd.Context(), input, dbPath)
		if err != nil {
			return err
		}

		p := chartParamsFromFlags(cmd, "output")
		if err := runChartStage(records, p, runLog); err != nil {
			return err
		}

		warnings := coverageWarnings(records)
		for _, w := range warnings {
			runLog.warn("%s", w)
		}

		if jsonOutput {
			outputJSON(map[string]interface{}{
				"records":  len(records),
				"output":   p.Output,
				"radar":    p.Radar,
				"warnings": warnings,
			})
			return nil
		}
		fmt.Printf("Rendered %s from %d records\n", p.Output, len(records))
		if p.Radar != "" {
			fmt.Printf("Rendered %s\n", p.Radar)
		}
		return nil
	},
}

func chartFlagKeys(outputFlag string) map[string]string {
	return map[string]string{
		outputFlag: "chart.output",
		"radar":    "chart.radar",
		"title":    "chart.title",
		"width":    "chart.width",
		"height":   "chart.height",
		"dpi":      "chart.dpi",
	}
}

// addChartFlags registers the rendering flags. The output flag name is a
// parameter because run already uses --output for the tagged table.
func addChartFlags(cmd *cobra.Command, outputFlag, shorthand string) {
	cmd.Flags().StringP(outputFlag, shorthand, "", "Infographic image path (default from chart.output)")
	cmd.Flags().String("radar", "", "Also render the EU consumption radar plot to this path")
	cmd.Flags().String("title", "", "Figure title")
	cmd.Flags().Float64("width", 0, "Image width in inches")
	cmd.Flags().Float64("height", 0, "Image height in inches")
	cmd.Flags().Int("dpi", 0, "Raster resolution in dots per inch")
}

func chartParamsFromFlags(cmd *cobra.Command, outputFlag string) chartParams {
	return chartParams{
		Output: stringSetting(cmd, outputFlag, "chart.output"),
		Radar:  stringSetting(cmd, "radar", "chart.radar"),
		Title:  stringSetting(cmd, "title", "chart.title"),
		Width:  floatSetting(cmd, "width", "chart.width"),
		Height: floatSetting(cmd, "height", "chart.height"),
		DPI:    intSetting(cmd, "dpi", "chart.dpi"),
	}
}

func init() {
	chartCmd.Flags().StringP("input", "i", "", "Tagged table to chart (default from output)")
	chartCmd.Flags().String("db", "", "Read tagged rows from this SQLite database instead of a file")
	addChartFlags(chartCmd, "output", "o")
	rootCmd.AddCommand(chartCmd)
}
