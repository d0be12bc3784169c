package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/untoldecay/fossiluse/internal/config"
	"github.com/untoldecay/fossiluse/internal/dataset"
)

var cleanCmd = &cobra.Command{
	Use:     "clean",
	GroupID: "pipeline",
	Short:   "Clean, classify and write the tagged dataset",
	Long: `Load the input table, fill missing values with 0, keep years in
[clean.year-min, clean.year-max), drop aggregate entities, tag every row
with its Organizations, Region and EURU labels and write the result.

The output format follows the extension: .xlsx writes a workbook, anything
else CSV. With --db the tagged rows are also saved to a SQLite database.

Examples:
  fossil clean
  fossil clean -i "Fuel production vs consumption.csv" -o fossil_use.csv
  fossil clean -o fossil_use.xlsx --db fossil.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reportOverrides(cmd, cleanFlagKeys)
		p := cleanParamsFromFlags(cmd)

		res, err := runCleanStage(cmd.Context(), p, runLog)
		if err != nil {
			return err
		}

		if jsonOutput {
			outputJSON(res)
			return nil
		}
		printCleanSummary(res)
		return nil
	},
}

var cleanFlagKeys = map[string]string{
	"input":    "input",
	"output":   "output",
	"db":       "db",
	"year-min": "clean.year-min",
	"year-max": "clean.year-max",
}

func addCleanFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Input table (.csv or .xlsx)")
	cmd.Flags().StringP("output", "o", "", "Tagged output table (.csv or .xlsx)")
	cmd.Flags().String("db", "", "Also save the tagged rows to this SQLite database")
	cmd.Flags().Int("year-min", dataset.DefaultYearMin, "First year kept (inclusive)")
	cmd.Flags().Int("year-max", dataset.DefaultYearMax, "Last year kept (exclusive)")
}

func cleanParamsFromFlags(cmd *cobra.Command) cleanParams {
	f := config.Filter()
	f.YearMin = intSetting(cmd, "year-min", "clean.year-min")
	f.YearMax = intSetting(cmd, "year-max", "clean.year-max")
	return cleanParams{
		Input:  stringSetting(cmd, "input", "input"),
		Output: stringSetting(cmd, "output", "output"),
		DBPath: stringSetting(cmd, "db", "db"),
		Filter: f,
	}
}

func printCleanSummary(res *dataset.Result) {
	s := res.Stats
	fmt.Printf("Read %d rows from %s\n", s.Read, res.Input)
	fmt.Printf("  dropped %d aggregate rows, %d rows outside the year window\n", s.DroppedEntity, s.DroppedOutside)
	fmt.Printf("Wrote %d tagged rows to %s\n", s.Kept, res.Output)
}

func init() {
	addCleanFlags(cleanCmd)
	rootCmd.AddCommand(cleanCmd)
}
