package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/untoldecay/fossiluse/internal/stats"
	"github.com/untoldecay/fossiluse/internal/ui"
)

var describeCmd = &cobra.Command{
	Use:     "describe",
	GroupID: "inspect",
	Short:   "Print summary statistics of a tagged dataset",
	Long: `Print the record count and count, mean, std, min, quartiles and max of
Year and the six fuel columns. Quartiles are linearly interpolated.

Examples:
  fossil describe
  fossil describe -i fossil_use.xlsx --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := stringSetting(cmd, "input", "output")
		dbPath, _ := cmd.Flags().GetString("db")
		records, err := loadTagged(cmd.Context(), input, dbPath)
		if err != nil {
			return err
		}

		summaries := stats.Describe(records)
		if jsonOutput {
			outputJSON(map[string]interface{}{
				"count":   len(records),
				"columns": describeJSON(summaries),
			})
			return nil
		}
		fmt.Println(ui.RenderDescribe(len(records), summaries, ui.GetWidth()))
		return nil
	},
}

// describeJSON converts summaries to maps with NaN as null, which
// encoding/json cannot represent otherwise.
func describeJSON(summaries []stats.Summary) []map[string]interface{} {
	num := func(v float64) interface{} {
		if math.IsNaN(v) {
			return nil
		}
		return v
	}
	out := make([]map[string]interface{}, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, map[string]interface{}{
			"column": s.Column,
			"count":  s.Count,
			"mean":   num(s.Mean),
			"std":    num(s.Std),
			"min":    num(s.Min),
			"25%":    num(s.Q25),
			"50%":    num(s.Q50),
			"75%":    num(s.Q75),
			"max":    num(s.Max),
		})
	}
	return out
}

func init() {
	describeCmd.Flags().StringP("input", "i", "", "Tagged table to describe (default from output)")
	describeCmd.Flags().String("db", "", "Describe rows stored in this SQLite database instead")
	rootCmd.AddCommand(describeCmd)
}
