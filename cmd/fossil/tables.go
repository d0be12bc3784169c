package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/untoldecay/fossiluse/internal/classify"
	"github.com/untoldecay/fossiluse/internal/ui"
)

var tablesCmd = &cobra.Command{
	Use:     "tables",
	GroupID: "inspect",
	Short:   "Dump the classification membership tables",
	Long: `Print every membership list used for classification, in evaluation
order, as YAML (default) or TOML.

With --overlaps, list instead the names that appear in more than one region
list. Those names always get the first region in priority order (Africa,
Middle East, East Asia, Europe, North America, South America, Oceania).

Examples:
  fossil tables
  fossil tables --format toml > tables.toml
  fossil tables --overlaps`,
	RunE: func(cmd *cobra.Command, args []string) error {
		overlaps, _ := cmd.Flags().GetBool("overlaps")
		if overlaps {
			found := classify.Overlaps()
			if jsonOutput {
				outputJSON(found)
				return nil
			}
			fmt.Println(ui.RenderOverlaps(found, min(ui.GetWidth(), 100)))
			return nil
		}

		if jsonOutput {
			outputJSON(classify.Snapshot())
			return nil
		}
		format, _ := cmd.Flags().GetString("format")
		return classify.WriteTables(os.Stdout, classify.Format(format))
	},
}

func init() {
	tablesCmd.Flags().String("format", string(classify.FormatYAML), "Output format: yaml or toml")
	tablesCmd.Flags().Bool("overlaps", false, "List names shadowed by an earlier region")
	rootCmd.AddCommand(tablesCmd)
}
