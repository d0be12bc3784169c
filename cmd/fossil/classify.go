package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/untoldecay/fossiluse/internal/classify"
	"github.com/untoldecay/fossiluse/internal/types"
	"github.com/untoldecay/fossiluse/internal/ui"
	"github.com/untoldecay/fossiluse/internal/utils"
)

var classifyCmd = &cobra.Command{
	Use:     "classify [NAME...]",
	GroupID: "inspect",
	Short:   "Show the Organizations, Region and EURU labels of entity names",
	Long: `Classify entity names exactly as the clean stage does. Names are matched
exactly and case-sensitively; unknown names get Other everywhere.

With no arguments, names are read one per line from stdin.

Examples:
  fossil classify Germany Russia "Saudi Arabia"
  cut -d, -f1 data.csv | sort -u | fossil classify`,
	RunE: func(cmd *cobra.Command, args []string) error {
		names := args
		if len(names) == 0 {
			var err error
			if names, err = readNames(cmd.InOrStdin()); err != nil {
				return err
			}
		}
		if len(names) == 0 {
			return fmt.Errorf("no names given")
		}

		labels := make([]types.Labels, len(names))
		for i, name := range names {
			labels[i] = classify.Classify(name)
		}

		suggestions := unknownNameSuggestions(names, labels)

		if jsonOutput {
			type row struct {
				Entity string `json:"entity"`
				types.Labels
				DidYouMean []string `json:"did_you_mean,omitempty"`
			}
			rows := make([]row, len(names))
			for i := range names {
				rows[i] = row{Entity: names[i], Labels: labels[i], DidYouMean: suggestions[names[i]]}
			}
			outputJSON(rows)
			return nil
		}
		fmt.Println(ui.RenderLabels(names, labels, min(ui.GetWidth(), 100)))
		for _, name := range names {
			if s := suggestions[name]; len(s) > 0 {
				fmt.Println(ui.RenderWarn(fmt.Sprintf("%q is not in any list. Did you mean: %s?", name, strings.Join(s, ", "))))
			}
		}
		return nil
	},
}

// unknownNameSuggestions maps each name that matched no list to the listed
// names it most likely meant.
func unknownNameSuggestions(names []string, labels []types.Labels) map[string][]string {
	out := make(map[string][]string)
	var known []string
	for i, name := range names {
		l := labels[i]
		if l.Organization != types.OrgOther || l.Region != types.RegionOther || l.EuroBloc != types.BlocOther {
			continue
		}
		if known == nil {
			known = classify.KnownNames()
		}
		if s := utils.Suggest(name, known, 2, 3); len(s) > 0 {
			out[name] = s
		}
	}
	return out
}

// readNames reads one entity name per non-blank line.
func readNames(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if name := strings.TrimSpace(sc.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading names: %w", err)
	}
	return names, nil
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
