package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/untoldecay/fossiluse/internal/config"
	"github.com/untoldecay/fossiluse/internal/debug"
	"github.com/untoldecay/fossiluse/internal/ui"
)

var (
	// Global flags
	configFile string
	jsonOutput bool
	verbose    bool
	logFile    string

	// Set up by PersistentPreRunE
	runLog    runLogger
	logCloser io.Closer

	// rootCtx is canceled on SIGINT/SIGTERM
	rootCtx    context.Context
	rootCancel context.CancelFunc = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "fossil",
	Short: "Tag fossil fuel data by bloc and region and render infographics",
	Long: `fossil cleans a fossil fuel production/consumption table, tags every
row with its economic bloc, geographic region and EU/Russia/Ukraine status,
and renders a panel of charts from the tagged data.

  fossil clean     load, filter, classify and write the tagged table
  fossil chart     render the infographic from a tagged table
  fossil run       both stages in one go`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(configFile); err != nil {
			return err
		}

		// Flags win over config; config fills in flags the user left alone.
		if !cmd.Flags().Changed("json") {
			jsonOutput = config.GetBool("json")
		}
		if !cmd.Flags().Changed("verbose") {
			verbose = config.GetBool("verbose")
		}
		if !cmd.Flags().Changed("log-file") {
			logFile = config.GetString("log.file")
		}
		if verbose {
			debug.SetEnabled(true)
		}
		ui.ConfigureColor()

		runLog, logCloser = newRunLogger(logSettingsFromConfig(logFile, verbose))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "pipeline", Title: "Pipeline:"},
		&cobra.Group{ID: "inspect", Title: "Inspection:"},
	)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: .fossil/config.yaml, searched upwards)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging and debug tracing")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write the run log to a rotated file instead of stderr")
}

// outputJSON writes v to stdout as indented JSON
func outputJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
	}
}

func main() {
	rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(rootCtx)
	rootCancel()
	if err != nil {
		if jsonOutput {
			outputJSON(map[string]string{"error": err.Error()})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
