package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/untoldecay/fossiluse/internal/config"
)

// stringSetting returns the flag value when the user set it, otherwise the
// config value for key.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	return config.GetString(key)
}

func intSetting(cmd *cobra.Command, flag, key string) int {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetInt(flag)
		return v
	}
	return config.GetInt(key)
}

func floatSetting(cmd *cobra.Command, flag, key string) float64 {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetFloat64(flag)
		return v
	}
	return config.GetFloat64(key)
}

// reportOverrides prints, in verbose mode, every set flag that shadows a
// config file or env var value. keys maps flag name -> config key.
func reportOverrides(cmd *cobra.Command, keys map[string]string) {
	if !verbose {
		return
	}
	set := make(map[string]interface{})
	for flag, key := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		set[key] = f.Value.String()
	}
	overrides := config.CheckOverrides(set)
	sort.Slice(overrides, func(i, j int) bool { return overrides[i].Key < overrides[j].Key })
	for _, o := range overrides {
		config.LogOverride(o)
	}
}
