package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/untoldecay/fossiluse/internal/charts"
	"github.com/untoldecay/fossiluse/internal/dataset"
	"github.com/untoldecay/fossiluse/internal/debug"
)

// EnvPrefix prefixes every environment variable the config layer reads,
// e.g. FOSSIL_INPUT or FOSSIL_CHART_DPI.
const EnvPrefix = "FOSSIL"

var v *viper.Viper

// Initialize sets up the viper configuration singleton.
// Should be called once at application startup. A non-empty configPath
// (the --config flag) skips the search and must exist.
func Initialize(configPath string) error {
	v = viper.New()

	v.SetConfigType("yaml")

	// Precedence: --config > project .fossil/config.yaml > ~/.config/fossil/config.yaml > ~/.fossil/config.yaml
	configFileSet := false
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return fmt.Errorf("config file: %w", err)
		}
		v.SetConfigFile(configPath)
		configFileSet = true
	}

	// 1. Walk up from CWD to find project .fossil/config.yaml
	if !configFileSet {
		if cwd, err := os.Getwd(); err == nil {
			for dir := cwd; dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
				path := filepath.Join(dir, ".fossil", "config.yaml")
				if _, err := os.Stat(path); err == nil {
					v.SetConfigFile(path)
					configFileSet = true
					break
				}
			}
		}
	}

	// 2. User config directory (~/.config/fossil/config.yaml)
	if !configFileSet {
		if configDir, err := os.UserConfigDir(); err == nil {
			path := filepath.Join(configDir, "fossil", "config.yaml")
			if _, err := os.Stat(path); err == nil {
				v.SetConfigFile(path)
				configFileSet = true
			}
		}
	}

	// 3. Home directory (~/.fossil/config.yaml)
	if !configFileSet {
		if homeDir, err := os.UserHomeDir(); err == nil {
			path := filepath.Join(homeDir, ".fossil", "config.yaml")
			if _, err := os.Stat(path); err == nil {
				v.SetConfigFile(path)
				configFileSet = true
			}
		}
	}

	// Environment variables take precedence over the config file.
	// FOSSIL_CHART_DPI maps to "chart.dpi", FOSSIL_CLEAN_YEAR_MIN to "clean.year-min".
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configFileSet {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		debug.Logf("loaded config from %s\n", v.ConfigFileUsed())
	} else {
		debug.Logf("no config.yaml found; using defaults and environment variables\n")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("json", false)
	v.SetDefault("verbose", false)

	// Stage 1
	v.SetDefault("input", "Fuel production vs consumption.csv")
	v.SetDefault("output", "fossil_use.csv")
	v.SetDefault("db", "")
	v.SetDefault("clean.year-min", dataset.DefaultYearMin)
	v.SetDefault("clean.year-max", dataset.DefaultYearMax)
	v.SetDefault("clean.exclude", dataset.DefaultExcluded)

	// Stage 2
	v.SetDefault("chart.output", "infographics.png")
	v.SetDefault("chart.radar", "")
	v.SetDefault("chart.title", charts.DefaultTitle)
	v.SetDefault("chart.width", 30.0)
	v.SetDefault("chart.height", 30.0)
	v.SetDefault("chart.dpi", 100)

	// Logging; an empty log.file means stderr
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.max-size", 10) // megabytes
	v.SetDefault("log.max-backups", 3)
	v.SetDefault("log.max-age", 28) // days
	v.SetDefault("log.compress", false)

	// Watch mode
	v.SetDefault("watch.debounce", "500ms")
	v.SetDefault("watch.poll-interval", "5s")
}

// ConfigFileUsed returns the path of the loaded config file, or "".
func ConfigFileUsed() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault    ConfigSource = "default"
	SourceConfigFile ConfigSource = "config_file"
	SourceEnvVar     ConfigSource = "env_var"
	SourceFlag       ConfigSource = "flag"
)

// ConfigOverride represents a detected configuration override
type ConfigOverride struct {
	Key            string
	EffectiveValue interface{}
	OverriddenBy   ConfigSource
	OriginalSource ConfigSource
}

// EnvKey returns the environment variable name bound to key.
func EnvKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(key))
}

// GetValueSource returns the source of a configuration value.
// Priority (highest to lowest): env var > config file > default
// Flag overrides are handled by the caller since viper doesn't know about cobra flags.
func GetValueSource(key string) ConfigSource {
	if v == nil {
		return SourceDefault
	}
	if os.Getenv(EnvKey(key)) != "" {
		return SourceEnvVar
	}
	if v.InConfig(key) {
		return SourceConfigFile
	}
	return SourceDefault
}

// CheckOverrides reports flags that override a config file or env var value.
// flagOverrides maps config key -> effective flag value for flags the user set.
func CheckOverrides(flagOverrides map[string]interface{}) []ConfigOverride {
	var overrides []ConfigOverride
	for key, value := range flagOverrides {
		source := GetValueSource(key)
		if source == SourceConfigFile || source == SourceEnvVar {
			overrides = append(overrides, ConfigOverride{
				Key:            key,
				EffectiveValue: value,
				OverriddenBy:   SourceFlag,
				OriginalSource: source,
			})
		}
	}
	return overrides
}

// LogOverride prints a message about a configuration override (verbose mode).
func LogOverride(override ConfigOverride) {
	sourceDesc := "default"
	switch override.OriginalSource {
	case SourceConfigFile:
		sourceDesc = "config file"
	case SourceEnvVar:
		sourceDesc = "environment variable"
	}
	fmt.Fprintf(os.Stderr, "Config: %s from %s overridden by command-line flag (now: %v)\n",
		override.Key, sourceDesc, override.EffectiveValue)
}

// GetString retrieves a string configuration value
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool retrieves a boolean configuration value
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// GetInt retrieves an integer configuration value
func GetInt(key string) int {
	if v == nil {
		return 0
	}
	return v.GetInt(key)
}

// GetFloat64 retrieves a float configuration value
func GetFloat64(key string) float64 {
	if v == nil {
		return 0
	}
	return v.GetFloat64(key)
}

// GetDuration retrieves a duration configuration value
func GetDuration(key string) time.Duration {
	if v == nil {
		return 0
	}
	return v.GetDuration(key)
}

// GetStringSlice retrieves a string slice configuration value
func GetStringSlice(key string) []string {
	if v == nil {
		return []string{}
	}
	return v.GetStringSlice(key)
}

// Set sets a configuration value
func Set(key string, value interface{}) {
	if v != nil {
		v.Set(key, value)
	}
}

// AllSettings returns all configuration settings as a map
func AllSettings() map[string]interface{} {
	if v == nil {
		return map[string]interface{}{}
	}
	return v.AllSettings()
}

// Filter builds the clean-stage filter from clean.year-min, clean.year-max
// and clean.exclude. clean.exclude is only meaningful in the config file:
// entity names contain spaces, which the env var form splits on.
func Filter() dataset.Filter {
	if v == nil {
		return dataset.DefaultFilter()
	}
	return dataset.Filter{
		YearMin: GetInt("clean.year-min"),
		YearMax: GetInt("clean.year-max"),
		Exclude: GetStringSlice("clean.exclude"),
	}
}
